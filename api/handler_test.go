package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"casino/models"
	"casino/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type handlerFixture struct {
	accounts     *mockAccountService
	wagers       *mockWagerService
	promos       *mockPromoService
	admin        *mockAdminService
	transactions *mockTransactionService
	server       *httptest.Server
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	f := &handlerFixture{
		accounts:     new(mockAccountService),
		wagers:       new(mockWagerService),
		promos:       new(mockPromoService),
		admin:        new(mockAdminService),
		transactions: new(mockTransactionService),
	}

	handler := NewHandler(f.accounts, f.wagers, f.promos, f.admin, f.transactions)
	f.server = httptest.NewServer(NewRouter(handler))
	t.Cleanup(f.server.Close)

	return f
}

func (f *handlerFixture) get(t *testing.T, query string) *http.Response {
	resp, err := http.Get(f.server.URL + "/api?" + query)
	require.NoError(t, err)
	return resp
}

func (f *handlerFixture) post(t *testing.T, body string) *http.Response {
	resp, err := http.Post(f.server.URL+"/api", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHandler_Healthz(t *testing.T) {
	f := newHandlerFixture(t)

	resp, err := http.Get(f.server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandler_ListUsers(t *testing.T) {
	f := newHandlerFixture(t)

	f.accounts.On("ListUsers", mock.Anything).Return([]*models.User{
		{Username: "alice", Password: "pw", Balance: 42, LuckyMode: true},
	}, nil)

	resp := f.get(t, "action=list-users")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	users := decodeBody[[]map[string]any](t, resp)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0]["username"])
	assert.Equal(t, "pw", users[0]["password"])
	assert.Equal(t, float64(42), users[0]["balance"])
	assert.Equal(t, true, users[0]["luckyMode"])
}

func TestHandler_ListBets(t *testing.T) {
	f := newHandlerFixture(t)

	f.wagers.On("ListActiveBets", mock.Anything).Return([]*models.Bet{
		{ID: 7, Creator: "alice", Amount: 25, Active: true},
	}, nil)

	resp := f.get(t, "action=list-bets")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	bets := decodeBody[[]map[string]any](t, resp)
	require.Len(t, bets, 1)
	// The bet id travels as a string.
	assert.Equal(t, "7", bets[0]["id"])
	assert.Equal(t, "alice", bets[0]["creator"])
}

func TestHandler_ListTransactions(t *testing.T) {
	f := newHandlerFixture(t)

	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	f.transactions.On("History", mock.Anything, "alice").Return([]*models.Transaction{
		{Username: "alice", Type: "bet_win", Amount: 25, CreatedAt: created},
	}, nil)

	resp := f.get(t, "action=list-transactions&username=alice")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	entries := decodeBody[[]map[string]any](t, resp)
	require.Len(t, entries, 1)
	assert.Equal(t, "bet_win", entries[0]["type"])
	assert.Equal(t, float64(created.UnixMilli()), entries[0]["timestamp"])

	t.Run("username is required", func(t *testing.T) {
		resp := f.get(t, "action=list-transactions")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHandler_Register(t *testing.T) {
	f := newHandlerFixture(t)

	f.accounts.On("Register", mock.Anything, "alice", "hunter2", mock.Anything).
		Return(&models.User{Username: "alice", Balance: 10}, nil)

	resp := f.post(t, `{"action":"register","username":"alice","password":"hunter2"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	f.accounts.AssertExpectations(t)
}

func TestHandler_Register_AdmissionDenied(t *testing.T) {
	f := newHandlerFixture(t)

	f.accounts.On("Register", mock.Anything, "sixth", "pw", mock.Anything).
		Return(nil, service.ErrAdmissionDenied)

	resp := f.post(t, `{"action":"register","username":"sixth","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody[map[string]string](t, resp)
	assert.Equal(t, service.ErrAdmissionDenied.Error(), body["error"])
}

func TestHandler_Login(t *testing.T) {
	f := newHandlerFixture(t)

	f.accounts.On("Login", mock.Anything, "alice", "hunter2").
		Return(&models.LoginResult{Balance: 42, LuckyMode: true}, nil)

	resp := f.post(t, `{"action":"login","username":"alice","password":"hunter2"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[map[string]any](t, resp)
	assert.Equal(t, float64(42), body["balance"])
	assert.Equal(t, true, body["luckyMode"])
}

func TestHandler_Login_Failures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"banned", service.ErrBanned, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t)

			f.accounts.On("Login", mock.Anything, "alice", "pw").Return(nil, tt.err)

			resp := f.post(t, `{"action":"login","username":"alice","password":"pw"}`)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body := decodeBody[map[string]string](t, resp)
			assert.Equal(t, tt.err.Error(), body["error"])
		})
	}
}

func TestHandler_SetBalance(t *testing.T) {
	f := newHandlerFixture(t)

	f.accounts.On("SetBalance", mock.Anything, "alice", int64(-50)).Return(nil)

	resp := f.post(t, `{"action":"set-balance","username":"alice","balance":-50}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	f.accounts.AssertExpectations(t)
}

func TestHandler_AppendTransaction(t *testing.T) {
	f := newHandlerFixture(t)

	f.transactions.On("Append", mock.Anything, "alice", "bet_win", int64(25)).Return(nil)

	resp := f.post(t, `{"action":"append-transaction","username":"alice","type":"bet_win","amount":25}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	f.transactions.AssertExpectations(t)
}

func TestHandler_CreateBet(t *testing.T) {
	f := newHandlerFixture(t)

	f.wagers.On("CreateBet", mock.Anything, "alice", int64(25)).
		Return(&models.Bet{ID: 7, Creator: "alice", Amount: 25, Active: true}, nil)

	resp := f.post(t, `{"action":"create-bet","creator":"alice","amount":25}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	f.wagers.AssertExpectations(t)
}

func TestHandler_AcceptBet(t *testing.T) {
	f := newHandlerFixture(t)

	f.wagers.On("AcceptBet", mock.Anything, int64(7), "alice", "bob", int64(25)).Return(nil)

	resp := f.post(t, `{"action":"accept-bet","betId":"7","winner":"alice","loser":"bob","amount":25}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	f.wagers.AssertExpectations(t)

	t.Run("non-numeric betId is rejected at the boundary", func(t *testing.T) {
		resp := f.post(t, `{"action":"accept-bet","betId":"seven","winner":"alice","loser":"bob","amount":25}`)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		f.wagers.AssertNumberOfCalls(t, "AcceptBet", 1)
	})
}

func TestHandler_RedeemCode(t *testing.T) {
	f := newHandlerFixture(t)

	f.promos.On("Redeem", mock.Anything, "alice", "WELCOME").
		Return(&models.RedemptionResult{Kind: models.PromoCodeKindBalance, Amount: 100}, nil)

	resp := f.post(t, `{"action":"redeem-code","username":"alice","code":"WELCOME"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[map[string]any](t, resp)
	assert.Equal(t, "balance", body["kind"])
	assert.Equal(t, float64(100), body["amount"])
}

func TestHandler_RedeemCode_Failures(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"already redeemed", service.ErrAlreadyRedeemed},
		{"invalid or exhausted", service.ErrInvalidOrExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t)

			f.promos.On("Redeem", mock.Anything, "alice", "WELCOME").Return(nil, tt.err)

			resp := f.post(t, `{"action":"redeem-code","username":"alice","code":"WELCOME"}`)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			body := decodeBody[map[string]string](t, resp)
			assert.Equal(t, tt.err.Error(), body["error"])
		})
	}
}

func TestHandler_AdminCommand(t *testing.T) {
	f := newHandlerFixture(t)

	f.admin.On("ExecuteCommand", mock.Anything, "ban mallory").Return(nil)

	resp := f.post(t, `{"action":"admin-command","command":"ban mallory"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	f.admin.AssertExpectations(t)
}

func TestHandler_AdminCommand_Invalid(t *testing.T) {
	f := newHandlerFixture(t)

	f.admin.On("ExecuteCommand", mock.Anything, "frobnicate").Return(service.ErrInvalidCommand)

	resp := f.post(t, `{"action":"admin-command","command":"frobnicate"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody[map[string]string](t, resp)
	assert.Equal(t, service.ErrInvalidCommand.Error(), body["error"])
}

func TestHandler_InternalErrorIsNotEchoed(t *testing.T) {
	f := newHandlerFixture(t)

	f.accounts.On("Login", mock.Anything, "alice", "pw").Return(nil, assert.AnError)

	resp := f.post(t, `{"action":"login","username":"alice","password":"pw"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decodeBody[map[string]string](t, resp)
	assert.Equal(t, "internal error", body["error"])
	assert.NotContains(t, body["error"], assert.AnError.Error())
}

func TestHandler_UnknownAction(t *testing.T) {
	f := newHandlerFixture(t)

	resp := f.post(t, `{"action":"drop-tables"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	getResp := f.get(t, "action=drop-tables")
	defer getResp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, getResp.StatusCode)
}

func TestHandler_MalformedEnvelope(t *testing.T) {
	f := newHandlerFixture(t)

	resp := f.post(t, `{not json`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
