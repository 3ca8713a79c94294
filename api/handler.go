package api

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"casino/service"

	log "github.com/sirupsen/logrus"
)

// Handler dispatches action requests onto the ledger services. Read-only
// actions arrive as GET query parameters; mutations arrive as a POST JSON
// envelope carrying the action name alongside its parameters. The set of
// actions is closed: every action decodes into its own typed parameter
// struct before any service is touched.
type Handler struct {
	accounts     service.AccountService
	wagers       service.WagerService
	promos       service.PromoService
	admin        service.AdminService
	transactions service.TransactionService
}

// NewHandler returns a handler over the given services.
func NewHandler(
	accounts service.AccountService,
	wagers service.WagerService,
	promos service.PromoService,
	admin service.AdminService,
	transactions service.TransactionService,
) *Handler {
	return &Handler{
		accounts:     accounts,
		wagers:       wagers,
		promos:       promos,
		admin:        admin,
		transactions: transactions,
	}
}

// Action names accepted by the dispatcher.
const (
	actionListUsers         = "list-users"
	actionListBets          = "list-bets"
	actionListTransactions  = "list-transactions"
	actionRegister          = "register"
	actionLogin             = "login"
	actionSetBalance        = "set-balance"
	actionAppendTransaction = "append-transaction"
	actionCreateBet         = "create-bet"
	actionAcceptBet         = "accept-bet"
	actionRedeemCode        = "redeem-code"
	actionAdminCommand      = "admin-command"
)

type registerParams struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginParams struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type setBalanceParams struct {
	Username string `json:"username"`
	Balance  int64  `json:"balance"`
}

type appendTransactionParams struct {
	Username string `json:"username"`
	Type     string `json:"type"`
	Amount   int64  `json:"amount"`
}

type createBetParams struct {
	Creator string `json:"creator"`
	Amount  int64  `json:"amount"`
}

type acceptBetParams struct {
	BetID  string `json:"betId"`
	Winner string `json:"winner"`
	Loser  string `json:"loser"`
	Amount int64  `json:"amount"`
}

type redeemCodeParams struct {
	Username string `json:"username"`
	Code     string `json:"code"`
}

type adminCommandParams struct {
	Command string `json:"command"`
}

// HandleGet serves the read-only actions via query parameters.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	action := r.URL.Query().Get("action")

	log.WithField("action", action).Debug("Dispatching read action")

	switch action {
	case actionListUsers:
		users, err := h.accounts.ListUsers(ctx)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toUserViews(users))

	case actionListBets:
		bets, err := h.wagers.ListActiveBets(ctx)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toBetViews(bets))

	case actionListTransactions:
		username := r.URL.Query().Get("username")
		if username == "" {
			writeError(w, http.StatusBadRequest, "username is required")
			return
		}
		entries, err := h.transactions.History(ctx, username)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTransactionViews(entries))

	default:
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}

// HandlePost serves the mutating actions via the JSON envelope.
func (h *Handler) HandlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	var envelope struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	log.WithField("action", envelope.Action).Debug("Dispatching write action")

	switch envelope.Action {
	case actionRegister:
		var p registerParams
		if err := json.Unmarshal(body, &p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		if _, err := h.accounts.Register(ctx, p.Username, p.Password, clientIP(r)); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{})

	case actionLogin:
		var p loginParams
		if err := json.Unmarshal(body, &p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		result, err := h.accounts.Login(ctx, p.Username, p.Password)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, loginView{
			Balance:   result.Balance,
			LuckyMode: result.LuckyMode,
		})

	case actionSetBalance:
		var p setBalanceParams
		if err := json.Unmarshal(body, &p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		if err := h.accounts.SetBalance(ctx, p.Username, p.Balance); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{})

	case actionAppendTransaction:
		var p appendTransactionParams
		if err := json.Unmarshal(body, &p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		if err := h.transactions.Append(ctx, p.Username, p.Type, p.Amount); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{})

	case actionCreateBet:
		var p createBetParams
		if err := json.Unmarshal(body, &p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		if _, err := h.wagers.CreateBet(ctx, p.Creator, p.Amount); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{})

	case actionAcceptBet:
		var p acceptBetParams
		if err := json.Unmarshal(body, &p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		betID, err := strconv.ParseInt(p.BetID, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid betId")
			return
		}
		if err := h.wagers.AcceptBet(ctx, betID, p.Winner, p.Loser, p.Amount); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{})

	case actionRedeemCode:
		var p redeemCodeParams
		if err := json.Unmarshal(body, &p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		result, err := h.promos.Redeem(ctx, p.Username, p.Code)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, redemptionView{
			Kind:   string(result.Kind),
			Amount: result.Amount,
		})

	case actionAdminCommand:
		var p adminCommandParams
		if err := json.Unmarshal(body, &p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		if err := h.admin.ExecuteCommand(ctx, p.Command); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{})

	default:
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}

// clientIP resolves the address the admission cap counts against. The first
// X-Forwarded-For hop wins when a proxy sits in front of the server.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
