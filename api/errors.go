package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"casino/service"

	log "github.com/sirupsen/logrus"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to encode JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps the business failure sentinels to distinct client
// statuses with their user-facing messages. Anything else is an internal
// fault: it is logged in full but reported generically, never echoed.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrAdmissionDenied):
		writeError(w, http.StatusBadRequest, service.ErrAdmissionDenied.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
	case errors.Is(err, service.ErrBanned):
		writeError(w, http.StatusForbidden, service.ErrBanned.Error())
	case errors.Is(err, service.ErrAlreadyRedeemed):
		writeError(w, http.StatusBadRequest, service.ErrAlreadyRedeemed.Error())
	case errors.Is(err, service.ErrInvalidOrExhausted):
		writeError(w, http.StatusBadRequest, service.ErrInvalidOrExhausted.Error())
	case errors.Is(err, service.ErrInvalidCommand):
		writeError(w, http.StatusBadRequest, service.ErrInvalidCommand.Error())
	default:
		log.WithError(err).Error("Internal error handling request")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
