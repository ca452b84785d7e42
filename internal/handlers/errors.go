package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"crowdcube/internal/services"
	"crowdcube/internal/utils"
)

// respondServiceError maps service errors onto status codes. Unexpected
// errors are logged and hidden behind a generic message.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, failureMsg string) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.SendJSONError(w, "Unauthorized Access", http.StatusUnauthorized)
	case errors.Is(err, services.ErrForbidden):
		utils.SendJSONError(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, services.ErrNotFound):
		utils.SendJSONError(w, "Not found", http.StatusNotFound)
	case errors.Is(err, services.ErrConflict):
		utils.SendJSONError(w, "Already exists", http.StatusConflict)
	default:
		hlog.FromRequest(r).Error().Err(err).Msg(failureMsg)
		utils.SendJSONError(w, failureMsg, http.StatusInternalServerError)
	}
}
