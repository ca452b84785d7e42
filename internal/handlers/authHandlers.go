package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"crowdcube/internal/models"
	"crowdcube/internal/services"
	"crowdcube/internal/utils"
)

type AuthHandler struct {
	authService  services.AuthService
	secureCookie bool
}

func NewAuthHandler(authService services.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

// Login sets the session cookie for a registered email. An unknown email is
// answered with {"success": false} and no cookie.
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Login
	if err := utils.DecodeJSON(w, r, &creds); err != nil {
		log.Warn().Err(err).Msg("Invalid request body for Login")
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	session, err := a.authService.Login(r.Context(), &creds)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondWithJSON(w, http.StatusUnauthorized, models.SessionResponse{Success: false})
			return
		}
		respondServiceError(w, r, err, "Failed to log in")
		return
	}

	utils.SetSessionCookie(w, session.Token, session.ExpiresAt, a.secureCookie)
	utils.RespondWithJSON(w, http.StatusOK, models.SessionResponse{Success: true})
}

// Logout always succeeds, whether or not a session existed.
func (a *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	utils.ClearSessionCookie(w, a.secureCookie)
	utils.RespondWithJSON(w, http.StatusOK, models.SessionResponse{Success: true})
}
