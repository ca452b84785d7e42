package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"crowdcube/internal/models"
	"crowdcube/internal/services"
	"crowdcube/internal/utils"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (u *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := utils.DecodeJSON(w, r, &user); err != nil {
		log.Warn().Err(err).Msg("Invalid user data input for CreateUser")
		utils.SendJSONError(w, "Invalid user data input: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := u.userService.RegisterUser(r.Context(), user)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			utils.RespondWithJSON(w, http.StatusConflict, map[string]string{"response": "user already added"})
			return
		}
		respondServiceError(w, r, err, "Failed to create user")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, result)
}
