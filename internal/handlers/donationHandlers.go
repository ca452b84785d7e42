package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"crowdcube/internal/models"
	"crowdcube/internal/services"
	"crowdcube/internal/utils"
)

type DonationHandler struct {
	donationService services.DonationService
}

func NewDonationHandler(donationService services.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

func (h *DonationHandler) AddDonation(w http.ResponseWriter, r *http.Request) {
	var donation models.Donation
	if err := utils.DecodeJSON(w, r, &donation); err != nil {
		log.Warn().Err(err).Msg("Invalid JSON input for AddDonation")
		utils.SendJSONError(w, "Invalid JSON input: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.donationService.CreateDonation(r.Context(), donation)
	if err != nil {
		respondServiceError(w, r, err, "Failed to record donation")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, result)
}

func (h *DonationHandler) GetMyDonations(w http.ResponseWriter, r *http.Request) {
	claims, err := utils.GetClaims(w, r)
	if err != nil {
		return
	}

	donations, err := h.donationService.ListDonorDonations(r.Context(), claims.Email, r.URL.Query().Get("userEmail"))
	if err != nil {
		respondServiceError(w, r, err, "Failed to fetch donations")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, donations)
}
