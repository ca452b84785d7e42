package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"crowdcube/internal/models"
	"crowdcube/internal/services"
	"crowdcube/internal/utils"
)

type CampaignHandler struct {
	campaignService services.CampaignService
}

func NewCampaignHandler(campaignService services.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

func (h *CampaignHandler) AddCampaign(w http.ResponseWriter, r *http.Request) {
	var campaign models.Campaign
	if err := utils.DecodeJSON(w, r, &campaign); err != nil {
		log.Warn().Err(err).Msg("Invalid JSON input for AddCampaign")
		utils.SendJSONError(w, "Invalid JSON input: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.campaignService.CreateCampaign(r.Context(), campaign)
	if err != nil {
		respondServiceError(w, r, err, "Failed to insert campaign")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, result)
}

func (h *CampaignHandler) GetCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.campaignService.ListCampaigns(r.Context())
	if err != nil {
		respondServiceError(w, r, err, "Failed to fetch campaigns")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, campaigns)
}

func (h *CampaignHandler) GetRunningCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.campaignService.ListRunningCampaigns(r.Context())
	if err != nil {
		respondServiceError(w, r, err, "Failed to fetch running campaigns")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, campaigns)
}

func (h *CampaignHandler) GetMyCampaigns(w http.ResponseWriter, r *http.Request) {
	claims, err := utils.GetClaims(w, r)
	if err != nil {
		return
	}

	campaigns, err := h.campaignService.ListOwnerCampaigns(r.Context(), claims.Email, r.URL.Query().Get("userEmail"))
	if err != nil {
		respondServiceError(w, r, err, "Failed to fetch campaigns")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, campaigns)
}

func (h *CampaignHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	campaign, err := h.campaignService.GetCampaign(r.Context(), campaignID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.SendJSONError(w, "Campaign not found", http.StatusNotFound)
			return
		}
		respondServiceError(w, r, err, "Failed to fetch campaign")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, campaign)
}

func (h *CampaignHandler) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	claims, err := utils.GetClaims(w, r)
	if err != nil {
		return
	}

	campaignID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	var fields models.Document
	if err := utils.DecodeJSON(w, r, &fields); err != nil {
		log.Warn().Err(err).Msg("Invalid JSON payload for UpdateCampaign")
		utils.SendJSONError(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.campaignService.UpdateCampaign(r.Context(), claims.Email, campaignID, fields)
	if err != nil {
		respondServiceError(w, r, err, "Failed to update campaign")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

func (h *CampaignHandler) UpdateFundBalance(w http.ResponseWriter, r *http.Request) {
	campaignID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	var payload models.FundIncrement
	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		log.Warn().Err(err).Msg("Invalid JSON payload for UpdateFundBalance")
		utils.SendJSONError(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(payload); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.campaignService.IncrementFundBalance(r.Context(), campaignID, payload.FundBalance)
	if err != nil {
		respondServiceError(w, r, err, "Failed to update fund balance")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

func (h *CampaignHandler) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	claims, err := utils.GetClaims(w, r)
	if err != nil {
		return
	}

	campaignID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	result, err := h.campaignService.DeleteCampaign(r.Context(), claims.Email, campaignID)
	if err != nil {
		respondServiceError(w, r, err, "Failed to delete campaign")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}
