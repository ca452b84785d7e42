package handlers

import (
	"net/http"

	"crowdcube/internal/database"
	"crowdcube/internal/utils"
)

type CommonHandler struct {
	db database.Service
}

func NewCommonHandler(db database.Service) *CommonHandler {
	return &CommonHandler{db: db}
}

func (h *CommonHandler) RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Server is Running"))
}

func (h *CommonHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	health := h.db.Health()

	status := http.StatusOK
	if _, down := health["error"]; down {
		status = http.StatusServiceUnavailable
	}
	utils.RespondWithJSON(w, status, health)
}
