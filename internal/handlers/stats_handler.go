package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jparra05/habit-tracker/internal/config"
	"github.com/jparra05/habit-tracker/internal/services"
	"github.com/sirupsen/logrus"
)

// StatsHandler handles HTTP requests for statistics and habit history.
type StatsHandler struct {
	Service *services.StatsService
	Config  *config.Config
}

// NewStatsHandler creates a new instance of StatsHandler.
func NewStatsHandler(service *services.StatsService, cfg *config.Config) *StatsHandler {
	return &StatsHandler{
		Service: service,
		Config:  cfg,
	}
}

// GetStatsHandler returns the full statistics report for the logged-in user.
func (h *StatsHandler) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		logrus.Warn("Unauthorized stats request")
		respondError(w, http.StatusUnauthorized, "Unauthorized", nil, false)
		return
	}

	report, err := h.Service.GetStats(r.Context(), userID)
	if err != nil {
		logrus.WithField("userID", userID.Hex()).WithError(err).Error("Failed to build stats report")
		respondError(w, statusFromError(err), "Failed to fetch statistics", err, !h.Config.IsProduction())
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// GetHabitHistoryHandler returns a habit summary plus its latest entries.
func (h *StatsHandler) GetHabitHistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized", nil, false)
		return
	}
	habitID := mux.Vars(r)["id"]

	history, err := h.Service.GetHabitHistory(r.Context(), habitID, userID)
	if err != nil {
		logrus.WithField("habitID", habitID).WithError(err).Warn("Failed to fetch habit history")
		respondError(w, statusFromError(err), "Failed to fetch history", err, !h.Config.IsProduction())
		return
	}

	respondJSON(w, http.StatusOK, history)
}
