package handlers

import (
	"net/http"

	"github.com/jparra05/habit-tracker/internal/config"
	"github.com/jparra05/habit-tracker/internal/services"
	"github.com/sirupsen/logrus"
)

// RecommendationHandler handles HTTP requests for suggestions.
type RecommendationHandler struct {
	Service *services.RecommendationService
	Config  *config.Config
}

// NewRecommendationHandler creates a new instance of RecommendationHandler.
func NewRecommendationHandler(service *services.RecommendationService, cfg *config.Config) *RecommendationHandler {
	return &RecommendationHandler{
		Service: service,
		Config:  cfg,
	}
}

// GetRecommendationsHandler returns the suggestion list for the logged-in user.
func (h *RecommendationHandler) GetRecommendationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		logrus.Warn("Unauthorized recommendations request")
		respondError(w, http.StatusUnauthorized, "Unauthorized", nil, false)
		return
	}

	recommendations, err := h.Service.GetRecommendations(r.Context(), userID)
	if err != nil {
		logrus.WithField("userID", userID.Hex()).WithError(err).Error("Failed to fetch recommendations")
		respondError(w, statusFromError(err), "Failed to fetch recommendations", err, !h.Config.IsProduction())
		return
	}

	respondJSON(w, http.StatusOK, recommendations)
}
