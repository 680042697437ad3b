package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jparra05/habit-tracker/internal/config"
	"github.com/jparra05/habit-tracker/internal/models"
	"github.com/jparra05/habit-tracker/internal/services"
	"github.com/sirupsen/logrus"
)

// HabitHandler handles HTTP requests related to habits and progress logging.
type HabitHandler struct {
	Service *services.HabitService
	Config  *config.Config
}

// NewHabitHandler creates a new instance of HabitHandler.
func NewHabitHandler(service *services.HabitService, cfg *config.Config) *HabitHandler {
	return &HabitHandler{
		Service: service,
		Config:  cfg,
	}
}

type habitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Frequency   string `json:"frequency"`
	Goal        string `json:"goal"`
	StartDate   string `json:"start_date"`
}

// CreateHabitHandler handles the creation of a new habit.
func (h *HabitHandler) CreateHabitHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		logrus.Warn("Unauthorized access attempt during habit creation")
		respondError(w, http.StatusUnauthorized, "Unauthorized", nil, false)
		return
	}

	var req habitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during habit creation")
		respondError(w, http.StatusBadRequest, "Invalid request payload", err, !h.Config.IsProduction())
		return
	}
	defer r.Body.Close()

	habit := models.Habit{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Frequency:   req.Frequency,
		Goal:        req.Goal,
	}
	if req.StartDate != "" {
		startDate, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid start date, expected YYYY-MM-DD", err, !h.Config.IsProduction())
			return
		}
		habit.StartDate = startDate
	}

	created, err := h.Service.CreateHabit(r.Context(), &habit)
	if err != nil {
		logrus.WithError(err).Warn("Failed to create habit")
		respondError(w, statusFromError(err), "Failed to create habit", err, !h.Config.IsProduction())
		return
	}

	logrus.WithFields(logrus.Fields{
		"userID":  userID.Hex(),
		"habitID": created.ID.Hex(),
	}).Info("Habit successfully created")
	respondJSON(w, http.StatusCreated, created)
}

// GetHabitsHandler lists all habits of the logged-in user.
func (h *HabitHandler) GetHabitsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized", nil, false)
		return
	}

	habits, err := h.Service.GetHabits(r.Context(), userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch habits")
		respondError(w, statusFromError(err), "Failed to fetch habits", err, !h.Config.IsProduction())
		return
	}
	if habits == nil {
		habits = []models.Habit{}
	}

	respondJSON(w, http.StatusOK, habits)
}

// UpdateHabitHandler applies edits to a habit owned by the logged-in user.
func (h *HabitHandler) UpdateHabitHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized", nil, false)
		return
	}
	habitID := mux.Vars(r)["id"]

	var req habitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during habit update")
		respondError(w, http.StatusBadRequest, "Invalid request payload", err, !h.Config.IsProduction())
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.UpdateHabit(r.Context(), habitID, userID, &models.Habit{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Frequency:   req.Frequency,
		Goal:        req.Goal,
	})
	if err != nil {
		logrus.WithField("habitID", habitID).WithError(err).Warn("Failed to update habit")
		respondError(w, statusFromError(err), "Failed to update habit", err, !h.Config.IsProduction())
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteHabitHandler deletes a habit owned by the logged-in user. Its progress
// entries survive on purpose.
func (h *HabitHandler) DeleteHabitHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized", nil, false)
		return
	}
	habitID := mux.Vars(r)["id"]

	if err := h.Service.DeleteHabit(r.Context(), habitID, userID); err != nil {
		logrus.WithField("habitID", habitID).WithError(err).Warn("Failed to delete habit")
		respondError(w, statusFromError(err), "Failed to delete habit", err, !h.Config.IsProduction())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(envelope{Success: true, Message: "Habit deleted successfully"})
}

type logProgressRequest struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Notes     string `json:"notes"`
}

type logProgressResponse struct {
	Habit    *models.Habit    `json:"habit"`
	Progress *models.Progress `json:"progress"`
}

// LogProgressHandler records one progress entry for a habit and returns the
// updated habit together with the new entry.
func (h *HabitHandler) LogProgressHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		logrus.Warn("Unauthorized progress log attempt")
		respondError(w, http.StatusUnauthorized, "Unauthorized", nil, false)
		return
	}
	habitID := mux.Vars(r)["id"]

	var req logProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during progress log")
		respondError(w, http.StatusBadRequest, "Invalid request payload", err, !h.Config.IsProduction())
		return
	}
	defer r.Body.Close()

	input := services.LogProgressInput{
		Completed: req.Completed,
		Notes:     req.Notes,
	}
	if req.Date != "" {
		date, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			date, err = time.Parse("2006-01-02", req.Date)
		}
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid date", err, !h.Config.IsProduction())
			return
		}
		input.Date = date
	}

	habit, progress, err := h.Service.LogProgress(r.Context(), habitID, userID, input)
	if err != nil {
		logrus.WithField("habitID", habitID).WithError(err).Warn("Failed to log progress")
		respondError(w, statusFromError(err), "Failed to log progress", err, !h.Config.IsProduction())
		return
	}

	respondJSON(w, http.StatusOK, logProgressResponse{Habit: habit, Progress: progress})
}
