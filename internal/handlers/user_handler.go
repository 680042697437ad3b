package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jparra05/habit-tracker/internal/config"
	"github.com/jparra05/habit-tracker/internal/models"
	"github.com/jparra05/habit-tracker/internal/services"
	jwtutil "github.com/jparra05/habit-tracker/pkg/jwt"
	log "github.com/sirupsen/logrus"
)

// UserHandler handles HTTP requests related to user operations.
type UserHandler struct {
	Service *services.UserService
	Config  *config.Config
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service *services.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		Service: service,
		Config:  cfg,
	}
}

type registerRequest struct {
	Name       string `json:"name"`
	DocumentID string `json:"documentId"`
	Phone      string `json:"phone"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	Gender     string `json:"gender"`
	Birthdate  string `json:"birthdate"`
}

// RegisterUserHandler handles user registration.
func (h *UserHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	log.Info("RegisterUserHandler called")
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Failed to decode user registration request")
		respondError(w, http.StatusBadRequest, "Invalid request payload", err, !h.Config.IsProduction())
		return
	}
	defer r.Body.Close()

	user := models.User{
		Name:       req.Name,
		DocumentID: req.DocumentID,
		Phone:      req.Phone,
		Username:   req.Username,
		Gender:     req.Gender,
	}
	if req.Birthdate != "" {
		birthdate, err := time.Parse("2006-01-02", req.Birthdate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid birthdate, expected YYYY-MM-DD", err, !h.Config.IsProduction())
			return
		}
		user.Birthdate = birthdate
	}

	created, err := h.Service.RegisterUser(r.Context(), &user, req.Password)
	if err != nil {
		log.WithError(err).Warn("Failed to register user")
		respondError(w, statusFromError(err), "Failed to register user", err, !h.Config.IsProduction())
		return
	}

	token, err := jwtutil.GenerateToken(created.ID.Hex(), created.Username, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		log.WithError(err).Error("Failed to generate JWT token")
		respondError(w, http.StatusInternalServerError, "Failed to generate token", err, !h.Config.IsProduction())
		return
	}

	log.WithField("userID", created.ID.Hex()).Info("User registered successfully")
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"user":  created.Public(),
		"token": token,
	})
}

// LoginUserHandler handles user login.
func (h *UserHandler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	log.Info("LoginUserHandler called")
	var credentials struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.WithError(err).Warn("Failed to decode login request")
		respondError(w, http.StatusBadRequest, "Invalid request payload", err, !h.Config.IsProduction())
		return
	}
	defer r.Body.Close()

	user, err := h.Service.AuthenticateUser(r.Context(), credentials.Username, credentials.Password)
	if err != nil {
		log.WithFields(log.Fields{
			"username": credentials.Username,
			"error":    err,
		}).Warn("Authentication failed")
		respondError(w, http.StatusUnauthorized, "Wrong username or password", err, false)
		return
	}

	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Username, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		log.WithError(err).Error("Failed to generate JWT token")
		respondError(w, http.StatusInternalServerError, "Failed to generate token", err, !h.Config.IsProduction())
		return
	}

	log.WithField("userID", user.ID.Hex()).Info("User logged in successfully")
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user":  user.Public(),
		"token": token,
	})
}

// GetProfileHandler returns the logged-in user's profile.
func (h *UserHandler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		log.Warn("Unauthorized access attempt to GetProfileHandler")
		respondError(w, http.StatusUnauthorized, "Unauthorized", nil, false)
		return
	}

	user, err := h.Service.GetUser(r.Context(), userID)
	if err != nil {
		log.WithField("userID", userID.Hex()).WithError(err).Warn("User not found")
		respondError(w, statusFromError(err), "User not found", err, !h.Config.IsProduction())
		return
	}

	respondJSON(w, http.StatusOK, user.Public())
}

// UpdateProfileHandler updates the logged-in user's profile.
func (h *UserHandler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized", nil, false)
		return
	}

	var input services.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.WithError(err).Warn("Failed to decode profile update request")
		respondError(w, http.StatusBadRequest, "Invalid request payload", err, !h.Config.IsProduction())
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.UpdateProfile(r.Context(), userID, input)
	if err != nil {
		log.WithField("userID", userID.Hex()).WithError(err).Warn("Failed to update profile")
		respondError(w, statusFromError(err), "Failed to update profile", err, !h.Config.IsProduction())
		return
	}

	log.WithField("userID", userID.Hex()).Info("User profile updated")
	respondJSON(w, http.StatusOK, updated.Public())
}

// ChangePasswordHandler verifies the current password and stores a new one.
func (h *UserHandler) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized", nil, false)
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Failed to decode password change request")
		respondError(w, http.StatusBadRequest, "Invalid request payload", err, !h.Config.IsProduction())
		return
	}
	defer r.Body.Close()

	if err := h.Service.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		log.WithField("userID", userID.Hex()).WithError(err).Warn("Failed to change password")
		respondError(w, statusFromError(err), "Failed to change password", err, !h.Config.IsProduction())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(envelope{Success: true, Message: "Password updated"})
}
