package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jparra05/habit-tracker/internal/services"
	"github.com/jparra05/habit-tracker/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// envelope is the response shape shared by every endpoint.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

// respondError writes a structured failure. The underlying error detail is
// included only outside production.
func respondError(w http.ResponseWriter, status int, message string, err error, includeDetail bool) {
	body := envelope{Success: false, Message: message}
	if includeDetail && err != nil {
		body.Error = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// currentUserID resolves the authenticated user's ObjectID from the request
// context. The second return is false when the request is unauthenticated or
// carries a malformed user id.
func currentUserID(r *http.Request) (primitive.ObjectID, bool) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		return primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return userID, true
}

// statusFromError maps service errors onto HTTP statuses.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrAlreadyExists):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
