package services

import (
	"context"

	"github.com/jparra05/habit-tracker/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HabitRepo is the habit persistence surface the services depend on.
// Implemented by repository.HabitRepository.
type HabitRepo interface {
	CreateHabit(ctx context.Context, habit *models.Habit) (*models.Habit, error)
	GetHabitByID(ctx context.Context, id primitive.ObjectID) (*models.Habit, error)
	GetHabitsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Habit, error)
	GetStrugglingHabits(ctx context.Context, userID primitive.ObjectID, maxRate int, limit int64) ([]models.Habit, error)
	GetAllHabits(ctx context.Context) ([]models.Habit, error)
	UpdateHabit(ctx context.Context, id primitive.ObjectID, habit *models.Habit) (*models.Habit, error)
	UpdateCompletionRate(ctx context.Context, id primitive.ObjectID, rate int) error
	DeleteHabit(ctx context.Context, id, userID primitive.ObjectID) (bool, error)
}

// ProgressRepo is the progress-entry persistence surface. Entries are
// append-only; the interface has no update or delete.
type ProgressRepo interface {
	CreateProgress(ctx context.Context, progress *models.Progress) (*models.Progress, error)
	CountCompleted(ctx context.Context, habitID primitive.ObjectID) (int, error)
	GetHistory(ctx context.Context, habitID primitive.ObjectID, limit int64) ([]models.Progress, error)
}

// UserRepo is the user persistence surface.
type UserRepo interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByDocumentID(ctx context.Context, documentID string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*models.User, error)
}
