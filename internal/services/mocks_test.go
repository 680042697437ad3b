package services

import (
	"context"

	"github.com/jparra05/habit-tracker/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockHabitRepo struct {
	CreateHabitFunc          func(ctx context.Context, habit *models.Habit) (*models.Habit, error)
	GetHabitByIDFunc         func(ctx context.Context, id primitive.ObjectID) (*models.Habit, error)
	GetHabitsByUserFunc      func(ctx context.Context, userID primitive.ObjectID) ([]models.Habit, error)
	GetStrugglingHabitsFunc  func(ctx context.Context, userID primitive.ObjectID, maxRate int, limit int64) ([]models.Habit, error)
	GetAllHabitsFunc         func(ctx context.Context) ([]models.Habit, error)
	UpdateHabitFunc          func(ctx context.Context, id primitive.ObjectID, habit *models.Habit) (*models.Habit, error)
	UpdateCompletionRateFunc func(ctx context.Context, id primitive.ObjectID, rate int) error
	DeleteHabitFunc          func(ctx context.Context, id, userID primitive.ObjectID) (bool, error)
}

func (m *mockHabitRepo) CreateHabit(ctx context.Context, habit *models.Habit) (*models.Habit, error) {
	return m.CreateHabitFunc(ctx, habit)
}
func (m *mockHabitRepo) GetHabitByID(ctx context.Context, id primitive.ObjectID) (*models.Habit, error) {
	return m.GetHabitByIDFunc(ctx, id)
}
func (m *mockHabitRepo) GetHabitsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Habit, error) {
	return m.GetHabitsByUserFunc(ctx, userID)
}
func (m *mockHabitRepo) GetStrugglingHabits(ctx context.Context, userID primitive.ObjectID, maxRate int, limit int64) ([]models.Habit, error) {
	return m.GetStrugglingHabitsFunc(ctx, userID, maxRate, limit)
}
func (m *mockHabitRepo) GetAllHabits(ctx context.Context) ([]models.Habit, error) {
	return m.GetAllHabitsFunc(ctx)
}
func (m *mockHabitRepo) UpdateHabit(ctx context.Context, id primitive.ObjectID, habit *models.Habit) (*models.Habit, error) {
	return m.UpdateHabitFunc(ctx, id, habit)
}
func (m *mockHabitRepo) UpdateCompletionRate(ctx context.Context, id primitive.ObjectID, rate int) error {
	return m.UpdateCompletionRateFunc(ctx, id, rate)
}
func (m *mockHabitRepo) DeleteHabit(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	return m.DeleteHabitFunc(ctx, id, userID)
}

type mockProgressRepo struct {
	CreateProgressFunc func(ctx context.Context, progress *models.Progress) (*models.Progress, error)
	CountCompletedFunc func(ctx context.Context, habitID primitive.ObjectID) (int, error)
	GetHistoryFunc     func(ctx context.Context, habitID primitive.ObjectID, limit int64) ([]models.Progress, error)
}

func (m *mockProgressRepo) CreateProgress(ctx context.Context, progress *models.Progress) (*models.Progress, error) {
	return m.CreateProgressFunc(ctx, progress)
}
func (m *mockProgressRepo) CountCompleted(ctx context.Context, habitID primitive.ObjectID) (int, error) {
	return m.CountCompletedFunc(ctx, habitID)
}
func (m *mockProgressRepo) GetHistory(ctx context.Context, habitID primitive.ObjectID, limit int64) ([]models.Progress, error) {
	return m.GetHistoryFunc(ctx, habitID, limit)
}

type mockUserRepo struct {
	CreateUserFunc          func(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByUsernameFunc   func(ctx context.Context, username string) (*models.User, error)
	GetUserByDocumentIDFunc func(ctx context.Context, documentID string) (*models.User, error)
	GetUserByIDFunc         func(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateUserFunc          func(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*models.User, error)
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	return m.CreateUserFunc(ctx, user)
}
func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.GetUserByUsernameFunc(ctx, username)
}
func (m *mockUserRepo) GetUserByDocumentID(ctx context.Context, documentID string) (*models.User, error) {
	return m.GetUserByDocumentIDFunc(ctx, documentID)
}
func (m *mockUserRepo) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return m.GetUserByIDFunc(ctx, id)
}
func (m *mockUserRepo) UpdateUser(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*models.User, error) {
	return m.UpdateUserFunc(ctx, id, update)
}
