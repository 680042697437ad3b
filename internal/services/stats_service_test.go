package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jparra05/habit-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestGetStats_NoHabits(t *testing.T) {
	habitRepo := &mockHabitRepo{
		GetHabitsByUserFunc: func(ctx context.Context, userID primitive.ObjectID) ([]models.Habit, error) {
			return nil, nil
		},
	}
	svc := NewStatsService(habitRepo, &mockProgressRepo{})

	report, err := svc.GetStats(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.False(t, report.HasHabits)
}

func TestGetStats_RecomputesFromProgressLog(t *testing.T) {
	userID := primitive.NewObjectID()
	habit := models.Habit{
		ID:             primitive.NewObjectID(),
		UserID:         userID,
		Name:           "Ejercicio",
		Category:       "salud",
		Frequency:      models.FrequencyDaily,
		StartDate:      time.Now().Add(-9 * 24 * time.Hour), // expected = 10
		CompletionRate: 5,                                   // stale cache
	}

	habitRepo := &mockHabitRepo{
		GetHabitsByUserFunc: func(ctx context.Context, id primitive.ObjectID) ([]models.Habit, error) {
			return []models.Habit{habit}, nil
		},
	}
	progressRepo := &mockProgressRepo{
		CountCompletedFunc: func(ctx context.Context, habitID primitive.ObjectID) (int, error) {
			return 7, nil
		},
	}
	svc := NewStatsService(habitRepo, progressRepo)

	report, err := svc.GetStats(context.Background(), userID)
	require.NoError(t, err)
	require.True(t, report.HasHabits)
	assert.Equal(t, 70, report.Summary.AverageCompletion)
}

func TestGetStats_CountErrorPropagates(t *testing.T) {
	userID := primitive.NewObjectID()
	habitRepo := &mockHabitRepo{
		GetHabitsByUserFunc: func(ctx context.Context, id primitive.ObjectID) ([]models.Habit, error) {
			return []models.Habit{{ID: primitive.NewObjectID(), UserID: userID}}, nil
		},
	}
	progressRepo := &mockProgressRepo{
		CountCompletedFunc: func(ctx context.Context, habitID primitive.ObjectID) (int, error) {
			return 0, fmt.Errorf("count failed")
		},
	}
	svc := NewStatsService(habitRepo, progressRepo)

	_, err := svc.GetStats(context.Background(), userID)
	assert.Error(t, err)
}

func TestGetHabitHistory_OwnershipEnforced(t *testing.T) {
	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()
	habit := &models.Habit{ID: primitive.NewObjectID(), UserID: owner, Name: "Leer"}

	habitRepo := &mockHabitRepo{
		GetHabitByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*models.Habit, error) {
			return habit, nil
		},
	}
	svc := NewStatsService(habitRepo, &mockProgressRepo{})

	_, err := svc.GetHabitHistory(context.Background(), habit.ID.Hex(), intruder)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetHabitHistory_MissingHabit(t *testing.T) {
	habitRepo := &mockHabitRepo{
		GetHabitByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*models.Habit, error) {
			return nil, fmt.Errorf("failed to find habit: %w", mongo.ErrNoDocuments)
		},
	}
	svc := NewStatsService(habitRepo, &mockProgressRepo{})

	_, err := svc.GetHabitHistory(context.Background(), primitive.NewObjectID().Hex(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetHabitHistory_ReturnsSummaryAndEntries(t *testing.T) {
	userID := primitive.NewObjectID()
	habit := &models.Habit{
		ID:             primitive.NewObjectID(),
		UserID:         userID,
		Name:           "Meditar",
		Category:       "espiritualidad",
		Streak:         3,
		CompletionRate: 60,
	}
	entries := []models.Progress{
		{ID: primitive.NewObjectID(), HabitID: habit.ID, Date: time.Now(), Completed: true},
		{ID: primitive.NewObjectID(), HabitID: habit.ID, Date: time.Now().Add(-24 * time.Hour), Completed: false},
	}

	var requestedLimit int64
	habitRepo := &mockHabitRepo{
		GetHabitByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*models.Habit, error) {
			return habit, nil
		},
	}
	progressRepo := &mockProgressRepo{
		GetHistoryFunc: func(ctx context.Context, habitID primitive.ObjectID, limit int64) ([]models.Progress, error) {
			requestedLimit = limit
			return entries, nil
		},
	}
	svc := NewStatsService(habitRepo, progressRepo)

	history, err := svc.GetHabitHistory(context.Background(), habit.ID.Hex(), userID)
	require.NoError(t, err)

	assert.Equal(t, int64(30), requestedLimit)
	assert.Equal(t, "Meditar", history.Habit.Name)
	assert.Equal(t, 3, history.Habit.Streak)
	assert.Equal(t, 60, history.Habit.CompletionRate)
	assert.Len(t, history.History, 2)
}

func TestGetHabitHistory_OrphanedReferencesYieldEmptyList(t *testing.T) {
	// Deleting a habit never cascades, so the inverse also holds: a habit
	// whose entries vanished (or never existed) gets an empty history, not nil.
	userID := primitive.NewObjectID()
	habit := &models.Habit{ID: primitive.NewObjectID(), UserID: userID, Name: "Nuevo"}

	habitRepo := &mockHabitRepo{
		GetHabitByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*models.Habit, error) {
			return habit, nil
		},
	}
	progressRepo := &mockProgressRepo{
		GetHistoryFunc: func(ctx context.Context, habitID primitive.ObjectID, limit int64) ([]models.Progress, error) {
			return nil, nil
		},
	}
	svc := NewStatsService(habitRepo, progressRepo)

	history, err := svc.GetHabitHistory(context.Background(), habit.ID.Hex(), userID)
	require.NoError(t, err)
	assert.NotNil(t, history.History)
	assert.Empty(t, history.History)
}
