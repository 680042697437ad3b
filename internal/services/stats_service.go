package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jparra05/habit-tracker/internal/models"
	"github.com/jparra05/habit-tracker/internal/stats"
	"github.com/jparra05/habit-tracker/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// StatsService assembles statistics reports and habit histories. It has no
// persisted side effects: every rate it reports is recomputed from the
// progress log, never read from the habit's cached completionRate.
type StatsService struct {
	habitRepo    HabitRepo
	progressRepo ProgressRepo
}

// NewStatsService creates a new instance of StatsService.
func NewStatsService(habitRepo HabitRepo, progressRepo ProgressRepo) *StatsService {
	return &StatsService{
		habitRepo:    habitRepo,
		progressRepo: progressRepo,
	}
}

// HabitSummary is the habit header returned with its history.
type HabitSummary struct {
	Name           string `json:"name"`
	Category       string `json:"category"`
	Streak         int    `json:"streak"`
	CompletionRate int    `json:"completionRate"`
}

// HabitHistory pairs a habit summary with its most recent entries.
type HabitHistory struct {
	Habit   HabitSummary      `json:"habit"`
	History []models.Progress `json:"history"`
}

// historyLimit caps how many entries the history endpoint returns.
const historyLimit = 30

// GetStats builds the full statistics report for a user's habit set.
func (s *StatsService) GetStats(ctx context.Context, userID primitive.ObjectID) (*stats.Report, error) {
	habits, err := s.habitRepo.GetHabitsByUser(ctx, userID)
	if err != nil {
		logger.Log.WithField("user_id", userID.Hex()).WithError(err).Error("Failed to fetch habits for stats")
		return nil, fmt.Errorf("failed to fetch habits: %w", err)
	}

	completedCounts := make(map[primitive.ObjectID]int, len(habits))
	for _, habit := range habits {
		count, err := s.progressRepo.CountCompleted(ctx, habit.ID)
		if err != nil {
			logger.Log.WithField("habit_id", habit.ID.Hex()).WithError(err).Error("Failed to count entries for stats")
			return nil, fmt.Errorf("failed to count completed entries: %w", err)
		}
		completedCounts[habit.ID] = count
	}

	report := stats.BuildReport(habits, completedCounts, time.Now())

	logger.Log.WithFields(map[string]interface{}{
		"user_id":    userID.Hex(),
		"habits":     len(habits),
		"has_habits": report.HasHabits,
	}).Info("Stats report built")
	return report, nil
}

// GetHabitHistory returns a habit's summary and its latest entries, newest
// first. Only the owner can read a habit's history.
func (s *StatsService) GetHabitHistory(ctx context.Context, habitID string, userID primitive.ObjectID) (*HabitHistory, error) {
	objID, err := primitive.ObjectIDFromHex(habitID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid habit ID", ErrInvalidInput)
	}

	habit, err := s.habitRepo.GetHabitByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: habit %s", ErrNotFound, habitID)
		}
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}
	if habit.UserID != userID {
		return nil, fmt.Errorf("%w: habit %s", ErrNotFound, habitID)
	}

	entries, err := s.progressRepo.GetHistory(ctx, habit.ID, historyLimit)
	if err != nil {
		logger.Log.WithField("habit_id", habitID).WithError(err).Error("Failed to fetch habit history")
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	if entries == nil {
		entries = []models.Progress{}
	}

	return &HabitHistory{
		Habit: HabitSummary{
			Name:           habit.Name,
			Category:       habit.Category,
			Streak:         habit.Streak,
			CompletionRate: habit.CompletionRate,
		},
		History: entries,
	}, nil
}
