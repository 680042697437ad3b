package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jparra05/habit-tracker/internal/models"
	"github.com/jparra05/habit-tracker/internal/stats"
	"github.com/jparra05/habit-tracker/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HabitService encapsulates the business logic for habits and their progress.
type HabitService struct {
	repo         HabitRepo
	progressRepo ProgressRepo

	// One mutex per habit id. LogProgress is a read-count-compute-write
	// sequence; without serialization two concurrent logs for the same
	// habit can both read the old streak and lose one increment.
	habitLocks sync.Map
}

// NewHabitService creates a new instance of HabitService.
func NewHabitService(repo HabitRepo, progressRepo ProgressRepo) *HabitService {
	return &HabitService{
		repo:         repo,
		progressRepo: progressRepo,
	}
}

// LogProgressInput carries one progress-log request.
type LogProgressInput struct {
	Date      time.Time
	Completed bool
	Notes     string
}

// CreateHabit validates and stores a new habit.
func (s *HabitService) CreateHabit(ctx context.Context, habit *models.Habit) (*models.Habit, error) {
	if habit.Name == "" {
		logger.Log.Warn("Habit name is empty during creation")
		return nil, fmt.Errorf("%w: habit name is required", ErrInvalidInput)
	}
	if _, ok := models.AllowedCategories[habit.Category]; !ok {
		logger.Log.WithField("category", habit.Category).Warn("Invalid category during habit creation")
		return nil, fmt.Errorf("%w: invalid category %q", ErrInvalidInput, habit.Category)
	}
	if !models.AllowedFrequencies[habit.Frequency] {
		logger.Log.WithField("frequency", habit.Frequency).Warn("Invalid frequency during habit creation")
		return nil, fmt.Errorf("%w: invalid frequency %q", ErrInvalidInput, habit.Frequency)
	}
	if habit.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: start date is required", ErrInvalidInput)
	}

	habit.Streak = 0
	habit.CompletionRate = 0
	habit.Progress = nil

	created, err := s.repo.CreateHabit(ctx, habit)
	if err != nil {
		logger.Log.WithError(err).Error("Service failed to create habit")
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	logger.Log.WithField("habit_id", created.ID.Hex()).Info("Habit created in service layer")
	return created, nil
}

// GetHabits retrieves all habits belonging to the user.
func (s *HabitService) GetHabits(ctx context.Context, userID primitive.ObjectID) ([]models.Habit, error) {
	habits, err := s.repo.GetHabitsByUser(ctx, userID)
	if err != nil {
		logger.Log.WithField("user_id", userID.Hex()).WithError(err).Error("Failed to get habits in service")
		return nil, fmt.Errorf("failed to get habits: %w", err)
	}
	return habits, nil
}

// UpdateHabit applies user edits to a habit they own. Streak, completion rate
// and the progress list are never touched here.
func (s *HabitService) UpdateHabit(ctx context.Context, id string, userID primitive.ObjectID, updated *models.Habit) (*models.Habit, error) {
	habit, err := s.getOwnedHabit(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if updated.Name != "" {
		habit.Name = updated.Name
	}
	if updated.Description != "" {
		habit.Description = updated.Description
	}
	if updated.Category != "" {
		if _, ok := models.AllowedCategories[updated.Category]; !ok {
			return nil, fmt.Errorf("%w: invalid category %q", ErrInvalidInput, updated.Category)
		}
		habit.Category = updated.Category
	}
	if updated.Frequency != "" {
		if !models.AllowedFrequencies[updated.Frequency] {
			return nil, fmt.Errorf("%w: invalid frequency %q", ErrInvalidInput, updated.Frequency)
		}
		habit.Frequency = updated.Frequency
	}
	if updated.Goal != "" {
		habit.Goal = updated.Goal
	}

	result, err := s.repo.UpdateHabit(ctx, habit.ID, habit)
	if err != nil {
		logger.Log.WithField("habit_id", id).WithError(err).Error("Failed to update habit")
		return nil, fmt.Errorf("failed to update habit: %w", err)
	}

	logger.Log.WithField("habit_id", id).Info("Habit updated in service layer")
	return result, nil
}

// DeleteHabit removes a habit owned by the user. Progress entries are not
// cascaded: they stay in the store, reachable only by their own ids.
func (s *HabitService) DeleteHabit(ctx context.Context, id string, userID primitive.ObjectID) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid habit ID", ErrInvalidInput)
	}

	deleted, err := s.repo.DeleteHabit(ctx, objID, userID)
	if err != nil {
		logger.Log.WithField("habit_id", id).WithError(err).Error("Failed to delete habit")
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: habit %s", ErrNotFound, id)
	}

	logger.Log.WithField("habit_id", id).Info("Habit deleted in service layer")
	return nil
}

// LogProgress records one progress entry for a habit and updates the habit's
// streak and completion rate.
//
// Ownership is validated before the entry is inserted, so a failed lookup can
// never leave an orphaned entry behind. The whole sequence runs under the
// habit's mutex to keep concurrent logs from racing on the streak.
func (s *HabitService) LogProgress(ctx context.Context, habitID string, userID primitive.ObjectID, input LogProgressInput) (*models.Habit, *models.Progress, error) {
	objID, err := primitive.ObjectIDFromHex(habitID)
	if err != nil {
		logger.Log.WithField("habit_id", habitID).Warn("Invalid habit ID")
		return nil, nil, fmt.Errorf("%w: invalid habit ID", ErrInvalidInput)
	}

	// Key the lock on the canonical hex form, not the raw request id:
	// ObjectIDFromHex accepts mixed-case input, and two casings of the
	// same id must share one mutex.
	lock := s.lockFor(objID.Hex())
	lock.Lock()
	defer lock.Unlock()

	habit, err := s.getOwnedHabitByID(ctx, objID, userID)
	if err != nil {
		return nil, nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	progress, err := s.progressRepo.CreateProgress(ctx, &models.Progress{
		HabitID:   habit.ID,
		Date:      date,
		Completed: input.Completed,
		Notes:     input.Notes,
	})
	if err != nil {
		logger.Log.WithField("habit_id", habitID).WithError(err).Error("Failed to create progress entry")
		return nil, nil, fmt.Errorf("failed to create progress entry: %w", err)
	}

	habit.Streak = stats.NextStreak(habit.Streak, input.Completed)

	// Full rescan of completed entries: tolerates backdated and
	// out-of-order logs.
	completedCount, err := s.progressRepo.CountCompleted(ctx, habit.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count completed entries: %w", err)
	}

	now := time.Now()
	expected := stats.ExpectedCompletions(habit.Frequency, habit.StartDate, now)
	habit.CompletionRate = stats.Rate(completedCount, expected)
	habit.Progress = append(habit.Progress, progress.ID)

	updated, err := s.repo.UpdateHabit(ctx, habit.ID, habit)
	if err != nil {
		logger.Log.WithField("habit_id", habitID).WithError(err).Error("Failed to persist progress update")
		return nil, nil, fmt.Errorf("failed to update habit: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"habit_id":        habitID,
		"streak":          updated.Streak,
		"completion_rate": updated.CompletionRate,
	}).Info("Progress logged")
	return updated, progress, nil
}

func (s *HabitService) lockFor(habitID string) *sync.Mutex {
	lock, _ := s.habitLocks.LoadOrStore(habitID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// getOwnedHabit fetches a habit and verifies ownership. A habit owned by
// someone else reports the same ErrNotFound as a missing one.
func (s *HabitService) getOwnedHabit(ctx context.Context, id string, userID primitive.ObjectID) (*models.Habit, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Log.WithField("habit_id", id).Warn("Invalid habit ID")
		return nil, fmt.Errorf("%w: invalid habit ID", ErrInvalidInput)
	}
	return s.getOwnedHabitByID(ctx, objID, userID)
}

func (s *HabitService) getOwnedHabitByID(ctx context.Context, objID primitive.ObjectID, userID primitive.ObjectID) (*models.Habit, error) {
	habit, err := s.repo.GetHabitByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: habit %s", ErrNotFound, objID.Hex())
		}
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}

	if habit.UserID != userID {
		logger.Log.WithFields(logrus.Fields{
			"habit_id": objID.Hex(),
			"user_id":  userID.Hex(),
		}).Warn("User attempted to access a habit they do not own")
		return nil, fmt.Errorf("%w: habit %s", ErrNotFound, objID.Hex())
	}
	return habit, nil
}
