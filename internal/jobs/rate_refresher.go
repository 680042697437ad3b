package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/jparra05/habit-tracker/internal/services"
	"github.com/jparra05/habit-tracker/internal/stats"
	"github.com/sirupsen/logrus"
)

// RateRefresher recomputes cached completion rates in the background. The
// expected-completions denominator grows with time even when nothing is
// logged, so a habit's stored rate drifts until its next progress entry.
type RateRefresher struct {
	HabitRepo    services.HabitRepo
	ProgressRepo services.ProgressRepo
}

// NewRateRefresher creates a new instance of RateRefresher.
func NewRateRefresher(habitRepo services.HabitRepo, progressRepo services.ProgressRepo) *RateRefresher {
	return &RateRefresher{
		HabitRepo:    habitRepo,
		ProgressRepo: progressRepo,
	}
}

// Run rescans every habit and writes back any completion rate that changed.
func (j *RateRefresher) Run(ctx context.Context) error {
	habits, err := j.HabitRepo.GetAllHabits(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch habits: %v", err)
	}

	now := time.Now()
	refreshed := 0
	for _, habit := range habits {
		completedCount, err := j.ProgressRepo.CountCompleted(ctx, habit.ID)
		if err != nil {
			logrus.WithField("habit_id", habit.ID.Hex()).WithError(err).Warn("Skipping habit in rate refresh")
			continue
		}

		expected := stats.ExpectedCompletions(habit.Frequency, habit.StartDate, now)
		rate := stats.Rate(completedCount, expected)
		if rate == habit.CompletionRate {
			continue
		}

		if err := j.HabitRepo.UpdateCompletionRate(ctx, habit.ID, rate); err != nil {
			logrus.WithField("habit_id", habit.ID.Hex()).WithError(err).Warn("Failed to refresh completion rate")
			continue
		}
		refreshed++
	}

	logrus.WithFields(logrus.Fields{
		"habits":    len(habits),
		"refreshed": refreshed,
	}).Info("Completion rate refresh finished")
	return nil
}
