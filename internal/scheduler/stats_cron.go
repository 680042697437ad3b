package cron

import (
	"context"

	"github.com/jparra05/habit-tracker/internal/jobs"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartStatsCronJobs schedules the background statistics maintenance.
func StartStatsCronJobs(refresher *jobs.RateRefresher) {
	c := cron.New()

	// Cached completion rates go stale as time passes; refresh them daily.
	c.AddFunc("@daily", func() {
		if err := refresher.Run(context.Background()); err != nil {
			logrus.WithError(err).Error("Completion rate refresh failed")
		}
	})

	c.Start()
}
