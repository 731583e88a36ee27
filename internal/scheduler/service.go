// Package scheduler runs tracking on a recurring cadence so visibility trends
// accumulate without manual triggers.
package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Service schedules recurring tracking runs
type Service struct {
	schedule string
	run      func() error
	cron     *cron.Cron
}

// NewService creates a scheduler that invokes run on the configured cadence
// ("daily" or "weekly").
func NewService(schedule string, run func() error) *Service {
	return &Service{
		schedule: schedule,
		run:      run,
		cron:     cron.New(),
	}
}

// Start begins the scheduled tracking runs
func (s *Service) Start() error {
	var cronExpression string

	switch s.schedule {
	case "daily":
		// Run daily at 9 AM UTC
		cronExpression = "0 9 * * *"
	case "weekly":
		// Run weekly on Monday at 9 AM UTC
		cronExpression = "0 9 * * MON"
	default:
		cronExpression = "0 9 * * MON"
	}

	_, err := s.cron.AddFunc(cronExpression, func() {
		logrus.Info("[Scheduler] Starting scheduled tracking run")
		if err := s.run(); err != nil {
			logrus.Errorf("[Scheduler] Scheduled tracking run failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("[Scheduler] Started with %s schedule", s.schedule)
	return nil
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("[Scheduler] Stopped")
	}
}
