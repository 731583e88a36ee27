package scheduler_test

import (
	"testing"

	"github.com/ido-cryptoson/geo-platform/internal/scheduler"
)

func TestServiceStartStop(t *testing.T) {
	// Every schedule keyword, including an unknown one, maps to a valid cron
	// expression so Start never fails on configuration
	for _, schedule := range []string{"daily", "weekly", "whenever"} {
		t.Run(schedule, func(t *testing.T) {
			service := scheduler.NewService(schedule, func() error { return nil })
			if err := service.Start(); err != nil {
				t.Fatalf("Start() error = %v", err)
			}
			service.Stop()
		})
	}
}
