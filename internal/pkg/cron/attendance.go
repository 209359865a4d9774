package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/pkg/clock"
)

// AttendanceJobs owns the scheduled attendance maintenance work.
type AttendanceJobs struct {
	attendanceSvc    attendance.AttendanceService
	clock            clock.Clock
	autoCheckoutHour int
}

func NewAttendanceJobs(attendanceSvc attendance.AttendanceService, clk clock.Clock, autoCheckoutHour int) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceSvc:    attendanceSvc,
		clock:            clk,
		autoCheckoutHour: autoCheckoutHour,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_checkout_forgotten", 1*time.Hour, j.AutoCheckoutForgotten)
}

// AutoCheckoutForgotten closes every still-open record for the current day.
// The job ticks hourly but only acts during the configured local hour, so a
// restart mid-day cannot trigger an early sweep. The sweep itself is
// idempotent.
func (j *AttendanceJobs) AutoCheckoutForgotten(ctx context.Context) error {
	now := j.clock.Now()
	if now.Hour() != j.autoCheckoutHour {
		return nil
	}

	slog.Info("Cron: Starting auto-checkout forgotten job")

	result, err := j.attendanceSvc.AutoCheckoutForgotten(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to sweep forgotten checkouts: %w", err)
	}

	slog.Info("Cron: Auto-checkout forgotten completed",
		"date", result.Date,
		"swept", result.Swept,
		"skipped", result.Skipped)
	return nil
}
