package attendance

import (
	"fmt"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/pkg/clock"
)

// TimeWindowGuard gates self-service check-in/out to an allowed local-hour
// window. Admin-driven operations never pass through it.
type TimeWindowGuard struct {
	startHour int // inclusive
	endHour   int // exclusive
	clock     clock.Clock
}

func NewTimeWindowGuard(startHour, endHour int, clk clock.Clock) *TimeWindowGuard {
	return &TimeWindowGuard{
		startHour: startHour,
		endHour:   endHour,
		clock:     clk,
	}
}

// Allowed reports whether now falls inside [startHour, endHour).
func (g *TimeWindowGuard) Allowed(now time.Time) bool {
	hour := now.Hour()
	return hour >= g.startHour && hour < g.endHour
}

// Check validates the current time against the window. The rejection embeds
// the local time and the action name so the caller can self-diagnose.
func (g *TimeWindowGuard) Check(action string) error {
	now := g.clock.Now()
	if g.Allowed(now) {
		return nil
	}
	return fmt.Errorf("%w: %s is only allowed between %02d:00 and %02d:00, current time is %s",
		attendance.ErrOutsideTimeWindow, action, g.startHour, g.endHour, now.Format("15:04:05"))
}
