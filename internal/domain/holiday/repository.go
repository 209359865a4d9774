package holiday

import (
	"context"
	"time"
)

// HolidayOverlay is the read-only lookup this engine consumes.
type HolidayOverlay interface {
	// ActiveHolidaysOverlapping returns active holidays whose dates
	// intersect [start, end].
	ActiveHolidaysOverlapping(ctx context.Context, start, end time.Time) ([]Holiday, error)
}
