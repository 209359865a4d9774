package leave

import (
	"context"
	"time"
)

// LeaveOverlay is the read-only lookup this engine consumes. The backing
// store is owned by the leave subsystem.
type LeaveOverlay interface {
	// ApprovedLeavesOverlapping returns approved leaves for a user whose
	// dates intersect [start, end].
	ApprovedLeavesOverlapping(ctx context.Context, userID string, start, end time.Time) ([]Leave, error)
}
