package out

import (
	"context"

	"fitx/internal/modules/activity/domain"
)

// EventStore is an append-only log of events keyed by user and timestamp.
// Driver failures are reported wrapped in apperrors.ErrStorageUnavailable.
type EventStore interface {
	AppendWorkout(ctx context.Context, event domain.WorkoutEvent) error
	AppendMeal(ctx context.Context, event domain.MealEvent) error
	// Window returns a snapshot of userID's events in the inclusive window,
	// ordered by timestamp then append order.
	Window(ctx context.Context, userID string, window domain.Window) (domain.History, error)
	Close() error
}

type WorkbookWriter interface {
	Write(ctx context.Context, path string, history domain.History) error
}
