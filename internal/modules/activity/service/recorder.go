package service

import (
	"fmt"
	"strings"
	"time"

	"fitx/internal/modules/activity/domain"
	"fitx/internal/platform/clock"
	apperrors "fitx/internal/platform/errors"
)

// MaxWindowDays bounds lookback windows so day arithmetic cannot overflow.
const MaxWindowDays = 3650

// Recorder builds immutable event records. It performs no I/O and never fails
// on malformed activity input; only the timestamp depends on the clock.
type Recorder struct {
	clock clock.Clock
}

func NewRecorder(clock clock.Clock) *Recorder {
	return &Recorder{clock: clock}
}

func (r *Recorder) RecordWorkout(userID, exercise string, durationMinutes int, intensity string, calories int) domain.WorkoutEvent {
	return domain.NewWorkoutEvent(userID, r.clock.Now(), exercise, durationMinutes, intensity, calories)
}

func (r *Recorder) RecordMeal(userID, mealType string, items []string, calories int) domain.MealEvent {
	return domain.NewMealEvent(userID, r.clock.Now(), mealType, items, calories)
}

// LastDays returns the inclusive window [now - days, now].
func (r *Recorder) LastDays(days int) (domain.Window, error) {
	if days <= 0 || days > MaxWindowDays {
		return domain.Window{}, fmt.Errorf("%w: window days must be within 1..%d, got %d", apperrors.ErrInvalidArgument, MaxWindowDays, days)
	}
	now := r.clock.Now()
	return domain.Window{From: now.Add(-time.Duration(days) * 24 * time.Hour), To: now}, nil
}

func RequireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", apperrors.ErrInvalidArgument)
	}
	return nil
}
