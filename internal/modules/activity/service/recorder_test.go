package service_test

import (
	"errors"
	"testing"
	"time"

	"fitx/internal/modules/activity/service"
	"fitx/internal/platform/clock"
	apperrors "fitx/internal/platform/errors"
)

type stepClock struct {
	values []time.Time
	idx    int
}

func (c *stepClock) Now() time.Time {
	if c.idx >= len(c.values) {
		return c.values[len(c.values)-1]
	}
	v := c.values[c.idx]
	c.idx++
	return v
}

func TestRecordWorkoutNeverFailsOnNonPositiveDuration(t *testing.T) {
	t.Parallel()
	rec := service.NewRecorder(clock.Fixed{At: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)})
	for _, duration := range []int{0, -10} {
		event := rec.RecordWorkout("u1", "cardio", duration, "high", 250)
		if event.CaloriesPerMinute != 0 {
			t.Fatalf("duration %d: expected 0 kcal/min, got %v", duration, event.CaloriesPerMinute)
		}
	}
}

func TestIdenticalArgumentsDifferOnlyInTimestamp(t *testing.T) {
	t.Parallel()
	first := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	clk := &stepClock{values: []time.Time{first, first.Add(3 * time.Hour), first.Add(5 * time.Hour), first.Add(6 * time.Hour)}}
	rec := service.NewRecorder(clk)

	a := rec.RecordWorkout("u1", "rowing", 40, "very_high", 420)
	b := rec.RecordWorkout("u1", "rowing", 40, "very_high", 420)
	if a.Timestamp.Equal(b.Timestamp) {
		t.Fatalf("expected different timestamps")
	}
	b.Timestamp = a.Timestamp
	if a != b {
		t.Fatalf("workout records differ beyond timestamp: %+v vs %+v", a, b)
	}

	m1 := rec.RecordMeal("u1", "dinner", []string{"salmon", "rice"}, 650)
	m2 := rec.RecordMeal("u1", "dinner", []string{"salmon", "rice"}, 650)
	if m1.Timestamp.Equal(m2.Timestamp) {
		t.Fatalf("expected different meal timestamps")
	}
	if m1.MealType != m2.MealType || m1.Size != m2.Size || m1.ItemCount != m2.ItemCount || m1.Message != m2.Message || m1.CaloriesTotal != m2.CaloriesTotal {
		t.Fatalf("meal derived fields differ: %+v vs %+v", m1, m2)
	}
}

func TestLastDays(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	rec := service.NewRecorder(clock.Fixed{At: now})
	w, err := rec.LastDays(7)
	if err != nil {
		t.Fatalf("last days: %v", err)
	}
	if !w.To.Equal(now) || !w.From.Equal(now.Add(-7*24*time.Hour)) {
		t.Fatalf("unexpected window %+v", w)
	}
	for _, days := range []int{0, -3, service.MaxWindowDays + 1} {
		if _, err := rec.LastDays(days); !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Fatalf("days=%d: expected invalid argument, got %v", days, err)
		}
	}
}
