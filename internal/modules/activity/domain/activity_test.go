package domain_test

import (
	"testing"
	"time"

	"fitx/internal/modules/activity/domain"
)

func TestParseIntensityFallsBackToModerate(t *testing.T) {
	t.Parallel()
	cases := map[string]domain.Intensity{
		"low":       domain.IntensityLow,
		" HIGH ":    domain.IntensityHigh,
		"Very_High": domain.IntensityVeryHigh,
		"moderate":  domain.IntensityModerate,
		"extreme":   domain.IntensityModerate,
		"":          domain.IntensityModerate,
		"very high": domain.IntensityModerate,
	}
	for raw, want := range cases {
		if got := domain.ParseIntensity(raw); got != want {
			t.Fatalf("ParseIntensity(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestParseMealTypeFallsBackToSnack(t *testing.T) {
	t.Parallel()
	cases := map[string]domain.MealType{
		"breakfast": domain.MealBreakfast,
		"LUNCH":     domain.MealLunch,
		"dinner ":   domain.MealDinner,
		"brunch":    domain.MealSnack,
		"":          domain.MealSnack,
	}
	for raw, want := range cases {
		if got := domain.ParseMealType(raw); got != want {
			t.Fatalf("ParseMealType(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestSizeForCaloriesBoundaries(t *testing.T) {
	t.Parallel()
	cases := []struct {
		calories int
		want     domain.MealSize
	}{
		{0, domain.MealSizeLight},
		{199, domain.MealSizeLight},
		{200, domain.MealSizeModerate},
		{499, domain.MealSizeModerate},
		{500, domain.MealSizeSubstantial},
		{799, domain.MealSizeSubstantial},
		{800, domain.MealSizeLarge},
		{2500, domain.MealSizeLarge},
	}
	for _, tc := range cases {
		if got := domain.SizeForCalories(tc.calories); got != tc.want {
			t.Fatalf("SizeForCalories(%d) = %s, want %s", tc.calories, got, tc.want)
		}
	}
}

func TestCaloriesPerMinute(t *testing.T) {
	t.Parallel()
	if got := domain.CaloriesPerMinute(350, 45); got != 7.8 {
		t.Fatalf("expected 7.8, got %v", got)
	}
	for _, duration := range []int{0, -1, -45} {
		if got := domain.CaloriesPerMinute(350, duration); got != 0 {
			t.Fatalf("duration %d should yield 0, got %v", duration, got)
		}
	}
}

func TestNewWorkoutEventSelectsTemplateByNormalizedIntensity(t *testing.T) {
	t.Parallel()
	at := time.Date(2026, 10, 14, 7, 30, 0, 0, time.UTC)
	event := domain.NewWorkoutEvent("u1", at, "cardio", 30, "sprint", 300)
	if event.Intensity != domain.IntensityModerate {
		t.Fatalf("expected moderate fallback, got %s", event.Intensity)
	}
	if event.Message != "Solid workout! 30 minutes of cardio - you're building great habits." {
		t.Fatalf("unexpected moderate message: %s", event.Message)
	}
	if event.CaloriesPerMinute != 10 {
		t.Fatalf("expected 10 kcal/min, got %v", event.CaloriesPerMinute)
	}

	high := domain.NewWorkoutEvent("u1", at, "strength training", 45, "HIGH", 350)
	if high.Message != "Excellent effort! That was an intense 45-minute strength training session." {
		t.Fatalf("unexpected high message: %s", high.Message)
	}
	low := domain.NewWorkoutEvent("u1", at, "yoga", 20, "low", 80)
	if low.Message != "Nice work on your yoga session! Recovery and active rest are important too." {
		t.Fatalf("unexpected low message: %s", low.Message)
	}
	peak := domain.NewWorkoutEvent("u1", at, "hiit", 25, "very_high", 400)
	if peak.Message != "🔥 Incredible! 25 minutes of very high intensity hiit - you crushed it!" {
		t.Fatalf("unexpected very high message: %s", peak.Message)
	}
}

func TestNewMealEventCopiesItems(t *testing.T) {
	t.Parallel()
	items := []string{"eggs", "toast", "avocado"}
	event := domain.NewMealEvent("u1", time.Now().UTC(), "Breakfast", items, 450)
	items[0] = "changed"
	if event.Items[0] != "eggs" {
		t.Fatalf("meal items must not alias caller slice")
	}
	if event.ItemCount != 3 || event.Size != domain.MealSizeModerate || event.MealType != domain.MealBreakfast {
		t.Fatalf("unexpected meal event %+v", event)
	}
	if event.Message != "Breakfast logged! Starting the day with 3 nutritious items." {
		t.Fatalf("unexpected message %s", event.Message)
	}
}

func TestWindowContainsAndValidate(t *testing.T) {
	t.Parallel()
	from := time.Date(2026, 10, 7, 0, 0, 0, 0, time.UTC)
	to := from.Add(7 * 24 * time.Hour)
	w := domain.Window{From: from, To: to}
	if err := w.Validate(); err != nil {
		t.Fatalf("window should validate: %v", err)
	}
	if !w.Contains(from) || !w.Contains(to) {
		t.Fatalf("window bounds are inclusive")
	}
	if w.Contains(to.Add(time.Nanosecond)) || w.Contains(from.Add(-time.Nanosecond)) {
		t.Fatalf("window must exclude points outside bounds")
	}
	if err := (domain.Window{From: to, To: from}).Validate(); err == nil {
		t.Fatalf("inverted window should fail")
	}
}
