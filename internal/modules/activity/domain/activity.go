package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

const SchemaVersion = 1

type Intensity string

const (
	IntensityLow      Intensity = "low"
	IntensityModerate Intensity = "moderate"
	IntensityHigh     Intensity = "high"
	IntensityVeryHigh Intensity = "very_high"
)

// ParseIntensity never fails: unknown values fall back to moderate.
func ParseIntensity(raw string) Intensity {
	switch v := Intensity(strings.ToLower(strings.TrimSpace(raw))); v {
	case IntensityLow, IntensityModerate, IntensityHigh, IntensityVeryHigh:
		return v
	default:
		return IntensityModerate
	}
}

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// ParseMealType never fails: unknown values fall back to snack.
func ParseMealType(raw string) MealType {
	switch v := MealType(strings.ToLower(strings.TrimSpace(raw))); v {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return v
	default:
		return MealSnack
	}
}

type MealSize string

const (
	MealSizeLight       MealSize = "light"
	MealSizeModerate    MealSize = "moderate"
	MealSizeSubstantial MealSize = "substantial"
	MealSizeLarge       MealSize = "large"
)

// SizeForCalories buckets with exclusive upper bounds: 200 is moderate, 800 is large.
func SizeForCalories(calories int) MealSize {
	switch {
	case calories < 200:
		return MealSizeLight
	case calories < 500:
		return MealSizeModerate
	case calories < 800:
		return MealSizeSubstantial
	default:
		return MealSizeLarge
	}
}

const TrackingNote = "Great job tracking! Consistency is key to reaching your goals."

type WorkoutEvent struct {
	UserID            string    `json:"user_id"`
	Timestamp         time.Time `json:"timestamp"`
	Exercise          string    `json:"exercise"`
	DurationMinutes   int       `json:"duration_minutes"`
	Intensity         Intensity `json:"intensity"`
	CaloriesBurned    int       `json:"calories_burned"`
	CaloriesPerMinute float64   `json:"calories_per_minute"`
	Message           string    `json:"message"`
}

// NewWorkoutEvent normalizes intensity and derives the per-event metrics.
func NewWorkoutEvent(userID string, at time.Time, exercise string, durationMinutes int, intensity string, caloriesBurned int) WorkoutEvent {
	level := ParseIntensity(intensity)
	exercise = strings.TrimSpace(exercise)
	return WorkoutEvent{
		UserID:            userID,
		Timestamp:         at,
		Exercise:          exercise,
		DurationMinutes:   durationMinutes,
		Intensity:         level,
		CaloriesBurned:    caloriesBurned,
		CaloriesPerMinute: CaloriesPerMinute(caloriesBurned, durationMinutes),
		Message:           WorkoutMessage(level, exercise, durationMinutes),
	}
}

// CaloriesPerMinute is rounded to one decimal; non-positive durations yield 0.
func CaloriesPerMinute(calories, durationMinutes int) float64 {
	if durationMinutes <= 0 {
		return 0
	}
	return math.Round(float64(calories)/float64(durationMinutes)*10) / 10
}

func WorkoutMessage(level Intensity, exercise string, durationMinutes int) string {
	switch level {
	case IntensityLow:
		return fmt.Sprintf("Nice work on your %s session! Recovery and active rest are important too.", exercise)
	case IntensityHigh:
		return fmt.Sprintf("Excellent effort! That was an intense %d-minute %s session.", durationMinutes, exercise)
	case IntensityVeryHigh:
		return fmt.Sprintf("🔥 Incredible! %d minutes of very high intensity %s - you crushed it!", durationMinutes, exercise)
	default:
		return fmt.Sprintf("Solid workout! %d minutes of %s - you're building great habits.", durationMinutes, exercise)
	}
}

type MealEvent struct {
	UserID        string    `json:"user_id"`
	Timestamp     time.Time `json:"timestamp"`
	MealType      MealType  `json:"meal_type"`
	Items         []string  `json:"items"`
	ItemCount     int       `json:"item_count"`
	CaloriesTotal int       `json:"calories_total"`
	Size          MealSize  `json:"meal_size"`
	Message       string    `json:"message"`
}

func NewMealEvent(userID string, at time.Time, mealType string, items []string, caloriesTotal int) MealEvent {
	kind := ParseMealType(mealType)
	cleaned := append([]string{}, items...)
	return MealEvent{
		UserID:        userID,
		Timestamp:     at,
		MealType:      kind,
		Items:         cleaned,
		ItemCount:     len(cleaned),
		CaloriesTotal: caloriesTotal,
		Size:          SizeForCalories(caloriesTotal),
		Message:       MealMessage(kind, len(cleaned)),
	}
}

func MealMessage(kind MealType, itemCount int) string {
	switch kind {
	case MealBreakfast:
		return fmt.Sprintf("Breakfast logged! Starting the day with %d nutritious items.", itemCount)
	case MealLunch:
		return fmt.Sprintf("Lunch tracked! %d items providing midday fuel.", itemCount)
	case MealDinner:
		return fmt.Sprintf("Dinner logged! Ending the day with %d healthy choices.", itemCount)
	default:
		return fmt.Sprintf("Snack logged! %d items for sustained energy.", itemCount)
	}
}

// History is a read-only snapshot of one user's events inside a window.
type History struct {
	UserID   string
	From     time.Time
	To       time.Time
	Workouts []WorkoutEvent
	Meals    []MealEvent
}

// Sort orders events by timestamp, keeping append order for ties.
func (h *History) Sort() {
	sort.SliceStable(h.Workouts, func(i, j int) bool { return h.Workouts[i].Timestamp.Before(h.Workouts[j].Timestamp) })
	sort.SliceStable(h.Meals, func(i, j int) bool { return h.Meals[i].Timestamp.Before(h.Meals[j].Timestamp) })
}

// Window is an inclusive time range.
type Window struct {
	From time.Time
	To   time.Time
}

func (w Window) Validate() error {
	if w.From.IsZero() || w.To.IsZero() {
		return fmt.Errorf("window bounds are required")
	}
	if w.To.Before(w.From) {
		return fmt.Errorf("window end precedes start")
	}
	return nil
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}
