package domain

import (
	"fmt"
	"math"
	"time"
)

const (
	MilestoneTarget = 10
	MilestoneLabel  = "10 consecutive workouts"
	GoalMessage     = "Keep going! You're making progress toward your fitness goals."

	workoutsPerWeek = 5
)

var Recommendations = []string{
	"Log all your workouts to track progress accurately",
	"Aim for at least 3-5 workouts per week",
	"Track your meals to optimize nutrition",
	"Increase intensity gradually for continued progress",
	"Celebrate small wins - consistency compounds!",
}

const (
	ReminderOverload = "Focus on progressive overload to continue seeing results."
	ReminderRecovery = "Don't forget recovery - rest days are when muscles grow!"
)

// Workout and Meal carry only what the aggregation reads.
type Workout struct {
	At              time.Time
	Exercise        string
	DurationMinutes int
	Intensity       string
	CaloriesBurned  int
}

type Meal struct {
	At            time.Time
	MealType      string
	CaloriesTotal int
}

type Tier int

const (
	TierNeedsImprovement Tier = iota
	TierFair
	TierGood
	TierExcellent
)

// TierFor is the single source of truth for both the rating label and the
// consistency insight.
func TierFor(consistencyPercent int) Tier {
	switch {
	case consistencyPercent >= 80:
		return TierExcellent
	case consistencyPercent >= 60:
		return TierGood
	case consistencyPercent >= 40:
		return TierFair
	default:
		return TierNeedsImprovement
	}
}

func (t Tier) Rating() string {
	switch t {
	case TierExcellent:
		return "Excellent"
	case TierGood:
		return "Good"
	case TierFair:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

func (t Tier) Insight() string {
	switch t {
	case TierExcellent:
		return "🎉 Outstanding consistency! You're crushing your goals."
	case TierGood:
		return "💪 Great consistency! Keep up the excellent work."
	case TierFair:
		return "👍 Good progress! Try to maintain regular workout schedule."
	default:
		return "📈 Room for improvement! Consistency is key - let's get back on track."
	}
}

type WorkoutStats struct {
	Completed                 int
	Target                    int
	TotalActiveMinutes        int
	AverageWorkoutDuration    int
	TotalCaloriesBurned       int
	AverageCaloriesPerWorkout int
}

type Consistency struct {
	Percent   int
	Rating    string
	Frequency string
}

type GoalProgress struct {
	Percent float64
	Status  string
	Message string
}

// Rounded is the display value; Status is derived from the unrounded Percent.
func (g GoalProgress) Rounded() int {
	return int(math.Round(g.Percent))
}

type Nutrition struct {
	MealsLogged           int
	CaloriesConsumed      int
	NetCalories           int
	AverageCaloriesPerDay int
}

type Milestone struct {
	Target    int
	Label     string
	Current   int
	Remaining int
	Message   string
}

type Summary struct {
	UserID          string
	GeneratedAt     time.Time
	WindowDays      int
	Period          string
	Workouts        WorkoutStats
	Consistency     Consistency
	Goal            GoalProgress
	Nutrition       Nutrition
	Insights        []string
	Recommendations []string
	Milestone       Milestone
	PluginInsights  []string
}

// TargetWorkouts scales the five-per-week cadence to the window length.
func TargetWorkouts(windowDays int) int {
	if windowDays <= 0 {
		return 0
	}
	return (workoutsPerWeek*windowDays + 6) / 7
}

// ConsistencyPercent clamps the percentage, not the ratio, to [0, 100].
func ConsistencyPercent(completed, target int) int {
	if target <= 0 {
		return 0
	}
	p := int(math.RoundToEven(100 * float64(completed) / float64(target)))
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

func GoalProgressFor(consistencyPercent int) GoalProgress {
	percent := math.Min(float64(consistencyPercent*4)/5, 100)
	status := "Needs attention"
	switch {
	case percent >= 60:
		status = "On track"
	case percent >= 40:
		status = "Behind schedule"
	}
	return GoalProgress{Percent: percent, Status: status, Message: GoalMessage}
}

func PeriodDescription(windowDays int) string {
	if windowDays == 1 {
		return "Today"
	}
	return fmt.Sprintf("Last %d days", windowDays)
}

func MilestoneFor(completed int) Milestone {
	remaining := MilestoneTarget - completed
	if remaining < 0 {
		remaining = 0
	}
	return Milestone{
		Target:    MilestoneTarget,
		Label:     MilestoneLabel,
		Current:   completed,
		Remaining: remaining,
		Message:   fmt.Sprintf("Only %d more workouts to hit your next milestone!", remaining),
	}
}

func Insights(tier Tier, completed, caloriesBurned, windowDays int) []string {
	out := []string{tier.Insight()}
	if completed > 0 {
		out = append(out, fmt.Sprintf("You burned an estimated %d calories through exercise.", caloriesBurned))
	}
	if windowDays >= 7 {
		out = append(out, ReminderOverload, ReminderRecovery)
	}
	return out
}

func divRound(num, den int) int {
	if den <= 0 {
		return 0
	}
	return int(math.RoundToEven(float64(num) / float64(den)))
}

// Summarize aggregates the window's events. It never fails; windowDays is
// validated by the caller.
func Summarize(userID string, now time.Time, windowDays int, workouts []Workout, meals []Meal) Summary {
	stats := WorkoutStats{Completed: len(workouts), Target: TargetWorkouts(windowDays)}
	for _, w := range workouts {
		stats.TotalActiveMinutes += w.DurationMinutes
		stats.TotalCaloriesBurned += w.CaloriesBurned
	}
	stats.AverageWorkoutDuration = divRound(stats.TotalActiveMinutes, stats.Completed)
	stats.AverageCaloriesPerWorkout = divRound(stats.TotalCaloriesBurned, stats.Completed)

	nutrition := Nutrition{MealsLogged: len(meals)}
	for _, m := range meals {
		nutrition.CaloriesConsumed += m.CaloriesTotal
	}
	nutrition.NetCalories = nutrition.CaloriesConsumed - stats.TotalCaloriesBurned
	nutrition.AverageCaloriesPerDay = divRound(nutrition.CaloriesConsumed, windowDays)

	percent := ConsistencyPercent(stats.Completed, stats.Target)
	tier := TierFor(percent)

	return Summary{
		UserID:      userID,
		GeneratedAt: now,
		WindowDays:  windowDays,
		Period:      PeriodDescription(windowDays),
		Workouts:    stats,
		Consistency: Consistency{
			Percent:   percent,
			Rating:    tier.Rating(),
			Frequency: fmt.Sprintf("%d workouts in %d days", stats.Completed, windowDays),
		},
		Goal:            GoalProgressFor(percent),
		Nutrition:       nutrition,
		Insights:        Insights(tier, stats.Completed, stats.TotalCaloriesBurned, windowDays),
		Recommendations: append([]string{}, Recommendations...),
		Milestone:       MilestoneFor(stats.Completed),
	}
}

// WithPluginInsights appends extra insights after the built-in ones.
func (s Summary) WithPluginInsights(extra []string) Summary {
	if len(extra) == 0 {
		return s
	}
	s.PluginInsights = append([]string{}, extra...)
	s.Insights = append(append([]string{}, s.Insights...), extra...)
	return s
}
