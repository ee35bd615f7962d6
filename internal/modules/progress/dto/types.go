package dto

import "time"

type SummaryInput struct {
	UserID     string
	WindowDays int
}

type WorkoutStats struct {
	WorkoutsCompleted         int `json:"workouts_completed"`
	TargetWorkouts            int `json:"target_workouts"`
	TotalActiveMinutes        int `json:"total_active_minutes"`
	AverageWorkoutDuration    int `json:"average_workout_duration"`
	TotalCaloriesBurned       int `json:"total_calories_burned"`
	AverageCaloriesPerWorkout int `json:"average_calories_per_workout"`
}

type Consistency struct {
	Percentage       string `json:"percentage"`
	Percent          int    `json:"percent"`
	Rating           string `json:"rating"`
	WorkoutFrequency string `json:"workout_frequency"`
}

type GoalProgress struct {
	Percentage string `json:"percentage"`
	Percent    int    `json:"percent"`
	Status     string `json:"status"`
	Message    string `json:"message"`
}

type Nutrition struct {
	MealsLogged           int `json:"meals_logged"`
	CaloriesConsumed      int `json:"calories_consumed"`
	NetCalories           int `json:"net_calories"`
	AverageCaloriesPerDay int `json:"average_calories_per_day"`
}

type Milestone struct {
	Target      string `json:"target"`
	TargetCount int    `json:"target_count"`
	Current     int    `json:"current"`
	Remaining   int    `json:"remaining"`
	Message     string `json:"message"`
}

type SummaryOutput struct {
	UserID          string       `json:"user_id"`
	GeneratedAt     time.Time    `json:"generated_at"`
	Period          string       `json:"period"`
	DaysTracked     int          `json:"days_tracked"`
	WorkoutStats    WorkoutStats `json:"workout_stats"`
	Consistency     Consistency  `json:"consistency"`
	GoalProgress    GoalProgress `json:"goal_progress"`
	Nutrition       Nutrition    `json:"nutrition"`
	Insights        []string     `json:"insights"`
	Recommendations []string     `json:"recommendations"`
	NextMilestone   Milestone    `json:"next_milestone"`
	PluginInsights  []string     `json:"plugin_insights,omitempty"`
}

type ReportOutput struct {
	Summary  SummaryOutput `json:"summary"`
	Markdown string        `json:"markdown"`
}

type ExportReportOutput struct {
	ReportID string `json:"report_id"`
	Path     string `json:"path"`
	Summary  SummaryOutput
}
