package dto

import "time"

type LogWorkoutInput struct {
	UserID          string
	Exercise        string
	DurationMinutes int
	Intensity       string
	Calories        int
}

type WorkoutStats struct {
	CaloriesPerMinute float64 `json:"calories_per_minute"`
	TotalActiveTime   int     `json:"total_active_time"`
	IntensityLevel    string  `json:"intensity_level"`
}

type WorkoutOutput struct {
	UserID            string       `json:"user_id"`
	Timestamp         time.Time    `json:"timestamp"`
	Exercise          string       `json:"exercise"`
	DurationMinutes   int          `json:"duration_minutes"`
	Intensity         string       `json:"intensity"`
	EstimatedCalories int          `json:"estimated_calories"`
	Status            string       `json:"status"`
	Message           string       `json:"message"`
	CaloriesPerMinute float64      `json:"calories_per_minute"`
	Stats             WorkoutStats `json:"stats"`
}

type LogMealInput struct {
	UserID    string
	MealType  string
	FoodItems []string
	Calories  int
}

type MealOutput struct {
	UserID            string    `json:"user_id"`
	Timestamp         time.Time `json:"timestamp"`
	MealType          string    `json:"meal_type"`
	Items             []string  `json:"items"`
	ItemCount         int       `json:"item_count"`
	EstimatedCalories int       `json:"estimated_calories"`
	MealSize          string    `json:"meal_size"`
	Status            string    `json:"status"`
	Message           string    `json:"message"`
	TrackingNote      string    `json:"tracking_note"`
}

type HistoryInput struct {
	UserID string
	From   time.Time
	To     time.Time
}

type RecentInput struct {
	UserID     string
	WindowDays int
}

type HistoryOutput struct {
	UserID   string          `json:"user_id"`
	From     time.Time       `json:"from"`
	To       time.Time       `json:"to"`
	Workouts []WorkoutOutput `json:"workouts"`
	Meals    []MealOutput    `json:"meals"`
}

type ExportInput struct {
	UserID     string
	WindowDays int
	Path       string
}

type ExportOutput struct {
	Path     string
	Workouts int
	Meals    int
}
