package in

import (
	"context"
	"time"

	"fitx/internal/modules/activity/dto"
	activityin "fitx/internal/modules/activity/port/in"
)

type CLIHandler struct {
	usecase activityin.Usecase
	userID  string
}

func NewCLIHandler(usecase activityin.Usecase, userID string) CLIHandler {
	return CLIHandler{usecase: usecase, userID: userID}
}

// ForUser returns a copy of the handler bound to another user.
func (h CLIHandler) ForUser(userID string) CLIHandler {
	h.userID = userID
	return h
}

func (h CLIHandler) UserID() string {
	return h.userID
}

func (h CLIHandler) LogWorkout(ctx context.Context, exercise string, durationMinutes int, intensity string, calories int) (dto.WorkoutOutput, error) {
	return h.usecase.LogWorkout(ctx, dto.LogWorkoutInput{
		UserID:          h.userID,
		Exercise:        exercise,
		DurationMinutes: durationMinutes,
		Intensity:       intensity,
		Calories:        calories,
	})
}

func (h CLIHandler) LogMeal(ctx context.Context, mealType string, items []string, calories int) (dto.MealOutput, error) {
	return h.usecase.LogMeal(ctx, dto.LogMealInput{
		UserID:    h.userID,
		MealType:  mealType,
		FoodItems: items,
		Calories:  calories,
	})
}

func (h CLIHandler) History(ctx context.Context, from, to time.Time) (dto.HistoryOutput, error) {
	return h.usecase.History(ctx, dto.HistoryInput{UserID: h.userID, From: from, To: to})
}

func (h CLIHandler) Recent(ctx context.Context, windowDays int) (dto.HistoryOutput, error) {
	return h.usecase.Recent(ctx, dto.RecentInput{UserID: h.userID, WindowDays: windowDays})
}

func (h CLIHandler) Export(ctx context.Context, windowDays int, path string) (dto.ExportOutput, error) {
	return h.usecase.Export(ctx, dto.ExportInput{UserID: h.userID, WindowDays: windowDays, Path: path})
}
