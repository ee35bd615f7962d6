package in

import (
	"context"

	"fitx/internal/modules/activity/dto"
)

type Usecase interface {
	LogWorkout(ctx context.Context, input dto.LogWorkoutInput) (dto.WorkoutOutput, error)
	LogMeal(ctx context.Context, input dto.LogMealInput) (dto.MealOutput, error)
	History(ctx context.Context, input dto.HistoryInput) (dto.HistoryOutput, error)
	Recent(ctx context.Context, input dto.RecentInput) (dto.HistoryOutput, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
