package usecase

import (
	"context"
	"fmt"
	"strings"

	hclog "github.com/hashicorp/go-hclog"

	"fitx/internal/modules/activity/domain"
	activitydto "fitx/internal/modules/activity/dto"
	activityin "fitx/internal/modules/activity/port/in"
	activityout "fitx/internal/modules/activity/port/out"
	"fitx/internal/modules/activity/service"
	apperrors "fitx/internal/platform/errors"
	"fitx/internal/platform/logging"
	"fitx/internal/platform/retry"
)

const (
	statusCompleted = "completed"
	statusLogged    = "logged"
)

type Interactor struct {
	svc      *service.Recorder
	store    activityout.EventStore
	workbook activityout.WorkbookWriter
	retry    retry.Policy
	logger   hclog.Logger
}

func NewInteractor(svc *service.Recorder, store activityout.EventStore, workbook activityout.WorkbookWriter, policy retry.Policy, logger hclog.Logger) activityin.Usecase {
	return &Interactor{svc: svc, store: store, workbook: workbook, retry: policy, logger: logging.OrDiscard(logger)}
}

func (i *Interactor) LogWorkout(ctx context.Context, input activitydto.LogWorkoutInput) (activitydto.WorkoutOutput, error) {
	if err := service.RequireUser(input.UserID); err != nil {
		return activitydto.WorkoutOutput{}, err
	}
	event := i.svc.RecordWorkout(input.UserID, input.Exercise, input.DurationMinutes, input.Intensity, input.Calories)
	if err := i.retry.Do(ctx, i.logger, "append_workout", func(ctx context.Context) error {
		return i.store.AppendWorkout(ctx, event)
	}); err != nil {
		i.logger.Error("workout not persisted", "user", event.UserID, "error", err)
		return activitydto.WorkoutOutput{}, err
	}
	i.logger.Debug("workout logged", "user", event.UserID, "exercise", event.Exercise, "intensity", event.Intensity)
	return workoutOutput(event), nil
}

func (i *Interactor) LogMeal(ctx context.Context, input activitydto.LogMealInput) (activitydto.MealOutput, error) {
	if err := service.RequireUser(input.UserID); err != nil {
		return activitydto.MealOutput{}, err
	}
	event := i.svc.RecordMeal(input.UserID, input.MealType, input.FoodItems, input.Calories)
	if err := i.retry.Do(ctx, i.logger, "append_meal", func(ctx context.Context) error {
		return i.store.AppendMeal(ctx, event)
	}); err != nil {
		i.logger.Error("meal not persisted", "user", event.UserID, "error", err)
		return activitydto.MealOutput{}, err
	}
	i.logger.Debug("meal logged", "user", event.UserID, "meal_type", event.MealType, "size", event.Size)
	return mealOutput(event), nil
}

func (i *Interactor) History(ctx context.Context, input activitydto.HistoryInput) (activitydto.HistoryOutput, error) {
	if err := service.RequireUser(input.UserID); err != nil {
		return activitydto.HistoryOutput{}, err
	}
	window := domain.Window{From: input.From, To: input.To}
	if err := window.Validate(); err != nil {
		return activitydto.HistoryOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err)
	}
	history, err := i.window(ctx, input.UserID, window)
	if err != nil {
		return activitydto.HistoryOutput{}, err
	}
	return historyOutput(history), nil
}

// Recent returns the history for the trailing WindowDays days.
func (i *Interactor) Recent(ctx context.Context, input activitydto.RecentInput) (activitydto.HistoryOutput, error) {
	if err := service.RequireUser(input.UserID); err != nil {
		return activitydto.HistoryOutput{}, err
	}
	window, err := i.svc.LastDays(input.WindowDays)
	if err != nil {
		return activitydto.HistoryOutput{}, err
	}
	history, err := i.window(ctx, input.UserID, window)
	if err != nil {
		return activitydto.HistoryOutput{}, err
	}
	return historyOutput(history), nil
}

func (i *Interactor) Export(ctx context.Context, input activitydto.ExportInput) (activitydto.ExportOutput, error) {
	if err := service.RequireUser(input.UserID); err != nil {
		return activitydto.ExportOutput{}, err
	}
	if strings.TrimSpace(input.Path) == "" {
		return activitydto.ExportOutput{}, fmt.Errorf("%w: export path is required", apperrors.ErrInvalidArgument)
	}
	if i.workbook == nil {
		return activitydto.ExportOutput{}, fmt.Errorf("workbook export is not configured")
	}
	window, err := i.svc.LastDays(input.WindowDays)
	if err != nil {
		return activitydto.ExportOutput{}, err
	}
	history, err := i.window(ctx, input.UserID, window)
	if err != nil {
		return activitydto.ExportOutput{}, err
	}
	if err := i.workbook.Write(ctx, input.Path, history); err != nil {
		return activitydto.ExportOutput{}, err
	}
	i.logger.Info("history exported", "user", input.UserID, "path", input.Path, "workouts", len(history.Workouts), "meals", len(history.Meals))
	return activitydto.ExportOutput{Path: input.Path, Workouts: len(history.Workouts), Meals: len(history.Meals)}, nil
}

func (i *Interactor) window(ctx context.Context, userID string, window domain.Window) (domain.History, error) {
	var history domain.History
	err := i.retry.Do(ctx, i.logger, "read_window", func(ctx context.Context) error {
		var err error
		history, err = i.store.Window(ctx, userID, window)
		return err
	})
	if err != nil {
		return domain.History{}, err
	}
	history.Sort()
	return history, nil
}

func workoutOutput(e domain.WorkoutEvent) activitydto.WorkoutOutput {
	return activitydto.WorkoutOutput{
		UserID:            e.UserID,
		Timestamp:         e.Timestamp,
		Exercise:          e.Exercise,
		DurationMinutes:   e.DurationMinutes,
		Intensity:         string(e.Intensity),
		EstimatedCalories: e.CaloriesBurned,
		Status:            statusCompleted,
		Message:           e.Message,
		CaloriesPerMinute: e.CaloriesPerMinute,
		Stats: activitydto.WorkoutStats{
			CaloriesPerMinute: e.CaloriesPerMinute,
			TotalActiveTime:   e.DurationMinutes,
			IntensityLevel:    string(e.Intensity),
		},
	}
}

func mealOutput(e domain.MealEvent) activitydto.MealOutput {
	return activitydto.MealOutput{
		UserID:            e.UserID,
		Timestamp:         e.Timestamp,
		MealType:          string(e.MealType),
		Items:             append([]string{}, e.Items...),
		ItemCount:         e.ItemCount,
		EstimatedCalories: e.CaloriesTotal,
		MealSize:          string(e.Size),
		Status:            statusLogged,
		Message:           e.Message,
		TrackingNote:      domain.TrackingNote,
	}
}

func historyOutput(h domain.History) activitydto.HistoryOutput {
	out := activitydto.HistoryOutput{
		UserID:   h.UserID,
		From:     h.From,
		To:       h.To,
		Workouts: make([]activitydto.WorkoutOutput, 0, len(h.Workouts)),
		Meals:    make([]activitydto.MealOutput, 0, len(h.Meals)),
	}
	for _, w := range h.Workouts {
		out.Workouts = append(out.Workouts, workoutOutput(w))
	}
	for _, m := range h.Meals {
		out.Meals = append(out.Meals, mealOutput(m))
	}
	return out
}
