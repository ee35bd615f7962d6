package out

import (
	"context"
	"time"

	activitydto "fitx/internal/modules/activity/dto"
	activityin "fitx/internal/modules/activity/port/in"
	"fitx/internal/modules/progress/domain"
	progressout "fitx/internal/modules/progress/port/out"
)

// ActivityHistorySource reads events through the activity module's usecase.
type ActivityHistorySource struct {
	activity activityin.Usecase
}

func NewActivityHistorySource(activity activityin.Usecase) progressout.HistorySource {
	return &ActivityHistorySource{activity: activity}
}

func (s *ActivityHistorySource) Events(ctx context.Context, userID string, from, to time.Time) ([]domain.Workout, []domain.Meal, error) {
	history, err := s.activity.History(ctx, activitydto.HistoryInput{UserID: userID, From: from, To: to})
	if err != nil {
		return nil, nil, err
	}
	workouts := make([]domain.Workout, 0, len(history.Workouts))
	for _, w := range history.Workouts {
		workouts = append(workouts, domain.Workout{
			At:              w.Timestamp,
			Exercise:        w.Exercise,
			DurationMinutes: w.DurationMinutes,
			Intensity:       w.Intensity,
			CaloriesBurned:  w.EstimatedCalories,
		})
	}
	meals := make([]domain.Meal, 0, len(history.Meals))
	for _, m := range history.Meals {
		meals = append(meals, domain.Meal{At: m.Timestamp, MealType: m.MealType, CaloriesTotal: m.EstimatedCalories})
	}
	return workouts, meals, nil
}
