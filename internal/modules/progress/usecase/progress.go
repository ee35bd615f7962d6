package usecase

import (
	"context"
	"fmt"

	"fitx/internal/modules/progress/domain"
	progressdto "fitx/internal/modules/progress/dto"
	progressin "fitx/internal/modules/progress/port/in"
	"fitx/internal/modules/progress/service"
)

type Interactor struct {
	svc *service.Summarizer
}

func NewInteractor(svc *service.Summarizer) progressin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Summarize(ctx context.Context, input progressdto.SummaryInput) (progressdto.SummaryOutput, error) {
	summary, err := i.svc.Summarize(ctx, input.UserID, input.WindowDays)
	if err != nil {
		return progressdto.SummaryOutput{}, err
	}
	return SummaryOutput(summary), nil
}

func (i *Interactor) Report(ctx context.Context, input progressdto.SummaryInput) (progressdto.ReportOutput, error) {
	summary, markdown, err := i.svc.Report(ctx, input.UserID, input.WindowDays)
	if err != nil {
		return progressdto.ReportOutput{}, err
	}
	return progressdto.ReportOutput{Summary: SummaryOutput(summary), Markdown: markdown}, nil
}

func (i *Interactor) ExportReport(ctx context.Context, input progressdto.SummaryInput) (progressdto.ExportReportOutput, error) {
	report, path, err := i.svc.ExportReport(ctx, input.UserID, input.WindowDays)
	if err != nil {
		return progressdto.ExportReportOutput{}, err
	}
	return progressdto.ExportReportOutput{ReportID: report.ID, Path: path, Summary: SummaryOutput(report.Summary)}, nil
}

// SummaryOutput maps a summary to its JSON shape.
func SummaryOutput(s domain.Summary) progressdto.SummaryOutput {
	goal := s.Goal.Rounded()
	return progressdto.SummaryOutput{
		UserID:      s.UserID,
		GeneratedAt: s.GeneratedAt,
		Period:      s.Period,
		DaysTracked: s.WindowDays,
		WorkoutStats: progressdto.WorkoutStats{
			WorkoutsCompleted:         s.Workouts.Completed,
			TargetWorkouts:            s.Workouts.Target,
			TotalActiveMinutes:        s.Workouts.TotalActiveMinutes,
			AverageWorkoutDuration:    s.Workouts.AverageWorkoutDuration,
			TotalCaloriesBurned:       s.Workouts.TotalCaloriesBurned,
			AverageCaloriesPerWorkout: s.Workouts.AverageCaloriesPerWorkout,
		},
		Consistency: progressdto.Consistency{
			Percentage:       fmt.Sprintf("%d%%", s.Consistency.Percent),
			Percent:          s.Consistency.Percent,
			Rating:           s.Consistency.Rating,
			WorkoutFrequency: s.Consistency.Frequency,
		},
		GoalProgress: progressdto.GoalProgress{
			Percentage: fmt.Sprintf("%d%%", goal),
			Percent:    goal,
			Status:     s.Goal.Status,
			Message:    s.Goal.Message,
		},
		Nutrition: progressdto.Nutrition{
			MealsLogged:           s.Nutrition.MealsLogged,
			CaloriesConsumed:      s.Nutrition.CaloriesConsumed,
			NetCalories:           s.Nutrition.NetCalories,
			AverageCaloriesPerDay: s.Nutrition.AverageCaloriesPerDay,
		},
		Insights:        append([]string{}, s.Insights...),
		Recommendations: append([]string{}, s.Recommendations...),
		NextMilestone: progressdto.Milestone{
			Target:      s.Milestone.Label,
			TargetCount: s.Milestone.Target,
			Current:     s.Milestone.Current,
			Remaining:   s.Milestone.Remaining,
			Message:     s.Milestone.Message,
		},
		PluginInsights: s.PluginInsights,
	}
}
