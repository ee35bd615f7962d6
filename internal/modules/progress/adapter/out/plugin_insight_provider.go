package out

import (
	"context"

	hclog "github.com/hashicorp/go-hclog"

	plugindto "fitx/internal/modules/plugin/dto"
	pluginin "fitx/internal/modules/plugin/port/in"
	"fitx/internal/modules/progress/domain"
	progressout "fitx/internal/modules/progress/port/out"
	"fitx/internal/platform/logging"
)

type PluginInsightProvider struct {
	plugins pluginin.Usecase
	logger  hclog.Logger
}

func NewPluginInsightProvider(plugins pluginin.Usecase, logger hclog.Logger) progressout.InsightProvider {
	return &PluginInsightProvider{plugins: plugins, logger: logging.OrDiscard(logger)}
}

// Insights never fails the summary: a broken plugin setup yields no lines.
func (p *PluginInsightProvider) Insights(ctx context.Context, s domain.Summary) []string {
	out, err := p.plugins.CollectInsights(ctx, plugindto.InsightsInput{
		UserID:              s.UserID,
		Period:              s.Period,
		WindowDays:          s.WindowDays,
		WorkoutsCompleted:   s.Workouts.Completed,
		TargetWorkouts:      s.Workouts.Target,
		TotalActiveMinutes:  s.Workouts.TotalActiveMinutes,
		TotalCaloriesBurned: s.Workouts.TotalCaloriesBurned,
		CaloriesConsumed:    s.Nutrition.CaloriesConsumed,
		ConsistencyPercent:  s.Consistency.Percent,
		Rating:              s.Consistency.Rating,
	})
	if err != nil {
		p.logger.Warn("plugin insights unavailable", "user", s.UserID, "error", err)
		return nil
	}
	return out.Insights
}
