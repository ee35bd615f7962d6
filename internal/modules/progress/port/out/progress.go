package out

import (
	"context"
	"time"

	"fitx/internal/modules/progress/domain"
)

// HistorySource returns the user's events with timestamps in [from, to].
type HistorySource interface {
	Events(ctx context.Context, userID string, from, to time.Time) ([]domain.Workout, []domain.Meal, error)
}

type Report struct {
	ID       string
	Summary  domain.Summary
	Markdown string
}

type ReportStore interface {
	Save(ctx context.Context, report Report) (string, error)
}

// InsightProvider supplies extra insight strings; failures of individual
// providers are absorbed by the implementation.
type InsightProvider interface {
	Insights(ctx context.Context, summary domain.Summary) []string
}
