package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"fitx/internal/modules/progress/domain"
	progressout "fitx/internal/modules/progress/port/out"
	"fitx/internal/platform/clock"
	apperrors "fitx/internal/platform/errors"
	"fitx/internal/platform/id"
	"fitx/internal/platform/logging"
)

const MaxWindowDays = 3650

type Summarizer struct {
	clock    clock.Clock
	idGen    id.Generator
	history  progressout.HistorySource
	insights progressout.InsightProvider
	reports  progressout.ReportStore
	logger   hclog.Logger
}

// NewSummarizer accepts nil insights and reports; without a report store
// ExportReport is unavailable.
func NewSummarizer(clock clock.Clock, idGen id.Generator, history progressout.HistorySource, insights progressout.InsightProvider, reports progressout.ReportStore, logger hclog.Logger) *Summarizer {
	return &Summarizer{clock: clock, idGen: idGen, history: history, insights: insights, reports: reports, logger: logging.OrDiscard(logger)}
}

func (s *Summarizer) Summarize(ctx context.Context, userID string, windowDays int) (domain.Summary, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Summary{}, fmt.Errorf("%w: user id is required", apperrors.ErrInvalidArgument)
	}
	if windowDays <= 0 || windowDays > MaxWindowDays {
		return domain.Summary{}, fmt.Errorf("%w: window days must be within 1..%d, got %d", apperrors.ErrInvalidArgument, MaxWindowDays, windowDays)
	}
	now := s.clock.Now()
	from := now.Add(-time.Duration(windowDays) * 24 * time.Hour)
	workouts, meals, err := s.history.Events(ctx, userID, from, now)
	if err != nil {
		return domain.Summary{}, err
	}
	summary := domain.Summarize(userID, now, windowDays, workouts, meals)
	if s.insights != nil {
		summary = summary.WithPluginInsights(s.insights.Insights(ctx, summary))
	}
	s.logger.Debug("summary computed", "user", userID, "days", windowDays, "workouts", summary.Workouts.Completed, "consistency", summary.Consistency.Percent)
	return summary, nil
}

func (s *Summarizer) Report(ctx context.Context, userID string, windowDays int) (domain.Summary, string, error) {
	summary, err := s.Summarize(ctx, userID, windowDays)
	if err != nil {
		return domain.Summary{}, "", err
	}
	return summary, RenderMarkdown(summary), nil
}

func (s *Summarizer) ExportReport(ctx context.Context, userID string, windowDays int) (progressout.Report, string, error) {
	if s.reports == nil {
		return progressout.Report{}, "", fmt.Errorf("report store is not configured")
	}
	summary, markdown, err := s.Report(ctx, userID, windowDays)
	if err != nil {
		return progressout.Report{}, "", err
	}
	report := progressout.Report{ID: s.idGen.New(), Summary: summary, Markdown: markdown}
	path, err := s.reports.Save(ctx, report)
	if err != nil {
		return progressout.Report{}, "", err
	}
	s.logger.Info("report written", "user", userID, "days", windowDays, "id", report.ID, "path", path)
	return report, path, nil
}
