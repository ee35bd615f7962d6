package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/robfig/cron"

	progressdto "fitx/internal/modules/progress/dto"
	"fitx/internal/platform/logging"
)

const jobTimeout = time.Minute

// Reporter is satisfied by the progress usecase.
type Reporter interface {
	ExportReport(ctx context.Context, input progressdto.SummaryInput) (progressdto.ExportReportOutput, error)
}

// ReportScheduler writes a report note for one user on a cron schedule.
type ReportScheduler struct {
	reporter   Reporter
	userID     string
	windowDays int
	logger     hclog.Logger

	mu   sync.Mutex
	runs int
	cron *cron.Cron
}

func NewReportScheduler(reporter Reporter, userID string, windowDays int, logger hclog.Logger) *ReportScheduler {
	return &ReportScheduler{reporter: reporter, userID: userID, windowDays: windowDays, logger: logging.OrDiscard(logger), cron: cron.New()}
}

// Schedule registers the report job. spec accepts descriptors such as
// @weekly and six-field expressions with a leading seconds field.
func (s *ReportScheduler) Schedule(ctx context.Context, spec string) error {
	if err := s.cron.AddFunc(spec, func() { _, _ = s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("schedule report %q: %w", spec, err)
	}
	s.logger.Info("report scheduled", "spec", spec, "user", s.userID, "days", s.windowDays)
	return nil
}

func (s *ReportScheduler) RunOnce(ctx context.Context) (progressdto.ExportReportOutput, error) {
	if ctx.Err() != nil {
		return progressdto.ExportReportOutput{}, ctx.Err()
	}
	jobCtx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()
	out, err := s.reporter.ExportReport(jobCtx, progressdto.SummaryInput{UserID: s.userID, WindowDays: s.windowDays})
	s.mu.Lock()
	s.runs++
	s.mu.Unlock()
	if err != nil {
		s.logger.Error("scheduled report failed", "user", s.userID, "error", err)
		return progressdto.ExportReportOutput{}, err
	}
	s.logger.Info("scheduled report written", "user", s.userID, "path", out.Path)
	return out, nil
}

func (s *ReportScheduler) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

// Run starts the cron loop and blocks until ctx is cancelled.
func (s *ReportScheduler) Run(ctx context.Context) error {
	s.cron.Start()
	<-ctx.Done()
	s.cron.Stop()
	return nil
}
