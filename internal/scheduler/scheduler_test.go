package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	progressdto "fitx/internal/modules/progress/dto"
	"fitx/internal/scheduler"
)

type fakeReporter struct {
	mu    sync.Mutex
	calls []progressdto.SummaryInput
	err   error
}

func (f *fakeReporter) ExportReport(_ context.Context, in progressdto.SummaryInput) (progressdto.ExportReportOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, in)
	if f.err != nil {
		return progressdto.ExportReportOutput{}, f.err
	}
	return progressdto.ExportReportOutput{ReportID: "r", Path: "/tmp/r.md"}, nil
}

func TestRunOnceExportsForConfiguredUser(t *testing.T) {
	t.Parallel()
	rep := &fakeReporter{}
	s := scheduler.NewReportScheduler(rep, "ana", 7, nil)
	out, err := s.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("run once: %v", err)
	}
	if out.Path != "/tmp/r.md" || len(rep.calls) != 1 || rep.calls[0].UserID != "ana" || rep.calls[0].WindowDays != 7 {
		t.Fatalf("unexpected export: %+v %+v", out, rep.calls)
	}

	rep.err = errors.New("disk full")
	if _, err := s.RunOnce(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if s.Runs() != 2 {
		t.Fatalf("runs = %d", s.Runs())
	}
}

func TestScheduleRejectsBadSpec(t *testing.T) {
	t.Parallel()
	s := scheduler.NewReportScheduler(&fakeReporter{}, "ana", 7, nil)
	if err := s.Schedule(context.Background(), "not a schedule"); err == nil {
		t.Fatalf("expected spec error")
	}
	if err := s.Schedule(context.Background(), "@weekly"); err != nil {
		t.Fatalf("weekly: %v", err)
	}
}

func TestRunFiresScheduledJob(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for the cron tick")
	}
	t.Parallel()
	rep := &fakeReporter{}
	s := scheduler.NewReportScheduler(rep, "ana", 1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := s.Schedule(ctx, "@every 1s"); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for s.Runs() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}
	if s.Runs() == 0 {
		t.Fatalf("scheduled job never ran")
	}
}
