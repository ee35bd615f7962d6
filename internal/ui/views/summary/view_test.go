package summary

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	progressdto "fitx/internal/modules/progress/dto"
)

type stubPort struct {
	out progressdto.ReportOutput
	err error
}

func (s stubPort) Report(context.Context, int) (progressdto.ReportOutput, error) {
	return s.out, s.err
}

func TestLoadStoresReport(t *testing.T) {
	t.Parallel()
	port := stubPort{out: progressdto.ReportOutput{
		Summary:  progressdto.SummaryOutput{UserID: "alice", Period: "Last 7 days"},
		Markdown: "# Progress report: Last 7 days\n",
	}}
	m := New(port, 7)
	if !m.Loading() {
		t.Fatalf("new view should start loading")
	}
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = m.Update(m.Fetch()())
	if m.Loading() {
		t.Fatalf("expected loading to finish")
	}
	if m.Report().Summary.UserID != "alice" {
		t.Fatalf("report not stored: %+v", m.Report())
	}
	if !strings.Contains(m.View(), "Summary") {
		t.Fatalf("header missing from view")
	}
}

func TestLoadErrorIsRendered(t *testing.T) {
	t.Parallel()
	m := New(stubPort{err: errors.New("storage unavailable")}, 7)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = m.Update(m.Fetch()())
	if m.Err() == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(m.View(), "storage unavailable") {
		t.Fatalf("error not rendered: %q", m.View())
	}
}

func TestNilPortReportsNotConfigured(t *testing.T) {
	t.Parallel()
	m := New(nil, 1)
	msg := m.Fetch()().(LoadedMsg)
	if msg.Err == nil || msg.Days != 1 {
		t.Fatalf("unexpected message %+v", msg)
	}
}
