package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	progressdto "fitx/internal/modules/progress/dto"
	"fitx/internal/ui/theme"
)

// Port is the slice of the progress use-case this view renders.
type Port interface {
	Report(ctx context.Context, windowDays int) (progressdto.ReportOutput, error)
}

// LoadedMsg carries a freshly generated report for Days.
type LoadedMsg struct {
	Days   int
	Report progressdto.ReportOutput
	Err    error
}

type Model struct {
	port     Port
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	report   progressdto.ReportOutput
	days     int
	err      error
	loading  bool
	width    int
	height   int
}

func New(port Port, days int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)

	return Model{
		port:     port,
		viewport: viewport.New(0, 0),
		spinner:  sp,
		renderer: r,
		days:     days,
		loading:  true,
	}
}

func (m Model) Init() tea.Cmd { return m.spinner.Tick }

// Load switches to a window of days and regenerates the report.
func (m *Model) Load(days int) tea.Cmd {
	m.days = days
	m.loading = true
	return m.Fetch()
}

// Fetch regenerates the report for the current window.
func (m Model) Fetch() tea.Cmd {
	port, days := m.port, m.days
	return func() tea.Msg {
		if port == nil {
			return LoadedMsg{Days: days, Err: fmt.Errorf("progress reporting is not configured")}
		}
		out, err := port.Report(context.Background(), days)
		return LoadedMsg{Days: days, Report: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.viewport.SetContent(m.renderContent())

	case LoadedMsg:
		// A late reply for a window the user already left is dropped.
		if msg.Days != m.days {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.report = msg.Report
		}
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var vCmd tea.Cmd
		m.viewport, vCmd = m.viewport.Update(msg)
		cmds = append(cmds, vCmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+fmt.Sprintf(" Summarizing the last %d days…", m.days))
	}
	header := m.renderHeader()
	body := theme.Pane.
		Width(max(m.width-2, 0)).
		Height(max(m.height-lipgloss.Height(header)-2, 0)).
		Render(m.viewport.View())
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func (m Model) Report() progressdto.ReportOutput { return m.report }

func (m Model) Err() error { return m.err }

func (m Model) Loading() bool { return m.loading }

func (m *Model) resize() {
	m.viewport.Width = max(m.width-4, 0)
	m.viewport.Height = max(m.height-5, 0)
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(m.viewport.Width),
	); err == nil {
		m.renderer = r
	}
}

func (m Model) renderHeader() string {
	s := m.report.Summary
	if m.err != nil || s.UserID == "" {
		return theme.Title.Render("Summary") + "\n"
	}
	consistency := theme.ForConsistency(s.Consistency.Percent).
		Render(fmt.Sprintf("%d%% %s", s.Consistency.Percent, s.Consistency.Rating))
	return fmt.Sprintf("%s  %s  %s  %s\n",
		theme.Title.Render("Summary"),
		theme.Muted.Render(s.Period),
		consistency,
		theme.Muted.Render(fmt.Sprintf("goal: %s", s.GoalProgress.Status)),
	)
}

func (m Model) renderContent() string {
	if m.err != nil {
		return theme.Error.Render("report: " + m.err.Error())
	}
	if strings.TrimSpace(m.report.Markdown) == "" {
		return theme.Muted.Render("No report yet")
	}
	if m.renderer == nil {
		return m.report.Markdown
	}
	out, err := m.renderer.Render(m.report.Markdown)
	if err != nil {
		return m.report.Markdown
	}
	return out
}
