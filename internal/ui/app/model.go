package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	activitydto "fitx/internal/modules/activity/dto"
	progressdto "fitx/internal/modules/progress/dto"
	"fitx/internal/platform/slug"
	"fitx/internal/ui/theme"
	historyview "fitx/internal/ui/views/history"
	summaryview "fitx/internal/ui/views/summary"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type activityPort interface {
	Recent(ctx context.Context, windowDays int) (activitydto.HistoryOutput, error)
	Export(ctx context.Context, windowDays int, path string) (activitydto.ExportOutput, error)
}

type progressPort interface {
	Report(ctx context.Context, windowDays int) (progressdto.ReportOutput, error)
	ExportReport(ctx context.Context, windowDays int) (progressdto.ExportReportOutput, error)
}

// ─── tabs ────────────────────────────────────────────────────────────────────

type tabID int

const (
	tabSummary tabID = iota
	tabHistory
	tabCount
)

var tabLabels = [tabCount]string{"Summary", "History"}

// windows maps a window key to its length in days.
var windows = map[string]int{"1": 1, "7": 7, "3": 30}

const defaultWindowDays = 7

// ─── async messages ──────────────────────────────────────────────────────────

type exportedMsg struct {
	workbook activitydto.ExportOutput
	report   progressdto.ExportReportOutput
	err      error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Day     key.Binding
	Week    key.Binding
	Month   key.Binding
	Refresh key.Binding
	Export  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch tab")),
		Day:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "last day")),
		Week:    key.NewBinding(key.WithKeys("7"), key.WithHelp("7", "last week")),
		Month:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "last 30 days")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Export:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export workbook + report")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Refresh, k.Export, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Day, k.Week, k.Month},
		{k.Tab, k.Refresh, k.Export},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root dashboard model. It owns the window length, tab routing
// and exports; the tabs render whatever the use-cases return.
type Model struct {
	userID    string
	exportDir string

	activity activityPort
	progress progressPort

	summaryView summaryview.Model
	historyView historyview.Model

	activeTab tabID
	days      int
	keys      keyMap
	help      help.Model
	showHelp  bool
	exporting bool
	status    string
	width     int
	height    int
}

func NewModel(userID, exportDir string, activity activityPort, progress progressPort) Model {
	var summaryPort summaryview.Port
	if progress != nil {
		summaryPort = progress
	}
	var historyPort historyview.Port
	if activity != nil {
		historyPort = activity
	}
	return Model{
		userID:      userID,
		exportDir:   exportDir,
		activity:    activity,
		progress:    progress,
		summaryView: summaryview.New(summaryPort, defaultWindowDays),
		historyView: historyview.New(historyPort, defaultWindowDays),
		activeTab:   tabSummary,
		days:        defaultWindowDays,
		keys:        defaultKeys(),
		help:        help.New(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.summaryView.Init(), m.summaryView.Fetch(), m.historyView.Fetch())
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case summaryview.LoadedMsg:
		if msg.Err != nil && msg.Days == m.days {
			m.status = "summary: " + msg.Err.Error()
		}
		var cmd tea.Cmd
		m.summaryView, cmd = m.summaryView.Update(msg)
		return m, cmd

	case historyview.LoadedMsg:
		if msg.Err != nil && msg.Days == m.days {
			m.status = "history: " + msg.Err.Error()
		}
		var cmd tea.Cmd
		m.historyView, cmd = m.historyView.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.summaryView, cmd = m.summaryView.Update(msg)
		return m, cmd

	case exportedMsg:
		m.exporting = false
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("exported %s and %s", msg.workbook.Path, msg.report.Path)
		}
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.activeTab == tabHistory && m.historyView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = true
			return m, nil
		case "1", "7", "3":
			m.days = windows[msg.String()]
			m.status = fmt.Sprintf("window: last %d days", m.days)
			cmd := m.reloadCmd()
			return m, cmd
		case "r":
			m.status = "refreshing"
			cmd := m.reloadCmd()
			return m, cmd
		case "e":
			if m.exporting {
				return m, nil
			}
			m.exporting = true
			m.status = "exporting…"
			return m, m.exportCmd()
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabSummary:
		m.summaryView, tabCmd = m.summaryView.Update(msg)
	case tabHistory:
		m.historyView, tabCmd = m.historyView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.activeTab == tabHistory:
		content = m.historyView.View()
	default:
		content = m.summaryView.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := " " + tabLabels[i] + " "
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(label)
		} else {
			parts[i] = theme.Muted.Render(label)
		}
	}
	bar := fmt.Sprintf("fitx  %s  %s",
		strings.Join(parts, theme.Muted.Render(" │ ")),
		theme.Muted.Render(fmt.Sprintf("%s · %dd", m.userID, m.days)))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := m.help.ShortHelpView(m.keys.ShortHelp())
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: max(m.height-3, 0)}
	m.summaryView, _ = m.summaryView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
}

// reloadCmd refreshes both tabs for the current window.
func (m *Model) reloadCmd() tea.Cmd {
	return tea.Batch(m.summaryView.Load(m.days), m.historyView.Load(m.days))
}

// WorkbookPath is where an export for the window lands.
func (m Model) WorkbookPath() string {
	name := fmt.Sprintf("fitx-%s-%dd.xlsx", slug.Make(m.userID), m.days)
	return filepath.Join(m.exportDir, name)
}

func (m Model) exportCmd() tea.Cmd {
	activity, progress := m.activity, m.progress
	days, path := m.days, m.WorkbookPath()
	return func() tea.Msg {
		if activity == nil || progress == nil {
			return exportedMsg{err: fmt.Errorf("export is not configured")}
		}
		ctx := context.Background()
		workbook, err := activity.Export(ctx, days, path)
		if err != nil {
			return exportedMsg{err: err}
		}
		report, err := progress.ExportReport(ctx, days)
		if err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{workbook: workbook, report: report}
	}
}

func (m Model) Days() int { return m.days }

func (m Model) Status() string { return m.status }
