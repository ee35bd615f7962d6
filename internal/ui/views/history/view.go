package history

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	activitydto "fitx/internal/modules/activity/dto"
	"fitx/internal/ui/theme"
)

// Port is the slice of the activity use-case this view lists.
type Port interface {
	Recent(ctx context.Context, windowDays int) (activitydto.HistoryOutput, error)
}

type LoadedMsg struct {
	Days    int
	History activitydto.HistoryOutput
	Err     error
}

// entry is one workout or meal row, merged into a single timeline.
type entry struct {
	at    time.Time
	title string
	desc  string
}

func (e entry) Title() string       { return e.title }
func (e entry) Description() string { return e.desc }
func (e entry) FilterValue() string { return e.title }

type Model struct {
	port    Port
	list    list.Model
	days    int
	history activitydto.HistoryOutput
	err     error
	width   int
	height  int
}

func New(port Port, days int) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "History"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return Model{port: port, list: l, days: days}
}

func (m Model) Init() tea.Cmd { return nil }

// Load switches to a window of days and fetches it.
func (m *Model) Load(days int) tea.Cmd {
	m.days = days
	return m.Fetch()
}

// Fetch reads the trailing window of the current length.
func (m Model) Fetch() tea.Cmd {
	port, days := m.port, m.days
	return func() tea.Msg {
		if port == nil {
			return LoadedMsg{Days: days, Err: fmt.Errorf("activity history is not configured")}
		}
		out, err := port.Recent(context.Background(), days)
		return LoadedMsg{Days: days, History: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height)

	case LoadedMsg:
		if msg.Days != m.days {
			return m, nil
		}
		m.err = msg.Err
		if msg.Err != nil {
			m.list.Title = "History: " + msg.Err.Error()
			return m, nil
		}
		m.history = msg.History
		m.list.Title = fmt.Sprintf("History: last %d days", msg.Days)
		cmds = append(cmds, m.list.SetItems(Entries(msg.History)))
	}

	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	return m.list.View()
}

// Filtering reports whether the list's search filter is open; global keys
// yield while the user types.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Len() int { return len(m.list.Items()) }

func (m Model) Err() error { return m.err }

// Entries flattens a history into list items, newest first.
func Entries(h activitydto.HistoryOutput) []list.Item {
	rows := make([]entry, 0, len(h.Workouts)+len(h.Meals))
	for _, w := range h.Workouts {
		rows = append(rows, entry{
			at:    w.Timestamp,
			title: fmt.Sprintf("🏋️ %s  %d min", w.Exercise, w.DurationMinutes),
			desc:  fmt.Sprintf("%s  %s intensity  %d kcal", stamp(w.Timestamp), w.Intensity, w.EstimatedCalories),
		})
	}
	for _, meal := range h.Meals {
		title := "🍽️ " + meal.MealType
		if len(meal.Items) > 0 {
			title += "  " + strings.Join(meal.Items, ", ")
		}
		rows = append(rows, entry{
			at:    meal.Timestamp,
			title: title,
			desc:  fmt.Sprintf("%s  %d kcal  %s", stamp(meal.Timestamp), meal.EstimatedCalories, meal.MealSize),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].at.After(rows[j].at) })

	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = r
	}
	return items
}

func stamp(t time.Time) string {
	return t.Local().Format("Mon 02 Jan 15:04")
}
