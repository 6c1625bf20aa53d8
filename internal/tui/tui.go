package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/aayushbajaj/attend/pkg/stats"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle     lipgloss.Style
	statLabelStyle lipgloss.Style
	statValueStyle lipgloss.Style
	boxStyle       lipgloss.Style
	graphStyle     lipgloss.Style
	attendedStyle  lipgloss.Style
	missedStyle    lipgloss.Style
	helpStyle      lipgloss.Style
)

// Source supplies the sessions shown on the dashboard.
type Source interface {
	ListSessions() ([]stats.Session, error)
}

type Model struct {
	source Source
	now    func() time.Time
	weeks  int

	streak stats.Result
	weekly []stats.WeekCount
	daily  []stats.DayData
	rate   float64
	loaded bool

	width  int
	height int
	err    error
}

type statsMsg struct {
	streak stats.Result
	weekly []stats.WeekCount
	daily  []stats.DayData
	rate   float64
	err    error
}

// New builds a dashboard over source showing the last weeks weeks. now
// decides "today"; pass nil for time.Now.
func New(source Source, weeks int, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	if weeks <= 0 {
		weeks = 8
	}
	return Model{source: source, now: now, weeks: weeks}
}

func (m Model) Init() tea.Cmd {
	return m.fetchStats
}

func (m Model) fetchStats() tea.Msg {
	sessions, err := m.source.ListSessions()
	if err != nil {
		return statsMsg{err: err}
	}

	now := m.now()
	return statsMsg{
		streak: stats.ComputeStreak(sessions, now),
		weekly: stats.WeeklyCounts(sessions, m.weeks, now),
		daily:  stats.DailyCounts(sessions, 7, now),
		rate:   stats.CompletionRate(sessions),
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, m.fetchStats
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case statsMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.streak = msg.streak
			m.weekly = msg.weekly
			m.daily = msg.daily
			m.rate = msg.rate
			m.loaded = true
		}
	}

	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
	}

	if !m.loaded {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("🔥 Attendance"))
	b.WriteString("\n\n")

	streakContent := fmt.Sprintf(
		"%s %s\n%s %s",
		statLabelStyle.Render("Current:"),
		statValueStyle.Render(formatDays(m.streak.Current)),
		statLabelStyle.Render("Longest:"),
		statValueStyle.Render(formatDays(m.streak.Longest)),
	)

	var thisWeek stats.WeekCount
	if len(m.weekly) > 0 {
		thisWeek = m.weekly[len(m.weekly)-1]
	}
	weekContent := fmt.Sprintf(
		"%s %s\n%s %s",
		statLabelStyle.Render("Completed:"),
		statValueStyle.Render(fmt.Sprintf("%d", thisWeek.Completed)),
		statLabelStyle.Render("Attendance:"),
		statValueStyle.Render(fmt.Sprintf("%.0f%%", m.rate*100)),
	)

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		boxStyle.Render("Streak\n"+streakContent),
		"  ",
		boxStyle.Render("Week of "+thisWeek.Start.Format("Jan 2")+"\n"+weekContent),
	))
	b.WriteString("\n\n")

	b.WriteString(statLabelStyle.Render("Last 7 Days:"))
	b.WriteString("\n")
	b.WriteString(m.renderDailyStrip())
	b.WriteString("\n\n")

	b.WriteString(statLabelStyle.Render(fmt.Sprintf("Weekly Sessions (last %d weeks):", len(m.weekly))))
	b.WriteString("\n")
	b.WriteString(m.renderWeeklyGraph())
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("r: refresh • q: quit"))

	return b.String()
}

func (m Model) renderDailyStrip() string {
	var strip, labels strings.Builder
	for _, d := range m.daily {
		if d.Completed > 0 {
			strip.WriteString(attendedStyle.Render("●"))
		} else {
			strip.WriteString(missedStyle.Render("○"))
		}
		strip.WriteString(" ")
		labels.WriteString(d.Date.Weekday().String()[:1])
		labels.WriteString(" ")
	}
	return strip.String() + "\n" + statLabelStyle.Render(labels.String())
}

func (m Model) renderWeeklyGraph() string {
	if len(m.weekly) == 0 {
		return "No data"
	}

	var maxCount int
	for _, w := range m.weekly {
		if w.Completed > maxCount {
			maxCount = w.Completed
		}
	}

	if maxCount == 0 {
		return "No completed sessions yet"
	}

	bars := []string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}
	var graph strings.Builder

	for _, w := range m.weekly {
		idx := int(float64(w.Completed) / float64(maxCount) * float64(len(bars)-1))
		if w.Completed > 0 && idx == 0 {
			idx = 1
		}
		graph.WriteString(graphStyle.Render(bars[idx]))
		graph.WriteString(" ")
	}

	return graph.String()
}

func formatDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
