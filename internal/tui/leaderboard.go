package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/verte-zerg/typeflow/internal/model"
	"github.com/verte-zerg/typeflow/internal/stats"
)

const leaderboardLimit = 10

type leaderboardMsg struct {
	duration int
	entries  []model.LeaderboardEntry
	err      error
}

type leaderboardOverlay struct {
	duration int
	loading  bool
	err      error
	empty    bool
	table    table.Model
	styles   theme
}

func newLeaderboardOverlay(duration int, th theme, width, height int) *leaderboardOverlay {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 3},
			{Title: "User", Width: 16},
			{Title: "WPM", Width: 5},
			{Title: "Acc", Width: 5},
			{Title: "Achiev.", Width: 10},
			{Title: "Time", Width: 16},
		}),
		table.WithFocused(false),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(th.border).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Cell
	t.SetStyles(s)

	o := &leaderboardOverlay{duration: duration, loading: true, table: t, styles: th}
	o.resize(width, height)
	return o
}

func (o *leaderboardOverlay) resize(_, height int) {
	h := leaderboardLimit + 1
	if height > 0 && height-6 < h {
		h = max(height-6, 2)
	}
	o.table.SetHeight(h)
}

func (o *leaderboardOverlay) apply(msg leaderboardMsg) {
	if msg.duration != o.duration {
		return
	}
	o.loading = false
	o.err = msg.err
	if msg.err != nil {
		o.table.SetRows(nil)
		o.empty = false
		return
	}
	o.empty = len(msg.entries) == 0
	o.table.SetRows(lo.Map(msg.entries, func(e model.LeaderboardEntry, i int) table.Row {
		return stats.LeaderboardRow(i+1, e)
	}))
}

func (o *leaderboardOverlay) view() string {
	title := o.styles.accent.Render(fmt.Sprintf("Leaderboard (%ds)", o.duration))
	var body string
	switch {
	case o.loading:
		body = o.styles.footer.Render("Loading…")
	case o.err != nil:
		body = o.styles.incorrect.Render("Leaderboard unavailable: " + o.err.Error())
	case o.empty:
		body = o.styles.footer.Render("No results yet. Complete a test to appear here.")
	default:
		body = o.table.View()
	}
	hint := o.styles.footer.Render("←/→ duration · r refresh · esc close")
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(o.styles.border).
		Padding(0, 1)
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", hint))
}

func (m *Model) updateBoard(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.board = nil
		return nil
	case tea.KeyLeft:
		return m.switchBoard(-1)
	case tea.KeyRight:
		return m.switchBoard(1)
	case tea.KeyRunes:
		if string(msg.Runes) == "r" {
			m.board.loading = true
			return fetchLeaderboard(m.deps.Leaderboard, m.board.duration)
		}
	}
	return nil
}

func (m *Model) switchBoard(step int) tea.Cmd {
	m.board.duration = nextDuration(m.board.duration, step)
	m.board.loading = true
	return fetchLeaderboard(m.deps.Leaderboard, m.board.duration)
}

func fetchLeaderboard(f LeaderboardFetcher, duration int) tea.Cmd {
	if f == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		entries, err := f.FetchLeaderboard(ctx, duration, leaderboardLimit)
		return leaderboardMsg{duration: duration, entries: entries, err: err}
	}
}
