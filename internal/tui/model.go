// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/verte-zerg/typeflow/internal/client"
	"github.com/verte-zerg/typeflow/internal/model"
	"github.com/verte-zerg/typeflow/internal/session"
)

const fetchTimeout = 10 * time.Second

// LeaderboardFetcher loads ranked results for the overlay.
type LeaderboardFetcher interface {
	FetchLeaderboard(ctx context.Context, duration, limit int) ([]model.LeaderboardEntry, error)
}

// Deps are the collaborators of the typing UI.
type Deps struct {
	Texts       client.TextFetcher
	Leaderboard LeaderboardFetcher
	Reporter    session.Reporter
	Now         func() time.Time
	NewTicker   session.NewTickerFunc
}

type textLoadedMsg struct {
	seq  int
	text model.Text
}

type tickMsg struct {
	countdown *session.Countdown
	at        time.Time
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	config model.Config
	deps   Deps
	styles theme

	sess    *session.Session
	loading bool
	loadSeq int

	board *leaderboardOverlay

	width  int
	height int
}

// NewModel constructs a typing TUI model. The first text is fetched by Init.
func NewModel(cfg model.Config, deps Deps) (*Model, error) {
	m := &Model{
		config: cfg,
		deps:   deps,
		styles: themeFor(cfg.Theme),
	}
	sess, err := session.New(m.sessionOptions(cfg.Duration))
	if err != nil {
		return nil, err
	}
	m.sess = sess
	m.loading = true
	return m, nil
}

func (m *Model) sessionOptions(duration int) session.Options {
	return session.Options{
		Duration:  duration,
		UserID:    m.config.UserID,
		Reporter:  m.deps.Reporter,
		Now:       m.deps.Now,
		NewTicker: m.deps.NewTicker,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.loadText()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.board != nil {
			m.board.resize(m.width, m.height)
		}
		return m, nil
	case textLoadedMsg:
		if msg.seq != m.loadSeq {
			return m, nil
		}
		m.loading = false
		m.sess.Reset(msg.text.Content, msg.text.ID)
		return m, nil
	case tickMsg:
		return m, m.handleTick(msg)
	case leaderboardMsg:
		if m.board != nil {
			m.board.apply(msg)
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.sess.Teardown()
			return m, tea.Quit
		}
		if m.board != nil {
			return m, m.updateBoard(msg)
		}
		return m, m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyTab:
		return m.setDuration(nextDuration(m.sess.Duration(), 1))
	case tea.KeyCtrlR:
		return m.restart()
	case tea.KeyCtrlL:
		m.board = newLeaderboardOverlay(m.sess.Duration(), m.styles, m.width, m.height)
		return fetchLeaderboard(m.deps.Leaderboard, m.board.duration)
	case tea.KeyBackspace:
		return m.handleEvent(session.DeleteBackwardEvent{})
	case tea.KeySpace:
		return m.handleEvent(session.InsertEvent{Text: " "})
	case tea.KeyRunes:
		if msg.Paste {
			return m.handleEvent(session.PasteEvent{Text: string(msg.Runes)})
		}
		return m.handleEvent(session.InsertEvent{Text: string(msg.Runes)})
	default:
		return nil
	}
}

func (m *Model) handleEvent(ev session.Event) tea.Cmd {
	if m.loading {
		return nil
	}
	wasIdle := m.sess.Phase() == session.PhaseIdle
	if !m.sess.Handle(ev) {
		return nil
	}
	if wasIdle && m.sess.Phase() == session.PhaseRunning {
		return waitTick(m.sess.Countdown())
	}
	return nil
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	if msg.countdown == nil || msg.countdown != m.sess.Countdown() || msg.countdown.Stopped() {
		return nil
	}
	if !m.sess.Tick(msg.at) {
		return nil
	}
	if m.sess.Phase() == session.PhaseRunning {
		return waitTick(msg.countdown)
	}
	return nil
}

func waitTick(c *session.Countdown) tea.Cmd {
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		at, ok := c.Wait()
		if !ok {
			return nil
		}
		return tickMsg{countdown: c, at: at}
	}
}

func (m *Model) loadText() tea.Cmd {
	m.loadSeq++
	m.loading = true
	seq := m.loadSeq
	duration := m.sess.Duration()
	fetcher := m.deps.Texts
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return textLoadedMsg{seq: seq, text: client.LoadPrompt(ctx, fetcher, duration)}
	}
}

func (m *Model) restart() tea.Cmd {
	m.sess.Reset("", 0)
	return m.loadText()
}

func (m *Model) setDuration(duration int) tea.Cmd {
	sess, err := session.New(m.sessionOptions(duration))
	if err != nil {
		slog.Error("switch duration failed", "duration", duration, "error", err)
		return nil
	}
	m.sess.Teardown()
	m.sess = sess
	m.config.Duration = duration
	return m.loadText()
}

func nextDuration(current, step int) int {
	idx := lo.IndexOf(model.Durations, current)
	if idx < 0 {
		return model.DefaultDuration
	}
	n := len(model.Durations)
	return model.Durations[((idx+step)%n+n)%n]
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch {
	case m.board != nil:
		content = m.board.view()
	case m.loading:
		content = m.styles.footer.Render("Loading text…")
	default:
		content = m.renderPrompt()
	}
	if m.width == 0 || m.height == 0 {
		return content + "\n" + m.renderFooter()
	}
	footer := m.renderFooter()
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) contentWidth() int {
	w := int(float64(m.width) * 0.70)
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) renderPrompt() string {
	styled := buildStyledRunes(m.sess.Chars(), m.styles)
	var text string
	if m.width == 0 {
		text = renderStyledRunes(styled)
	} else {
		width := m.contentWidth()
		text = lipgloss.NewStyle().Width(width).Render(wrapStyledRunes(styled, width))
	}
	if m.sess.Phase() != session.PhaseFinished {
		return text
	}
	d := m.sess.Display()
	summary := m.styles.accent.Render(fmt.Sprintf("Result: %d WPM · %d%% · %s", d.WPM, d.Accuracy, tierLabel(d.Tier)))
	hint := m.styles.footer.Render("ctrl+r new text · tab change duration · ctrl+l leaderboard")
	return lipgloss.JoinVertical(lipgloss.Center, text, "", summary, hint)
}

func (m *Model) renderFooter() string {
	segments := []string{fmt.Sprintf("%ds", m.sess.Duration())}
	if m.loading {
		segments = append(segments,
			fmt.Sprintf("Time %ds", m.sess.Duration()),
			"WPM 0",
			"Acc 100%",
			tierLabel(""),
		)
	} else {
		d := m.sess.Display()
		segments = append(segments,
			fmt.Sprintf("Time %ds", m.sess.TimeLeft()),
			fmt.Sprintf("WPM %d", d.WPM),
			fmt.Sprintf("Acc %d%%", d.Accuracy),
			tierLabel(d.Tier),
		)
	}
	return m.styles.footer.Render(strings.Join(segments, "  "))
}

func tierLabel(tier string) string {
	if tier == "" {
		return "-"
	}
	return tier
}
