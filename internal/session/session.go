// Package session implements the typing-session state machine.
//
// A Session is owned by a single goroutine: input events and countdown
// ticks are delivered to it one at a time, and every path that reaches
// Finished goes through the same idempotent transition.
package session

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"github.com/verte-zerg/typeflow/internal/model"
	"github.com/verte-zerg/typeflow/internal/prompt"
	"github.com/verte-zerg/typeflow/internal/stats"
)

// Phase is the lifecycle stage of a session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseFinished:
		return "finished"
	default:
		return "idle"
	}
}

// idleAccuracy is the accuracy shown before the first keystroke.
const idleAccuracy = 100

// Reporter receives the result of a session that finished after running.
// Implementations must not block.
type Reporter interface {
	Report(result model.SessionResult)
}

// Options configures a Session.
type Options struct {
	Duration     int
	Text         string
	TextID       int64
	UserID       string
	Reporter     Reporter
	Tiers        []stats.Tier
	Now          func() time.Time
	NewTicker    NewTickerFunc
	TickInterval time.Duration
}

// Display holds the metrics recomputed after every accepted mutation.
type Display struct {
	WPM      int
	Accuracy int
	Tier     string
}

// Session is the state of one typing attempt.
type Session struct {
	opts Options

	prompt   *prompt.Prompt
	phase    Phase
	closed   bool
	textID   int64
	timeLeft int

	startedAt  time.Time
	correct    int
	keystrokes int

	display   Display
	result    *model.SessionResult
	countdown *Countdown
}

// New validates opts and returns an Idle session for opts.Text. An empty
// text finishes immediately with zero metrics.
func New(opts Options) (*Session, error) {
	if opts.Duration <= 0 {
		return nil, fmt.Errorf("duration must be > 0, got %d", opts.Duration)
	}
	if opts.Tiers == nil {
		opts.Tiers = stats.DefaultTiers
	}
	if err := stats.ValidateTiers(opts.Tiers); err != nil {
		return nil, fmt.Errorf("invalid achievement table: %w", err)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewTicker == nil {
		opts.NewTicker = NewTimeTicker
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = TickInterval
	}
	s := &Session{opts: opts}
	s.reset(opts.Text, opts.TextID)
	return s, nil
}

// Reset tears down the current attempt and starts over in Idle with a new
// prompt. The duration and reporter are kept.
func (s *Session) Reset(text string, textID int64) {
	s.stopCountdown()
	s.reset(text, textID)
}

func (s *Session) reset(text string, textID int64) {
	s.prompt = prompt.New(text)
	s.phase = PhaseIdle
	s.closed = false
	s.textID = textID
	s.timeLeft = s.opts.Duration
	s.startedAt = time.Time{}
	s.correct = 0
	s.keystrokes = 0
	s.result = nil
	s.countdown = nil
	s.display = Display{}
	s.recompute()
	if s.prompt.Done() {
		s.finish()
	}
}

// Teardown stops the countdown and makes the session ignore further input.
func (s *Session) Teardown() {
	s.stopCountdown()
	s.closed = true
}

// Handle applies an input event and reports whether it was accepted.
func (s *Session) Handle(ev Event) bool {
	if s.closed || s.phase == PhaseFinished {
		return false
	}
	switch ev := ev.(type) {
	case InsertEvent:
		return s.insert(ev.Text)
	case DeleteBackwardEvent:
		return s.deleteBackward()
	default:
		return false
	}
}

// Tick recomputes the clock from now. It reports whether the session was
// running when the tick arrived.
func (s *Session) Tick(now time.Time) bool {
	if s.closed || s.phase != PhaseRunning {
		return false
	}
	s.syncClock(now)
	s.recompute()
	if s.timeLeft == 0 {
		s.finish()
	}
	return true
}

func (s *Session) insert(text string) bool {
	if utf8.RuneCountInString(text) != 1 || s.prompt.Done() {
		return false
	}
	now := s.opts.Now()
	if s.phase == PhaseIdle {
		s.start(now)
	} else if s.expired(now) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text)
	s.keystrokes++
	if correct, _ := s.prompt.Advance(r); correct {
		s.correct++
	}
	s.afterEvent(now)
	return true
}

func (s *Session) deleteBackward() bool {
	if s.prompt.Cursor() == 0 {
		return false
	}
	now := s.opts.Now()
	if s.expired(now) {
		return false
	}
	s.prompt.Retreat()
	s.keystrokes++
	s.afterEvent(now)
	return true
}

// expired syncs the clock and finishes the session when time ran out
// before the event arrived.
func (s *Session) expired(now time.Time) bool {
	s.syncClock(now)
	if s.timeLeft > 0 {
		return false
	}
	s.recompute()
	s.finish()
	return true
}

func (s *Session) afterEvent(now time.Time) {
	s.syncClock(now)
	s.recompute()
	if s.prompt.Done() || s.timeLeft == 0 {
		s.finish()
	}
}

func (s *Session) start(now time.Time) {
	s.phase = PhaseRunning
	s.startedAt = now
	s.countdown = startCountdown(s.opts.NewTicker, s.opts.TickInterval)
}

// syncClock derives the time left from wall-clock elapsed time. The value
// never increases and is floored at 0.
func (s *Session) syncClock(now time.Time) {
	if s.phase != PhaseRunning {
		return
	}
	end := s.startedAt.Add(time.Duration(s.opts.Duration) * time.Second)
	left := int(math.Round(end.Sub(now).Seconds()))
	if left < 0 {
		left = 0
	}
	if left < s.timeLeft {
		s.timeLeft = left
	}
}

func (s *Session) recompute() {
	if s.phase == PhaseIdle {
		s.display = Display{WPM: 0, Accuracy: idleAccuracy}
		return
	}
	wpm := stats.ComputeWPM(s.correct, s.opts.Duration, s.timeLeft)
	s.display.WPM = wpm
	s.display.Accuracy = stats.ComputeAccuracy(s.correct, s.keystrokes)
	if tier, ok := stats.Classify(s.opts.Tiers, wpm); ok {
		s.display.Tier = tier.Name
	}
}

func (s *Session) finish() {
	if s.phase == PhaseFinished {
		return
	}
	started := s.phase == PhaseRunning
	s.phase = PhaseFinished
	s.stopCountdown()
	s.recompute()

	res := model.SessionResult{
		Duration:      s.opts.Duration,
		WPM:           s.display.WPM,
		Accuracy:      s.display.Accuracy,
		CorrectChars:  s.correct,
		RawKeystrokes: s.keystrokes,
		TextID:        s.textID,
	}
	if s.opts.UserID != "" {
		user := s.opts.UserID
		res.UserID = &user
	}
	s.result = &res
	if started && s.opts.Reporter != nil {
		s.opts.Reporter.Report(res)
	}
}

func (s *Session) stopCountdown() {
	if s.countdown != nil {
		s.countdown.Stop()
	}
}

// Phase returns the lifecycle stage.
func (s *Session) Phase() Phase { return s.phase }

// Duration returns the configured duration in seconds.
func (s *Session) Duration() int { return s.opts.Duration }

// TimeLeft returns the remaining seconds.
func (s *Session) TimeLeft() int { return s.timeLeft }

// Correct returns the number of correct judgements.
func (s *Session) Correct() int { return s.correct }

// Keystrokes returns the number of accepted insert and delete events.
func (s *Session) Keystrokes() int { return s.keystrokes }

// Cursor returns the prompt cursor.
func (s *Session) Cursor() int { return s.prompt.Cursor() }

// Chars returns a snapshot of the prompt characters.
func (s *Session) Chars() []prompt.Char { return s.prompt.Chars() }

// TextID returns the identifier of the loaded text, 0 for placeholders.
func (s *Session) TextID() int64 { return s.textID }

// Display returns the latest display metrics.
func (s *Session) Display() Display { return s.display }

// Countdown returns the running countdown, or nil before the first keystroke.
func (s *Session) Countdown() *Countdown { return s.countdown }

// Result returns the result built at the Finished transition.
func (s *Session) Result() (model.SessionResult, bool) {
	if s.result == nil {
		return model.SessionResult{}, false
	}
	return *s.result, true
}
