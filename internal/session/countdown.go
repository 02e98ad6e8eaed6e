package session

import (
	"sync"
	"time"
)

// TickInterval is the default countdown granularity.
const TickInterval = 200 * time.Millisecond

// Ticker abstracts time.Ticker so the countdown can be driven in tests.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// NewTickerFunc creates a Ticker firing every d.
type NewTickerFunc func(d time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker returns a Ticker backed by time.NewTicker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Countdown is the cancellable periodic task that drives a running session.
type Countdown struct {
	ticker Ticker
	done   chan struct{}
	once   sync.Once
}

func startCountdown(newTicker NewTickerFunc, interval time.Duration) *Countdown {
	return &Countdown{
		ticker: newTicker(interval),
		done:   make(chan struct{}),
	}
}

// Wait blocks until the next tick. It returns false once the countdown has
// been stopped.
func (c *Countdown) Wait() (time.Time, bool) {
	select {
	case <-c.done:
		return time.Time{}, false
	default:
	}
	select {
	case t := <-c.ticker.C():
		return t, true
	case <-c.done:
		return time.Time{}, false
	}
}

// Stop cancels the countdown. It is safe to call more than once.
func (c *Countdown) Stop() {
	c.once.Do(func() {
		c.ticker.Stop()
		close(c.done)
	})
}

// Stopped reports whether Stop has been called.
func (c *Countdown) Stopped() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}
