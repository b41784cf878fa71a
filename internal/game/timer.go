// internal/game/timer.go
//
// Round countdown.
//
// Timer delivers Total/Interval ticks: the first immediately on Start with
// the full duration remaining, then one per Interval. When the elapsed time
// reaches Total it calls the finish callback once instead of a final tick.
// Cancel stops both. Time comes from a clockwork.Clock so tests can drive
// the countdown with a fake clock.

package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const (
	DefaultTotal          = 10 * time.Second
	DefaultInterval       = time.Second
	DefaultPanicThreshold = 10 // whole seconds remaining
)

// ErrInvalidTimerConfig is returned for non-positive or non-dividing durations.
var ErrInvalidTimerConfig = errors.New("invalid timer config")

// TimerConfig fixes the countdown length and tick spacing.
type TimerConfig struct {
	Total    time.Duration
	Interval time.Duration
}

// DefaultTimerConfig is the round length used by the game.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{Total: DefaultTotal, Interval: DefaultInterval}
}

// Validate checks that Interval is positive and evenly divides Total.
func (c TimerConfig) Validate() error {
	if c.Total <= 0 || c.Interval <= 0 {
		return fmt.Errorf("%w: total=%v interval=%v", ErrInvalidTimerConfig, c.Total, c.Interval)
	}
	if c.Total%c.Interval != 0 {
		return fmt.Errorf("%w: interval %v does not divide total %v", ErrInvalidTimerConfig, c.Interval, c.Total)
	}
	return nil
}

// Ticks is the number of tick callbacks a full countdown delivers.
func (c TimerConfig) Ticks() int64 { return int64(c.Total / c.Interval) }

// Timer is a one-use countdown.
type Timer struct {
	cfg   TimerConfig
	clock clockwork.Clock

	mu       sync.Mutex // held while a callback runs
	started  bool
	stopped  bool
	stopCh   chan struct{}
	done     chan struct{}
	doneOnce sync.Once
}

// NewTimer validates cfg. A nil clock means the real clock.
func NewTimer(cfg TimerConfig, clock clockwork.Clock) (*Timer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Timer{
		cfg:    cfg,
		clock:  clock,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}, nil
}

// Start begins the countdown. The first tick runs before Start returns.
// Callbacks run one at a time and must not call Cancel.
// Starting twice, or after Cancel, does nothing.
func (t *Timer) Start(onTick func(remaining time.Duration), onFinish func()) {
	t.mu.Lock()
	if t.started || t.stopped {
		t.mu.Unlock()
		return
	}
	t.started = true
	ticker := t.clock.NewTicker(t.cfg.Interval)
	onTick(t.cfg.Total)
	t.mu.Unlock()

	go t.run(ticker, onTick, onFinish)
}

func (t *Timer) run(ticker clockwork.Ticker, onTick func(time.Duration), onFinish func()) {
	defer t.markDone()
	defer ticker.Stop()

	ticks := t.cfg.Ticks()
	for i := int64(1); ; i++ {
		select {
		case <-t.stopCh:
			return
		case <-ticker.Chan():
		}

		t.mu.Lock()
		if t.stopped {
			t.mu.Unlock()
			return
		}
		if i >= ticks {
			t.stopped = true
			onFinish()
			t.mu.Unlock()
			return
		}
		onTick(t.cfg.Total - time.Duration(i)*t.cfg.Interval)
		t.mu.Unlock()
	}
}

// Cancel halts the countdown and suppresses the finish callback.
// Once Cancel returns no further callback starts. Safe to call repeatedly.
func (t *Timer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	close(t.stopCh)
	if !t.started {
		t.markDone()
	}
	log.Debug().Dur("total", t.cfg.Total).Msg("timer cancelled")
}

// Done is closed once the countdown goroutine has exited, or on Cancel
// when the timer was never started.
func (t *Timer) Done() <-chan struct{} { return t.done }

func (t *Timer) markDone() {
	t.doneOnce.Do(func() { close(t.done) })
}
