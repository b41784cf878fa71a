// internal/game/engine.go
//
// Round session for Guess The Word.
// Responsibilities:
//   - Own the word queue and countdown timer for one round.
//   - Apply player actions: Correct (+1, CORRECT buzz) and Skip (-1).
//   - React to timer ticks (remaining time, COUNTDOWN_PANIC buzz) and to
//     expiry (finish event, GAME_OVER buzz).
//   - Publish a Snapshot to subscribers after every change.
//
// State transitions: running → finished (timer expiry) → closed (Close).
// Player actions after the round finished are rejected with ErrRoundFinished.
//
// All state is guarded by one mutex; timer callbacks and player actions
// may arrive on different goroutines.

package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guesstheword/apps/go-server/internal/words"
)

// Session is one timed round.
type Session struct {
	id             string
	clock          clockwork.Clock
	timerCfg       TimerConfig
	panicThreshold int64
	queueOpts      []words.Option
	onFinish       func(Result)
	log            zerolog.Logger

	mu        sync.Mutex
	queue     *words.Queue
	timer     *Timer
	state     State
	word      string
	score     int
	correct   int
	skipped   int
	remaining int64
	endedAt   time.Time
	finished  bool
	finishSeq uint64
	buzz      BuzzType
	buzzSeq   uint64
	version   uint64
	subs      map[int]chan Snapshot
	nextSub   int
}

// Option configures a Session.
type Option func(*Session)

// WithID fixes the session id; by default a random UUID is used.
func WithID(id string) Option { return func(s *Session) { s.id = id } }

// WithClock injects the time source for the countdown.
func WithClock(c clockwork.Clock) Option { return func(s *Session) { s.clock = c } }

// WithTimerConfig overrides the round length and tick spacing.
func WithTimerConfig(c TimerConfig) Option { return func(s *Session) { s.timerCfg = c } }

// WithPanicThreshold sets how many whole seconds remaining start the panic buzz.
func WithPanicThreshold(seconds int64) Option {
	return func(s *Session) { s.panicThreshold = seconds }
}

// WithQueueOptions forwards options to the word queue.
func WithQueueOptions(opts ...words.Option) Option {
	return func(s *Session) { s.queueOpts = append(s.queueOpts, opts...) }
}

// WithOnFinish registers a hook that receives the round result once the
// timer expires. It runs on its own goroutine.
func WithOnFinish(fn func(Result)) Option { return func(s *Session) { s.onFinish = fn } }

// New builds a session, draws the first word and starts the countdown.
func New(opts ...Option) (*Session, error) {
	s := &Session{
		timerCfg:       DefaultTimerConfig(),
		panicThreshold: DefaultPanicThreshold,
		state:          StateRunning,
		buzz:           BuzzNone,
		subs:           make(map[int]chan Snapshot),
	}
	for _, o := range opts {
		o(s)
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	s.log = log.With().Str("gameId", s.id).Logger()

	q, err := words.NewQueue(s.queueOpts...)
	if err != nil {
		return nil, err
	}
	t, err := NewTimer(s.timerCfg, s.clock)
	if err != nil {
		return nil, err
	}
	s.queue = q
	s.timer = t
	s.word = q.Next()

	s.log.Info().Dur("total", s.timerCfg.Total).Msg("game session created")
	t.Start(s.tick, s.finish)
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Correct records a guessed word.
func (s *Session) Correct() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.acceptingLocked(); err != nil {
		return s.snapshotLocked(), err
	}
	s.score++
	s.correct++
	s.raiseBuzzLocked(BuzzCorrect)
	s.word = s.queue.Next()
	return s.commitLocked(), nil
}

// Skip records a passed word. The buzz signal is left as it was.
func (s *Session) Skip() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.acceptingLocked(); err != nil {
		return s.snapshotLocked(), err
	}
	s.score--
	s.skipped++
	s.word = s.queue.Next()
	return s.commitLocked(), nil
}

// AcknowledgeFinish resets the finish event after the consumer handled it.
func (s *Session) AcknowledgeFinish() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.finished {
		return s.snapshotLocked()
	}
	s.finished = false
	return s.commitLocked()
}

// AcknowledgeBuzz resets the buzz signal after the consumer played it.
func (s *Session) AcknowledgeBuzz() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buzz == BuzzNone {
		return s.snapshotLocked()
	}
	s.buzz = BuzzNone
	return s.commitLocked()
}

// Snapshot returns the current observable state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe returns a channel that receives the latest snapshot after every
// change, starting with the current one. Slow readers only see the newest
// value. The channel is closed by the returned cancel func or by Close.
func (s *Session) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)
	s.mu.Lock()
	if s.state == StateClosed {
		ch <- s.snapshotLocked()
		close(ch)
		s.mu.Unlock()
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.snapshotLocked()
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

// Close cancels the countdown and releases subscribers. Safe to call repeatedly.
func (s *Session) Close() {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return
	}
	s.state = StateClosed
	s.commitLocked()
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
	t := s.timer
	s.mu.Unlock()

	// Cancel outside s.mu: a running timer callback holds the timer lock
	// while it waits for s.mu.
	t.Cancel()
	s.log.Info().Msg("game session destroyed")
}

// tick is the timer's periodic callback.
func (s *Session) tick(remaining time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRunning {
		return
	}
	s.remaining = int64(remaining / time.Second)
	if s.remaining <= s.panicThreshold {
		s.raiseBuzzLocked(BuzzCountdownPanic)
	}
	s.log.Debug().Int64("remain", s.remaining).Msg("timer tick")
	s.commitLocked()
}

// finish is the timer's completion callback.
func (s *Session) finish() {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return
	}
	s.remaining = 0
	s.finished = true
	s.finishSeq++
	s.raiseBuzzLocked(BuzzGameOver)
	s.state = StateFinished
	s.endedAt = s.clock.Now().UTC()
	s.commitLocked()
	res := s.resultLocked()
	hook := s.onFinish
	s.mu.Unlock()

	s.log.Info().Int("score", res.Score).Msg("timer finished")
	if hook != nil {
		go hook(res)
	}
}

// Result reports the round summary; ok is false until the timer expired.
func (s *Session) Result() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finishSeq == 0 {
		return Result{}, false
	}
	return s.resultLocked(), true
}

func (s *Session) resultLocked() Result {
	return Result{
		GameID:     s.id,
		Score:      s.score,
		Correct:    s.correct,
		Skipped:    s.skipped,
		FinishedAt: s.endedAt,
	}
}

func (s *Session) acceptingLocked() error {
	switch s.state {
	case StateFinished:
		return ErrRoundFinished
	case StateClosed:
		return ErrSessionClosed
	}
	return nil
}

func (s *Session) raiseBuzzLocked(b BuzzType) {
	s.buzz = b
	s.buzzSeq++
}

// commitLocked bumps the version and fans the new snapshot out.
func (s *Session) commitLocked() Snapshot {
	s.version++
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
	return snap
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		ID:               s.id,
		State:            s.state,
		Word:             s.word,
		Score:            s.score,
		Correct:          s.correct,
		Skipped:          s.skipped,
		RemainingSeconds: s.remaining,
		RemainingText:    FormatElapsed(s.remaining),
		Finished:         s.finished,
		FinishSeq:        s.finishSeq,
		Buzz:             s.buzz,
		BuzzSeq:          s.buzzSeq,
		Version:          s.version,
	}
}
