// internal/game/types.go
//
// Core type definitions for a Guess The Word round.
// Defines:
//   - BuzzType: haptic intent raised by the round (correct/game over/panic/none).
//   - State: lifecycle of a round session.
//   - Snapshot: read-only view of a session, published after every change.
//   - Result: summary of a finished round.

package game

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrRoundFinished rejects player actions once the timer has expired.
	ErrRoundFinished = errors.New("round finished")
	// ErrSessionClosed rejects player actions after teardown.
	ErrSessionClosed = errors.New("session closed")
)

// BuzzType is a one-shot haptic intent; the device effect itself is the client's job.
type BuzzType string

const (
	BuzzNone           BuzzType = "none"
	BuzzCorrect        BuzzType = "correct"
	BuzzGameOver       BuzzType = "game_over"
	BuzzCountdownPanic BuzzType = "countdown_panic"
)

// Pattern returns the vibration waveform for b as alternating off/on durations.
func (b BuzzType) Pattern() []time.Duration {
	ms := time.Millisecond
	switch b {
	case BuzzCorrect:
		return []time.Duration{100 * ms, 100 * ms, 100 * ms, 100 * ms, 100 * ms, 100 * ms}
	case BuzzCountdownPanic:
		return []time.Duration{0, 200 * ms}
	case BuzzGameOver:
		return []time.Duration{0, 2000 * ms}
	default:
		return []time.Duration{0}
	}
}

// State is the lifecycle position of a session.
type State string

const (
	StateRunning  State = "running"  // timer active, accepting correct/skip
	StateFinished State = "finished" // timer expired
	StateClosed   State = "closed"   // torn down, timer released
)

// Snapshot is a copy of a session's observable fields.
// FinishSeq and BuzzSeq increase every time the matching signal is raised,
// so a consumer can track the last sequence it handled instead of racing
// on the acknowledge flags.
type Snapshot struct {
	ID               string   `json:"id"`
	State            State    `json:"state"`
	Word             string   `json:"word"`
	Score            int      `json:"score"`
	Correct          int      `json:"correct"`
	Skipped          int      `json:"skipped"`
	RemainingSeconds int64    `json:"remainingSeconds"`
	RemainingText    string   `json:"remainingText"` // mm:ss
	Finished         bool     `json:"finished"`
	FinishSeq        uint64   `json:"finishSeq"`
	Buzz             BuzzType `json:"buzz"`
	BuzzSeq          uint64   `json:"buzzSeq"`
	Version          uint64   `json:"version"`
}

// Result summarises a round when its timer expires.
type Result struct {
	GameID     string    `json:"gameId"`
	Score      int       `json:"score"`
	Correct    int       `json:"correct"`
	Skipped    int       `json:"skipped"`
	FinishedAt time.Time `json:"finishedAt"`
}

// FormatElapsed renders seconds as MM:SS, or H:MM:SS from one hour up.
func FormatElapsed(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := seconds / 60 % 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
