// internal/score/score.go
//
// Results-screen state: the final score of a finished round and a
// one-shot "play again" request for the client.

package score

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Snapshot is the observable state of a score session.
type Snapshot struct {
	ID           string `json:"id"`
	Score        int    `json:"score"`
	PlayAgain    bool   `json:"playAgain"`
	PlayAgainSeq uint64 `json:"playAgainSeq"`
}

// Session holds a final score. The score never changes after New.
type Session struct {
	id    string
	score int

	mu           sync.Mutex
	playAgain    bool
	playAgainSeq uint64
}

// New builds a score session for finalScore. An empty id gets a random UUID.
func New(id string, finalScore int) *Session {
	if id == "" {
		id = uuid.NewString()
	}
	log.Info().Str("scoreId", id).Int("score", finalScore).Msg("final score")
	return &Session{id: id, score: finalScore}
}

// ID identifies the session in the holder store.
func (s *Session) ID() string { return s.id }

// Score returns the final score.
func (s *Session) Score() int { return s.score }

// PlayAgain raises the restart event.
func (s *Session) PlayAgain() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playAgain = true
	s.playAgainSeq++
	return s.snapshotLocked()
}

// PlayAgainComplete clears the restart event so a recreated screen does not see it again.
func (s *Session) PlayAgainComplete() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playAgain = false
	return s.snapshotLocked()
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{ID: s.id, Score: s.score, PlayAgain: s.playAgain, PlayAgainSeq: s.playAgainSeq}
}
