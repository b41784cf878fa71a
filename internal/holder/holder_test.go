package holder

import (
	"errors"
	"testing"

	"github.com/jonboulle/clockwork"

	"github.com/robalobadob/guesstheword/apps/go-server/internal/game"
)

func TestNewGameHolder(t *testing.T) {
	h, err := New(KindGame, Params{
		ID:          "g-1",
		GameOptions: []game.Option{game.WithClock(clockwork.NewFakeClock())},
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer h.Close()
	if h.Kind() != KindGame {
		t.Fatalf("kind = %s, want %s", h.Kind(), KindGame)
	}
	if h.ID() != "g-1" {
		t.Fatalf("id = %s, want %s", h.ID(), "g-1")
	}
	g, ok := h.(Game)
	if !ok {
		t.Fatalf("holder type = %T, want Game", h)
	}
	if g.Snapshot().State != game.StateRunning {
		t.Fatalf("state = %s, want %s", g.Snapshot().State, game.StateRunning)
	}
}

func TestNewScoreHolder(t *testing.T) {
	h, err := New(KindScore, Params{FinalScore: 7})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	s, ok := h.(Score)
	if !ok {
		t.Fatalf("holder type = %T, want Score", h)
	}
	if s.Score() != 7 {
		t.Fatalf("score = %d, want 7", s.Score())
	}
	h.Close()
}

func TestNewUnsupportedKind(t *testing.T) {
	h, err := New(Kind("lobby"), Params{})
	if !errors.Is(err, ErrUnsupportedKind) {
		t.Fatalf("err = %v, want %v", err, ErrUnsupportedKind)
	}
	if h != nil {
		t.Fatalf("holder = %v, want nil", h)
	}
}

func TestNewGameHolderPropagatesErrors(t *testing.T) {
	_, err := New(KindGame, Params{GameOptions: []game.Option{
		game.WithClock(clockwork.NewFakeClock()),
		game.WithTimerConfig(game.TimerConfig{}),
	}})
	if !errors.Is(err, game.ErrInvalidTimerConfig) {
		t.Fatalf("err = %v, want %v", err, game.ErrInvalidTimerConfig)
	}
}
