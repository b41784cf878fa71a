// internal/holder/holder.go
//
// Construction of session holders.
//
// A holder is the server-side state behind one client screen: a running
// round (KindGame) or a results screen (KindScore). New dispatches on the
// requested kind and fails fast with ErrUnsupportedKind for anything else.

package holder

import (
	"errors"
	"fmt"

	"github.com/robalobadob/guesstheword/apps/go-server/internal/game"
	"github.com/robalobadob/guesstheword/apps/go-server/internal/score"
)

// ErrUnsupportedKind is returned for a kind New does not know how to build.
var ErrUnsupportedKind = errors.New("unsupported holder kind")

// Kind names a holder variant.
type Kind string

const (
	KindGame  Kind = "game"
	KindScore Kind = "score"
)

// Holder is implemented by every variant.
type Holder interface {
	ID() string
	Kind() Kind
	// Close releases resources; the game variant cancels its timer.
	Close()
}

// Params carries construction inputs. FinalScore is used by KindScore,
// GameOptions by KindGame.
type Params struct {
	ID          string
	FinalScore  int
	GameOptions []game.Option
}

// Game wraps a round session.
type Game struct{ *game.Session }

func (Game) Kind() Kind { return KindGame }

// Score wraps a results session.
type Score struct{ *score.Session }

func (Score) Kind() Kind { return KindScore }

// Close is a no-op; a score session owns no resources.
func (Score) Close() {}

// New builds the holder for kind.
func New(kind Kind, p Params) (Holder, error) {
	switch kind {
	case KindGame:
		opts := p.GameOptions
		if p.ID != "" {
			opts = append([]game.Option{game.WithID(p.ID)}, opts...)
		}
		s, err := game.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("new game: %w", err)
		}
		return Game{s}, nil
	case KindScore:
		return Score{score.New(p.ID, p.FinalScore)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, string(kind))
	}
}
