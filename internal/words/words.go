// internal/words/words.go
//
// Word supply for a round.
//
// Responsibilities:
//   - Load the fixed source set from the embedded assets exactly once.
//   - Provide Queue, an in-place shuffled queue of those words that refills
//     itself whenever it runs dry.
//
// The source set is not configurable; every Queue draws from the same list.

package words

import (
	"errors"
	"math/rand/v2"
	"sync"

	"github.com/robalobadob/guesstheword/apps/go-server/assets"
)

// ErrEmptySource is returned when the embedded word list has no usable entries.
var ErrEmptySource = errors.New("words: source list is empty")

var (
	initOnce   sync.Once
	source     []string
	initialErr error
)

// Init loads the source list exactly once.
func Init() error {
	initOnce.Do(func() {
		list, err := assets.WordList()
		if err != nil {
			initialErr = err
			return
		}
		for _, w := range list {
			if isAlpha(w) {
				source = append(source, w)
			}
		}
		if len(source) == 0 {
			initialErr = ErrEmptySource
		}
	})
	return initialErr
}

// Source returns a copy of the source list.
func Source() []string {
	_ = Init()
	return append([]string(nil), source...)
}

// Shuffler permutes n elements through swap, with the signature of rand.Shuffle.
type Shuffler func(n int, swap func(i, j int))

// Queue holds the words left to play; the front is the next word.
// It is not safe for concurrent use; the owning session serialises access.
type Queue struct {
	words   []string
	shuffle Shuffler
	refills int
}

// Option configures a Queue.
type Option func(*Queue)

// WithShuffler replaces the default uniform shuffle.
func WithShuffler(s Shuffler) Option {
	return func(q *Queue) {
		if s != nil {
			q.shuffle = s
		}
	}
}

// NewQueue returns a freshly reset queue.
func NewQueue(opts ...Option) (*Queue, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	q := &Queue{shuffle: rand.Shuffle}
	for _, o := range opts {
		o(q)
	}
	q.Reset()
	return q, nil
}

// Reset refills the queue with the whole source set and shuffles it.
func (q *Queue) Reset() {
	q.words = append(q.words[:0], source...)
	q.shuffle(len(q.words), func(i, j int) {
		q.words[i], q.words[j] = q.words[j], q.words[i]
	})
	q.refills++
}

// Next removes and returns the front word, resetting first when empty.
func (q *Queue) Next() string {
	if len(q.words) == 0 {
		q.Reset()
	}
	w := q.words[0]
	q.words = q.words[1:]
	return w
}

// Len reports how many words remain before the next refill.
func (q *Queue) Len() int { return len(q.words) }

// Refills counts resets, including the initial one.
func (q *Queue) Refills() int { return q.refills }

// isAlpha reports whether s is a non-empty run of lowercase ASCII letters.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
