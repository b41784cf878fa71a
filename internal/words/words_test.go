package words

import (
	"sort"
	"testing"
)

func noShuffle(int, func(i, j int)) {}

func TestSourceIsTheFixedNounList(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	got := Source()
	if len(got) != 21 {
		t.Fatalf("source size = %d, want %d", len(got), 21)
	}
	if got[0] != "queen" || got[len(got)-1] != "bubble" {
		t.Fatalf("source ends = %q..%q, want %q..%q", got[0], got[len(got)-1], "queen", "bubble")
	}
	got[0] = "mutated"
	if Source()[0] != "queen" {
		t.Fatal("Source returned a shared slice")
	}
}

func TestNextDrainsInOrderThenRefills(t *testing.T) {
	q, err := NewQueue(WithShuffler(noShuffle))
	if err != nil {
		t.Fatalf("new queue: %v", err)
	}
	src := Source()
	for i, want := range src {
		if got := q.Next(); got != want {
			t.Fatalf("draw %d = %q, want %q", i, got, want)
		}
	}
	if q.Len() != 0 {
		t.Fatalf("len after full drain = %d, want 0", q.Len())
	}
	if q.Refills() != 1 {
		t.Fatalf("refills before auto reset = %d, want 1", q.Refills())
	}
	if got := q.Next(); got != src[0] {
		t.Fatalf("first word after refill = %q, want %q", got, src[0])
	}
	if q.Refills() != 2 {
		t.Fatalf("refills after auto reset = %d, want 2", q.Refills())
	}
	if q.Len() != len(src)-1 {
		t.Fatalf("len after refill draw = %d, want %d", q.Len(), len(src)-1)
	}
}

func TestShuffledQueueIsAPermutation(t *testing.T) {
	q, err := NewQueue()
	if err != nil {
		t.Fatalf("new queue: %v", err)
	}
	src := Source()
	var drawn []string
	for range src {
		drawn = append(drawn, q.Next())
	}
	sort.Strings(src)
	sort.Strings(drawn)
	for i := range src {
		if drawn[i] != src[i] {
			t.Fatalf("drawn[%d] = %q, want %q", i, drawn[i], src[i])
		}
	}
}

func TestResetRestoresFullSet(t *testing.T) {
	q, err := NewQueue(WithShuffler(noShuffle))
	if err != nil {
		t.Fatalf("new queue: %v", err)
	}
	q.Next()
	q.Next()
	q.Reset()
	if q.Len() != len(Source()) {
		t.Fatalf("len after reset = %d, want %d", q.Len(), len(Source()))
	}
}

func TestCustomShufflerIsUsed(t *testing.T) {
	reverse := func(n int, swap func(i, j int)) {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			swap(i, j)
		}
	}
	q, err := NewQueue(WithShuffler(reverse))
	if err != nil {
		t.Fatalf("new queue: %v", err)
	}
	if got := q.Next(); got != "bubble" {
		t.Fatalf("first word = %q, want %q", got, "bubble")
	}
}

func TestIsAlpha(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"queen", true},
		{"", false},
		{"two words", false},
		{"Queen", false},
	}
	for _, tt := range tests {
		if got := isAlpha(tt.in); got != tt.want {
			t.Fatalf("isAlpha(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
