package emoji

import (
	"context"
	"math/rand"
	"testing"
)

func newTestRandomizer(emojis []string, seed int64) *Randomizer {
	return &Randomizer{emojis: emojis, rnd: rand.New(rand.NewSource(seed))}
}

func TestRandomize_PicksDistinctPair(t *testing.T) {
	r := newTestRandomizer([]string{"🥹", "😗", "🦊", "🐸"}, 1)

	for n := 0; n < 1000; n++ {
		left, right, err := r.Randomize(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if left == right {
			t.Fatalf("iteration %d: picked the same emoji twice: %s", n, left)
		}
	}
}

func TestRandomize_CoversWholeList(t *testing.T) {
	emojis := []string{"🥹", "😗", "🦊"}
	r := newTestRandomizer(emojis, 2)

	seen := map[string]bool{}
	for n := 0; n < 1000; n++ {
		left, right, err := r.Randomize(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen[left] = true
		seen[right] = true
	}
	for _, e := range emojis {
		if !seen[e] {
			t.Fatalf("emoji %s never picked", e)
		}
	}
}

func TestRandomize_TwoEntryList(t *testing.T) {
	r := newTestRandomizer([]string{"🥹", "😗"}, 3)
	for n := 0; n < 100; n++ {
		left, right, err := r.Randomize(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if left == right {
			t.Fatalf("iteration %d: picked the same emoji twice: %s", n, left)
		}
	}
}
