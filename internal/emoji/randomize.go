package emoji

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/samber/do"
	"github.com/zcutlerf/emojimash/internal/log"
)

type Randomizer struct {
	emojis []string
	rnd    *rand.Rand
}

func NewRandomizer(i *do.Injector) (*Randomizer, error) {
	emojis := do.MustInvokeNamed[[]string](i, "emojis")
	if len(emojis) < 2 {
		return nil, fmt.Errorf("emoji list needs at least two entries, have %d", len(emojis))
	}
	rnd := rand.New(rand.NewSource(time.Now().UTC().Unix()))
	return &Randomizer{emojis, rnd}, nil
}

// Randomize picks two distinct emoji from the configured list.
func (r *Randomizer) Randomize(ctx context.Context) (string, string, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("randomizer")
	log.Info("picking random emoji pair")

	first := r.rnd.Intn(len(r.emojis))
	second := r.rnd.Intn(len(r.emojis) - 1)
	if second >= first {
		second++
	}
	return r.emojis[first], r.emojis[second], nil
}
