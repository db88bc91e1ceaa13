package rankcache

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/lox/pokerequity/internal/combin"
	"github.com/lox/pokerequity/poker"
)

// MissPolicy decides what a Ranker does when the cache lacks a card set.
type MissPolicy uint8

const (
	// MissFail surfaces ErrMiss to the caller.
	MissFail MissPolicy = iota
	// MissEvaluate falls back to direct evaluation.
	MissEvaluate
)

func (p MissPolicy) String() string {
	switch p {
	case MissFail:
		return "fail"
	case MissEvaluate:
		return "evaluate"
	default:
		return "unknown"
	}
}

// ParseMissPolicy accepts "fail" or "evaluate".
func ParseMissPolicy(s string) (MissPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fail", "":
		return MissFail, nil
	case "evaluate":
		return MissEvaluate, nil
	default:
		return MissFail, fmt.Errorf("unknown miss policy %q: want fail or evaluate", s)
	}
}

// Ranker resolves seven card hands through the cache, applying a
// MissPolicy on misses. Hit and miss counters are safe to read while
// ranking is in progress.
//
// A hand is resolved by whole-set lookup when the cache holds seven card
// sets. Otherwise, when it holds five card sets, the hand's value is the
// minimum over its 21 five card subsets, and the hand is a hit only if
// every subset is cached.
type Ranker struct {
	cache  *Cache
	policy MissPolicy
	ev     *poker.Evaluator

	hits   atomic.Uint64
	misses atomic.Uint64
}

// subsets7 lists the positions of each five card subset of seven cards.
var subsets7 = combin.All(7, 5)

// NewRanker wraps c. ev is only consulted under MissEvaluate and may be
// nil otherwise.
func NewRanker(c *Cache, policy MissPolicy, ev *poker.Evaluator) (*Ranker, error) {
	if policy == MissEvaluate && ev == nil {
		return nil, fmt.Errorf("miss policy %s needs an evaluator", policy)
	}
	return &Ranker{cache: c, policy: policy, ev: ev}, nil
}

// Rank7 returns the value of seven cards.
func (r *Ranker) Rank7(cards [7]poker.Card) (poker.HandRankValue, error) {
	if v, ok := r.lookup(cards); ok {
		r.hits.Add(1)
		return v, nil
	}
	r.misses.Add(1)
	if r.policy == MissEvaluate {
		return r.ev.Evaluate7(cards), nil
	}
	return 0, fmt.Errorf("%w: %s", ErrMiss, poker.BardOf(cards[:]...))
}

func (r *Ranker) lookup(cards [7]poker.Card) (poker.HandRankValue, bool) {
	if r.cache.Holds(7) > 0 {
		if e, ok := r.cache.Lookup(poker.BardOf(cards[:]...)); ok {
			return e.Value, true
		}
	}
	if r.cache.Holds(5) == 0 {
		return 0, false
	}
	best := poker.HandRankValue(poker.MaxHighCard + 1)
	for _, idx := range subsets7 {
		var key poker.Bard
		for _, i := range idx {
			key = key.Add(cards[i])
		}
		e, ok := r.cache.Lookup(key)
		if !ok {
			return 0, false
		}
		best = min(best, e.Value)
	}
	return best, true
}

// Stats returns the hit and miss counts so far.
func (r *Ranker) Stats() (hits, misses uint64) {
	return r.hits.Load(), r.misses.Load()
}
