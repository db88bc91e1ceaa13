package rankcache

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pokerequity/internal/combin"
	"github.com/lox/pokerequity/poker"
	"golang.org/x/sync/errgroup"
)

// BuildOptions controls cache generation.
type BuildOptions struct {
	// Sizes lists the card set sizes to enumerate, each 5 or 7.
	Sizes []int
	// Workers bounds the goroutines evaluating chunks. Zero means GOMAXPROCS.
	Workers int
	// Chunks is the number of index ranges per size. Zero means 4 per worker.
	Chunks int
	Logger *log.Logger
	Clock  quartz.Clock
}

// Build enumerates every combination of each requested size drawn from
// deck, evaluates it and freezes the result. deck may be the full 52 card
// deck or any subset of it.
func Build(ctx context.Context, ev *poker.Evaluator, deck []poker.Card, opts BuildOptions) (*Cache, error) {
	if err := validateDeck(deck); err != nil {
		return nil, err
	}
	if len(opts.Sizes) == 0 {
		return nil, fmt.Errorf("no card set sizes requested")
	}
	for _, k := range opts.Sizes {
		if k != 5 && k != 7 {
			return nil, fmt.Errorf("unsupported card set size %d: want 5 or 7", k)
		}
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Chunks <= 0 {
		opts.Chunks = opts.Workers * 4
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}

	b := NewBuilder()
	for _, k := range opts.Sizes {
		start := opts.Clock.Now()
		total := combin.Count(len(deck), k)
		if err := buildSize(ctx, ev, deck, k, opts, b); err != nil {
			return nil, err
		}
		opts.Logger.Info("enumerated card sets", "size", k, "combinations", total, "elapsed", opts.Clock.Since(start))
	}

	start := opts.Clock.Now()
	c, err := b.Freeze()
	if err != nil {
		return nil, err
	}
	opts.Logger.Info("froze rank cache", "entries", c.Len(), "elapsed", opts.Clock.Since(start))
	return c, nil
}

func buildSize(ctx context.Context, ev *poker.Evaluator, deck []poker.Card, k int, opts BuildOptions, b *Builder) error {
	ranges := combin.Split(combin.Count(len(deck), k), opts.Chunks)
	results := make(chan []Entry, opts.Workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	// The producer loop runs in its own goroutine so the consumer below can
	// drain results while chunks are still being scheduled.
	producers := make(chan error, 1)
	go func() {
		for _, r := range ranges {
			g.Go(func() error {
				entries, err := evaluateRange(gctx, ev, deck, k, r)
				if err != nil {
					return err
				}
				select {
				case results <- entries:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
		}
		producers <- g.Wait()
		close(results)
	}()

	var addErr error
	for entries := range results {
		if addErr != nil {
			continue
		}
		for _, e := range entries {
			if err := b.Add(e); err != nil {
				addErr = err
				break
			}
		}
	}
	if err := <-producers; err != nil {
		return err
	}
	return addErr
}

func evaluateRange(ctx context.Context, ev *poker.Evaluator, deck []poker.Card, k int, r combin.Range) ([]Entry, error) {
	idx := make([]int, k)
	if err := combin.Unrank(r.Start, len(deck), idx); err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, r.Len())
	for n := r.Start; n < r.End; n++ {
		if (n-r.Start)&0xFFF == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		entries = append(entries, evaluateCombo(ev, deck, idx))
		combin.Next(idx, len(deck))
	}
	return entries, nil
}

func evaluateCombo(ev *poker.Evaluator, deck []poker.Card, idx []int) Entry {
	if len(idx) == 5 {
		v := ev.Rank5(deck[idx[0]], deck[idx[1]], deck[idx[2]], deck[idx[3]], deck[idx[4]])
		key := poker.BardOf(deck[idx[0]], deck[idx[1]], deck[idx[2]], deck[idx[3]], deck[idx[4]])
		return Entry{Key: key, Best: key, Value: v}
	}
	var cards [7]poker.Card
	for i, j := range idx {
		cards[i] = deck[j]
	}
	seven, _ := poker.NewGroup[[7]poker.Card](cards[:]...)
	rank, five := ev.Best7(seven)
	return Entry{Key: seven.Bard(), Best: five.Bard(), Value: rank.Value}
}

func validateDeck(deck []poker.Card) error {
	var seen poker.Bard
	for i, c := range deck {
		if !c.Valid() {
			return fmt.Errorf("deck position %d: %w", i+1, poker.ErrBlankCard)
		}
		if seen.Has(c) {
			return fmt.Errorf("deck: %w: %s", poker.ErrDuplicateCard, c)
		}
		seen = seen.Add(c)
	}
	return nil
}
