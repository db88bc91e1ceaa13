// Package batch computes preflop results for many matchups, enumerating
// each suit-isomorphism orbit once and storing the outcome.
package batch

import (
	"context"
	"fmt"
	"io"
	"iter"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pokerequity/internal/equity"
	"github.com/lox/pokerequity/internal/matchup"
	"github.com/lox/pokerequity/internal/store"
	"github.com/lox/pokerequity/poker"
)

// Enumerator is the part of the equity engine the runner needs.
type Enumerator interface {
	Run(ctx context.Context, req equity.Request) (*equity.Result, error)
}

// Failure records a matchup that could not be computed or stored.
type Failure struct {
	Matchup matchup.SortedHeadsUp
	Err     error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Matchup.ID(), f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Report holds exact counts for a run. Every distinct matchup ends up in
// exactly one of Skipped, Computed or Failed, unless the run was stopped.
type Report struct {
	Total    int
	Distinct int
	Skipped  int
	Computed int
	Failed   int
	Errors   []Failure
}

// Options configure a Runner.
type Options struct {
	Classifier *matchup.Classifier
	Engine     Enumerator
	Store      store.Store
	Logger     *log.Logger
	Clock      quartz.Clock
	// Limit caps the number of enumerations per run. Zero means no cap;
	// matchups beyond the cap are left for a later run.
	Limit int
	// ProgressEvery logs progress after this many processed matchups.
	ProgressEvery int
}

// Runner drives batch computation.
type Runner struct {
	opts Options
}

// NewRunner checks opts and fills defaults.
func NewRunner(opts Options) (*Runner, error) {
	if opts.Engine == nil {
		return nil, fmt.Errorf("batch runner needs an engine")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("batch runner needs a store")
	}
	if opts.Classifier == nil {
		opts.Classifier = matchup.NewClassifier()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = 1000
	}
	return &Runner{opts: opts}, nil
}

// Run reduces matchups to one representative per orbit, skips orbits
// already stored and enumerates the rest preflop. Results are stored
// under each orbit's canonical matchup. A cancelled context
// stops the run and returns the report so far with the context error.
func (r *Runner) Run(ctx context.Context, matchups iter.Seq[matchup.SortedHeadsUp]) (Report, error) {
	var rep Report
	counted := func(yield func(matchup.SortedHeadsUp) bool) {
		for m := range matchups {
			rep.Total++
			if !yield(m) {
				return
			}
		}
	}
	reps := r.opts.Classifier.Distinct(counted)
	rep.Distinct = len(reps)

	start := r.opts.Clock.Now()
	logger := r.opts.Logger
	logger.Info("starting batch", "matchups", rep.Total, "distinct", rep.Distinct)

	for i, m := range reps {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if r.opts.Limit > 0 && rep.Computed+rep.Failed >= r.opts.Limit {
			logger.Info("enumeration limit reached", "limit", r.opts.Limit, "remaining", len(reps)-i)
			break
		}

		// Orbits are stored under their canonical member.
		canon := m.Canonical()
		has, err := r.opts.Store.Has(ctx, canon)
		switch {
		case err != nil:
			rep.fail(canon, fmt.Errorf("checking store: %w", err))
		case has:
			rep.Skipped++
		default:
			if err := r.compute(ctx, canon); err != nil {
				if ctx.Err() != nil {
					return rep, ctx.Err()
				}
				rep.fail(canon, err)
				logger.Warn("matchup failed", "matchup", canon.ID(), "error", err)
			} else {
				rep.Computed++
			}
		}

		if (i+1)%r.opts.ProgressEvery == 0 {
			logger.Info("batch progress", "processed", i+1, "of", rep.Distinct,
				"computed", rep.Computed, "skipped", rep.Skipped, "failed", rep.Failed)
		}
	}

	logger.Info("batch complete", "computed", rep.Computed, "skipped", rep.Skipped,
		"failed", rep.Failed, "elapsed", r.opts.Clock.Since(start))
	return rep, nil
}

func (r *Runner) compute(ctx context.Context, m matchup.SortedHeadsUp) error {
	res, err := r.opts.Engine.Run(ctx, equity.Request{Hands: []poker.Two{m.Higher, m.Lower}})
	if err != nil {
		return fmt.Errorf("enumerating: %w", err)
	}
	rec := store.Record{
		Matchup:    m,
		HigherWins: res.Wins[1],
		LowerWins:  res.Wins[2],
		Ties:       res.Wins[3],
	}
	if err := r.opts.Store.Put(ctx, rec); err != nil {
		return fmt.Errorf("storing: %w", err)
	}
	return nil
}

func (rep *Report) fail(m matchup.SortedHeadsUp, err error) {
	rep.Failed++
	rep.Errors = append(rep.Errors, Failure{Matchup: m, Err: err})
}
