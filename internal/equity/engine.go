package equity

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pokerequity/internal/combin"
	"github.com/lox/pokerequity/internal/randutil"
	"github.com/lox/pokerequity/poker"
	"golang.org/x/sync/errgroup"
)

// Ranker resolves the value of a seven card hand. A *rankcache.Ranker and
// the evaluator returned by Direct both satisfy it.
type Ranker interface {
	Rank7(cards [7]poker.Card) (poker.HandRankValue, error)
}

type directRanker struct {
	ev *poker.Evaluator
}

func (d directRanker) Rank7(cards [7]poker.Card) (poker.HandRankValue, error) {
	return d.ev.Evaluate7(cards), nil
}

// Direct ranks every hand with the evaluator.
func Direct(ev *poker.Evaluator) Ranker {
	return directRanker{ev: ev}
}

// Options configure an Engine.
type Options struct {
	// Ranker defaults to Direct(poker.NewEvaluator()).
	Ranker Ranker
	// Workers bounds concurrent chunk evaluation. Zero means GOMAXPROCS;
	// one makes Run sequential.
	Workers int
	// Chunks is the number of contiguous index ranges the board space is
	// split into. Zero means 8 per worker.
	Chunks int
	Logger *log.Logger
	Clock  quartz.Clock
}

// Engine enumerates board completions. It holds no per-run state and may
// serve concurrent runs.
type Engine struct {
	ranker  Ranker
	workers int
	chunks  int
	logger  *log.Logger
	clock   quartz.Clock
}

// NewEngine applies defaults to opts.
func NewEngine(opts Options) *Engine {
	if opts.Ranker == nil {
		opts.Ranker = Direct(poker.NewEvaluator())
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Chunks <= 0 {
		opts.Chunks = opts.Workers * 8
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	return &Engine{
		ranker:  opts.Ranker,
		workers: opts.Workers,
		chunks:  opts.Chunks,
		logger:  opts.Logger,
		clock:   opts.Clock,
	}
}

// Run enumerates req concurrently, or sequentially with a single worker.
func (e *Engine) Run(ctx context.Context, req Request) (*Result, error) {
	if e.workers == 1 {
		return e.RunSequential(ctx, req)
	}
	return e.RunConcurrent(ctx, req)
}

// RunSequential walks every completion on the calling goroutine.
func (e *Engine) RunSequential(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start := e.clock.Now()
	s := newSpace(req)
	wins := make(Wins)
	if err := s.walk(ctx, e.ranker, combin.Range{Start: 0, End: s.total}, wins); err != nil {
		return nil, err
	}
	res := newResult(req, wins, true, e.clock.Since(start))
	e.logger.Debug("enumeration complete", "mode", "sequential", "boards", res.Total, "duration", res.Duration)
	return res, nil
}

// RunConcurrent splits the completion index space into chunks evaluated
// by a bounded pool. Each chunk sends its tally to a single aggregator.
// The first failing chunk cancels the rest and fails the run.
func (e *Engine) RunConcurrent(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start := e.clock.Now()
	s := newSpace(req)
	ranges := combin.Split(s.total, e.chunks)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	tallies := make(chan Wins, e.workers)

	done := make(chan error, 1)
	go func() {
		for _, r := range ranges {
			g.Go(func() error {
				local := make(Wins)
				if err := s.walk(gctx, e.ranker, r, local); err != nil {
					return err
				}
				select {
				case tallies <- local:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
		}
		done <- g.Wait()
		close(tallies)
	}()

	wins := make(Wins)
	for local := range tallies {
		wins.Add(local)
	}
	if err := <-done; err != nil {
		return nil, err
	}
	if got := wins.Total(); got != s.total {
		return nil, fmt.Errorf("aggregated %d boards, expected %d", got, s.total)
	}

	res := newResult(req, wins, true, e.clock.Since(start))
	e.logger.Debug("enumeration complete", "mode", "concurrent", "boards", res.Total,
		"chunks", len(ranges), "workers", e.workers, "duration", res.Duration)
	return res, nil
}

// Sample evaluates n random completions instead of all of them. The same
// seed always produces the same result.
func (e *Engine) Sample(ctx context.Context, req Request, n int, seed int64) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: sample count must be positive, got %d", ErrInvalidRequest, n)
	}
	start := e.clock.Now()
	s := newSpace(req)
	deck := poker.NewDeckOf(randutil.New(seed), s.deck)
	tail := s.boardTail()
	wins := make(Wins)

	for i := 0; i < n; i++ {
		if i&0xFFF == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		deck.Reset()
		deck.DealInto(tail)
		w, err := s.showdown(e.ranker)
		if err != nil {
			return nil, err
		}
		wins[w]++
	}

	res := newResult(req, wins, false, e.clock.Since(start))
	e.logger.Debug("sampling complete", "boards", res.Total, "seed", seed, "duration", res.Duration)
	return res, nil
}
