package equity

import (
	"time"

	"github.com/lox/pokerequity/internal/statistics"
	"github.com/lox/pokerequity/poker"
)

// Stats summarises one player's results. Ties counts boards the player
// split; Equity credits a k-way split as 1/k of a win.
type Stats struct {
	Wins   uint64
	Ties   uint64
	Losses uint64
	Equity float64
}

// Result is the outcome of an enumeration.
type Result struct {
	Hands   []poker.Two
	Board   []poker.Card
	Wins    Wins
	Total   uint64
	Players []Stats
	// Exhaustive is false for sampled results.
	Exhaustive bool
	Duration   time.Duration
}

func newResult(req Request, wins Wins, exhaustive bool, d time.Duration) *Result {
	r := &Result{
		Hands:      req.Hands,
		Board:      req.Board,
		Wins:       wins,
		Total:      wins.Total(),
		Players:    make([]Stats, len(req.Hands)),
		Exhaustive: exhaustive,
		Duration:   d,
	}
	shares := make([]float64, len(req.Hands))
	for w, n := range wins {
		k := w.Players()
		for i := range r.Players {
			if !w.Has(i) {
				continue
			}
			if k == 1 {
				r.Players[i].Wins += n
			} else {
				r.Players[i].Ties += n
			}
			shares[i] += float64(n) / float64(k)
		}
	}
	for i := range r.Players {
		p := &r.Players[i]
		p.Losses = r.Total - p.Wins - p.Ties
		if r.Total > 0 {
			p.Equity = shares[i] / float64(r.Total)
		}
	}
	return r
}

// Ties returns the number of boards split between two or more players.
func (r *Result) Ties() uint64 {
	var n uint64
	for w, c := range r.Wins {
		if w.Tie() {
			n += c
		}
	}
	return n
}

// WinPercent returns player i's outright wins as a percentage of boards.
func (r *Result) WinPercent(i int) float64 {
	if r.Total == 0 {
		return 0
	}
	return 100 * float64(r.Players[i].Wins) / float64(r.Total)
}

// TiePercent returns player i's split boards as a percentage.
func (r *Result) TiePercent(i int) float64 {
	if r.Total == 0 {
		return 0
	}
	return 100 * float64(r.Players[i].Ties) / float64(r.Total)
}

// Share returns the running moments of player i's per-board share: 1 for
// an outright win, 1/k for a k-way split, 0 for a loss. Its mean is the
// player's equity.
func (r *Result) Share(i int) statistics.Accumulator {
	var acc statistics.Accumulator
	for w, n := range r.Wins {
		if w.Has(i) {
			acc.AddN(1/float64(w.Players()), n)
		} else {
			acc.AddN(0, n)
		}
	}
	return acc
}

// EquityInterval returns the 95% confidence interval of player i's
// equity. Exhaustive results are exact and return a zero-width interval.
func (r *Result) EquityInterval(i int) (float64, float64) {
	if r.Exhaustive {
		return r.Players[i].Equity, r.Players[i].Equity
	}
	acc := r.Share(i)
	return acc.ConfidenceInterval95()
}
