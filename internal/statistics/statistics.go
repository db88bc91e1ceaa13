// Package statistics accumulates running moments of per-board outcomes.
package statistics

import (
	"math"
)

// Accumulator tracks count, sum and sum of squares so mean and variance
// can be read at any time without storing the samples.
type Accumulator struct {
	N     uint64
	Sum   float64
	SumSq float64
}

// Add records one observation.
func (a *Accumulator) Add(x float64) {
	a.AddN(x, 1)
}

// AddN records n observations of the same value.
func (a *Accumulator) AddN(x float64, n uint64) {
	a.N += n
	a.Sum += x * float64(n)
	a.SumSq += x * x * float64(n)
}

// Merge folds o into a.
func (a *Accumulator) Merge(o Accumulator) {
	a.N += o.N
	a.Sum += o.Sum
	a.SumSq += o.SumSq
}

// Mean returns the arithmetic mean
func (a *Accumulator) Mean() float64 {
	if a.N == 0 {
		return 0
	}
	return a.Sum / float64(a.N)
}

// Variance returns the sample variance
func (a *Accumulator) Variance() float64 {
	if a.N < 2 {
		return 0
	}
	mean := a.Mean()
	v := (a.SumSq - float64(a.N)*mean*mean) / float64(a.N-1)
	// Rounding can push a zero variance slightly negative.
	return max(v, 0)
}

// StdDev returns the sample standard deviation
func (a *Accumulator) StdDev() float64 {
	return math.Sqrt(a.Variance())
}

// StdError returns the standard error of the mean
func (a *Accumulator) StdError() float64 {
	if a.N == 0 {
		return 0
	}
	return a.StdDev() / math.Sqrt(float64(a.N))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (a *Accumulator) ConfidenceInterval95() (float64, float64) {
	mean := a.Mean()
	margin := 1.96 * a.StdError()
	return mean - margin, mean + margin
}
