// Package stats holds the pure numeric primitives behind trend analysis and
// prediction. Everything here is stateless; callers may invoke these from any
// goroutine.
package stats

import (
	"math"

	mstats "github.com/montanaflynn/stats"
)

// DataPoint is a transient (x, y) pair for regression input.
type DataPoint struct {
	X float64
	Y float64
}

// Regression is an ordinary-least-squares fit of y = Slope*x + Intercept.
type Regression struct {
	Slope     float64
	Intercept float64
	RSquared  float64
}

// LinearRegression fits OLS over the given points. When all x-values are
// identical there is no slope to fit: the result is a flat line through
// mean(y) with RSquared 0.
func LinearRegression(points []DataPoint) Regression {
	n := float64(len(points))
	if n == 0 {
		return Regression{}
	}

	var sumX, sumY, sumXY, sumX2 float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
		sumXY += p.X * p.Y
		sumX2 += p.X * p.X
	}

	denom := n*sumX2 - sumX*sumX
	if math.Abs(denom) < 1e-10 {
		return Regression{Slope: 0, Intercept: sumY / n, RSquared: 0}
	}

	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	meanY := sumY / n
	var ssTot, ssRes float64
	for _, p := range points {
		fit := slope*p.X + intercept
		ssTot += (p.Y - meanY) * (p.Y - meanY)
		ssRes += (p.Y - fit) * (p.Y - fit)
	}

	r2 := 0.0
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}
	return Regression{Slope: slope, Intercept: intercept, RSquared: r2}
}

// MovingAverage returns the arithmetic mean of each contiguous window.
// Output length is len(values)-window+1. A window of 1 echoes the input.
// A non-positive window, or one larger than the series, returns an empty
// slice rather than panicking.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 0 || window > len(values) {
		return []float64{}
	}

	out := make([]float64, 0, len(values)-window+1)
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out
}

// Mean returns 0 (not NaN) for an empty series.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m, err := mstats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}

// StdDev returns the population standard deviation, 0 for empty input.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sd, err := mstats.StandardDeviationPopulation(values)
	if err != nil {
		return 0
	}
	return sd
}

// MAPE is the mean absolute percentage error on a 0-100+ scale. A zero
// anywhere in actual makes that term's percentage error infinite, and the
// aggregate deliberately propagates +Inf rather than masking it with a
// finite number.
func MAPE(actual, predicted []float64) float64 {
	n := len(actual)
	if n == 0 || n != len(predicted) {
		return math.NaN()
	}

	var sum float64
	for i := 0; i < n; i++ {
		if actual[i] == 0 {
			return math.Inf(1)
		}
		sum += math.Abs((actual[i] - predicted[i]) / actual[i])
	}
	return sum / float64(n) * 100
}

// IntervalOptions parameterize ConfidenceInterval.
type IntervalOptions struct {
	ConfidenceLevel           float64 // e.g. 0.95; defaults to 0.95 when 0
	ResidualStandardDeviation float64
	SampleSize                int
}

// Interval is a band around a point estimate, Lower < estimate < Upper.
type Interval struct {
	Upper float64
	Lower float64
}

// zValue approximates the two-sided normal quantile for the common
// confidence levels; anything unrecognized falls back to 95%.
func zValue(level float64) float64 {
	switch {
	case level >= 0.99:
		return 2.576
	case level >= 0.98:
		return 2.326
	case level >= 0.95:
		return 1.960
	case level >= 0.90:
		return 1.645
	case level >= 0.80:
		return 1.282
	default:
		return 1.960
	}
}

// ConfidenceInterval builds a normal-approximation band around point.
// Width grows with the residual standard deviation and shrinks with the
// sample size. The band always strictly straddles the estimate.
func ConfidenceInterval(point float64, opts IntervalOptions) Interval {
	level := opts.ConfidenceLevel
	if level <= 0 || level >= 1 {
		level = 0.95
	}
	n := opts.SampleSize
	if n < 1 {
		n = 1
	}
	sd := opts.ResidualStandardDeviation
	if sd < 0 {
		sd = -sd
	}

	margin := zValue(level) * sd / math.Sqrt(float64(n))
	if margin <= 0 {
		// Degenerate fit: keep the band strictly open around the estimate.
		margin = math.Max(math.Abs(point)*1e-6, 1e-6)
	}
	return Interval{Upper: point + margin, Lower: point - margin}
}

// Accuracy summarizes how well predicted tracks actual.
type Accuracy struct {
	MAPE     float64
	RMSE     float64
	MAE      float64
	Accuracy float64 // bounded complement of MAPE, higher is better
}

// PredictionAccuracy compares equal-length series. Accuracy stays within
// [0,100] for well-behaved inputs; a MAPE of +Inf floors it at 0.
func PredictionAccuracy(actual, predicted []float64) Accuracy {
	n := len(actual)
	if n == 0 || n != len(predicted) {
		return Accuracy{MAPE: math.NaN(), RMSE: math.NaN(), MAE: math.NaN()}
	}

	var sqSum, absSum float64
	for i := 0; i < n; i++ {
		d := actual[i] - predicted[i]
		sqSum += d * d
		absSum += math.Abs(d)
	}

	mape := MAPE(actual, predicted)
	acc := 100 - mape
	if math.IsNaN(acc) || acc < 0 {
		acc = 0
	} else if acc > 100 {
		acc = 100
	}

	return Accuracy{
		MAPE:     mape,
		RMSE:     math.Sqrt(sqSum / float64(n)),
		MAE:      absSum / float64(n),
		Accuracy: acc,
	}
}
