package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearRegressionPerfectLine(t *testing.T) {
	// y = 2x + 5
	pts := []DataPoint{{1, 7}, {2, 9}, {3, 11}, {4, 13}, {5, 15}}
	reg := LinearRegression(pts)

	assert.InDelta(t, 2.0, reg.Slope, 1e-10)
	assert.InDelta(t, 5.0, reg.Intercept, 1e-10)
	assert.InDelta(t, 1.0, reg.RSquared, 1e-10)
}

func TestLinearRegressionVerticalPoints(t *testing.T) {
	// All x identical: no fit possible, flat line through mean(y).
	pts := []DataPoint{{5, 10}, {5, 15}, {5, 20}}
	reg := LinearRegression(pts)

	assert.Zero(t, reg.Slope)
	assert.InDelta(t, 15.0, reg.Intercept, 1e-10)
	assert.Zero(t, reg.RSquared)
}

func TestLinearRegressionEmpty(t *testing.T) {
	reg := LinearRegression(nil)
	assert.Zero(t, reg.Slope)
	assert.Zero(t, reg.Intercept)
	assert.Zero(t, reg.RSquared)
}

func TestLinearRegressionNoisyFit(t *testing.T) {
	pts := []DataPoint{{1, 2.1}, {2, 3.9}, {3, 6.2}, {4, 7.8}, {5, 10.1}}
	reg := LinearRegression(pts)

	assert.InDelta(t, 2.0, reg.Slope, 0.1)
	assert.Greater(t, reg.RSquared, 0.99)
	assert.LessOrEqual(t, reg.RSquared, 1.0)
}

func TestMovingAverage(t *testing.T) {
	in := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	out := MovingAverage(in, 3)
	assert.Equal(t, []float64{2, 3, 4, 5, 6, 7, 8, 9}, out)
}

func TestMovingAverageWindowOne(t *testing.T) {
	in := []float64{4, 8, 15}
	assert.Equal(t, in, MovingAverage(in, 1))
}

func TestMovingAverageOversizedWindow(t *testing.T) {
	assert.Empty(t, MovingAverage([]float64{1, 2}, 5))
	assert.Empty(t, MovingAverage([]float64{1, 2}, 0))
	assert.Empty(t, MovingAverage(nil, 3))
}

func TestMeanEmptyReturnsZero(t *testing.T) {
	assert.Zero(t, Mean(nil))
	assert.Zero(t, Mean([]float64{}))
}

func TestMean(t *testing.T) {
	assert.InDelta(t, 3.0, Mean([]float64{1, 2, 3, 4, 5}), 1e-12)
}

func TestMAPEZeroActualPropagatesInfinity(t *testing.T) {
	got := MAPE([]float64{0, 100, 200}, []float64{10, 110, 190})
	assert.True(t, math.IsInf(got, 1))
}

func TestMAPE(t *testing.T) {
	got := MAPE([]float64{100, 200}, []float64{110, 180})
	assert.InDelta(t, 10.0, got, 1e-10) // (10% + 10%) / 2
}

func TestMAPEMismatchedLengths(t *testing.T) {
	assert.True(t, math.IsNaN(MAPE([]float64{1}, []float64{1, 2})))
}

func TestConfidenceIntervalStraddlesEstimate(t *testing.T) {
	iv := ConfidenceInterval(80, IntervalOptions{
		ConfidenceLevel:           0.95,
		ResidualStandardDeviation: 4,
		SampleSize:                20,
	})
	assert.Less(t, iv.Lower, 80.0)
	assert.Greater(t, iv.Upper, 80.0)
}

func TestConfidenceIntervalWidthBehavior(t *testing.T) {
	base := ConfidenceInterval(80, IntervalOptions{ResidualStandardDeviation: 4, SampleSize: 20})
	wider := ConfidenceInterval(80, IntervalOptions{ResidualStandardDeviation: 8, SampleSize: 20})
	narrower := ConfidenceInterval(80, IntervalOptions{ResidualStandardDeviation: 4, SampleSize: 80})

	assert.Greater(t, wider.Upper-wider.Lower, base.Upper-base.Lower)
	assert.Less(t, narrower.Upper-narrower.Lower, base.Upper-base.Lower)
}

func TestConfidenceIntervalZeroDeviationStillOpen(t *testing.T) {
	iv := ConfidenceInterval(50, IntervalOptions{ResidualStandardDeviation: 0, SampleSize: 10})
	assert.Less(t, iv.Lower, 50.0)
	assert.Greater(t, iv.Upper, 50.0)
}

func TestPredictionAccuracy(t *testing.T) {
	actual := []float64{100, 200, 300}
	predicted := []float64{110, 190, 310}

	acc := PredictionAccuracy(actual, predicted)
	require.False(t, math.IsNaN(acc.MAPE))

	assert.InDelta(t, 10.0, acc.MAE, 1e-10)
	assert.InDelta(t, 10.0, acc.RMSE, 1e-10)
	assert.GreaterOrEqual(t, acc.Accuracy, 0.0)
	assert.LessOrEqual(t, acc.Accuracy, 100.0)
}

func TestPredictionAccuracyZeroActualFloorsAccuracy(t *testing.T) {
	acc := PredictionAccuracy([]float64{0, 10}, []float64{1, 11})
	assert.True(t, math.IsInf(acc.MAPE, 1))
	assert.Zero(t, acc.Accuracy)
}
