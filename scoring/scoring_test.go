package scoring

import (
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZScore100(t *testing.T) {
	// z = 0.5 maps to ((0.5+3)/6)*100
	assert.InDelta(t, 58.33, ZScore100(75, 70, 10), 0.01)
	assert.InDelta(t, 50, ZScore100(70, 70, 10), 1e-10)
}

func TestZScore100ZeroStdDev(t *testing.T) {
	assert.Equal(t, DefaultScore, ZScore100(75, 70, 0))
}

func TestZScore100Clamps(t *testing.T) {
	assert.Equal(t, 100.0, ZScore100(1000, 70, 10))
	assert.Equal(t, 0.0, ZScore100(-1000, 70, 10))
	assert.Equal(t, 100.0, ZScore100(math.Inf(1), 70, 10))
	assert.Equal(t, 0.0, ZScore100(math.Inf(-1), 70, 10))
	assert.Equal(t, DefaultScore, ZScore100(math.NaN(), 70, 10))
}

func TestNormalizeToPercentage(t *testing.T) {
	assert.InDelta(t, 50, NormalizeToPercentage(50, 0, 100, true), 1e-10)
	assert.InDelta(t, 50, NormalizeToPercentage(50, 0, 100, false), 1e-10)
	assert.InDelta(t, 75, NormalizeToPercentage(25, 0, 100, false), 1e-10)
	assert.Equal(t, 100.0, NormalizeToPercentage(500, 0, 100, true))
	assert.Equal(t, 0.0, NormalizeToPercentage(-5, 0, 100, true))
}

func TestNormalizeToPercentageZeroWidthRange(t *testing.T) {
	assert.Equal(t, DefaultScore, NormalizeToPercentage(42, 10, 10, true))
}

func TestScoreMetricAlwaysFiniteAndClamped(t *testing.T) {
	values := []float64{math.NaN(), math.Inf(1), math.Inf(-1), -1e12, 1e12, 0, 75}
	systems := []System{SystemPercentage, SystemZScore, SystemCustom}

	for _, metric := range MetricTypes {
		for _, sys := range systems {
			for _, v := range values {
				score := ScoreMetric(metric, v, sys, nil, nil)
				require.Falsef(t, math.IsNaN(score) || math.IsInf(score, 0),
					"non-finite score for %s/%s value %v", metric, sys, v)
				require.GreaterOrEqual(t, score, 0.0)
				require.LessOrEqual(t, score, 100.0)
			}
		}
	}
}

func TestScoreMetricOptimalBandScoresFull(t *testing.T) {
	assert.Equal(t, 100.0, ScoreMetric(MetricSleep, 8, SystemPercentage, nil, nil))
	assert.Equal(t, 100.0, ScoreMetric(MetricHeartRate, 65, SystemPercentage, nil, nil))
}

func TestScoreMetricStepsMonotonic(t *testing.T) {
	low := ScoreMetric(MetricSteps, 2000, SystemPercentage, nil, nil)
	high := ScoreMetric(MetricSteps, 11000, SystemPercentage, nil, nil)
	assert.Greater(t, high, low)
}

func TestScoreMetricZScoreOverride(t *testing.T) {
	got := ScoreMetric(MetricWeight, 75, SystemZScore, nil, &Stats{Mean: 70, StdDev: 10})
	assert.InDelta(t, 58.33, got, 0.01)
}

func TestScoreMetricCustomUsesPersonalGoal(t *testing.T) {
	p := &Profile{Goals: map[string]float64{MetricSteps: 10000}}
	assert.InDelta(t, 80, ScoreMetric(MetricSteps, 8000, SystemCustom, p, nil), 1e-10)
	// Over-achievement clamps at 100.
	assert.Equal(t, 100.0, ScoreMetric(MetricSteps, 15000, SystemCustom, p, nil))
}

func TestMetricRangesPersonalization(t *testing.T) {
	base := MetricRanges(MetricSteps, nil)
	p := &Profile{Goals: map[string]float64{MetricSteps: 20000}}
	personalized := MetricRanges(MetricSteps, p)

	assert.Equal(t, 20000.0, personalized.Optimal.Max)
	assert.Greater(t, personalized.Typical.Max, base.Typical.Max)
	assert.Equal(t, base.Unit, personalized.Unit)
}

func TestMetricRangesUnknownSlug(t *testing.T) {
	r := MetricRanges("squat_1rm", nil)
	assert.Greater(t, r.Typical.Max, r.Typical.Min)
	assert.False(t, KnownMetric("squat_1rm"))
}

var hexColor = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func TestScoreColorHandlesOutOfRange(t *testing.T) {
	scores := []float64{-10, 0, 25, 45, 65, 85, 100, 150, math.NaN(), math.Inf(1), math.Inf(-1)}
	for _, s := range scores {
		c := ScoreColor(s)
		assert.Regexpf(t, hexColor, c, "score %v", s)
	}
	assert.Equal(t, ColorPoor, ScoreColor(-10))
	assert.Equal(t, ColorExcellent, ScoreColor(150))
	assert.Equal(t, ColorExcellent, ScoreColor(math.Inf(1)))
	assert.Equal(t, ColorPoor, ScoreColor(math.Inf(-1)))
}

func TestScoreLabelBands(t *testing.T) {
	assert.Equal(t, "poor", ScoreLabel(10))
	assert.Equal(t, "fair", ScoreLabel(45))
	assert.Equal(t, "good", ScoreLabel(65))
	assert.Equal(t, "excellent", ScoreLabel(92))
}

func TestAggregateRadarUsesMostRecentSample(t *testing.T) {
	now := time.Now()
	sets := map[string][]Sample{
		MetricSteps: {
			{Date: now.Add(-48 * time.Hour), Value: 2000},
			{Date: now, Value: 11000},
			{Date: now.Add(-24 * time.Hour), Value: 5000},
		},
		MetricSleep: {},
	}

	out := AggregateRadar(sets, SystemPercentage, nil)
	require.Len(t, out, 1) // empty sleep set omitted
	assert.Equal(t, MetricSteps, out[0].Metric)
	assert.Equal(t, 11000.0, out[0].Value)
	assert.Equal(t, ScoreColor(out[0].Score), out[0].Color)
}
