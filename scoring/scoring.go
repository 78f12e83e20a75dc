// Package scoring turns raw health measurements into 0-100 dashboard scores.
// Unlike the transform package, nothing in here ever returns an error:
// degenerate input (NaN, infinite values, zero-width ranges) clamps to a
// finite in-range score so the dashboard always has something to render.
package scoring

import (
	"math"
	"sort"
	"time"
)

// System selects how a raw value becomes a score.
type System string

const (
	SystemPercentage System = "percentage"
	SystemZScore     System = "z-score"
	SystemCustom     System = "custom"
)

// Stats overrides the population mean/stddev for z-score scoring.
type Stats struct {
	Mean   float64
	StdDev float64
}

// sanitize folds non-finite values into the typical range so every
// downstream formula operates on finite numbers.
func sanitize(value float64, r Ranges) (float64, bool) {
	switch {
	case math.IsNaN(value):
		return 0, false
	case math.IsInf(value, 1):
		return r.Typical.Max, true
	case math.IsInf(value, -1):
		return r.Typical.Min, true
	default:
		return value, true
	}
}

func clampScore(s float64) float64 {
	if math.IsNaN(s) {
		return DefaultScore
	}
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// NormalizeToPercentage linearly maps value onto [0,100] within [min,max].
// A zero-width range yields DefaultScore instead of dividing by zero.
func NormalizeToPercentage(value, min, max float64, higherIsBetter bool) float64 {
	if math.IsNaN(value) {
		return DefaultScore
	}
	if min == max {
		return DefaultScore
	}
	pct := (value - min) / (max - min) * 100
	if !higherIsBetter {
		pct = 100 - pct
	}
	return clampScore(pct)
}

// ZScore100 maps (value-mean)/stddev onto 0-100, with z = ±ZScoreSpan
// pinned to the scale ends. Zero stddev cannot be scored and returns
// DefaultScore.
func ZScore100(value, mean, stddev float64) float64 {
	if stddev == 0 || math.IsNaN(value) || math.IsNaN(mean) || math.IsNaN(stddev) {
		return DefaultScore
	}
	if math.IsInf(value, 1) {
		return 100
	}
	if math.IsInf(value, -1) {
		return 0
	}
	z := (value - mean) / stddev
	return clampScore((z + ZScoreSpan) / (2 * ZScoreSpan) * 100)
}

// bandScore rates proximity to the optimal band: inside scores 100, outside
// decays linearly to 0 at the typical bound.
func bandScore(value float64, r Ranges) float64 {
	if value >= r.Optimal.Min && value <= r.Optimal.Max {
		return 100
	}
	if value < r.Optimal.Min {
		span := r.Optimal.Min - r.Typical.Min
		if span <= 0 {
			return DefaultScore
		}
		return clampScore((value - r.Typical.Min) / span * 100)
	}
	span := r.Typical.Max - r.Optimal.Max
	if span <= 0 {
		return DefaultScore
	}
	return clampScore((r.Typical.Max - value) / span * 100)
}

// ScoreMetric scores a raw measurement for a metric slug under the selected
// system. profile and statsOverride are optional. The result is always
// finite and within [0,100].
func ScoreMetric(metric string, value float64, system System, profile *Profile, statsOverride *Stats) float64 {
	r := MetricRanges(metric, profile)

	v, ok := sanitize(value, r)
	if !ok {
		return DefaultScore
	}

	switch system {
	case SystemZScore:
		mean := (r.Typical.Min + r.Typical.Max) / 2
		sd := (r.Typical.Max - r.Typical.Min) / 4
		if statsOverride != nil {
			mean, sd = statsOverride.Mean, statsOverride.StdDev
		}
		return ZScore100(v, mean, sd)

	case SystemCustom:
		// Goal-relative: percent of the personal target, when one exists.
		if profile != nil {
			if goal, ok := profile.Goals[metric]; ok && goal > 0 {
				return clampScore(v / goal * 100)
			}
		}
		fallthrough

	default: // SystemPercentage
		if r.BandCentered {
			return bandScore(v, r)
		}
		return NormalizeToPercentage(v, r.Typical.Min, r.Typical.Max, r.HigherIsBetter)
	}
}

// ScoreColor maps a score to its band color. Out-of-domain scores (negative,
// >100, NaN, ±Inf) clamp into the nearest band; this function is the single
// source of truth for score colors across the API.
func ScoreColor(score float64) string {
	s := clampScore(score)
	switch {
	case s >= 80:
		return ColorExcellent
	case s >= 60:
		return ColorGood
	case s >= 40:
		return ColorFair
	default:
		return ColorPoor
	}
}

// ScoreLabel names the band a score falls in.
func ScoreLabel(score float64) string {
	s := clampScore(score)
	switch {
	case s >= 80:
		return "excellent"
	case s >= 60:
		return "good"
	case s >= 40:
		return "fair"
	default:
		return "poor"
	}
}

// Sample is a dated observation used for radar aggregation.
type Sample struct {
	Date  time.Time
	Value float64
}

// RadarMetric is one spoke of a radar chart.
type RadarMetric struct {
	Metric string  `json:"metric"`
	Unit   string  `json:"unit"`
	Value  float64 `json:"value"`
	Score  float64 `json:"score"`
	Color  string  `json:"color"`
}

// AggregateRadar scores the most recent sample of each metric that has data.
// Metrics with no samples are omitted entirely; the transform package pads
// with placeholders instead, which is a deliberate difference (chart layout
// belongs to the presentation path).
func AggregateRadar(dataSets map[string][]Sample, system System, profile *Profile) []RadarMetric {
	out := make([]RadarMetric, 0, len(dataSets))
	for metric, samples := range dataSets {
		if len(samples) == 0 {
			continue
		}
		latest := samples[0]
		for _, s := range samples[1:] {
			if s.Date.After(latest.Date) {
				latest = s
			}
		}
		score := ScoreMetric(metric, latest.Value, system, profile, nil)
		out = append(out, RadarMetric{
			Metric: metric,
			Unit:   MetricUnit(metric),
			Value:  latest.Value,
			Score:  score,
			Color:  ScoreColor(score),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Metric < out[j].Metric })
	return out
}
