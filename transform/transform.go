// Package transform converts persisted health records and goals into the
// display-ready aggregates the dashboard endpoints return. In contrast to
// the scoring package, ingestion here is fail-fast: malformed records
// (non-finite values, zero timestamps, missing types) produce an error so
// corrupt data never reaches downstream aggregates. Controllers translate
// these errors into 400 responses.
package transform

import (
	"errors"
	"fmt"
	"math"
	"time"

	"backend/models"
	"backend/scoring"
	"backend/stats"
)

// ErrMalformedInput wraps every validation failure in this package.
var ErrMalformedInput = errors.New("malformed input")

// SummaryMetric is the per-type headline shown on the dashboard: the newest
// observed value plus the matching goal, when one exists.
type SummaryMetric struct {
	Type         string     `json:"type"`
	Unit         string     `json:"unit"`
	CurrentValue float64    `json:"current_value"`
	RecordedAt   time.Time  `json:"recorded_at"`
	GoalTarget   *float64   `json:"goal_target,omitempty"`
	GoalCurrent  *float64   `json:"goal_current,omitempty"`
	// ProgressPct is the raw unclamped ratio against the goal target, so
	// over-achievement reads as >100 in analytics. The persisted goal object
	// clamps instead; both behaviors are intended.
	ProgressPct *float64 `json:"progress_pct,omitempty"`
}

func validateRecord(r models.HealthRecord) error {
	if r.Type == "" {
		return fmt.Errorf("%w: record %d has empty type", ErrMalformedInput, r.ID)
	}
	if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
		return fmt.Errorf("%w: record %d has non-finite value", ErrMalformedInput, r.ID)
	}
	if r.RecordedAt.IsZero() {
		return fmt.Errorf("%w: record %d has invalid recorded_at", ErrMalformedInput, r.ID)
	}
	return nil
}

// ToSummaryMetrics groups records by type, keeps the newest value per type
// and attaches the matching goal. Any malformed record fails the whole call.
func ToSummaryMetrics(records []models.HealthRecord, goals []models.HealthGoal) ([]SummaryMetric, error) {
	latest := make(map[string]models.HealthRecord)
	order := make([]string, 0)
	for _, r := range records {
		if err := validateRecord(r); err != nil {
			return nil, err
		}
		cur, seen := latest[r.Type]
		if !seen {
			order = append(order, r.Type)
		}
		if !seen || r.RecordedAt.After(cur.RecordedAt) {
			latest[r.Type] = r
		}
	}

	goalByType := make(map[string]models.HealthGoal, len(goals))
	for _, g := range goals {
		if math.IsNaN(g.TargetValue) || math.IsInf(g.TargetValue, 0) {
			return nil, fmt.Errorf("%w: goal %d has non-finite target", ErrMalformedInput, g.ID)
		}
		goalByType[g.Type] = g
	}

	out := make([]SummaryMetric, 0, len(order))
	for _, typ := range order {
		r := latest[typ]
		m := SummaryMetric{
			Type:         typ,
			Unit:         r.Unit,
			CurrentValue: r.Value,
			RecordedAt:   r.RecordedAt,
		}
		if m.Unit == "" {
			m.Unit = scoring.MetricUnit(typ)
		}
		if g, ok := goalByType[typ]; ok {
			target, current := g.TargetValue, g.CurrentValue
			m.GoalTarget = &target
			m.GoalCurrent = &current
			if target != 0 {
				pct := r.Value / target * 100
				m.ProgressPct = &pct
			}
		}
		out = append(out, m)
	}
	return out, nil
}

// RadarChartMetric is one spoke of the dashboard radar chart.
type RadarChartMetric struct {
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
	Max    float64 `json:"max"`
	Score  float64 `json:"score"`
	Color  string  `json:"color"`
}

// minRadarMetrics is a chart-layout floor: a radar with fewer than three
// spokes degenerates into a line, so missing metrics get zero placeholders.
const minRadarMetrics = 3

// ToRadarData builds one radar metric per distinct record type, scored under
// the given system, padding to at least three spokes.
func ToRadarData(records []models.HealthRecord, goals []models.HealthGoal, system scoring.System) ([]RadarChartMetric, error) {
	sets := make(map[string][]scoring.Sample)
	for _, r := range records {
		if err := validateRecord(r); err != nil {
			return nil, err
		}
		sets[r.Type] = append(sets[r.Type], scoring.Sample{Date: r.RecordedAt, Value: r.Value})
	}

	profile := profileFromGoals(goals)
	radar := scoring.AggregateRadar(sets, system, profile)

	out := make([]RadarChartMetric, 0, len(radar))
	for _, m := range radar {
		out = append(out, RadarChartMetric{
			Metric: m.Metric,
			Value:  m.Value,
			Max:    scoring.MetricRanges(m.Metric, profile).Typical.Max,
			Score:  m.Score,
			Color:  m.Color,
		})
	}

	for _, typ := range scoring.MetricTypes {
		if len(out) >= minRadarMetrics {
			break
		}
		if _, have := sets[typ]; have {
			continue
		}
		out = append(out, RadarChartMetric{
			Metric: typ,
			Value:  0,
			Max:    scoring.MetricRanges(typ, nil).Typical.Max,
			Score:  0,
			Color:  scoring.ScoreColor(0),
		})
	}
	return out, nil
}

func profileFromGoals(goals []models.HealthGoal) *scoring.Profile {
	if len(goals) == 0 {
		return nil
	}
	p := &scoring.Profile{Goals: make(map[string]float64, len(goals))}
	for _, g := range goals {
		if g.Status == models.GoalActive && g.TargetValue > 0 {
			p.Goals[g.Type] = g.TargetValue
		}
	}
	return p
}

// Algorithm selects the forecasting strategy for ToPredictiveData.
type Algorithm string

const (
	AlgorithmLinearRegression Algorithm = "linear-regression"
	AlgorithmMovingAverage    Algorithm = "moving-average"
)

// trailing window for the moving-average forecast
const forecastWindow = 3

// TrendPoint is one historical observation fed into prediction.
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
	Unit  string    `json:"unit"`
}

// PredictedPoint is either a historical sample (IsPrediction false) or a
// forecast with an algorithm tag and a confidence band strictly straddling
// the estimate.
type PredictedPoint struct {
	Date            time.Time `json:"date"`
	Value           float64   `json:"value"`
	IsPrediction    bool      `json:"is_prediction"`
	Algorithm       Algorithm `json:"algorithm,omitempty"`
	ConfidenceUpper *float64  `json:"confidence_upper,omitempty"`
	ConfidenceLower *float64  `json:"confidence_lower,omitempty"`
}

// ToPredictiveData returns the historical series followed by horizonDays
// forecast points. Fewer than two historical points cannot carry a trend, so
// only the history comes back.
func ToPredictiveData(points []TrendPoint, algorithm Algorithm, horizonDays int) []PredictedPoint {
	out := make([]PredictedPoint, 0, len(points)+horizonDays)
	for _, p := range points {
		out = append(out, PredictedPoint{Date: p.Date, Value: p.Value, IsPrediction: false})
	}
	if len(points) < 2 || horizonDays <= 0 {
		return out
	}

	n := len(points)
	lastDate := points[n-1].Date

	var forecast func(step int) float64
	var residualSD float64

	switch algorithm {
	case AlgorithmMovingAverage:
		window := forecastWindow
		if window > n {
			window = n
		}
		values := make([]float64, n)
		for i, p := range points {
			values[i] = p.Value
		}
		avgs := stats.MovingAverage(values, window)
		flat := avgs[len(avgs)-1]
		forecast = func(int) float64 { return flat }
		residualSD = stats.StdDev(values[n-window:])

	default: // linear regression
		pts := make([]stats.DataPoint, n)
		for i, p := range points {
			pts[i] = stats.DataPoint{X: float64(i), Y: p.Value}
		}
		reg := stats.LinearRegression(pts)

		var ssRes float64
		for _, p := range pts {
			d := p.Y - (reg.Slope*p.X + reg.Intercept)
			ssRes += d * d
		}
		residualSD = math.Sqrt(ssRes / float64(n))
		forecast = func(step int) float64 {
			return reg.Slope*float64(n-1+step) + reg.Intercept
		}
	}

	for step := 1; step <= horizonDays; step++ {
		value := forecast(step)
		iv := stats.ConfidenceInterval(value, stats.IntervalOptions{
			ConfidenceLevel:           0.95,
			ResidualStandardDeviation: residualSD,
			SampleSize:                n,
		})
		upper, lower := iv.Upper, iv.Lower
		out = append(out, PredictedPoint{
			Date:            lastDate.AddDate(0, 0, step),
			Value:           value,
			IsPrediction:    true,
			Algorithm:       algorithm,
			ConfidenceUpper: &upper,
			ConfidenceLower: &lower,
		})
	}
	return out
}

// TrendDirection summarizes the most recent change in a metric.
type TrendDirection string

const (
	TrendUp      TrendDirection = "up"
	TrendDown    TrendDirection = "down"
	TrendNeutral TrendDirection = "neutral"
)

// TrendResult pairs a direction with the absolute percent change.
type TrendResult struct {
	Direction  TrendDirection `json:"direction"`
	Percentage float64        `json:"percentage"`
}

// Trend compares a current value to the previous one. Non-finite input is
// rejected. A zero previous value has no meaningful percent change and is
// reported as neutral/0 by convention (deliberately unlike stats.MAPE,
// which propagates infinity on zero actuals).
func Trend(current, previous float64) (TrendResult, error) {
	if math.IsNaN(current) || math.IsInf(current, 0) ||
		math.IsNaN(previous) || math.IsInf(previous, 0) {
		return TrendResult{}, fmt.Errorf("%w: non-finite trend input", ErrMalformedInput)
	}
	if previous == 0 {
		return TrendResult{Direction: TrendNeutral, Percentage: 0}, nil
	}

	pct := (current - previous) / previous * 100
	abs := math.Abs(pct)
	switch {
	case abs < scoring.NeutralTrendThresholdPct:
		return TrendResult{Direction: TrendNeutral, Percentage: abs}, nil
	case pct > 0:
		return TrendResult{Direction: TrendUp, Percentage: abs}, nil
	default:
		return TrendResult{Direction: TrendDown, Percentage: abs}, nil
	}
}

// NormalizeValue scores a raw value on the 0-100 scale. It delegates to the
// scoring engine so both packages stay numerically identical by
// construction.
func NormalizeValue(value float64, metric string, system scoring.System) float64 {
	return scoring.ScoreMetric(metric, value, system, nil, nil)
}

// ScoreColor returns the band color for a score. Same engine as
// scoring.ScoreColor; kept as an exported alias because chart call sites
// import only this package.
func ScoreColor(score float64) string {
	return scoring.ScoreColor(score)
}

// TypeConfig is static presentation metadata for a metric slug.
type TypeConfig struct {
	Icon       string         `json:"icon"`
	Color      string         `json:"color"`
	Unit       string         `json:"unit"`
	IdealRange *scoring.Range `json:"ideal_range,omitempty"`
}

var typeConfigs = map[string]TypeConfig{
	scoring.MetricWeight:          {Icon: "scale", Color: "#6366f1"},
	scoring.MetricSteps:           {Icon: "footprints", Color: "#22c55e"},
	scoring.MetricSleep:           {Icon: "moon", Color: "#8b5cf6"},
	scoring.MetricHeartRate:       {Icon: "heart-pulse", Color: "#ef4444"},
	scoring.MetricBPSystolic:      {Icon: "activity", Color: "#f97316"},
	scoring.MetricBPDiastolic:     {Icon: "activity", Color: "#fb923c"},
	scoring.MetricWaterIntake:     {Icon: "droplet", Color: "#0ea5e9"},
	scoring.MetricExerciseMinutes: {Icon: "dumbbell", Color: "#14b8a6"},
	scoring.MetricCaloriesBurned:  {Icon: "flame", Color: "#f59e0b"},
	scoring.MetricDistance:        {Icon: "map-pin", Color: "#10b981"},
	scoring.MetricBodyFatPct:      {Icon: "percent", Color: "#eab308"},
	scoring.MetricMuscleMass:      {Icon: "biceps", Color: "#3b82f6"},
}

// GetTypeConfig resolves display metadata for a slug, with a plain fallback
// for unknown types.
func GetTypeConfig(metric string) TypeConfig {
	cfg, ok := typeConfigs[metric]
	if !ok {
		cfg = TypeConfig{Icon: "circle", Color: "#94a3b8"}
	}
	cfg.Unit = scoring.MetricUnit(metric)
	if scoring.KnownMetric(metric) {
		r := scoring.MetricRanges(metric, nil)
		ideal := r.Optimal
		cfg.IdealRange = &ideal
	}
	return cfg
}
