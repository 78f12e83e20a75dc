package scoring

// Metric type slugs. These match the HealthRecord.Type column.
const (
	MetricWeight           = "weight"
	MetricSteps            = "steps"
	MetricSleep            = "sleep"
	MetricHeartRate        = "heart_rate"
	MetricBPSystolic       = "blood_pressure_systolic"
	MetricBPDiastolic      = "blood_pressure_diastolic"
	MetricWaterIntake      = "water_intake"
	MetricExerciseMinutes  = "exercise_minutes"
	MetricCaloriesBurned   = "calories_burned"
	MetricDistance         = "distance"
	MetricBodyFatPct       = "body_fat_percentage"
	MetricMuscleMass       = "muscle_mass"
)

// MetricTypes lists every known slug in display order.
var MetricTypes = []string{
	MetricWeight, MetricSteps, MetricSleep, MetricHeartRate,
	MetricBPSystolic, MetricBPDiastolic, MetricWaterIntake,
	MetricExerciseMinutes, MetricCaloriesBurned, MetricDistance,
	MetricBodyFatPct, MetricMuscleMass,
}

// Range is a closed numeric interval.
type Range struct {
	Min float64
	Max float64
}

// Ranges describes how a metric is scored: Optimal is the band that scores
// 100, Typical bounds the observable population spread.
type Ranges struct {
	Unit           string
	Optimal        Range
	Typical        Range
	HigherIsBetter bool // false means lower-is-better or band-centered
	BandCentered   bool // score by proximity to Optimal rather than direction
}

// Profile carries the user context that personalizes scoring. All fields are
// optional; zero values fall back to population defaults.
type Profile struct {
	Age           int
	Gender        string
	Height        float64 // cm
	Weight        float64 // kg
	ActivityLevel string
	// Goals maps metric slug to the user's personal target for that metric
	// (e.g. a daily step goal). A positive target overrides the population
	// optimal upper bound for higher-is-better metrics.
	Goals map[string]float64
}

var defaultRanges = map[string]Ranges{
	MetricWeight:          {Unit: "kg", Optimal: Range{60, 80}, Typical: Range{45, 120}, BandCentered: true},
	MetricSteps:           {Unit: "steps", Optimal: Range{8000, 12000}, Typical: Range{0, 15000}, HigherIsBetter: true},
	MetricSleep:           {Unit: "hours", Optimal: Range{7, 9}, Typical: Range{4, 12}, BandCentered: true},
	MetricHeartRate:       {Unit: "bpm", Optimal: Range{60, 80}, Typical: Range{40, 120}, BandCentered: true},
	MetricBPSystolic:      {Unit: "mmHg", Optimal: Range{90, 120}, Typical: Range{80, 180}, BandCentered: true},
	MetricBPDiastolic:     {Unit: "mmHg", Optimal: Range{60, 80}, Typical: Range{50, 120}, BandCentered: true},
	MetricWaterIntake:     {Unit: "liters", Optimal: Range{2, 3}, Typical: Range{0, 5}, HigherIsBetter: true},
	MetricExerciseMinutes: {Unit: "minutes", Optimal: Range{30, 60}, Typical: Range{0, 120}, HigherIsBetter: true},
	MetricCaloriesBurned:  {Unit: "kcal", Optimal: Range{300, 600}, Typical: Range{0, 1000}, HigherIsBetter: true},
	MetricDistance:        {Unit: "km", Optimal: Range{5, 10}, Typical: Range{0, 20}, HigherIsBetter: true},
	MetricBodyFatPct:      {Unit: "%", Optimal: Range{15, 25}, Typical: Range{5, 45}, BandCentered: true},
	MetricMuscleMass:      {Unit: "kg", Optimal: Range{30, 45}, Typical: Range{15, 60}, HigherIsBetter: true},
}

// fallback for unknown slugs so scoring never panics on new record types
var genericRanges = Ranges{Unit: "", Optimal: Range{25, 75}, Typical: Range{0, 100}, HigherIsBetter: true}

// MetricRanges resolves the reference ranges for a metric slug. When the
// profile carries a personal goal for the metric, the goal replaces the
// population optimal upper bound (and stretches the typical bound to keep
// the optimal band inside it).
func MetricRanges(metric string, profile *Profile) Ranges {
	r, ok := defaultRanges[metric]
	if !ok {
		return genericRanges
	}

	if profile != nil {
		if goal, ok := profile.Goals[metric]; ok && goal > 0 {
			if r.HigherIsBetter {
				r.Optimal.Max = goal
				if r.Optimal.Min > goal {
					r.Optimal.Min = goal * 0.8
				}
				if r.Typical.Max < goal {
					r.Typical.Max = goal * 1.25
				}
			} else if r.BandCentered && metric == MetricWeight {
				// Personal target weight recenters the optimal band.
				half := (r.Optimal.Max - r.Optimal.Min) / 2
				r.Optimal = Range{goal - half, goal + half}
			}
		}
	}
	return r
}

// MetricUnit is a convenience lookup for the canonical unit of a slug.
func MetricUnit(metric string) string {
	return MetricRanges(metric, nil).Unit
}

// KnownMetric reports whether the slug has a reference range entry.
func KnownMetric(metric string) bool {
	_, ok := defaultRanges[metric]
	return ok
}
