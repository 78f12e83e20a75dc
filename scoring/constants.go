package scoring

// The scoring and transform packages are audited together for numerically
// consistent output, so every tuning constant lives here instead of being
// scattered through the call sites.
const (
	// DefaultScore is returned whenever a score cannot be computed from the
	// inputs (zero-width range, zero standard deviation, NaN value). The
	// dashboard renders it as a neutral midpoint.
	DefaultScore = 50.0

	// ZScoreSpan maps z values in [-ZScoreSpan, +ZScoreSpan] onto the full
	// 0-100 scale: score = ((z+span)/(2*span))*100.
	ZScoreSpan = 3.0

	// NeutralTrendThresholdPct is the absolute percent change below which a
	// metric movement is reported as "neutral" instead of up/down.
	NeutralTrendThresholdPct = 1.0
)

// Score band colors, poor to excellent. Lowercase hex, matched verbatim by
// chart components.
const (
	ColorPoor      = "#ef4444"
	ColorFair      = "#f59e0b"
	ColorGood      = "#84cc16"
	ColorExcellent = "#10b981"
)
