package disaster

import "time"

// Severity labels for seismic events, ordered by magnitude.
const (
	SeverityExtreme  = "Extreme"
	SeveritySevere   = "Severe"
	SeverityStrong   = "Strong"
	SeverityModerate = "Moderate"
	SeverityLight    = "Light"
)

// Risk levels derived from depth-adjusted magnitude.
const (
	RiskCritical = "Critical"
	RiskHigh     = "High"
	RiskMedium   = "Medium"
	RiskLow      = "Low"
)

// formattedTimeLayout renders epoch-millisecond event times for the map UI.
const formattedTimeLayout = "2006-01-02 15:04:05 UTC"

// Enrich annotates each seismic feature with a severity class, display
// color, depth-adjusted risk level and a formatted timestamp. Properties
// are annotated in place and the same collection is returned.
func Enrich(fc *FeatureCollection) *FeatureCollection {
	for i := range fc.Features {
		props := fc.Features[i].Properties
		if props == nil {
			props = make(map[string]any)
			fc.Features[i].Properties = props
		}

		mag := floatProp(props, "mag")
		depth := floatProp(props, "depth")

		severity, color := Classify(mag)
		props["severity"] = severity
		props["color"] = color
		props["risk_level"] = RiskLevel(mag, depth)

		// Epoch milliseconds, per the upstream event schema. Absent or
		// non-numeric times simply get no formatted_time attribute.
		if ms, ok := numericProp(props, "time"); ok {
			props["formatted_time"] = time.UnixMilli(int64(ms)).UTC().Format(formattedTimeLayout)
		}
	}
	return fc
}

// Classify maps a magnitude to its severity label and display color.
// All thresholds are inclusive at the lower bound.
func Classify(mag float64) (severity, color string) {
	switch {
	case mag >= 7.0:
		return SeverityExtreme, "darkred"
	case mag >= 6.0:
		return SeveritySevere, "red"
	case mag >= 5.0:
		return SeverityStrong, "orange"
	case mag >= 4.0:
		return SeverityModerate, "yellow"
	default:
		return SeverityLight, "green"
	}
}

// RiskLevel classifies a depth-adjusted magnitude. Shallow events keep their
// full magnitude; intermediate (>=70km) and deep (>=300km) events are
// discounted because they do less surface damage.
func RiskLevel(mag, depth float64) string {
	factor := 1.0
	switch {
	case depth >= 300:
		factor = 0.6
	case depth >= 70:
		factor = 0.8
	}
	score := mag * factor

	switch {
	case score >= 6.5:
		return RiskCritical
	case score >= 5.5:
		return RiskHigh
	case score >= 4.0:
		return RiskMedium
	default:
		return RiskLow
	}
}

// floatProp reads a numeric property, defaulting to 0 when absent.
func floatProp(props map[string]any, key string) float64 {
	v, _ := numericProp(props, key)
	return v
}

// numericProp handles the numeric types json decoding and upstream clients
// may leave in a property map.
func numericProp(props map[string]any, key string) (float64, bool) {
	switch v := props[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
