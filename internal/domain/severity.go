package domain

import "math"

// Tier is a severity band derived from magnitude.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// Band thresholds. Each lower bound belongs to the band it opens.
const (
	MediumThreshold = 5.0
	HighThreshold   = 6.0

	minMarkerRadius = 5.0
)

// Severity carries the visual style for a tier.
type Severity struct {
	Tier  Tier   `json:"tier"`
	Color string `json:"color"`
	Class string `json:"class"`
}

var severities = map[Tier]Severity{
	TierLow:    {Tier: TierLow, Color: "#4caf50", Class: "magnitude-low"},
	TierMedium: {Tier: TierMedium, Color: "#ff9800", Class: "magnitude-medium"},
	TierHigh:   {Tier: TierHigh, Color: "#f44336", Class: "magnitude-high"},
}

// Classify maps a magnitude to its severity band:
//   - m >= 6.0 high
//   - 5.0 <= m < 6.0 medium
//   - otherwise low
func Classify(magnitude float64) Severity {
	switch {
	case magnitude >= HighThreshold:
		return severities[TierHigh]
	case magnitude >= MediumThreshold:
		return severities[TierMedium]
	default:
		return severities[TierLow]
	}
}

// MarkerRadius returns the map marker radius for a magnitude, floored at 5
// so small events are never drawn sub-pixel.
func MarkerRadius(magnitude float64) float64 {
	return math.Max(minMarkerRadius, magnitude*2)
}
