package service

// Tier is the severity bucket a 0-100 score maps to.
type Tier struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var (
	TierExcellent = Tier{Label: "Excellent", Color: "emerald"}
	TierWarning   = Tier{Label: "Warning", Color: "amber"}
	TierCritical  = Tier{Label: "Critical", Color: "rose"}
)

// TierFor maps a score to its severity tier. Boundaries are inclusive at the
// top of each band: 90 is Excellent, 70 is Warning, 69 is Critical.
func TierFor(score int) Tier {
	switch {
	case score >= 90:
		return TierExcellent
	case score >= 70:
		return TierWarning
	default:
		return TierCritical
	}
}

// GaugeSweep converts a score to the radial gauge fill fraction in [0,1].
func GaugeSweep(score int) float64 {
	if score <= 0 {
		return 0
	}
	if score >= 100 {
		return 1
	}
	return float64(score) / 100
}
