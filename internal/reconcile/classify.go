package reconcile

// Level is the presentation tag for a priority score.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

const (
	highThreshold   = 0.7
	mediumThreshold = 0.4
)

// Classify maps a priority score to a Level.
func Classify(score float64) Level {
	switch {
	case score >= highThreshold:
		return LevelHigh
	case score >= mediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}
