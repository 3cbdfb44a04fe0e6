package analysis

import (
	"strings"

	"go.trai.ch/zerr"
)

// Strategy selects how the scoring service weighs its factors.
type Strategy string

const (
	SmartBalance   Strategy = "smart_balance"
	FastestWins    Strategy = "fastest_wins"
	HighImpact     Strategy = "high_impact"
	DeadlineDriven Strategy = "deadline_driven"
)

// DefaultStrategy is used when none is configured.
const DefaultStrategy = SmartBalance

// Strategies is the menu offered to users, in display order.
var Strategies = []Strategy{SmartBalance, FastestWins, HighImpact, DeadlineDriven}

var strategyDescriptions = map[Strategy]string{
	SmartBalance:   "Balance urgency, importance, effort and dependencies",
	FastestWins:    "Prefer low-effort quick wins",
	HighImpact:     "Prefer the most important tasks",
	DeadlineDriven: "Prefer the most urgent due dates",
}

// ErrUnknownStrategy is returned by ParseStrategy.
var ErrUnknownStrategy = zerr.New("unknown strategy")

// ParseStrategy validates s against the menu. Empty means DefaultStrategy.
func ParseStrategy(s string) (Strategy, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultStrategy, nil
	}
	for _, st := range Strategies {
		if string(st) == s {
			return st, nil
		}
	}
	return "", zerr.With(ErrUnknownStrategy, "strategy", s)
}

// Description returns a one-line summary of the strategy.
func (s Strategy) Description() string {
	return strategyDescriptions[s]
}
