package domain

import "fmt"

// BudgetTier is a named price bracket, ordered by ascending price range.
type BudgetTier int

const (
	TierBackpacker BudgetTier = iota
	TierBudget
	TierMidRange
	TierLuxury
)

var tierNames = map[BudgetTier]string{
	TierBackpacker: "backpacker",
	TierBudget:     "budget",
	TierMidRange:   "mid-range",
	TierLuxury:     "luxury",
}

func (t BudgetTier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Valid reports whether t is one of the defined tiers.
func (t BudgetTier) Valid() bool {
	_, ok := tierNames[t]
	return ok
}

// Escalate returns the next higher tier. The second return value is false
// when t is already Luxury (or invalid); escalation never loops past the top.
func (t BudgetTier) Escalate() (BudgetTier, bool) {
	if !t.Valid() || t == TierLuxury {
		return t, false
	}
	return t + 1, true
}

// ParseTier maps a user-facing tier name to a BudgetTier.
func ParseTier(name string) (BudgetTier, error) {
	for tier, n := range tierNames {
		if n == name {
			return tier, nil
		}
	}
	return 0, fmt.Errorf("unknown budget tier %q", name)
}

// MarshalText implements encoding.TextMarshaler so tiers serialize by name.
func (t BudgetTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *BudgetTier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
