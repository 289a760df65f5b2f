package types

import "github.com/m-mizutani/goerr/v2"

// Tier is a risk classification. Values are the human-readable names returned to clients.
type Tier string

const (
	TierLow      Tier = "Low"
	TierModerate Tier = "Moderate"
	TierHigh     Tier = "High"
	TierVeryHigh Tier = "Very High"
	TierExtreme  Tier = "Extreme"
)

// AllTiers returns every tier in ascending order of risk
func AllTiers() []Tier {
	return []Tier{
		TierLow,
		TierModerate,
		TierHigh,
		TierVeryHigh,
		TierExtreme,
	}
}

// IsValid checks if the tier is one of the known tiers
func (t Tier) IsValid() bool {
	return t.Rank() >= 0
}

// Rank returns the position of the tier in ascending order, or -1 for an unknown tier
func (t Tier) Rank() int {
	switch t {
	case TierLow:
		return 0
	case TierModerate:
		return 1
	case TierHigh:
		return 2
	case TierVeryHigh:
		return 3
	case TierExtreme:
		return 4
	default:
		return -1
	}
}

// Validate checks if the Tier is valid
func (t Tier) Validate() error {
	if t == "" {
		return goerr.New("tier cannot be empty")
	}
	if !t.IsValid() {
		return goerr.New("unknown tier", goerr.V("tier", t))
	}
	return nil
}

// String returns the string representation of Tier
func (t Tier) String() string {
	return string(t)
}

// ParseTier parses a string into a Tier
func ParseTier(s string) (Tier, error) {
	tier := Tier(s)
	if err := tier.Validate(); err != nil {
		return "", err
	}
	return tier, nil
}
