package model

import (
	"cmp"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zombiequote/pkg/domain/types"
)

// Threshold is the exclusive upper bound of a tier: a score belongs to the tier when
// it is below Bound and not below the previous tier's bound.
type Threshold struct {
	Tier  types.Tier
	Bound int
}

// ThresholdTable holds tier bounds in ascending order
type ThresholdTable struct {
	entries []Threshold
}

// NewThresholdTable builds a table from a tier to bound mapping. Entries are ordered by
// bound; equal bounds fall back to the tier order.
func NewThresholdTable(bounds map[types.Tier]int) ThresholdTable {
	entries := make([]Threshold, 0, len(bounds))
	for tier, bound := range bounds {
		entries = append(entries, Threshold{Tier: tier, Bound: bound})
	}
	slices.SortFunc(entries, func(a, b Threshold) int {
		if c := cmp.Compare(a.Bound, b.Bound); c != 0 {
			return c
		}
		return cmp.Compare(a.Tier.Rank(), b.Tier.Rank())
	})
	return ThresholdTable{entries: entries}
}

// Entries returns a copy of the thresholds in ascending order
func (t ThresholdTable) Entries() []Threshold {
	return slices.Clone(t.entries)
}

// Len returns the number of tiers in the table
func (t ThresholdTable) Len() int {
	return len(t.entries)
}

// Max returns the highest bound. Any score at or above it is out of range.
func (t ThresholdTable) Max() int {
	if len(t.entries) == 0 {
		return 0
	}
	return t.entries[len(t.entries)-1].Bound
}

// Bounds returns the table as a tier to bound mapping
func (t ThresholdTable) Bounds() map[types.Tier]int {
	bounds := make(map[types.Tier]int, len(t.entries))
	for _, e := range t.entries {
		bounds[e.Tier] = e.Bound
	}
	return bounds
}

// Validate checks that every tier is known and that bounds strictly increase with the
// tier order, so no score can fall into two tiers.
func (t ThresholdTable) Validate() error {
	if len(t.entries) == 0 {
		return goerr.Wrap(ErrInvalidThreshold, "threshold table is empty")
	}

	prev := -1
	prevRank := -1
	for _, e := range t.entries {
		if err := e.Tier.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidThreshold, "invalid tier in threshold table",
				goerr.V(TierKey, e.Tier))
		}
		if e.Bound <= prev || e.Tier.Rank() <= prevRank {
			return goerr.Wrap(ErrInvalidThreshold, "threshold bounds must strictly increase with tier order",
				goerr.V(TierKey, e.Tier),
				goerr.V(BoundKey, e.Bound))
		}
		prev = e.Bound
		prevRank = e.Tier.Rank()
	}
	return nil
}
