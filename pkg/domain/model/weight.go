package model

import "github.com/m-mizutani/goerr/v2"

// WeightTable maps an answer label to its risk weight
type WeightTable map[string]int

// Lookup returns the weight of label. Empty labels and labels missing from the table
// weigh 0.
func (t WeightTable) Lookup(label string) int {
	if label == "" {
		return 0
	}
	return t[label]
}

// Max returns the largest weight in the table, or 0 for an empty table
func (t WeightTable) Max() int {
	var m int
	for _, w := range t {
		if w > m {
			m = w
		}
	}
	return m
}

// Sum returns the total of all weights in the table
func (t WeightTable) Sum() int {
	var s int
	for _, w := range t {
		s += w
	}
	return s
}

// Clone returns an independent copy of the table
func (t WeightTable) Clone() WeightTable {
	if t == nil {
		return nil
	}
	c := make(WeightTable, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}

// Validate checks that every label is non-empty and every weight is non-negative
func (t WeightTable) Validate() error {
	for label, w := range t {
		if label == "" {
			return goerr.Wrap(ErrEmptyLabel, "weight table has an empty label")
		}
		if w < 0 {
			return goerr.Wrap(ErrNegativeWeight, "weight must not be negative",
				goerr.V(LabelKey, label),
				goerr.V(WeightKey, w))
		}
	}
	return nil
}
