package model

import "github.com/m-mizutani/goerr/v2"

// Weight table validation errors
var (
	ErrEmptyLabel       = goerr.New("empty weight label")
	ErrNegativeWeight   = goerr.New("negative weight")
	ErrInvalidThreshold = goerr.New("invalid threshold table")
	ErrMissingTable     = goerr.New("weight table is missing")
)

// Context keys for error values
const (
	LabelKey     = "label"
	WeightKey    = "weight"
	TierKey      = "tier"
	BoundKey     = "bound"
	DimensionKey = "dimension"
)
