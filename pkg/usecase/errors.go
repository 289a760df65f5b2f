package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case layer
var (
	// ErrProvider is returned when a weight or threshold table could not be fetched
	ErrProvider = goerr.New("weight table provider failed")

	// ErrOutOfRange is returned when a score is not below any threshold bound
	ErrOutOfRange = goerr.New("risk score out of range")

	// ErrCalculation is returned by the quote use case for any failure
	ErrCalculation = goerr.New("failed to calculate pricing")
)

// Context keys for error values
const (
	ScoreKey = "score"
	TableKey = "table"
	BoundKey = "bound"
)

