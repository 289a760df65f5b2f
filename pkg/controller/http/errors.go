package http

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrInvalidInput is returned when a request body cannot be read as survey answers
	ErrInvalidInput = goerr.New("invalid input")
)
