package sqlite

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is returned when a dimension has no stored rows
var ErrNotFound = goerr.New("not found")
