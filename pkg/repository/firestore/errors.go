package firestore

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is returned when a weight table document has not been seeded
var ErrNotFound = goerr.New("not found")
