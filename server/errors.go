package server

import "errors"

// ErrEngineRequired is returned when a query engine is not provided.
var ErrEngineRequired = errors.New("query engine required")
