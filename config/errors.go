package config

import "errors"

var (
	// ErrMissingCredential indicates a required credential or connection
	// setting is absent. Fatal at startup.
	ErrMissingCredential = errors.New("missing required configuration")

	// ErrUnknownBackend indicates an unrecognized vector store backend name.
	ErrUnknownBackend = errors.New("unknown vector store backend")
)
