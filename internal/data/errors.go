package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// ErrSchemaMissing means the console tables have not been created yet.
	ErrSchemaMissing = errors.New("console schema missing; run `medipharm-admin migrate`")
)
