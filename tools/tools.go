//go:build tools
// +build tools

// Package tools lists the development tools the console relies on.
// They run through `go run pkg@version` or `go install` and stay out of go.mod.
package tools

// mockgen regenerates internal/mocks from the ports interfaces:
//   go generate ./internal/mocks ./internal/mocks/auth
//   Pinned: go.uber.org/mock/mockgen@v0.6.0 (matches the go.mod runtime version)
//
// Air reloads cmd/medipharm-console while editing templates under frontend/:
//   Install: go install github.com/air-verse/air@v1.63.0
//   Run with DEV=true so templates and static files are read from disk.
