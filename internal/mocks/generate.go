// Package mocks provides mock implementations of the console ports for tests.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the port interfaces.
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	auth := mocks.NewMockAuthAPI(ctrl)
//	auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(resp, nil)
package mocks

// Generate mock for AuthAPI: Login
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_api_mock.go github.com/medipharm/medipharm-console/internal/ports AuthAPI

// Generate mock for KeyValueStore: Get, Set, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=kv_store_mock.go github.com/medipharm/medipharm-console/internal/ports KeyValueStore

// Generate mocks for the backend administration surfaces.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=backend_mock.go github.com/medipharm/medipharm-console/internal/ports SuperAdminAPI,PharmacyAdminAPI
