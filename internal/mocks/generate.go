// Package mocks provides mock implementations for testing the TX Pay admin console.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockTXPayAPI(ctrl)
//	api.EXPECT().GetMerchant(gomock.Any(), "m-1").Return(merchant, nil)
package mocks

// Generate mock for TXPayAPI interface from internal/ports package.
// This creates MockTXPayAPI covering the merchant, transaction, partner, admin user,
// payment link and account calls.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=txpay_api_mock.go github.com/txpay/txpay-admin/internal/ports TXPayAPI

// Generate mock for Cache interface from internal/ports package.
// This creates MockCache with methods: Get, Set, Delete
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=cache_mock.go github.com/txpay/txpay-admin/internal/ports Cache

// Generate mock for AuditRepository interface from internal/ports package.
// This creates MockAuditRepository with methods: Insert, Recent
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=audit_repository_mock.go github.com/txpay/txpay-admin/internal/ports AuditRepository

// Generate mock for SessionStore interface from internal/ports package.
// This creates MockSessionStore with methods: Save, Get, Delete
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=session_store_mock.go github.com/txpay/txpay-admin/internal/ports SessionStore
