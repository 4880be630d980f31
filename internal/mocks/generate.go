// Package mocks provides mock implementations for testing the saludo app.
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
//	defer ctrl.Finish()
//	provider := mocks.NewMockIdentityProvider(ctrl)
//	provider.EXPECT().SignInAnonymously(gomock.Any()).Return(sess, nil)
package mocks

// Generate mock for IdentityProvider interface from internal/ports.
// This creates MockIdentityProvider with methods for all IdentityProvider interface methods:
// Subscribe, SignInAnonymously, SignOut
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=identity_provider_mock.go github.com/camixfedex/saludo-app/internal/ports IdentityProvider

// Generate mock for GreetingClient interface from internal/ports.
// This creates MockGreetingClient with methods for all GreetingClient interface methods:
// Fetch
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=greeting_client_mock.go github.com/camixfedex/saludo-app/internal/ports GreetingClient
