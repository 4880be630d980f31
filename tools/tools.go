//go:build tools
// +build tools

// Package tools documents development tool dependencies.
package tools

import (
	// mockgen generates the port mocks; see internal/mocks/generate.go.
	_ "go.uber.org/mock/mockgen"
)
