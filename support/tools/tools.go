//go:build tools
// +build tools

// Pins the linter version used on this repo.
package tools

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
)
