//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// - github.com/matryer/moq: mocks for the consumer-defined interfaces (go generate ./...)
// - github.com/pressly/goose/v3/cmd/goose: tracked through the tool directive in go.mod
