//go:build tools

// Package tools pins the development tools: mockery regenerates gen/mockery from
// .mockery.yaml, addlicense stamps the license header, gotestsum and golangci-lint
// run in CI.
package tools

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "github.com/google/addlicense"
	_ "github.com/vektra/mockery/v2"
	_ "gotest.tools/gotestsum"
)
