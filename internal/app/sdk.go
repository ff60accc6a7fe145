package app

import (
	"context"
	"encoding/json"

	"github.com/tonimelisma/copilot-search/pkg/copilot"
)

// SDK defines the interface for interacting with the Copilot search API.
// This allows for mocking in tests.
type SDK interface {
	SearchWithCopilot(ctx context.Context, input copilot.SearchInput) (json.RawMessage, error)
}

var _ SDK = (*copilot.Client)(nil)
