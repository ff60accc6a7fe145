// Package copilot provides constants used throughout the Copilot search SDK.
package copilot

import "time"

// SearchURL is the Microsoft Graph Copilot search endpoint. It is fixed.
const SearchURL = "https://graph.microsoft.com/beta/copilot/search"

// Request limits documented by the search API.
const (
	MaxQueryLength  = 1500
	MinPageSize     = 1
	MaxPageSize     = 100
	DefaultPageSize = 25
)

// Default HTTP Configuration Constants
const (
	DefaultTimeout = 30 * time.Second
)

const (
	contentTypeJSON = "application/json"
	bearerPrefix    = "Bearer "
)
