// Package extraction defines the boundary to the vision service that
// reads receipt images, and its Gemini-backed implementation.
package extraction

import (
	"context"
)

// Result is the structured guess the service returns for one receipt.
// Any field may be nil: null fields are how the service signals low
// confidence, not an error.
type Result struct {
	Date     *string  `json:"date"`
	Provider *string  `json:"provider"`
	Amount   *float64 `json:"amount"`
	Category *string  `json:"category"`
	Notes    *string  `json:"notes"`
}

// Extractor turns raw receipt image bytes into a structured Result.
type Extractor interface {
	Extract(ctx context.Context, image []byte, mediaType string) (*Result, error)
}
