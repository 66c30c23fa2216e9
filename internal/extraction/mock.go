package extraction

import (
	"context"
)

// MockExtractor is a test double returning a canned Result.
type MockExtractor struct {
	Result *Result
	Err    error

	CallCount     int
	LastMediaType string
	LastImageSize int
}

// Extract records the call and returns the canned result or error.
func (m *MockExtractor) Extract(_ context.Context, image []byte, mediaType string) (*Result, error) {
	m.CallCount++
	m.LastMediaType = mediaType
	m.LastImageSize = len(image)

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

// StringPtr returns a pointer to s, for building Result literals.
func StringPtr(s string) *string {
	return &s
}

// FloatPtr returns a pointer to f, for building Result literals.
func FloatPtr(f float64) *float64 {
	return &f
}
