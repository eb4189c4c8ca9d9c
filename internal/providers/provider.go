package providers

import (
	"context"
	"errors"
	"fmt"
)

// GenerateRequest contains the data sent to a generative model.
type GenerateRequest struct {
	Model            string
	APIKey           string
	Prompt           string
	Temperature      float64
	MaxTokens        int
	ResponseMIMEType string
}

// GenerateResponse contains the raw text returned by the model.
type GenerateResponse struct {
	Content    string
	TokensUsed int
}

// Generator is the provider abstraction interface.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
	Name() string
}

// ErrNoContent is returned when the endpoint answered successfully but the
// body held no usable text.
var ErrNoContent = errors.New("no content in response")

// StatusError is returned when the endpoint answers with a non-success
// status code.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

// IsAuthError checks if an error is an authentication failure reported by
// the endpoint.
func IsAuthError(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.StatusCode == 401 || se.StatusCode == 403
}

// New creates a provider by name.
func New(provider, baseURL string) (Generator, error) {
	switch provider {
	case "", "gemini", "google":
		return NewGemini(baseURL, nil), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
