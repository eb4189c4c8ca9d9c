package review

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dshills/codelens/internal/providers"
	"github.com/dshills/codelens/internal/redact"
)

// Generation defaults. Low temperature: this is structured extraction.
const (
	DefaultTemperature     = 0.1
	DefaultMaxOutputTokens = 2000
	responseMIMEType       = "application/json"
)

// Options configures a Service.
type Options struct {
	// APIKey is the fallback credential used when a request carries none.
	APIKey          string
	Temperature     float64
	MaxOutputTokens int
	Logger          *slog.Logger
}

// Service submits code for review. It holds no per-call state and is safe
// for concurrent use.
type Service struct {
	gen    providers.Generator
	opts   Options
	logger *slog.Logger
}

// NewService creates a Service around gen. Zero-valued options take the
// package defaults.
func NewService(gen providers.Generator, opts Options) *Service {
	if opts.Temperature <= 0 {
		opts.Temperature = DefaultTemperature
	}
	if opts.MaxOutputTokens <= 0 {
		opts.MaxOutputTokens = DefaultMaxOutputTokens
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{gen: gen, opts: opts, logger: logger}
}

// Submit reviews req.Code with a single call to the generator. It never
// retries; every failure is returned as one of the package's error types.
func (s *Service) Submit(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Code) == "" {
		return nil, &ConfigurationError{Message: "missing code"}
	}

	key := req.APIKey
	if key == "" {
		key = s.opts.APIKey
	}
	if key == "" {
		return nil, &ConfigurationError{Message: "missing Gemini API key: pass one explicitly or set GEMINI_API_KEY"}
	}

	model := NormalizeModel(req.Model)
	log := s.logger.With("model", model, "language", req.Language)

	start := time.Now()
	resp, err := s.gen.Generate(ctx, providers.GenerateRequest{
		Model:            model,
		APIKey:           key,
		Prompt:           BuildPrompt(req.Code, req.Language),
		Temperature:      s.opts.Temperature,
		MaxTokens:        s.opts.MaxOutputTokens,
		ResponseMIMEType: responseMIMEType,
	})
	if err != nil {
		err = classifyProviderError(model, key, err)
		log.Error("review request failed", "kind", KindOf(err), "error", err)
		return nil, err
	}

	result, err := Parse(resp.Content)
	if err != nil {
		log.Warn("model output rejected", "kind", KindOf(err), "error", err, "excerpt", redact.Value(excerpt(resp.Content), key))
		return nil, err
	}

	log.Info("review completed",
		"issues", len(result.Issues),
		"tokens", resp.TokensUsed,
		"duration", time.Since(start),
	)
	return result, nil
}

// Parse runs Extract then Validate over raw model text.
func Parse(text string) (*Result, error) {
	v, err := Extract(text)
	if err != nil {
		return nil, err
	}
	return Validate(v)
}

// classifyProviderError maps a generator failure onto the review error
// types. Upstream bodies are scrubbed of the key before they are kept.
func classifyProviderError(model, key string, err error) error {
	var se *providers.StatusError
	switch {
	case errors.As(err, &se):
		return &TransportError{Model: model, StatusCode: se.StatusCode, Body: excerpt(redact.Value(se.Body, key)), Err: err}
	case errors.Is(err, providers.ErrNoContent):
		return &EmptyResponseError{Model: model, Err: err}
	default:
		return &TransportError{Model: model, Err: err}
	}
}
