package review

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// maxBodyExcerpt bounds how much of an endpoint error body is kept.
const maxBodyExcerpt = 1024

// ConfigurationError reports a request that cannot be sent: missing code
// or no usable credential. Retrying is pointless.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// TransportError reports that the endpoint was unreachable or answered with
// a non-success status. StatusCode is zero for network failures.
type TransportError struct {
	Model      string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("review request for model %q failed: %v", e.Model, e.Err)
	}
	msg := fmt.Sprintf("review request for model %q failed (status %d)", e.Model, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *TransportError) Unwrap() error { return e.Err }

// EmptyResponseError reports a success status without usable model text.
type EmptyResponseError struct {
	Model string
	Err   error
}

func (e *EmptyResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid response from model %q: %v", e.Model, e.Err)
	}
	return fmt.Sprintf("invalid response from model %q", e.Model)
}

func (e *EmptyResponseError) Unwrap() error { return e.Err }

// ExtractionError reports model output that contains no parseable JSON.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("model did not return valid JSON: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ValidationError reports JSON that does not match the review schema.
// Path names the offending value, e.g. "issues[2].severity".
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return "model output failed validation: " + e.Reason
	}
	return fmt.Sprintf("model output failed validation: %s: %s", e.Path, e.Reason)
}

// Error kinds returned by KindOf.
const (
	KindConfiguration = "configuration"
	KindTransport     = "transport"
	KindEmptyResponse = "empty_response"
	KindExtraction    = "extraction"
	KindValidation    = "validation"
	KindUnknown       = "unknown"
)

// KindOf classifies err into one of the Kind constants.
func KindOf(err error) string {
	var (
		cfgErr   *ConfigurationError
		trErr    *TransportError
		emptyErr *EmptyResponseError
		extErr   *ExtractionError
		valErr   *ValidationError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &cfgErr):
		return KindConfiguration
	case errors.As(err, &trErr):
		return KindTransport
	case errors.As(err, &emptyErr):
		return KindEmptyResponse
	case errors.As(err, &extErr):
		return KindExtraction
	case errors.As(err, &valErr):
		return KindValidation
	default:
		return KindUnknown
	}
}

// IsConfigurationError checks if an error is a configuration error.
func IsConfigurationError(err error) bool {
	var e *ConfigurationError
	return errors.As(err, &e)
}

func excerpt(body string) string {
	if len(body) <= maxBodyExcerpt {
		return body
	}
	cut := maxBodyExcerpt
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut] + "..."
}
