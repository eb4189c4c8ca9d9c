// Package providers implements the Generator interface for the generative
// model endpoints codelens talks to.
//
// Only Google's Gemini generateContent API is supported. The model name and
// API key are supplied per request; the key travels as the "key" query
// parameter and is scrubbed from transport errors.
//
// Providers make exactly one HTTP call per Generate and never retry. A
// non-2xx answer is reported as *StatusError, a 2xx answer without text as
// ErrNoContent. Tests point the client at an httptest server by passing its
// URL to NewGemini.
package providers
