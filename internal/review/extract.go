package review

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	openingFence = regexp.MustCompile("(?i)^```(?:json)?[ \t]*\n?")
	closingFence = regexp.MustCompile("\n?```$")
)

// Extract locates the JSON value in raw model text. It first strips a
// markdown code fence wrapping the whole text and parses what remains;
// failing that it parses the span from the first '{' to the last '}' of
// the original text. Fences inside the payload are left alone.
//
// Numbers are decoded as json.Number so that Validate can tell integers
// from fractions.
func Extract(text string) (any, error) {
	cleaned := stripFence(text)
	v, firstErr := decodeJSON(cleaned)
	if firstErr == nil {
		return v, nil
	}

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return nil, &ExtractionError{Err: firstErr}
	}
	v, err := decodeJSON(text[start : end+1])
	if err != nil {
		return nil, &ExtractionError{Err: err}
	}
	return v, nil
}

func stripFence(text string) string {
	s := strings.TrimSpace(text)
	s = openingFence.ReplaceAllString(s, "")
	s = closingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func decodeJSON(s string) (any, error) {
	if s == "" {
		return nil, errors.New("empty text")
	}
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after JSON value at offset %d", dec.InputOffset())
	}
	return v, nil
}

