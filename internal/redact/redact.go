package redact

import (
	"net/url"
	"regexp"
	"strings"
)

const placeholder = "[REDACTED]"

// secretPatterns are regex heuristics for credentials that may show up in
// upstream error bodies or in reviewed code echoed back by the model.
var secretPatterns = []*regexp.Regexp{
	// Google API keys
	regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`),
	// key= query parameters, as echoed in request URLs
	regexp.MustCompile(`([?&]key=)[^&\s"']+`),
	// Generic API keys in assignments
	regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{20,})["']?`),
	// AWS access key IDs
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	// Generic secrets/tokens/passwords in assignments
	regexp.MustCompile(`(?i)(secret|token|password|passwd|credential)\s*[:=]\s*["']([^"']{8,})["']`),
	// Bearer tokens
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	// JWTs
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	// Private key blocks
	regexp.MustCompile(`-----BEGIN\s+(RSA\s+|EC\s+|OPENSSH\s+)?PRIVATE KEY-----`),
	// GitHub tokens
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
}

// Secrets replaces detected secrets in text with [REDACTED]. A key= query
// parameter keeps its name.
func Secrets(text string) string {
	result := text
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllStringFunc(result, func(match string) string {
			if i := strings.Index(match, "key="); i >= 0 && (match[0] == '?' || match[0] == '&') {
				return match[:i+len("key=")] + placeholder
			}
			return placeholder
		})
	}
	return result
}

// minValueLen keeps Value from shredding ordinary words when handed a
// short, and therefore invalid, key.
const minValueLen = 8

// Value replaces every occurrence of a known secret, and its query-escaped
// form, then applies Secrets. Secrets shorter than 8 characters are ignored.
func Value(text, secret string) string {
	if secret = strings.TrimSpace(secret); len(secret) >= minValueLen {
		text = strings.ReplaceAll(text, secret, placeholder)
		if escaped := url.QueryEscape(secret); escaped != secret {
			text = strings.ReplaceAll(text, escaped, placeholder)
		}
	}
	return Secrets(text)
}
