// Package config loads and merges codelens configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (CODELENS_MODEL, CODELENS_FORMAT, CODELENS_FAIL_ON, etc.)
//  3. Config file ($XDG_CONFIG_HOME/codelens/config.json)
//  4. Built-in defaults
//
// The fallback Gemini credential is read from GEMINI_API_KEY (or
// GOOGLE_API_KEY) only. It is carried on Config.APIKey so callers can inject
// it into review.Options, and it is never written back to the file.
//
// Use [Load] to obtain a merged [Config], [Save] to write the config file,
// and [SetField] to update a single key.
package config
