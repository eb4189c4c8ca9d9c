// Package redact scrubs credentials from text before it is logged or
// returned in an error message.
//
// Detection uses regex heuristics covering common secret shapes: Google API
// keys, key= query parameters, generic API key and password assignments,
// JWTs, bearer tokens, private key headers, AWS access key IDs and GitHub
// tokens. [Value] additionally removes one known secret verbatim.
package redact
