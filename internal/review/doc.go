// Package review contains the core types and engine for LLM-based code
// review.
//
// A Service turns a Request into exactly one generateContent call and turns
// the model's raw text into a Result. Parsing happens in two stages: Extract
// tolerates prose and code fences around the JSON and fails with
// *ExtractionError when none can be found; Validate is strict about the
// schema and fails with *ValidationError naming the offending path.
//
// Every failure is terminal for the call and belongs to one of five error
// types (configuration, transport, empty response, extraction, validation);
// KindOf classifies them for logs and API responses.
package review
