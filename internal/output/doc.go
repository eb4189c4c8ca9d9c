// Package output formats review reports for display or machine consumption.
//
// Five formats are supported:
//   - text     human-readable terminal output with a flagged-lines listing (default)
//   - json     the validated result plus summary and metadata
//   - markdown summary table and one section per issue
//   - pretty   the markdown report rendered for the terminal with glamour
//   - sarif    SARIF 2.1.0 with one rule per issue type, for code-scanning tools
//
// Use [GetWriter] to obtain a [Writer] for a given format string, then call
// [Writer.Write] with an [io.Writer] and a [*Report]. [WriteReport] handles
// destination selection, and [Diff] renders the suggested fix as a unified diff.
package output
