// Package cli wires together the Cobra command tree for the codelens binary.
//
// It defines the root command and all subcommands (review, serve, config,
// models, version), binds flags, reads configuration, invokes the review
// service, and returns deterministic exit codes for CI gating.
package cli
