package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/codelens/internal/providers"
	"github.com/dshills/codelens/internal/review"
)

const version = "0.1.0"

// Exit codes.
const (
	ExitSuccess      = 0
	ExitFindings     = 1
	ExitUsageError   = 2
	ExitConfigError  = 3
	ExitRuntimeError = 4
)

var rootCmd = &cobra.Command{
	Use:   "codelens",
	Short: "AI code review for a single file or snippet",
	Long: "codelens sends code to a Gemini model, validates the structured review it returns " +
		"and reports the issues with severities, line ranges and a suggested fix.",
	SilenceUsage: true,
}

// Run executes the root command and returns an exit code.
func Run() int {
	return run(os.Args[1:])
}

func run(args []string) int {
	exitCode = ExitSuccess
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}
	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// exitCodeFor maps a review error to a process exit code. Rejected
// credentials count as configuration errors.
func exitCodeFor(err error) int {
	if review.IsConfigurationError(err) || providers.IsAuthError(err) {
		return ExitConfigError
	}
	return ExitRuntimeError
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print codelens version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "codelens version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(versionCmd)
}
