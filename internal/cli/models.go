package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dshills/codelens/internal/config"
	"github.com/dshills/codelens/internal/providers"
	"github.com/dshills/codelens/internal/review"
)

// doctorSnippet is small enough to review in a few output tokens.
const doctorSnippet = "func add(a, b int) int { return a + b }"

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Model listing and credential checks",
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known Gemini models",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "gemini:")
		for _, m := range providers.GeminiModels {
			marker := ""
			if m == review.DefaultModel {
				marker = " (default)"
			}
			fmt.Fprintf(out, "  - %s%s\n", m, marker)
		}
	},
}

var modelsDoctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Validate the API key and model with one live review",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		model := review.NormalizeModel(cfg.Model)
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Checking %s...\n", model)

		svc, err := newService(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("FAIL:"), err)
			exitCode = ExitConfigError
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		_, err = svc.Submit(ctx, review.Request{Code: doctorSnippet, Language: "go", Model: model})
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("FAIL:"), err)
			exitCode = exitCodeFor(err)
			return nil
		}

		fmt.Fprintf(out, "%s %s is configured and responding\n", color.GreenString("OK:"), model)
		return nil
	},
}

func init() {
	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsDoctorCmd)
	modelsDoctorCmd.Flags().StringVar(&flagModel, "model", "", "Model to check")
	modelsDoctorCmd.Flags().StringVar(&flagAPIKey, "api-key", "", "API key to check (default: GEMINI_API_KEY)")
	modelsDoctorCmd.Flags().StringVar(&flagEndpoint, "endpoint", "", "Override the generateContent API root")
}
