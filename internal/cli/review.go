package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dshills/codelens/internal/config"
	"github.com/dshills/codelens/internal/logger"
	"github.com/dshills/codelens/internal/output"
	"github.com/dshills/codelens/internal/providers"
	"github.com/dshills/codelens/internal/review"
)

// reviewTimeout bounds a single CLI review, including the model call.
const reviewTimeout = 2 * time.Minute

var (
	flagLang      string
	flagModel     string
	flagAPIKey    string
	flagEndpoint  string
	flagFormat    string
	flagOut       string
	flagFailOn    string
	flagMaxTokens int
	flagApply     bool
	flagDiff      bool
)

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagEndpoint != "" {
		m["endpoint"] = flagEndpoint
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagFailOn != "" {
		m["failOn"] = flagFailOn
	}
	if flagMaxTokens > 0 {
		m["maxOutputTokens"] = strconv.Itoa(flagMaxTokens)
	}
	if flagAPIKey != "" {
		m["apiKey"] = flagAPIKey
	}
	return m
}

// newService builds the review service described by cfg.
func newService(cfg config.Config, log *slog.Logger) (*review.Service, error) {
	gen, err := providers.New("gemini", cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	return review.NewService(gen, review.Options{
		APIKey:          cfg.APIKey,
		Temperature:     cfg.Temperature,
		MaxOutputTokens: cfg.MaxOutputTokens,
		Logger:          log,
	}), nil
}

// readSource returns the code to review and a display name for it.
func readSource(cmd *cobra.Command, args []string) (code, source string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "stdin", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), args[0], nil
}

var reviewCmd = &cobra.Command{
	Use:   "review [file|-]",
	Short: "Review a file, or code from stdin",
	Long: "Send one file (or stdin) to the model for review. Issues are reported in the order " +
		"the model returned them; --diff shows the suggested fix and --apply writes it back.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		if flagApply && (len(args) == 0 || args[0] == "-") {
			return fmt.Errorf("--apply needs a file argument")
		}

		code, source, err := readSource(cmd, args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		lang := flagLang
		if lang == "" && source != "stdin" {
			lang = inferLanguage(source)
		}

		runReview(cmd.Context(), cfg, source, lang, code)
		return nil
	},
}

func runReview(ctx context.Context, cfg config.Config, source, lang, code string) {
	log := logger.New(cfg.Log, os.Stderr)
	svc, err := newService(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitConfigError
		return
	}

	ctx, cancel := context.WithTimeout(ctx, reviewTimeout)
	defer cancel()

	start := time.Now()
	res, err := svc.Submit(ctx, review.Request{
		Code:     code,
		Language: lang,
		Model:    cfg.Model,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		exitCode = exitCodeFor(err)
		return
	}

	report := output.NewReport(source, lang, review.NormalizeModel(cfg.Model), code, res)
	report.ElapsedMs = time.Since(start).Milliseconds()
	report.ShowDiff = flagDiff
	report.ToolVersion = version

	if err := output.WriteReport(report, cfg.Format, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if flagApply {
		applied, err := applyFix(source, code, res.FixedCode)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error applying fix: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}
		if applied {
			fmt.Fprintf(os.Stderr, "%s suggested fix written to %s\n", color.GreenString("Applied:"), source)
		} else {
			fmt.Fprintln(os.Stderr, "No changes to apply")
		}
	}

	// Check fail-on threshold
	if cfg.FailOn != "none" && cfg.FailOn != "" {
		for _, issue := range res.Issues {
			if review.MeetsThreshold(issue.Severity, cfg.FailOn) {
				exitCode = ExitFindings
				return
			}
		}
	}
}

// applyFix overwrites path with fixed, keeping the file mode. It reports
// false when there is nothing to write.
func applyFix(path, original, fixed string) (bool, error) {
	if strings.TrimSpace(fixed) == "" || fixed == original {
		return false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, []byte(fixed), info.Mode().Perm()); err != nil {
		return false, err
	}
	return true, nil
}

// inferLanguage guesses a language hint from the file extension.
func inferLanguage(path string) string {
	langMap := map[string]string{
		".go":    "go",
		".py":    "python",
		".js":    "javascript",
		".ts":    "typescript",
		".tsx":   "tsx",
		".jsx":   "jsx",
		".rs":    "rust",
		".java":  "java",
		".kt":    "kotlin",
		".rb":    "ruby",
		".cpp":   "cpp",
		".cc":    "cpp",
		".c":     "c",
		".h":     "c",
		".cs":    "csharp",
		".php":   "php",
		".swift": "swift",
		".sh":    "bash",
		".sql":   "sql",
		".yaml":  "yaml",
		".yml":   "yaml",
		".json":  "json",
		".tf":    "hcl",
	}
	return langMap[strings.ToLower(filepath.Ext(path))]
}

func init() {
	f := reviewCmd.Flags()
	f.StringVar(&flagLang, "lang", "", "Language hint (default: inferred from the file extension)")
	f.StringVar(&flagModel, "model", "", "Gemini model identifier")
	f.StringVar(&flagAPIKey, "api-key", "", "Gemini API key (default: GEMINI_API_KEY)")
	f.StringVar(&flagEndpoint, "endpoint", "", "Override the generateContent API root")
	f.StringVar(&flagFormat, "format", "", "Output format (text, json, markdown, pretty, sarif)")
	f.StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	f.StringVar(&flagFailOn, "fail-on", "", "Fail on severity threshold (none, low, medium, high, critical)")
	f.IntVar(&flagMaxTokens, "max-output-tokens", 0, "Maximum tokens the model may generate")
	f.BoolVar(&flagApply, "apply", false, "Overwrite the file with the suggested fix")
	f.BoolVar(&flagDiff, "diff", false, "Show the suggested fix as a unified diff")
}
