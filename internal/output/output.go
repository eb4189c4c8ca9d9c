package output

import (
	"fmt"
	"io"
	"os"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/dshills/codelens/internal/review"
)

// Report is one review as presented to the user.
type Report struct {
	Source    string         `json:"source"`
	Language  string         `json:"language,omitempty"`
	Model     string         `json:"model"`
	Code      string         `json:"-"`
	Result    *review.Result `json:"result"`
	Summary   review.Summary `json:"summary"`
	ElapsedMs int64          `json:"elapsedMs"`
	// ShowDiff adds a unified diff of Code against Result.FixedCode.
	ShowDiff bool `json:"-"`
	// ToolVersion is reported as the SARIF driver version.
	ToolVersion string `json:"-"`
}

// NewReport fills in the summary for res.
func NewReport(source, language, model, code string, res *review.Result) *Report {
	return &Report{
		Source:   source,
		Language: language,
		Model:    model,
		Code:     code,
		Result:   res,
		Summary:  review.ComputeSummary(res.Issues),
	}
}

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, report *Report) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "markdown":
		return &MarkdownWriter{}, nil
	case "pretty":
		return &PrettyWriter{}, nil
	case "sarif":
		return &SARIFWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteReport writes the report to the specified output (file path or stdout).
func WriteReport(report *Report, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	var w io.Writer
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	return writer.Write(w, report)
}

// Diff returns a unified diff from the reviewed code to the fixed code, or
// "" when there is no fix or nothing changed.
func Diff(source, code, fixed string) (string, error) {
	if fixed == "" || fixed == code {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(ensureNewline(code)),
		B:        difflib.SplitLines(ensureNewline(fixed)),
		FromFile: "a/" + source,
		ToFile:   "b/" + source,
		Context:  3,
	})
}

func ensureNewline(s string) string {
	if s == "" || s[len(s)-1] == '\n' {
		return s
	}
	return s + "\n"
}
