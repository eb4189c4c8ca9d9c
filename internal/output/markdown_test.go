package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dshills/codelens/internal/review"
)

func TestMarkdownWriter_NoIssues(t *testing.T) {
	report := NewReport("clean.go", "go", "m", "package clean\n", &review.Result{Issues: []review.Issue{}})

	var buf bytes.Buffer
	w := &MarkdownWriter{}
	if err := w.Write(&buf, report); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "## Code Review: `clean.go`") {
		t.Error("Missing heading")
	}
	if !strings.Contains(out, "No issues found") {
		t.Error("Should say no issues found")
	}
	if !strings.Contains(out, "| **Total** | **0** |") {
		t.Error("Missing total row")
	}
}

func TestMarkdownWriter_WithIssues(t *testing.T) {
	report := sampleReport()
	report.ShowDiff = true

	var buf bytes.Buffer
	w := &MarkdownWriter{}
	if err := w.Write(&buf, report); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	out := buf.String()
	checks := []string{
		"| High     | 1    |",
		"### 1. :red_circle: Division by zero",
		"**HIGH** | line 8 | bug",
		"### 2. :yellow_circle: Unchecked divisor",
		"**LOW** | lines 3-4",
		"**Suggestion:**",
		"```go\nif b == 0 { return 0 }\n```",
		"<summary>Suggested fix</summary>",
		"```diff\n",
		"*Reviewed in",
	}
	for _, check := range checks {
		if !strings.Contains(out, check) {
			t.Errorf("Output missing %q\n%s", check, out)
		}
	}
}

func TestMarkdownWriter_ProseSuggestion(t *testing.T) {
	res := &review.Result{Issues: []review.Issue{{
		Title:       "Naming",
		Description: "Unclear name.",
		Severity:    review.SeverityLow,
		Suggestion:  "Pick a descriptive name\nfor the helper",
	}}}

	var buf bytes.Buffer
	if err := (&MarkdownWriter{}).Write(&buf, NewReport("a.py", "python", "m", "x = 1\n", res)); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !strings.Contains(buf.String(), "> Pick a descriptive name\n> for the helper") {
		t.Errorf("prose suggestion should be quoted:\n%s", buf.String())
	}
}

func TestLooksLikeCode(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"if err != nil { return err }", true},
		{"Use a descriptive variable name", false},
		{"x := 5", true},
	}
	for _, tt := range tests {
		if got := looksLikeCode(tt.input); got != tt.want {
			t.Errorf("looksLikeCode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
