package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dshills/codelens/internal/review"
)

func TestTextWriter_NoIssues(t *testing.T) {
	report := NewReport("clean.go", "", "gemini-2.5-flash", "package clean\n", &review.Result{Issues: []review.Issue{}})

	var buf bytes.Buffer
	w := &TextWriter{}
	if err := w.Write(&buf, report); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Language: auto") {
		t.Error("Output should show auto language")
	}
	if !strings.Contains(out, "Issues: 0 total") {
		t.Error("Output should show zero issues")
	}
	if !strings.Contains(out, "No issues found") {
		t.Error("Output should say no issues found")
	}
	if strings.Contains(out, "Flagged lines") {
		t.Error("Output should not have a listing without issues")
	}
}

func TestTextWriter_WithIssues(t *testing.T) {
	var buf bytes.Buffer
	w := &TextWriter{}
	if err := w.Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	out := buf.String()
	checks := []string{
		"codelens review: main.go",
		"Issues: 3 total (0 critical, 1 high, 1 medium, 1 low)",
		"1. [HIGH] Division by zero",
		"line 8 | bug",
		"2. [LOW] Unchecked divisor",
		"lines 3-4",
		"3. [MEDIUM] No tests",
		"Suggestion:",
		"Flagged lines",
		"!!    8 | \tprintln(div(1, 0))",
		" !    3 | func div(a, b int) int {",
	}
	for _, check := range checks {
		if !strings.Contains(out, check) {
			t.Errorf("Output missing %q\n%s", check, out)
		}
	}

	// Received order, not severity order.
	if strings.Index(out, "Division by zero") > strings.Index(out, "Unchecked divisor") {
		t.Error("issues should keep the order the model returned")
	}
	if strings.Contains(out, "Suggested fix") {
		t.Error("diff should only be shown on request")
	}
}

func TestTextWriter_Diff(t *testing.T) {
	report := sampleReport()
	report.ShowDiff = true

	var buf bytes.Buffer
	if err := (&TextWriter{}).Write(&buf, report); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Suggested fix") || !strings.Contains(out, "+\tif b == 0 {") {
		t.Errorf("Output missing diff:\n%s", out)
	}
}

func TestTextWriter_DiffNoChanges(t *testing.T) {
	report := NewReport("a.go", "go", "m", "x\n", &review.Result{Issues: []review.Issue{}, FixedCode: "x\n"})
	report.ShowDiff = true

	var buf bytes.Buffer
	if err := (&TextWriter{}).Write(&buf, report); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !strings.Contains(buf.String(), "(no changes)") {
		t.Errorf("expected no-changes note:\n%s", buf.String())
	}
}

func TestTextWriter_ListingContext(t *testing.T) {
	code := "l1\nl2\nl3\nl4\nl5\nl6\nl7\nl8\n"
	res := &review.Result{Issues: []review.Issue{
		{Title: "a", Description: "d", Severity: review.SeverityCritical, LineStart: intPtr(2)},
		{Title: "b", Description: "d", Severity: review.SeverityMedium, LineStart: intPtr(7)},
	}}
	var buf bytes.Buffer
	if err := (&TextWriter{}).Write(&buf, NewReport("f", "", "m", code, res)); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"      1 | l1", "!!    2 | l2", "      3 | l3", "   ...", " !    7 | l7", "      8 | l8"} {
		if !strings.Contains(out, want) {
			t.Errorf("listing missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "| l5") {
		t.Error("line 5 is outside the context window")
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  int
	}{
		{"short", 80, 1},
		{"this is a longer text that should be wrapped at some point", 20, 4},
		{"", 80, 1},
	}
	for _, tt := range tests {
		lines := wrapText(tt.text, tt.width)
		if len(lines) != tt.want {
			t.Errorf("wrapText(%q, %d) = %d lines, want %d", tt.text, tt.width, len(lines), tt.want)
		}
	}
}
