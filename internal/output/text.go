package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dshills/codelens/internal/editor"
	"github.com/dshills/codelens/internal/review"
)

var (
	titleColor = color.New(color.FgCyan, color.Bold)
	dimColor   = color.New(color.FgHiBlack)
	highColor  = color.New(color.FgRed, color.Bold)
	addColor   = color.New(color.FgGreen)
	delColor   = color.New(color.FgRed)
)

// TextWriter outputs a human-readable text report: summary, issues in the
// order the model returned them, an annotated listing of flagged lines and
// optionally the diff to the fixed code.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}
	counts := report.Summary.Counts
	total := counts.Total()

	ew.printf("%s\n", titleColor.Sprintf("codelens review: %s", report.Source))
	ew.printf("Model: %s | Language: %s\n", report.Model, languageLabel(report.Language))
	ew.println(strings.Repeat("─", 60))
	ew.printf("Issues: %d total", total)
	if total > 0 {
		ew.printf(" (%d critical, %d high, %d medium, %d low)",
			counts.Critical, counts.High, counts.Medium, counts.Low)
	}
	ew.println("")
	ew.println(strings.Repeat("─", 60))

	if total == 0 {
		ew.println("\nNo issues found. Looks good!")
	}

	for i, issue := range report.Result.Issues {
		ew.printf("\n%d. %s %s\n", i+1, severityBadge(issue.Severity), issue.Title)
		meta := []string{}
		if start, end, ok := issue.Lines(); ok {
			if start == end {
				meta = append(meta, fmt.Sprintf("line %d", start))
			} else {
				meta = append(meta, fmt.Sprintf("lines %d-%d", start, end))
			}
		}
		if issue.Type != "" {
			meta = append(meta, string(issue.Type))
		}
		if len(meta) > 0 {
			ew.printf("   %s\n", dimColor.Sprint(strings.Join(meta, " | ")))
		}
		for _, line := range wrapText(issue.Description, 70) {
			ew.printf("   %s\n", line)
		}
		if issue.Suggestion != "" {
			ew.println("   Suggestion:")
			for _, line := range wrapText(issue.Suggestion, 70) {
				ew.printf("     %s\n", line)
			}
		}
	}

	if report.Code != "" {
		buf := editor.NewBuffer(report.Code)
		if editor.Apply(buf, report.Result, nil) && len(buf.Decorations()) > 0 {
			ew.printf("\n%s\n", titleColor.Sprint("Flagged lines"))
			writeListing(ew, buf)
		}
	}

	if report.ShowDiff {
		diff, err := Diff(report.Source, report.Code, report.Result.FixedCode)
		if err != nil {
			return fmt.Errorf("building diff: %w", err)
		}
		ew.printf("\n%s\n", titleColor.Sprint("Suggested fix"))
		if diff == "" {
			ew.println("(no changes)")
		}
		for _, line := range strings.SplitAfter(diff, "\n") {
			switch {
			case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
				ew.printf("%s", line)
			case strings.HasPrefix(line, "+"):
				ew.printf("%s", addColor.Sprint(line))
			case strings.HasPrefix(line, "-"):
				ew.printf("%s", delColor.Sprint(line))
			default:
				ew.printf("%s", line)
			}
		}
	}

	ew.printf("\n%s\n", strings.Repeat("─", 60))
	ew.printf("Completed in %dms\n", report.ElapsedMs)

	return ew.err
}

// writeListing prints every marked line with one line of context on each
// side. "!!" marks critical/high, "!" marks medium/low.
func writeListing(ew *errWriter, buf *editor.Buffer) {
	n := buf.LineCount()
	show := make([]bool, n+2)
	for line := 1; line <= n; line++ {
		if _, marked := buf.Mark(line); marked {
			show[line-1], show[line], show[line+1] = true, true, true
		}
	}

	prev := 0
	for line := 1; line <= n; line++ {
		if !show[line] {
			continue
		}
		if prev != 0 && line > prev+1 {
			ew.println(dimColor.Sprint("   ..."))
		}
		gutter := "  "
		if em, marked := buf.Mark(line); marked {
			if em == editor.EmphasisHigh {
				gutter = highColor.Sprint("!!")
			} else {
				gutter = " !"
			}
		}
		ew.printf("%s %4d | %s\n", gutter, line, buf.Line(line))
		prev = line
	}
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func severityBadge(s review.Severity) string {
	label := "[" + strings.ToUpper(string(s)) + "]"
	switch s {
	case review.SeverityCritical:
		return color.New(color.BgRed, color.FgWhite, color.Bold).Sprint(label)
	case review.SeverityHigh:
		return color.New(color.FgHiRed, color.Bold).Sprint(label)
	case review.SeverityMedium:
		return color.New(color.FgYellow).Sprint(label)
	default:
		return color.New(color.FgGreen).Sprint(label)
	}
}

func languageLabel(lang string) string {
	if lang == "" {
		return "auto"
	}
	return lang
}

func wrapText(text string, width int) []string {
	if len(text) <= width {
		return []string{text}
	}
	var lines []string
	words := strings.Fields(text)
	var current strings.Builder
	for _, word := range words {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
