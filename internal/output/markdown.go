package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/codelens/internal/review"
)

// MarkdownWriter outputs a markdown report suitable for a PR comment or a
// notes file.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}
	writeMarkdown(ew, report)
	return ew.err
}

func writeMarkdown(ew *errWriter, report *Report) {
	counts := report.Summary.Counts
	total := counts.Total()

	ew.printf("## Code Review: `%s`\n\n", report.Source)
	ew.printf("Model `%s`, language %s\n\n", report.Model, languageLabel(report.Language))

	ew.printf("| Severity | Count |\n")
	ew.printf("|----------|-------|\n")
	ew.printf("| Critical | %d    |\n", counts.Critical)
	ew.printf("| High     | %d    |\n", counts.High)
	ew.printf("| Medium   | %d    |\n", counts.Medium)
	ew.printf("| Low      | %d    |\n", counts.Low)
	ew.printf("| **Total** | **%d** |\n\n", total)

	if total == 0 {
		ew.println("No issues found. :white_check_mark:")
		ew.println("")
	}

	for i, issue := range report.Result.Issues {
		ew.printf("### %d. %s %s\n\n", i+1, mdSeverityIcon(issue.Severity), issue.Title)

		meta := []string{"**" + strings.ToUpper(string(issue.Severity)) + "**"}
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
		ew.printf("%s\n\n", strings.Join(meta, " | "))
		ew.printf("%s\n\n", issue.Description)

		if issue.Suggestion != "" {
			ew.printf("**Suggestion:**\n\n")
			if looksLikeCode(issue.Suggestion) {
				ew.printf("```%s\n%s\n```\n\n", fenceLang(report.Language), issue.Suggestion)
			} else {
				ew.printf("> %s\n\n", strings.ReplaceAll(issue.Suggestion, "\n", "\n> "))
			}
		}
	}

	if report.ShowDiff {
		diff, err := Diff(report.Source, report.Code, report.Result.FixedCode)
		if err != nil && ew.err == nil {
			ew.err = fmt.Errorf("building diff: %w", err)
			return
		}
		if diff != "" {
			ew.printf("<details>\n<summary>Suggested fix</summary>\n\n")
			ew.printf("```diff\n%s```\n\n", diff)
			ew.printf("</details>\n\n")
		}
	}

	ew.printf("*Reviewed in %dms*\n", report.ElapsedMs)
}

func mdSeverityIcon(s review.Severity) string {
	switch s {
	case review.SeverityCritical:
		return ":rotating_light:"
	case review.SeverityHigh:
		return ":red_circle:"
	case review.SeverityMedium:
		return ":orange_circle:"
	case review.SeverityLow:
		return ":yellow_circle:"
	default:
		return ":white_circle:"
	}
}

func fenceLang(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}

func looksLikeCode(s string) bool {
	codeIndicators := []string{
		"func ", "if ", "for ", "return ", "var ", "const ",
		"def ", "class ", "import ", "from ",
		"{", "}", "=>", "->", ":=", "==",
		"()", "[];",
	}
	for _, indicator := range codeIndicators {
		if strings.Contains(s, indicator) {
			return true
		}
	}
	return false
}
