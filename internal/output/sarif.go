package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/codelens/internal/review"
)

const sarifGeneralRule = "general"

// SARIFWriter outputs issues in SARIF v2.1.0 format.
type SARIFWriter struct{}

func (s *SARIFWriter) Write(w io.Writer, report *Report) error {
	sarif := buildSARIF(report)
	data, err := json.MarshalIndent(sarif, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling SARIF: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing SARIF: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}

// SARIF schema types (v2.1.0)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifResult struct {
	RuleID     string           `json:"ruleId"`
	Level      string           `json:"level"`
	Message    sarifMessage     `json:"message"`
	Locations  []sarifLocation  `json:"locations,omitempty"`
	Fixes      []sarifFix       `json:"fixes,omitempty"`
	Properties *sarifProperties `json:"properties,omitempty"`
}

type sarifProperties struct {
	Severity string `json:"severity"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`
}

type sarifFix struct {
	Description sarifMessage `json:"description"`
}

func buildSARIF(report *Report) sarifLog {
	rules := []sarifRule{}
	seen := make(map[string]bool)
	results := []sarifResult{}

	for _, issue := range report.Result.Issues {
		ruleID := ruleIDFor(issue.Type)
		if !seen[ruleID] {
			seen[ruleID] = true
			rules = append(rules, sarifRule{
				ID:               ruleID,
				Name:             ruleName(issue.Type),
				ShortDescription: sarifMessage{Text: ruleName(issue.Type) + " issue"},
			})
		}

		result := sarifResult{
			RuleID:     ruleID,
			Level:      severityToLevel(issue.Severity),
			Message:    sarifMessage{Text: issue.Title + ": " + issue.Description},
			Properties: &sarifProperties{Severity: string(issue.Severity)},
		}

		loc := sarifLocation{
			PhysicalLocation: sarifPhysicalLocation{
				ArtifactLocation: sarifArtifactLocation{URI: report.Source},
			},
		}
		if start, end, ok := issue.Lines(); ok {
			loc.PhysicalLocation.Region = &sarifRegion{StartLine: start, EndLine: end}
		}
		result.Locations = []sarifLocation{loc}

		if issue.Suggestion != "" {
			result.Fixes = append(result.Fixes, sarifFix{
				Description: sarifMessage{Text: issue.Suggestion},
			})
		}

		results = append(results, result)
	}

	return sarifLog{
		Version: "2.1.0",
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    "codelens",
						Version: report.ToolVersion,
						Rules:   rules,
					},
				},
				Results: results,
			},
		},
	}
}

// severityToLevel maps a review severity to a SARIF level.
func severityToLevel(s review.Severity) string {
	switch s {
	case review.SeverityCritical, review.SeverityHigh:
		return "error"
	case review.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}

// ruleIDFor returns one rule per issue type; untyped issues share a rule.
func ruleIDFor(t review.IssueType) string {
	return "codelens/" + ruleName(t)
}

func ruleName(t review.IssueType) string {
	if t == "" {
		return sarifGeneralRule
	}
	return string(t)
}
