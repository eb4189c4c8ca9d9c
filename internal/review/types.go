package review

// DefaultModel is used when a request does not name a model.
const DefaultModel = "gemini-2.5-flash"

// Severity represents the severity level of an issue.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	return SeverityRank(s) > 0
}

// SeverityRank returns a numeric rank for comparisons (higher = more severe).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// MeetsThreshold returns true if severity is at or above the threshold.
func MeetsThreshold(s Severity, threshold string) bool {
	if threshold == "none" || threshold == "" {
		return false
	}
	return SeverityRank(s) >= SeverityRank(Severity(threshold))
}

// IssueType categorises an issue.
type IssueType string

const (
	TypeBug             IssueType = "bug"
	TypePerformance     IssueType = "performance"
	TypeSecurity        IssueType = "security"
	TypeStyle           IssueType = "style"
	TypeMaintainability IssueType = "maintainability"
)

// Valid reports whether t is one of the known issue types.
func (t IssueType) Valid() bool {
	switch t {
	case TypeBug, TypePerformance, TypeSecurity, TypeStyle, TypeMaintainability:
		return true
	}
	return false
}

// Issue is a single finding returned by the model.
type Issue struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity"`
	Type        IssueType `json:"type,omitempty"`
	LineStart   *int      `json:"lineStart,omitempty"`
	LineEnd     *int      `json:"lineEnd,omitempty"`
	Suggestion  string    `json:"suggestion,omitempty"`
}

// Lines returns the affected line range. An absent or inverted end is
// clamped to the start. ok is false when the issue has no start line.
func (i Issue) Lines() (start, end int, ok bool) {
	if i.LineStart == nil {
		return 0, 0, false
	}
	start = *i.LineStart
	end = start
	if i.LineEnd != nil && *i.LineEnd > start {
		end = *i.LineEnd
	}
	return start, end, true
}

// Result is the structured output of one review call.
type Result struct {
	Issues    []Issue `json:"issues"`
	FixedCode string  `json:"fixedCode"`
}

// Request is the input to a single review.
type Request struct {
	Code     string
	Language string
	Model    string
	APIKey   string
}

// SeverityCounts holds counts by severity level.
type SeverityCounts struct {
	Low      int `json:"low"`
	Medium   int `json:"medium"`
	High     int `json:"high"`
	Critical int `json:"critical"`
}

// Total returns the sum of all counts.
func (c SeverityCounts) Total() int {
	return c.Low + c.Medium + c.High + c.Critical
}

// Summary provides an overview of issues.
type Summary struct {
	Counts          SeverityCounts `json:"counts"`
	HighestSeverity Severity       `json:"highestSeverity"`
}

// ComputeSummary calculates the summary from issues.
func ComputeSummary(issues []Issue) Summary {
	var s Summary
	for _, i := range issues {
		switch i.Severity {
		case SeverityLow:
			s.Counts.Low++
		case SeverityMedium:
			s.Counts.Medium++
		case SeverityHigh:
			s.Counts.High++
		case SeverityCritical:
			s.Counts.Critical++
		}
		if SeverityRank(i.Severity) > SeverityRank(s.HighestSeverity) {
			s.HighestSeverity = i.Severity
		}
	}
	return s
}
