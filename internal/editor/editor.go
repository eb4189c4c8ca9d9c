package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dshills/codelens/internal/review"
)

// Emphasis selects the visual treatment of a decoration.
type Emphasis int

const (
	EmphasisNormal Emphasis = iota
	EmphasisHigh
)

// Decoration marks a whole-line range as affected by an issue.
type Decoration struct {
	StartLine int
	EndLine   int
	Emphasis  Emphasis
	Hover     string
	Issue     int // index into Result.Issues
}

// Surface is the capability an editor exposes to the review core. Lines
// are 1-indexed.
type Surface interface {
	LineCount() int
	RevealLine(line int) error
	SetDecorations(decs []Decoration) error
}

// ErrNoLine is returned by JumpTo for issues without a start line.
var ErrNoLine = errors.New("issue has no line information")

// EmphasisFor maps a severity to its visual treatment.
func EmphasisFor(s review.Severity) Emphasis {
	if s == review.SeverityCritical || s == review.SeverityHigh {
		return EmphasisHigh
	}
	return EmphasisNormal
}

// Markers converts the result's located issues into decorations, in the
// order the issues were received. Issues without a start line are skipped.
func Markers(res *review.Result) []Decoration {
	if res == nil {
		return nil
	}
	var decs []Decoration
	for idx, issue := range res.Issues {
		start, end, ok := issue.Lines()
		if !ok {
			continue
		}
		decs = append(decs, Decoration{
			StartLine: start,
			EndLine:   end,
			Emphasis:  EmphasisFor(issue.Severity),
			Hover:     fmt.Sprintf("%s: %s\n\n%s", strings.ToUpper(string(issue.Severity)), issue.Title, issue.Description),
			Issue:     idx,
		})
	}
	return decs
}

// ClampLine bounds line to [1, lineCount]. An empty document clamps to 1.
func ClampLine(line, lineCount int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	if line < 1 {
		return 1
	}
	if line > lineCount {
		return lineCount
	}
	return line
}

// JumpTo moves the surface's viewport and cursor to the issue's start
// line, clamped to the document, and returns the line it moved to.
func JumpTo(s Surface, issue review.Issue) (int, error) {
	start, _, ok := issue.Lines()
	if !ok {
		return 0, ErrNoLine
	}
	line := ClampLine(start, s.LineCount())
	if err := s.RevealLine(line); err != nil {
		return 0, fmt.Errorf("revealing line %d: %w", line, err)
	}
	return line, nil
}

// Apply decorates the surface with the result's markers. Decorating is
// best effort: a failure is logged and reported as false, never as an
// error, so it cannot fail the review.
func Apply(s Surface, res *review.Result, logger *slog.Logger) bool {
	decs := Markers(res)
	n := s.LineCount()
	for i := range decs {
		decs[i].StartLine = ClampLine(decs[i].StartLine, n)
		decs[i].EndLine = ClampLine(decs[i].EndLine, n)
	}
	if err := s.SetDecorations(decs); err != nil {
		if logger != nil {
			logger.Warn("skipping decorations", "error", err)
		}
		return false
	}
	return true
}
