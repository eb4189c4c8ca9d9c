package editor

import (
	"strings"
)

// Buffer is an in-memory Surface over plain text. The CLI uses it to
// render annotated listings.
type Buffer struct {
	lines  []string
	cursor int
	decs   []Decoration
}

// NewBuffer splits text into lines. A trailing newline does not start an
// extra line.
func NewBuffer(text string) *Buffer {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return &Buffer{lines: strings.Split(text, "\n"), cursor: 1}
}

func (b *Buffer) LineCount() int { return len(b.lines) }

func (b *Buffer) RevealLine(line int) error {
	b.cursor = ClampLine(line, len(b.lines))
	return nil
}

func (b *Buffer) SetDecorations(decs []Decoration) error {
	b.decs = append(b.decs[:0], decs...)
	return nil
}

// Cursor returns the current 1-indexed cursor line.
func (b *Buffer) Cursor() int { return b.cursor }

// Line returns the text of a 1-indexed line.
func (b *Buffer) Line(n int) string {
	if n < 1 || n > len(b.lines) {
		return ""
	}
	return b.lines[n-1]
}

// Decorations returns the decorations currently applied.
func (b *Buffer) Decorations() []Decoration { return b.decs }

// Mark returns the strongest emphasis covering line and whether any
// decoration covers it.
func (b *Buffer) Mark(line int) (Emphasis, bool) {
	found := false
	em := EmphasisNormal
	for _, d := range b.decs {
		if line < d.StartLine || line > d.EndLine {
			continue
		}
		found = true
		if d.Emphasis == EmphasisHigh {
			em = EmphasisHigh
		}
	}
	return em, found
}
