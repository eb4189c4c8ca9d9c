package output

import (
	"bytes"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

// PrettyWriter renders the markdown report for a terminal.
type PrettyWriter struct {
	// Style is a glamour style name. Empty picks one from the terminal
	// background.
	Style string
	// Width wraps rendered text. Zero uses 100 columns.
	Width int
}

func (p *PrettyWriter) Write(w io.Writer, report *Report) error {
	var md bytes.Buffer
	ew := &errWriter{w: &md}
	writeMarkdown(ew, report)
	if ew.err != nil {
		return ew.err
	}

	width := p.Width
	if width <= 0 {
		width = 100
	}
	styleOpt := glamour.WithAutoStyle()
	if p.Style != "" {
		styleOpt = glamour.WithStandardStyle(p.Style)
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width), glamour.WithEmoji())
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(md.String())
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
