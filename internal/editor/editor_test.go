package editor

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/codelens/internal/review"
)

func line(n int) *int { return &n }

// failingSurface rejects decorations.
type failingSurface struct {
	*Buffer
}

func (f failingSurface) SetDecorations([]Decoration) error {
	return errors.New("editor not ready")
}

func sampleResult() *review.Result {
	return &review.Result{
		Issues: []review.Issue{
			{Title: "Unchecked error", Description: "err is ignored", Severity: review.SeverityHigh, LineStart: line(2)},
			{Title: "Naming", Description: "short name", Severity: review.SeverityLow},
			{Title: "Range", Description: "multi-line", Severity: review.SeverityMedium, LineStart: line(3), LineEnd: line(4)},
			{Title: "Inverted", Description: "end before start", Severity: review.SeverityCritical, LineStart: line(4), LineEnd: line(1)},
			{Title: "Past the end", Description: "model miscounted", Severity: review.SeverityLow, LineStart: line(40), LineEnd: line(50)},
		},
	}
}

func TestMarkers(t *testing.T) {
	decs := Markers(sampleResult())
	require.Len(t, decs, 4)

	assert.Equal(t, Decoration{StartLine: 2, EndLine: 2, Emphasis: EmphasisHigh, Hover: "HIGH: Unchecked error\n\nerr is ignored", Issue: 0}, decs[0])
	assert.Equal(t, 3, decs[1].StartLine)
	assert.Equal(t, 4, decs[1].EndLine)
	assert.Equal(t, EmphasisNormal, decs[1].Emphasis)
	assert.Equal(t, 2, decs[1].Issue, "decoration keeps the index of its issue")

	assert.Equal(t, 4, decs[2].StartLine)
	assert.Equal(t, 4, decs[2].EndLine, "inverted range clamps to start")
	assert.Equal(t, EmphasisHigh, decs[2].Emphasis)
}

func TestMarkers_Nil(t *testing.T) {
	assert.Nil(t, Markers(nil))
	assert.Empty(t, Markers(&review.Result{}))
}

func TestEmphasisFor(t *testing.T) {
	assert.Equal(t, EmphasisHigh, EmphasisFor(review.SeverityCritical))
	assert.Equal(t, EmphasisHigh, EmphasisFor(review.SeverityHigh))
	assert.Equal(t, EmphasisNormal, EmphasisFor(review.SeverityMedium))
	assert.Equal(t, EmphasisNormal, EmphasisFor(review.SeverityLow))
}

func TestClampLine(t *testing.T) {
	tests := []struct {
		line, count, want int
	}{
		{1, 10, 1},
		{5, 10, 5},
		{10, 10, 10},
		{11, 10, 10},
		{0, 10, 1},
		{-3, 10, 1},
		{4, 0, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampLine(tt.line, tt.count), "ClampLine(%d, %d)", tt.line, tt.count)
	}
}

func TestJumpTo(t *testing.T) {
	buf := NewBuffer("a\nb\nc\nd\ne\n")
	require.Equal(t, 5, buf.LineCount())

	got, err := JumpTo(buf, review.Issue{LineStart: line(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, got)
	assert.Equal(t, 3, buf.Cursor())

	got, err = JumpTo(buf, review.Issue{LineStart: line(99)})
	require.NoError(t, err)
	assert.Equal(t, 5, got, "jump clamps to the last line")
	assert.Equal(t, 5, buf.Cursor())

	_, err = JumpTo(buf, review.Issue{})
	assert.ErrorIs(t, err, ErrNoLine)
	assert.Equal(t, 5, buf.Cursor(), "cursor untouched for issues without lines")
}

func TestApply(t *testing.T) {
	buf := NewBuffer("l1\nl2\nl3\nl4\nl5\nl6")
	ok := Apply(buf, sampleResult(), nil)
	require.True(t, ok)

	decs := buf.Decorations()
	require.Len(t, decs, 4)
	assert.Equal(t, 6, decs[3].StartLine, "out of range start clamps to document")
	assert.Equal(t, 6, decs[3].EndLine)

	em, marked := buf.Mark(2)
	assert.True(t, marked)
	assert.Equal(t, EmphasisHigh, em)

	em, marked = buf.Mark(3)
	assert.True(t, marked)
	assert.Equal(t, EmphasisNormal, em)

	em, marked = buf.Mark(4)
	assert.True(t, marked)
	assert.Equal(t, EmphasisHigh, em, "strongest emphasis wins on overlap")

	_, marked = buf.Mark(1)
	assert.False(t, marked)
}

func TestApply_FailureIsSwallowed(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	s := failingSurface{NewBuffer("x")}
	assert.False(t, Apply(s, sampleResult(), logger))
}

func TestBuffer(t *testing.T) {
	buf := NewBuffer("first\r\nsecond\n")
	assert.Equal(t, 2, buf.LineCount())
	assert.Equal(t, "second", buf.Line(2))
	assert.Equal(t, "", buf.Line(3))
	assert.Equal(t, 1, buf.Cursor())

	empty := NewBuffer("")
	assert.Equal(t, 1, empty.LineCount())
}
