// Package editor bridges review results to an editing surface.
//
// The core never drives a concrete editor. It hands a review.Result to a
// Surface, which can reveal a line and paint whole-line decorations.
// Critical and high issues get EmphasisHigh; medium and low get
// EmphasisNormal. Issues without a start line are listed by callers but are
// neither jumpable nor markable. All line numbers are 1-indexed and clamped
// to the document.
package editor
