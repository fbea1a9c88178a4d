// Package line implements the styled segment sequence that loglens
// uses to represent a single log line, along with the span locator
// and splitter that the handlers are built on.
package line

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Segment is a contiguous run of text drawn with a single style.
// Segment text is never empty once the segment is part of a Line.
type Segment struct {
	Text  string
	Style tcell.Style
}

// Line is the ordered sequence of segments standing for one log
// line's current render state. Concatenating the segment texts in
// order always yields the textual content of the line; handlers only
// re-partition and re-style, they never gain or lose characters.
// A Line with no segments is the sentinel for "suppressed by the
// filter".
type Line struct {
	segments []Segment
}

// New creates a Line represented as one full segment carrying the
// given style. An empty text produces an empty (suppressed) Line.
func New(text string, style tcell.Style) *Line {
	l := &Line{}
	if text != "" {
		l.segments = []Segment{{Text: text, Style: style}}
	}
	return l
}

// Segments returns the underlying segment slice. Callers must treat
// it as read-only; use Replace to swap in new content.
func (l *Line) Segments() []Segment {
	return l.segments
}

// Len returns the number of segments.
func (l *Line) Len() int {
	return len(l.segments)
}

// Text returns the concatenation of all segment texts.
func (l *Line) Text() string {
	if len(l.segments) == 1 {
		return l.segments[0].Text
	}
	var buf strings.Builder
	for _, seg := range l.segments {
		buf.WriteString(seg.Text)
	}
	return buf.String()
}

// IsEmpty reports whether the line has been suppressed.
func (l *Line) IsEmpty() bool {
	return len(l.segments) == 0
}

// Clear drops all segments, marking the line as suppressed.
func (l *Line) Clear() {
	l.segments = nil
}

// AbsoluteOffset converts a boundary into a byte offset within the
// concatenated line text. Because handlers conserve text, absolute
// offsets stay meaningful across re-partitionings of the same line.
func (l *Line) AbsoluteOffset(b Boundary) int {
	off := b.Off
	for i := 0; i < b.Seg && i < len(l.segments); i++ {
		off += len(l.segments[i].Text)
	}
	return off
}

// Replace swaps the entire segment sequence. Empty segments are
// skipped so that the no-empty-segments invariant holds.
func (l *Line) Replace(segs []Segment) {
	out := segs[:0]
	for _, seg := range segs {
		if seg.Text == "" {
			continue
		}
		out = append(out, seg)
	}
	l.segments = out
}
