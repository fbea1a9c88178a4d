package line

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Boundary addresses a position inside a Line as a segment index and
// a byte offset within that segment's text.
type Boundary struct {
	Seg int
	Off int
}

// Span is a located match: a start boundary and an exclusive end
// boundary, in reading order. A span may begin in one segment and end
// in another.
type Span struct {
	Start Boundary
	End   Boundary
}

func (b Boundary) before(o Boundary) bool {
	if b.Seg != o.Seg {
		return b.Seg < o.Seg
	}
	return b.Off < o.Off
}

// StyleOverride carries the style fields a split should force onto
// matched segments. A zero (invalid) color means "inherit whatever
// the original segment had".
type StyleOverride struct {
	Fg tcell.Color
	Bg tcell.Color
}

func (ov StyleOverride) apply(s tcell.Style) tcell.Style {
	if ov.Bg.Valid() {
		s = s.Background(ov.Bg)
	}
	if ov.Fg.Valid() {
		s = s.Foreground(ov.Fg)
	}
	return s
}

// Find locates every non-overlapping occurrence of needle in the
// logical concatenation of the line's segment texts, returning the
// spans in reading order. With matchCase off the comparison is
// case-folded; with wholeWord on a match is rejected unless both of
// its neighbors (or the line edges) are non-alphanumeric. An empty
// needle yields no spans.
func Find(l *Line, needle string, matchCase, wholeWord bool) []Span {
	if needle == "" || l.Len() == 0 {
		return nil
	}

	if !matchCase {
		needle = strings.ToLower(needle)
	}

	// Build the haystack once, with a parallel table mapping each
	// segment to its byte range within it.
	var buf strings.Builder
	offsets := make([]int, len(l.segments)+1)
	for i, seg := range l.segments {
		offsets[i] = buf.Len()
		if matchCase {
			buf.WriteString(seg.Text)
		} else {
			buf.WriteString(strings.ToLower(seg.Text))
		}
	}
	offsets[len(l.segments)] = buf.Len()
	haystack := buf.String()

	var spans []Span
	start := 0
	for start < len(haystack) {
		i := strings.Index(haystack[start:], needle)
		if i < 0 {
			break
		}
		pos := start + i
		end := pos + len(needle)

		if wholeWord && !isWordBounded(haystack, pos, end) {
			start = pos + 1
			continue
		}

		spans = append(spans, resolveSpan(offsets, pos, end))
		start = end
	}
	return spans
}

// isWordBounded reports whether the match at [pos, end) is flanked by
// non-alphanumeric characters. Running off either edge of the line
// counts as a boundary.
func isWordBounded(s string, pos, end int) bool {
	if pos > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:pos])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// resolveSpan maps absolute byte positions in the concatenation back
// to (segment, offset) boundaries using the offset table.
func resolveSpan(offsets []int, pos, end int) Span {
	var sp Span
	for i := 0; i < len(offsets)-1; i++ {
		if pos >= offsets[i] && pos < offsets[i+1] {
			sp.Start = Boundary{Seg: i, Off: pos - offsets[i]}
		}
		if end > offsets[i] && end <= offsets[i+1] {
			sp.End = Boundary{Seg: i, Off: end - offsets[i]}
		}
	}
	return sp
}

// SplitSpans rewrites the line so that each spanned region is
// isolated into its own segment(s) carrying the override style, while
// untouched text keeps its original segments and style. Spans must be
// non-overlapping (Find guarantees this); they are processed back to
// front so that splitting one never invalidates the boundaries of the
// spans still pending.
func SplitSpans(l *Line, spans []Span, ov StyleOverride) {
	if len(spans) == 0 {
		return
	}

	ordered := make([]Span, len(spans))
	copy(ordered, spans)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[j].Start.before(ordered[i].Start)
	})

	for _, sp := range ordered {
		splitOne(l, sp, ov)
	}
}

func splitOne(l *Line, sp Span, ov StyleOverride) {
	repl := make([]Segment, 0, sp.End.Seg-sp.Start.Seg+3)

	start := l.segments[sp.Start.Seg]
	if sp.Start.Seg == sp.End.Seg {
		if before := start.Text[:sp.Start.Off]; before != "" {
			repl = append(repl, Segment{Text: before, Style: start.Style})
		}
		repl = append(repl, Segment{
			Text:  start.Text[sp.Start.Off:sp.End.Off],
			Style: ov.apply(start.Style),
		})
		if after := start.Text[sp.End.Off:]; after != "" {
			repl = append(repl, Segment{Text: after, Style: start.Style})
		}
	} else {
		end := l.segments[sp.End.Seg]

		if before := start.Text[:sp.Start.Off]; before != "" {
			repl = append(repl, Segment{Text: before, Style: start.Style})
		}
		repl = append(repl, Segment{
			Text:  start.Text[sp.Start.Off:],
			Style: ov.apply(start.Style),
		})
		for i := sp.Start.Seg + 1; i < sp.End.Seg; i++ {
			mid := l.segments[i]
			repl = append(repl, Segment{Text: mid.Text, Style: ov.apply(mid.Style)})
		}
		repl = append(repl, Segment{
			Text:  end.Text[:sp.End.Off],
			Style: ov.apply(end.Style),
		})
		if after := end.Text[sp.End.Off:]; after != "" {
			repl = append(repl, Segment{Text: after, Style: end.Style})
		}
	}

	tail := l.segments[sp.End.Seg+1:]
	out := make([]Segment, 0, sp.Start.Seg+len(repl)+len(tail))
	out = append(out, l.segments[:sp.Start.Seg]...)
	out = append(out, repl...)
	out = append(out, tail...)
	l.segments = out
}
