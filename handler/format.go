package handler

import (
	"regexp"

	"github.com/pkg/errors"

	"github.com/loglens/loglens/config"
	"github.com/loglens/loglens/line"
	"github.com/loglens/loglens/poi"
)

// ErrFragmented is returned when the format stage is handed a line
// that has already been split into more than one segment. The
// pipeline constructs Format before Token and Search precisely so
// that this cannot happen; seeing it means the pipeline was assembled
// out of order, and the recompute as a whole is abandoned.
var ErrFragmented = errors.New("format stage requires a single-segment line")

// Format applies per-capture-group coloring to a line based on a
// whole-line regular expression. Text not covered by any capture
// group is dropped; patterns are expected to cover the full line with
// their groups.
type Format struct {
	rx     *regexp.Regexp
	groups []config.GroupColor
}

// NewFormat creates a Format handler. It returns nil when the pattern
// is empty or no group colors are configured, and an error when the
// pattern does not compile.
func NewFormat(cfg config.FormatConfig) (*Format, error) {
	if cfg.Pattern == "" || len(cfg.Groups) == 0 {
		return nil, nil
	}
	rx, err := regexp.Compile(cfg.Pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid format pattern %q", cfg.Pattern)
	}
	return &Format{rx: rx, groups: cfg.Groups}, nil
}

// Process recolors the line along its capture groups. A line that
// does not match the pattern, or whose group count does not agree
// with the configured coloring, is left completely unchanged.
func (h *Format) Process(l *line.Line) ([]poi.Point, error) {
	if l.Len() != 1 {
		return nil, errors.Wrapf(ErrFragmented, "got %d segments", l.Len())
	}

	seg := l.Segments()[0]
	m := h.rx.FindStringSubmatchIndex(seg.Text)
	if m == nil {
		return nil, nil
	}

	groups := len(m)/2 - 1
	if groups != len(h.groups) {
		// configuration / pattern mismatch: the feature is
		// temporarily inapplicable, not an error
		return nil, nil
	}

	segs := make([]line.Segment, 0, groups)
	for i := 1; i <= groups; i++ {
		start, end := m[2*i], m[2*i+1]
		if start < 0 {
			// an optional group did not participate; bail out
			// and leave the line as it was
			return nil, nil
		}

		gc := h.groups[i-1]
		st := seg.Style.Background(gc.Bg.Tcell())
		if !gc.UseOriginalFg {
			st = st.Foreground(gc.Fg.Tcell())
		}
		segs = append(segs, line.Segment{Text: seg.Text[start:end], Style: st})
	}

	l.Replace(segs)
	return nil, nil
}

func (h *Format) String() string {
	return "Format"
}
