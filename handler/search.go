package handler

import (
	"github.com/gdamore/tcell/v2"

	"github.com/loglens/loglens/config"
	"github.com/loglens/loglens/line"
	"github.com/loglens/loglens/poi"
)

// Search locates the live search term, highlights every occurrence
// with the review style, and reports each occurrence as a point of
// interest. The Line field of the returned points is left zero; the
// recompute driver fills it in once the visible line number is known.
type Search struct {
	term      string
	matchCase bool
	wholeWord bool
	override  line.StyleOverride
}

// NewSearch creates a Search handler, or nil when the term is empty.
// The match style provides the review colors; unset colors fall back
// to black on yellow.
func NewSearch(cfg config.SearchConfig, match config.Style) *Search {
	if cfg.Term == "" {
		return nil
	}

	ov := line.StyleOverride{
		Fg: match.Foreground(),
		Bg: match.Background(),
	}
	if !ov.Bg.Valid() || ov.Bg == tcell.ColorDefault {
		ov.Bg = tcell.ColorYellow
	}
	if !ov.Fg.Valid() || ov.Fg == tcell.ColorDefault {
		ov.Fg = tcell.ColorBlack
	}

	return &Search{
		term:      cfg.Term,
		matchCase: cfg.MatchCase,
		wholeWord: cfg.WholeWord,
		override:  ov,
	}
}

// Process highlights all search matches and returns one point of
// interest per match, in reading order.
func (h *Search) Process(l *line.Line) ([]poi.Point, error) {
	spans := line.Find(l, h.term, h.matchCase, h.wholeWord)
	if len(spans) == 0 {
		return nil, nil
	}

	points := make([]poi.Point, len(spans))
	for i, sp := range spans {
		points[i] = poi.Point{
			Seg: sp.Start.Seg,
			Off: sp.Start.Off,
			Len: len(h.term),
		}
	}

	line.SplitSpans(l, spans, h.override)
	return points, nil
}

func (h *Search) String() string {
	return "Search"
}
