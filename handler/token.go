package handler

import (
	"sort"
	"strings"

	"github.com/loglens/loglens/config"
	"github.com/loglens/loglens/line"
	"github.com/loglens/loglens/poi"
)

type tokenColor struct {
	token    string
	override line.StyleOverride
}

// Token highlights every occurrence of each configured token. Tokens
// are applied longest-first, each pass operating on the output of the
// previous one, so a region claimed by a longer token is never
// re-split by a shorter token contained in it.
type Token struct {
	tokens []tokenColor
}

// NewToken creates a Token handler. Empty and whitespace-only tokens
// are discarded; nil is returned when nothing is left.
func NewToken(cfgs []config.TokenColor) *Token {
	h := &Token{tokens: make([]tokenColor, 0, len(cfgs))}
	for _, tc := range cfgs {
		if strings.TrimSpace(tc.Token) == "" {
			continue
		}
		bg := tc.Color.Tcell()
		h.tokens = append(h.tokens, tokenColor{
			token: tc.Token,
			override: line.StyleOverride{
				Bg: bg,
				Fg: contrastText(bg),
			},
		})
	}
	if len(h.tokens) == 0 {
		return nil
	}

	sort.SliceStable(h.tokens, func(i, j int) bool {
		return len(h.tokens[i].token) > len(h.tokens[j].token)
	})
	return h
}

type interval struct {
	start, end int
}

func overlapsAny(claimed []interval, start, end int) bool {
	for _, iv := range claimed {
		if start < iv.end && end > iv.start {
			return true
		}
	}
	return false
}

// Process highlights all configured tokens in the line. Matching is
// case-sensitive substring matching. Regions claimed by an earlier
// (longer) token are tracked by absolute text offset so that a later
// token matching inside them is discarded instead of re-splitting.
func (h *Token) Process(l *line.Line) ([]poi.Point, error) {
	var claimed []interval
	for _, tc := range h.tokens {
		spans := line.Find(l, tc.token, true, false)
		kept := spans[:0]
		for _, sp := range spans {
			start := l.AbsoluteOffset(sp.Start)
			end := l.AbsoluteOffset(sp.End)
			if overlapsAny(claimed, start, end) {
				continue
			}
			kept = append(kept, sp)
			claimed = append(claimed, interval{start: start, end: end})
		}
		line.SplitSpans(l, kept, tc.override)
	}
	return nil, nil
}

func (h *Token) String() string {
	return "Token"
}
