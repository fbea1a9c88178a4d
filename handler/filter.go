package handler

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/loglens/loglens/config"
	"github.com/loglens/loglens/line"
	"github.com/loglens/loglens/poi"
)

// ErrMixedConnectives is returned when an extended filter term
// contains both "&&" and "||". Only one connective kind is honored
// per filter string.
var ErrMixedConnectives = errors.New("extended filter term mixes && and ||")

// Filter decides whether a line survives at all. A dropped line is
// signalled by clearing its segment sequence; surviving lines pass
// through untouched. Filter never edits text.
type Filter struct {
	terms     []string
	conj      bool
	matchCase bool
	wholeWord bool
	negate    bool
}

// NewFilter creates a Filter from its configuration. It returns
// (nil, nil) when the term is empty, and ErrMixedConnectives when
// extended mode finds both connective kinds in one term.
func NewFilter(cfg config.FilterConfig) (*Filter, error) {
	if cfg.Term == "" {
		return nil, nil
	}

	f := &Filter{
		matchCase: cfg.MatchCase,
		wholeWord: cfg.WholeWord,
		negate:    cfg.Negate,
	}

	raw := []string{cfg.Term}
	if cfg.Extended {
		hasAnd := strings.Contains(cfg.Term, "&&")
		hasOr := strings.Contains(cfg.Term, "||")
		switch {
		case hasAnd && hasOr:
			return nil, ErrMixedConnectives
		case hasAnd:
			f.conj = true
			raw = strings.Split(cfg.Term, "&&")
		case hasOr:
			raw = strings.Split(cfg.Term, "||")
		}
	}

	for _, t := range raw {
		if t = strings.TrimSpace(t); t != "" {
			f.terms = append(f.terms, t)
		}
	}
	if len(f.terms) == 0 {
		return nil, nil
	}
	return f, nil
}

// Keeps reports whether the line's current text satisfies the
// filter, without mutating the line.
func (f *Filter) Keeps(l *line.Line) bool {
	matched := f.conj
	for _, t := range f.terms {
		present := len(line.Find(l, t, f.matchCase, f.wholeWord)) > 0
		if f.conj {
			matched = matched && present
			if !matched {
				break
			}
		} else {
			matched = matched || present
			if matched {
				break
			}
		}
	}
	return matched != f.negate
}

// Process applies the filter decision to the line.
func (f *Filter) Process(l *line.Line) ([]poi.Point, error) {
	if !f.Keeps(l) {
		l.Clear()
	}
	return nil, nil
}

func (f *Filter) String() string {
	return "Filter"
}
