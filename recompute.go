package loglens

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"sync"

	"github.com/gdamore/tcell/v2"
	pdebug "github.com/lestrrat-go/pdebug"
	"github.com/pkg/errors"

	"github.com/loglens/loglens/buffer"
	"github.com/loglens/loglens/config"
	"github.com/loglens/loglens/handler"
	"github.com/loglens/loglens/line"
	"github.com/loglens/loglens/poi"
)

// cancelCheckInterval is how many lines a worker processes between
// checks of the context.
const cancelCheckInterval = 1024

// smallInputThreshold is the number of buffer lines below which the
// recompute runs on a single goroutine.
const smallInputThreshold = 4096

// Result is the outcome of one recompute pass over the whole buffer.
// It is immutable once returned; the next recompute produces a fresh
// Result instead of mutating the previous one.
type Result struct {
	// Lines holds the styled lines that survived the handler
	// pipeline, in buffer order.
	Lines []*line.Line

	// LineNumbers holds one right-aligned gutter label per entry of
	// Lines.
	LineNumbers []string

	// Points holds every point of interest the search stage recorded,
	// with Line set to the 1-based visible line number.
	Points *poi.List

	// Offsets maps visible line numbers back to original buffer line
	// numbers when the filter suppressed lines.
	Offsets *LineOffsets

	// Warnings holds non-fatal configuration problems, such as a
	// filter term that mixes "&&" and "||". The corresponding stage
	// is skipped.
	Warnings []error
}

type offsetCheckpoint struct {
	visible int
	skipped int
}

// LineOffsets records, for each stretch of visible lines, how many
// original lines the filter suppressed before it. It answers the
// question "which buffer line does visible line n come from".
type LineOffsets struct {
	checkpoints []offsetCheckpoint
}

func (lo *LineOffsets) add(visible, skipped int) {
	lo.checkpoints = append(lo.checkpoints, offsetCheckpoint{visible: visible, skipped: skipped})
}

// OffsetForVisible returns the number of suppressed lines preceding
// the given 1-based visible line number.
func (lo *LineOffsets) OffsetForVisible(visible int) int {
	i := sort.Search(len(lo.checkpoints), func(i int) bool {
		return lo.checkpoints[i].visible > visible
	})
	if i == 0 {
		return 0
	}
	return lo.checkpoints[i-1].skipped
}

// OriginalLine maps a 1-based visible line number to the 1-based line
// number in the underlying buffer.
func (lo *LineOffsets) OriginalLine(visible int) int {
	return visible + lo.OffsetForVisible(visible)
}

type lineResult struct {
	line    *line.Line
	points  []poi.Point
	dropped bool
}

// buildHandlers assembles the active stages in their fixed order.
// A stage whose configuration is invalid is reported as a warning and
// skipped; a stage whose configuration is empty is simply inactive.
func buildHandlers(cfg *config.Config) ([]handler.Handler, *handler.Filter, []error) {
	var hs []handler.Handler
	var warnings []error

	flt, err := handler.NewFilter(cfg.Filter)
	switch {
	case err != nil:
		warnings = append(warnings, errors.Wrap(err, "filter disabled"))
		flt = nil
	case flt != nil:
		hs = append(hs, flt)
	}
	fm, err := handler.NewFormat(cfg.Format)
	switch {
	case err != nil:
		warnings = append(warnings, errors.Wrap(err, "format disabled"))
	case fm != nil:
		hs = append(hs, fm)
	}
	if h := handler.NewToken(cfg.Tokens); h != nil {
		hs = append(hs, h)
	}
	if h := handler.NewSearch(cfg.Search, cfg.Style.Match); h != nil {
		hs = append(hs, h)
	}
	return hs, flt, warnings
}

func processOne(raw string, deflt tcell.Style, hs []handler.Handler, flt *handler.Filter) (lineResult, error) {
	l := line.New(raw, deflt)
	if raw == "" {
		// A blank line carries nothing for the coloring stages, but
		// the filter decision still applies to it.
		if flt != nil && !flt.Keeps(l) {
			return lineResult{dropped: true}, nil
		}
		return lineResult{line: l}, nil
	}

	var pts []poi.Point
	for _, h := range hs {
		ps, err := h.Process(l)
		if err != nil {
			return lineResult{}, errors.Wrapf(err, "%s stage failed", h)
		}
		pts = append(pts, ps...)
		if l.IsEmpty() {
			return lineResult{dropped: true}, nil
		}
	}
	return lineResult{line: l, points: pts}, nil
}

// Recompute runs the full handler pipeline over every line of the
// buffer and returns the new Result. Lines are processed on multiple
// goroutines; the handlers themselves are stateless and shared.
//
// Recompute fails when the structural format pattern meets a line
// that was already fragmented before the format stage, and when the
// context is cancelled. Configuration problems that can be recovered
// from by skipping a stage are reported through Result.Warnings
// instead.
func Recompute(ctx context.Context, buf *buffer.Memory, cfg *config.Config) (res *Result, err error) {
	if pdebug.Enabled {
		g := pdebug.Marker("loglens.Recompute (%d lines)", buf.Size()).BindError(&err)
		defer g.End()
	}

	hs, flt, warnings := buildHandlers(cfg)
	deflt := cfg.Style.Basic.Tcell()
	raws := buf.Lines()
	results := make([]lineResult, len(raws))

	nworkers := runtime.NumCPU()
	if len(raws) < smallInputThreshold {
		nworkers = 1
	}
	chunk := (len(raws) + nworkers - 1) / nworkers
	if chunk < 1 {
		chunk = 1
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	setErr := func(e error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = e
		}
		mu.Unlock()
	}

	for start := 0; start < len(raws); start += chunk {
		end := start + chunk
		if end > len(raws) {
			end = len(raws)
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if i%cancelCheckInterval == 0 {
					select {
					case <-ctx.Done():
						setErr(ctx.Err())
						return
					default:
					}
				}
				r, err := processOne(raws[i], deflt, hs, flt)
				if err != nil {
					setErr(errors.Wrapf(err, "line %d", i+1))
					return
				}
				results[i] = r
			}
		}(start, end)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, errors.Wrap(firstErr, "recompute failed")
	}

	res = &Result{
		Points:   poi.NewList(),
		Offsets:  &LineOffsets{},
		Warnings: warnings,
	}

	width := len(strconv.Itoa(len(raws)))
	visible := 0
	skipped := 0
	lastSkipped := 0
	for _, r := range results {
		if r.dropped {
			skipped++
			continue
		}
		visible++
		if skipped != lastSkipped {
			res.Offsets.add(visible, skipped)
			lastSkipped = skipped
		}
		res.Lines = append(res.Lines, r.line)
		res.LineNumbers = append(res.LineNumbers, fmt.Sprintf("%*d", width, visible))
		for _, p := range r.points {
			p.Line = visible
			res.Points.Add(p)
		}
	}
	return res, nil
}
