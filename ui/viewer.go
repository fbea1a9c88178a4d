// Package ui implements the interactive terminal viewer: a pager over
// the styled lines produced by a recompute, with a line-number gutter
// and jump-to-match navigation over the recorded points of interest.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	pdebug "github.com/lestrrat-go/pdebug"
	runewidth "github.com/mattn/go-runewidth"
	"github.com/pkg/errors"

	"github.com/loglens/loglens/line"
	"github.com/loglens/loglens/poi"
)

// horizontal scroll step in cells
const hscrollStep = 8

// Viewer is the pager state. It owns the screen for the duration of
// Run and renders one styled line per row, prefixed with the gutter
// label.
type Viewer struct {
	screen tcell.Screen
	lines  []*line.Line
	labels []string
	points *poi.List
	gutter tcell.Style

	top     int // index of the first line on screen
	left    int // horizontal scroll offset in cells
	current poi.Point
	located bool // current holds a real point
}

// NewViewer creates a Viewer over the given lines. labels must hold
// one gutter label per line; gutter is the style the labels are drawn
// in.
func NewViewer(lines []*line.Line, labels []string, points *poi.List, gutter tcell.Style) *Viewer {
	return &Viewer{
		lines:  lines,
		labels: labels,
		points: points,
		gutter: gutter,
	}
}

// Run opens the terminal screen and handles events until the user
// quits.
func (v *Viewer) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "failed to create screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize screen")
	}
	defer screen.Fini()
	return v.RunWithScreen(screen)
}

// RunWithScreen runs the event loop on an already initialized screen.
// The caller keeps ownership of the screen.
func (v *Viewer) RunWithScreen(screen tcell.Screen) error {
	if pdebug.Enabled {
		g := pdebug.Marker("Viewer.RunWithScreen")
		defer g.End()
	}

	v.screen = screen
	v.draw()
	for {
		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.screen.Sync()
			v.draw()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return nil
			}
			v.draw()
		case nil:
			// screen was finalized under us
			return nil
		}
	}
}

// pageSize returns the number of content rows, excluding the status
// line.
func (v *Viewer) pageSize() int {
	_, h := v.screen.Size()
	if h <= 1 {
		return 0
	}
	return h - 1
}

func (v *Viewer) maxTop() int {
	m := len(v.lines) - v.pageSize()
	if m < 0 {
		return 0
	}
	return m
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.top--
	case tcell.KeyDown:
		v.top++
	case tcell.KeyPgUp, tcell.KeyCtrlB:
		v.top -= v.pageSize()
	case tcell.KeyPgDn, tcell.KeyCtrlF:
		v.top += v.pageSize()
	case tcell.KeyHome:
		v.top = 0
	case tcell.KeyEnd:
		v.top = v.maxTop()
	case tcell.KeyLeft:
		v.left -= hscrollStep
	case tcell.KeyRight:
		v.left += hscrollStep
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'k':
			v.top--
		case 'j':
			v.top++
		case 'g':
			v.top = 0
		case 'G':
			v.top = v.maxTop()
		case 'h':
			v.left -= hscrollStep
		case 'l':
			v.left += hscrollStep
		case ' ':
			v.top += v.pageSize()
		case 'n':
			v.jumpNext()
		case 'N', 'p':
			v.jumpPrev()
		}
	}

	if v.top > v.maxTop() {
		v.top = v.maxTop()
	}
	if v.top < 0 {
		v.top = 0
	}
	if v.left < 0 {
		v.left = 0
	}
	return false
}

func (v *Viewer) jumpNext() {
	if !v.located {
		v.current, v.located = v.points.First()
	} else {
		v.current, v.located = v.points.NextAfter(v.current)
	}
	v.scrollToCurrent()
}

func (v *Viewer) jumpPrev() {
	if !v.located {
		v.current, v.located = v.points.First()
	} else {
		v.current, v.located = v.points.PrevBefore(v.current)
	}
	v.scrollToCurrent()
}

// scrollToCurrent centers the current point of interest when it is
// off screen.
func (v *Viewer) scrollToCurrent() {
	if !v.located {
		return
	}
	row := v.current.Line - 1
	if row >= v.top && row < v.top+v.pageSize() {
		return
	}
	v.top = row - v.pageSize()/2
	if v.top > v.maxTop() {
		v.top = v.maxTop()
	}
	if v.top < 0 {
		v.top = 0
	}
}

func (v *Viewer) gutterWidth() int {
	if len(v.labels) == 0 {
		return 0
	}
	// labels are uniformly padded; one trailing space separates the
	// gutter from the content
	return runewidth.StringWidth(v.labels[0]) + 1
}

func (v *Viewer) draw() {
	w, h := v.screen.Size()
	v.screen.Clear()

	gw := v.gutterWidth()
	for row := 0; row < v.pageSize(); row++ {
		idx := v.top + row
		if idx >= len(v.lines) {
			break
		}
		v.drawGutter(row, idx, gw)
		v.drawContent(row, idx, gw, w)
	}
	v.drawStatus(w, h)
	v.screen.Show()
}

func (v *Viewer) drawGutter(row, idx, gw int) {
	x := 0
	for _, r := range v.labels[idx] {
		v.screen.SetContent(x, row, r, nil, v.gutter)
		x += runewidth.RuneWidth(r)
	}
	for ; x < gw; x++ {
		v.screen.SetContent(x, row, ' ', nil, v.gutter)
	}
}

func (v *Viewer) drawContent(row, idx, gw, w int) {
	x := gw
	col := 0 // content column, before horizontal scrolling
	for _, seg := range v.lines[idx].Segments() {
		for _, r := range seg.Text {
			rw := runewidth.RuneWidth(r)
			if col >= v.left {
				if x+rw > w {
					return
				}
				v.screen.SetContent(x, row, r, nil, seg.Style)
				x += rw
			}
			col += rw
		}
	}
}

func (v *Viewer) drawStatus(w, h int) {
	end := v.top + v.pageSize()
	if end > len(v.lines) {
		end = len(v.lines)
	}
	pos := fmt.Sprintf(" %d-%d/%d ", v.top+1, end, len(v.lines))
	if len(v.lines) == 0 {
		pos = " empty "
	}
	if v.located {
		pos += fmt.Sprintf("match at line %d ", v.current.Line)
	}

	st := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range pos {
		if x >= w {
			break
		}
		v.screen.SetContent(x, h-1, r, nil, st)
		x += runewidth.RuneWidth(r)
	}
	for ; x < w; x++ {
		v.screen.SetContent(x, h-1, ' ', nil, st)
	}
}
