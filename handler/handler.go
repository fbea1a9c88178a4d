// Package handler implements the per-line transformation stages of
// the rendering pipeline: Filter, Format, Token and Search. Each
// handler consumes and produces a styled segment sequence; only
// Search additionally reports points of interest. Constructors return
// nil when the configuration leaves the handler with nothing to do,
// so "inactive" handlers simply never enter the pipeline.
package handler

import (
	"github.com/gdamore/tcell/v2"

	"github.com/loglens/loglens/line"
	"github.com/loglens/loglens/poi"
)

// Handler is one pipeline stage. Process mutates the line in place
// and returns any points of interest it recorded for it. Handlers
// hold no per-line state, so a single instance may be used from
// multiple goroutines processing different lines.
type Handler interface {
	Process(l *line.Line) ([]poi.Point, error)
	String() string
}

// contrastText picks black or white, whichever is readable on the
// given background: bright backgrounds get black text, dark ones
// white.
func contrastText(bg tcell.Color) tcell.Color {
	r, g, b := bg.RGB()
	if (r+g+b)/3 > 128 {
		return tcell.ColorBlack
	}
	return tcell.ColorWhite
}
