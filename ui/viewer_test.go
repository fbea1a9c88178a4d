package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loglens/loglens/line"
	"github.com/loglens/loglens/poi"
)

func simScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	return s
}

func rowText(t *testing.T, s tcell.SimulationScreen, row, width int) string {
	t.Helper()
	cells, w, _ := s.GetContents()
	require.True(t, width <= w)

	out := make([]rune, 0, width)
	for x := 0; x < width; x++ {
		c := cells[row*w+x]
		if len(c.Runes) > 0 {
			out = append(out, c.Runes[0])
		} else {
			out = append(out, ' ')
		}
	}
	return string(out)
}

func testLines(texts ...string) ([]*line.Line, []string) {
	var lines []*line.Line
	var labels []string
	for i, txt := range texts {
		lines = append(lines, line.New(txt, tcell.StyleDefault))
		labels = append(labels, string(rune('1'+i)))
	}
	return lines, labels
}

func TestViewerDrawsGutterAndContent(t *testing.T) {
	s := simScreen(t, 20, 5)
	defer s.Fini()

	lines, labels := testLines("alpha", "beta")
	v := NewViewer(lines, labels, poi.NewList(), tcell.StyleDefault)
	v.screen = s
	v.draw()

	assert.Equal(t, "1 alpha", rowText(t, s, 0, 7))
	assert.Equal(t, "2 beta ", rowText(t, s, 1, 7))
}

func TestViewerScrollClamping(t *testing.T) {
	s := simScreen(t, 20, 4)
	defer s.Fini()

	lines, labels := testLines("one", "two", "three", "four", "five", "six")
	v := NewViewer(lines, labels, poi.NewList(), tcell.StyleDefault)
	v.screen = s

	v.handleKey(tcell.NewEventKey(tcell.KeyUp, 0, 0))
	assert.Equal(t, 0, v.top)

	for i := 0; i < 20; i++ {
		v.handleKey(tcell.NewEventKey(tcell.KeyDown, 0, 0))
	}
	assert.Equal(t, v.maxTop(), v.top)

	v.handleKey(tcell.NewEventKey(tcell.KeyHome, 0, 0))
	assert.Equal(t, 0, v.top)
}

func TestViewerJumpToMatches(t *testing.T) {
	s := simScreen(t, 20, 4)
	defer s.Fini()

	var texts []string
	for i := 0; i < 9; i++ {
		texts = append(texts, "line")
	}
	lines, labels := testLines(texts...)

	points := poi.NewList()
	points.Add(poi.Point{Line: 2, Seg: 0, Off: 0, Len: 4})
	points.Add(poi.Point{Line: 8, Seg: 0, Off: 0, Len: 4})

	v := NewViewer(lines, labels, points, tcell.StyleDefault)
	v.screen = s

	v.handleKey(tcell.NewEventKey(tcell.KeyRune, 'n', 0))
	require.True(t, v.located)
	assert.Equal(t, 2, v.current.Line)

	v.handleKey(tcell.NewEventKey(tcell.KeyRune, 'n', 0))
	assert.Equal(t, 8, v.current.Line)
	// line 8 was off screen; the viewer scrolled
	assert.True(t, v.top > 0)

	// wraps around past the last match
	v.handleKey(tcell.NewEventKey(tcell.KeyRune, 'n', 0))
	assert.Equal(t, 2, v.current.Line)
}

func TestViewerQuitKeys(t *testing.T) {
	s := simScreen(t, 10, 3)
	defer s.Fini()

	lines, labels := testLines("x")
	v := NewViewer(lines, labels, poi.NewList(), tcell.StyleDefault)
	v.screen = s

	assert.True(t, v.handleKey(tcell.NewEventKey(tcell.KeyRune, 'q', 0)))
	assert.True(t, v.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, 0)))
	assert.False(t, v.handleKey(tcell.NewEventKey(tcell.KeyRune, 'j', 0)))
}
