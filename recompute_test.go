package loglens

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loglens/loglens/buffer"
	"github.com/loglens/loglens/config"
	"github.com/loglens/loglens/line"
	"github.com/loglens/loglens/poi"
)

func newBuffer(t *testing.T, content string) *buffer.Memory {
	t.Helper()
	buf := buffer.NewMemory()
	require.NoError(t, buf.ReadFrom(strings.NewReader(content)))
	return buf
}

func lineText(l *line.Line) string {
	return l.Text()
}

func TestRecomputeEndToEnd(t *testing.T) {
	buf := newBuffer(t, "[ 0.000000] kernel: boot\n[ 1.5] kernel: ready\n")

	var cfg config.Config
	require.NoError(t, cfg.Init())
	cfg.Format = config.FormatConfig{
		Pattern: `^(\[\s*[0-9]*)(\.)([0-9]*\])(\s.*)$`,
		Groups: []config.GroupColor{
			{Bg: config.NewColor(tcell.ColorRed)},
			{Bg: config.NewColor(tcell.ColorGreen)},
			{Bg: config.NewColor(tcell.ColorBlue)},
			{Bg: config.NewColor(tcell.ColorGray), UseOriginalFg: true},
		},
	}
	cfg.Search.Term = "kernel"

	res, err := Recompute(context.Background(), buf, &cfg)
	require.NoError(t, err)
	require.Empty(t, res.Warnings)
	require.Len(t, res.Lines, 2)

	// Text survives formatting and search highlighting untouched.
	assert.Equal(t, "[ 0.000000] kernel: boot", lineText(res.Lines[0]))
	assert.Equal(t, "[ 1.5] kernel: ready", lineText(res.Lines[1]))

	// The first three capture groups map to the first three segments.
	segs := res.Lines[0].Segments()
	require.True(t, len(segs) >= 4)
	assert.Equal(t, "[ 0", segs[0].Text)
	assert.Equal(t, ".", segs[1].Text)
	assert.Equal(t, "000000]", segs[2].Text)
	_, bg, _ := segs[0].Style.Decompose()
	assert.Equal(t, tcell.ColorRed, bg)
	_, bg, _ = segs[1].Style.Decompose()
	assert.Equal(t, tcell.ColorGreen, bg)
	_, bg, _ = segs[2].Style.Decompose()
	assert.Equal(t, tcell.ColorBlue, bg)

	// One point of interest per line, both inside the fourth group.
	require.Equal(t, 2, res.Points.Len())
	pts := res.Points.Points()
	assert.Equal(t, poi.Point{Line: 1, Seg: 3, Off: 1, Len: 6}, pts[0])
	assert.Equal(t, poi.Point{Line: 2, Seg: 3, Off: 1, Len: 6}, pts[1])
}

func TestRecomputeFormatOnlySegmentCount(t *testing.T) {
	buf := newBuffer(t, "[ 0.000000] kernel: boot\n")

	var cfg config.Config
	require.NoError(t, cfg.Init())
	cfg.Format = config.FormatConfig{
		Pattern: `^(\[\s*[0-9]*)(\.)([0-9]*\])(\s.*)$`,
		Groups: []config.GroupColor{
			{Bg: config.NewColor(tcell.ColorRed)},
			{Bg: config.NewColor(tcell.ColorGreen)},
			{Bg: config.NewColor(tcell.ColorBlue)},
			{Bg: config.NewColor(tcell.ColorGray)},
		},
	}

	res, err := Recompute(context.Background(), buf, &cfg)
	require.NoError(t, err)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, 4, res.Lines[0].Len())
}

func TestRecomputeFilterOffsets(t *testing.T) {
	buf := newBuffer(t, "drop one\nkeep two\ndrop three\nkeep four\nkeep five\n")

	var cfg config.Config
	require.NoError(t, cfg.Init())
	cfg.Filter.Term = "keep"

	res, err := Recompute(context.Background(), buf, &cfg)
	require.NoError(t, err)
	require.Len(t, res.Lines, 3)

	assert.Equal(t, "keep two", lineText(res.Lines[0]))
	assert.Equal(t, "keep four", lineText(res.Lines[1]))
	assert.Equal(t, "keep five", lineText(res.Lines[2]))

	assert.Equal(t, []string{"1", "2", "3"}, res.LineNumbers)

	assert.Equal(t, 2, res.Offsets.OriginalLine(1))
	assert.Equal(t, 4, res.Offsets.OriginalLine(2))
	assert.Equal(t, 5, res.Offsets.OriginalLine(3))
}

func TestRecomputeBlankLines(t *testing.T) {
	buf := newBuffer(t, "alpha\n\nbeta\n")

	var cfg config.Config
	require.NoError(t, cfg.Init())

	res, err := Recompute(context.Background(), buf, &cfg)
	require.NoError(t, err)
	require.Len(t, res.Lines, 3)
	assert.Equal(t, "", lineText(res.Lines[1]))

	// An active filter drops blank lines like any other non-matching
	// line.
	cfg.Filter.Term = "alpha"
	res, err = Recompute(context.Background(), buf, &cfg)
	require.NoError(t, err)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, "alpha", lineText(res.Lines[0]))
}

func TestRecomputeMixedConnectivesWarning(t *testing.T) {
	buf := newBuffer(t, "one\ntwo\n")

	var cfg config.Config
	require.NoError(t, cfg.Init())
	cfg.Filter.Term = "a && b || c"
	cfg.Filter.Extended = true

	res, err := Recompute(context.Background(), buf, &cfg)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Len(t, res.Lines, 2)
}

func TestRecomputeCancelled(t *testing.T) {
	buf := newBuffer(t, "one\ntwo\n")

	var cfg config.Config
	require.NoError(t, cfg.Init())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Recompute(ctx, buf, &cfg)
	require.Error(t, err)
}

func TestRecomputeGutterWidth(t *testing.T) {
	var lines []string
	for i := 0; i < 12; i++ {
		lines = append(lines, "line")
	}
	buf := newBuffer(t, strings.Join(lines, "\n")+"\n")

	var cfg config.Config
	require.NoError(t, cfg.Init())

	res, err := Recompute(context.Background(), buf, &cfg)
	require.NoError(t, err)
	require.Len(t, res.LineNumbers, 12)
	assert.Equal(t, " 1", res.LineNumbers[0])
	assert.Equal(t, "12", res.LineNumbers[11])
}

func TestApplyCachesResult(t *testing.T) {
	ll := New()
	require.NoError(t, ll.Buffer().ReadFrom(strings.NewReader("alpha\nbeta\n")))

	res1, err := ll.Apply(context.Background())
	require.NoError(t, err)
	res2, err := ll.Apply(context.Background())
	require.NoError(t, err)
	assert.Same(t, res1, res2)

	// An in-place config edit invalidates the cache.
	ll.Config().Search.Term = "beta"
	res3, err := ll.Apply(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, res1, res3)
	assert.Equal(t, 1, res3.Points.Len())
}

func TestRecomputeIdempotent(t *testing.T) {
	buf := newBuffer(t, "error in module\nall good\nerror again\n")

	var cfg config.Config
	require.NoError(t, cfg.Init())
	cfg.Filter.Term = "error"
	cfg.Search.Term = "module"

	res1, err := Recompute(context.Background(), buf, &cfg)
	require.NoError(t, err)
	res2, err := Recompute(context.Background(), buf, &cfg)
	require.NoError(t, err)

	require.Equal(t, len(res1.Lines), len(res2.Lines))
	for i := range res1.Lines {
		assert.Equal(t, res1.Lines[i].Segments(), res2.Lines[i].Segments())
	}
	assert.Equal(t, res1.LineNumbers, res2.LineNumbers)
	assert.Equal(t, res1.Points.Points(), res2.Points.Points())
}
