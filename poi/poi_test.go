package poi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOrdering(t *testing.T) {
	l := NewList()

	// insert out of order
	l.Add(Point{Line: 5, Seg: 0, Off: 2, Len: 3})
	l.Add(Point{Line: 1, Seg: 1, Off: 0, Len: 3})
	l.Add(Point{Line: 1, Seg: 0, Off: 7, Len: 3})
	l.Add(Point{Line: 3, Seg: 0, Off: 0, Len: 3})

	pts := l.Points()
	require.Len(t, pts, 4)
	assert.Equal(t, Point{Line: 1, Seg: 0, Off: 7, Len: 3}, pts[0])
	assert.Equal(t, Point{Line: 1, Seg: 1, Off: 0, Len: 3}, pts[1])
	assert.Equal(t, Point{Line: 3, Seg: 0, Off: 0, Len: 3}, pts[2])
	assert.Equal(t, Point{Line: 5, Seg: 0, Off: 2, Len: 3}, pts[3])
}

func TestListDedupe(t *testing.T) {
	l := NewList()
	p := Point{Line: 2, Seg: 1, Off: 4, Len: 2}
	l.Add(p)
	l.Add(p)
	assert.Equal(t, 1, l.Len())
}

func TestNextPrevNavigation(t *testing.T) {
	l := NewList()
	a := Point{Line: 1, Seg: 0, Off: 0, Len: 1}
	b := Point{Line: 2, Seg: 0, Off: 0, Len: 1}
	c := Point{Line: 9, Seg: 3, Off: 5, Len: 1}
	l.Add(b)
	l.Add(c)
	l.Add(a)

	next, ok := l.NextAfter(a)
	require.True(t, ok)
	assert.Equal(t, b, next)

	next, ok = l.NextAfter(c)
	require.True(t, ok, "NextAfter should wrap around")
	assert.Equal(t, a, next)

	prev, ok := l.PrevBefore(b)
	require.True(t, ok)
	assert.Equal(t, a, prev)

	prev, ok = l.PrevBefore(a)
	require.True(t, ok, "PrevBefore should wrap around")
	assert.Equal(t, c, prev)
}

func TestEmptyList(t *testing.T) {
	l := NewList()
	assert.Equal(t, 0, l.Len())

	_, ok := l.First()
	assert.False(t, ok)

	_, ok = l.NextAfter(Point{})
	assert.False(t, ok)
}
