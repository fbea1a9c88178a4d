// Package poi tracks the points of interest produced by the search
// handler, in a form suitable for jump-to-next/previous navigation.
package poi

import (
	"sync"

	"github.com/google/btree"
)

// Point is one recorded search match: the visible line it was found
// on (1-based, assigned by the recompute driver), the segment index
// within that line's final representation, the byte offset inside
// that segment, and the match length in bytes.
type Point struct {
	Line int
	Seg  int
	Off  int
	Len  int
}

// Less implements the btree.Item interface. Points are ordered by
// line, then segment, then offset.
func (p Point) Less(b btree.Item) bool {
	o := b.(Point)
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	if p.Seg != o.Seg {
		return p.Seg < o.Seg
	}
	return p.Off < o.Off
}

// List stores points of interest sorted in reading order. The
// contents are always sorted from the first match in the file to the
// last, regardless of insertion order.
type List struct {
	mutex sync.RWMutex
	tree  *btree.BTree
}

// NewList creates a new empty List.
func NewList() *List {
	l := &List{}
	l.Reset()
	return l
}

// Reset clears all points from the list.
func (l *List) Reset() {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.tree = btree.New(32)
}

// Add inserts a point. Duplicate points are silently ignored.
func (l *List) Add(p Point) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.tree.ReplaceOrInsert(p)
}

// Len returns the number of points recorded.
func (l *List) Len() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.tree.Len()
}

// Ascend iterates over the points in reading order, calling fn for
// each until it returns false.
func (l *List) Ascend(fn func(Point) bool) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	l.tree.Ascend(func(it btree.Item) bool {
		return fn(it.(Point))
	})
}

// Points returns all points as a slice, in reading order.
func (l *List) Points() []Point {
	out := make([]Point, 0, l.Len())
	l.Ascend(func(p Point) bool {
		out = append(out, p)
		return true
	})
	return out
}

// First returns the first point in reading order.
func (l *List) First() (Point, bool) {
	var p Point
	var ok bool
	l.Ascend(func(it Point) bool {
		p, ok = it, true
		return false
	})
	return p, ok
}

// NextAfter returns the first point strictly after p in reading
// order, wrapping around to the first point when p is the last one.
func (l *List) NextAfter(p Point) (Point, bool) {
	l.mutex.RLock()
	var next Point
	var ok bool
	l.tree.AscendGreaterOrEqual(p, func(it btree.Item) bool {
		q := it.(Point)
		if q == p {
			return true
		}
		next, ok = q, true
		return false
	})
	l.mutex.RUnlock()
	if ok {
		return next, true
	}
	return l.First()
}

// PrevBefore returns the last point strictly before p in reading
// order, wrapping around to the last point when p is the first one.
func (l *List) PrevBefore(p Point) (Point, bool) {
	l.mutex.RLock()
	var prev Point
	var ok bool
	l.tree.DescendLessOrEqual(p, func(it btree.Item) bool {
		q := it.(Point)
		if q == p {
			return true
		}
		prev, ok = q, true
		return false
	})
	l.mutex.RUnlock()
	if ok {
		return prev, true
	}

	// wrap to the very last point
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	l.tree.Descend(func(it btree.Item) bool {
		prev, ok = it.(Point), true
		return false
	})
	return prev, ok
}
