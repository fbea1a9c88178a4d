// Package buffer holds the fully loaded, line-split content of the
// opened log file. The rendering engine never touches the filesystem
// itself; it only ever sees a Memory buffer.
package buffer

import (
	"bufio"
	"io"
	"os"

	runewidth "github.com/mattn/go-runewidth"
	"github.com/pkg/errors"

	"github.com/loglens/loglens/internal/util"
)

// maxScanBufferSize is the largest single line we are prepared to
// read, in kilobytes.
const maxScanBufferSize = 256

// Memory is the in-memory representation of an opened log file: its
// path, its lines, and the precomputed display metrics the viewer
// needs (maximum line width in cells and line count).
type Memory struct {
	path     string
	lines    []string
	maxWidth int
}

// NewMemory creates an empty buffer.
func NewMemory() *Memory {
	return &Memory{}
}

// ReadFrom replaces the buffer contents with the lines read from in.
// ANSI escape sequences are stripped so that raw terminal captures
// display cleanly.
func (mb *Memory) ReadFrom(in io.Reader) error {
	mb.lines = nil
	mb.maxWidth = 0

	scanbuf := make([]byte, maxScanBufferSize*1024)
	scanner := bufio.NewScanner(in)
	scanner.Buffer(scanbuf, maxScanBufferSize*1024)

	for scanner.Scan() {
		txt := util.StripANSISequence(scanner.Text())
		mb.lines = append(mb.lines, txt)
		if cols := runewidth.StringWidth(txt); cols > mb.maxWidth {
			mb.maxWidth = cols
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "failed to read buffer contents")
	}
	return nil
}

// Load reads the file at path into the buffer.
func (mb *Memory) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open file %s", path)
	}
	defer f.Close()

	if err := mb.ReadFrom(f); err != nil {
		return errors.Wrapf(err, "failed to load file %s", path)
	}
	mb.path = path
	return nil
}

// Path returns the path of the loaded file, if any.
func (mb *Memory) Path() string {
	return mb.path
}

// Size returns the number of lines in the buffer.
func (mb *Memory) Size() int {
	return len(mb.lines)
}

// Line returns the raw text of line n (0-based).
func (mb *Memory) Line(n int) (string, error) {
	if n < 0 || n >= len(mb.lines) {
		return "", errors.Errorf("specified index %d is out of range", n)
	}
	return mb.lines[n], nil
}

// Lines returns all lines. Callers must not modify the slice.
func (mb *Memory) Lines() []string {
	return mb.lines
}

// MaxLineWidth returns the display width of the widest line, which
// controls the amount the viewer can scroll to the right.
func (mb *Memory) MaxLineWidth() int {
	return mb.maxWidth
}
