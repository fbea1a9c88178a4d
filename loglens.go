// Package loglens implements the rendering core of the loglens log
// viewer: a buffer of raw lines is pushed through a pipeline of
// handlers (filter, structural format coloring, token highlighting,
// search) that turns each line into a sequence of styled segments.
package loglens

import (
	"context"
	"reflect"

	"github.com/pkg/errors"

	"github.com/loglens/loglens/buffer"
	"github.com/loglens/loglens/config"
)

// Loglens is the application state: the loaded buffer, the current
// configuration, and the result of the last recompute.
type Loglens struct {
	config  config.Config
	buffer  *buffer.Memory
	applied *config.Config
	result  *Result
}

// New creates an empty Loglens with the default configuration.
func New() *Loglens {
	ll := &Loglens{
		buffer: buffer.NewMemory(),
	}
	ll.config.Init()
	return ll
}

// Config returns the live configuration. Callers may mutate it; the
// next call to Apply picks the changes up.
func (ll *Loglens) Config() *config.Config {
	return &ll.config
}

// Buffer returns the underlying line buffer.
func (ll *Loglens) Buffer() *buffer.Memory {
	return ll.buffer
}

// Load replaces the buffer contents with the given file and discards
// the previous result.
func (ll *Loglens) Load(path string) error {
	if err := ll.buffer.Load(path); err != nil {
		return errors.Wrapf(err, "failed to load %s", path)
	}
	ll.Invalidate()
	return nil
}

// Invalidate discards the cached result so that the next Apply call
// recomputes unconditionally. Call it after replacing the buffer
// contents by other means than Load.
func (ll *Loglens) Invalidate() {
	ll.result = nil
	ll.applied = nil
}

// Apply returns the up-to-date Result for the current buffer and
// configuration. When nothing changed since the last call the cached
// Result is returned as is; otherwise the whole buffer is recomputed.
func (ll *Loglens) Apply(ctx context.Context) (*Result, error) {
	if ll.result != nil && ll.applied != nil && reflect.DeepEqual(&ll.config, ll.applied) {
		return ll.result, nil
	}

	res, err := Recompute(ctx, ll.buffer, &ll.config)
	if err != nil {
		return nil, err
	}
	ll.result = res
	ll.applied = ll.config.Clone()
	return res, nil
}
