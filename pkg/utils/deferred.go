// Package utils holds small helpers shared by the CLI entrypoint.
package utils

import (
	"io"
	"sync"
)

// DeferredWriter buffers log events while a full-screen program owns the
// terminal. Each Write is kept as one event so that Flush can replay it
// through a writer that expects whole records, such as zerolog.ConsoleWriter.
type DeferredWriter struct {
	mu     sync.Mutex
	events [][]byte
}

// Write stores a copy of p. It never fails.
func (d *DeferredWriter) Write(p []byte) (int, error) {
	buf := make([]byte, len(p))
	copy(buf, p)

	d.mu.Lock()
	d.events = append(d.events, buf)
	d.mu.Unlock()

	return len(p), nil
}

// Len returns the number of buffered events.
func (d *DeferredWriter) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.events)
}

// Flush writes buffered events to w in order and empties the buffer.
// Events after a failed write are kept for a later attempt.
func (d *DeferredWriter) Flush(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, ev := range d.events {
		if _, err := w.Write(ev); err != nil {
			d.events = d.events[i:]
			return err
		}
	}

	d.events = nil
	return nil
}
