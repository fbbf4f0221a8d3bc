package multitrack

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock is used for backoff sleeps between write rounds. Swap it out for
// a fake in tests.
var Clock = clockwork.NewRealClock()

// MultiWriter delivers every write, whole, to each of a fixed set of
// sinks.
//
// A write is all or nothing: it returns only once every sink has consumed
// the entire buffer, or fails as soon as any sink does. The sinks are
// owned by the MultiWriter from construction on and must not be written
// to or closed elsewhere.
type MultiWriter struct {
	sinks   []Sink
	backoff time.Duration
}

var _ Sink = &MultiWriter{}
var _ io.Writer = &MultiWriter{}

// NewMultiWriter takes ownership of the given sinks and returns a
// MultiWriter delivering to all of them.
func NewMultiWriter(sinks ...Sink) *MultiWriter {
	return &MultiWriter{sinks: sinks}
}

// SetBackoff makes Write sleep for d after any round of attempts that
// leaves the write incomplete. The default of 0 retries immediately,
// spinning at full speed for as long as every pending sink reports
// ErrNotReady. Backoff only paces the retries; it never changes what a
// write returns.
func (mw *MultiWriter) SetBackoff(d time.Duration) {
	mw.backoff = d
}

// Write delivers p to every sink and returns len(p) once all of them
// have consumed all of it.
//
// The sinks are attempted in attachment order, over as many rounds as it
// takes: a sink that accepted part of the buffer is offered the rest
// next round, and a sink that reported ErrNotReady is left alone until
// next round. If a sink fails, the write aborts right there and returns
// the failure wrapped with the sink's position. Sinks after it are not
// attempted, and bytes already consumed by other sinks stay consumed; a
// failed write reports 0 bytes written no matter how far along it was.
//
// If every pending sink keeps reporting ErrNotReady, Write spins until
// one of them budges. There is no timeout. SetBackoff eases the spin
// without bounding it.
//
// As a special case, a MultiWriter with no sinks consumes nothing: Write
// returns 0 and a nil error no matter how large p is, unlike a plain
// io.Writer.
func (mw *MultiWriter) Write(p []byte) (int, error) {
	if len(p) == 0 || len(mw.sinks) == 0 {
		return 0, nil
	}

	progress := make([]int, len(mw.sinks))
	pending := len(mw.sinks)
	for pending > 0 {
		for i, sink := range mw.sinks {
			if progress[i] == len(p) {
				continue
			}

			n, err := sink.AttemptWrite(p[progress[i]:])
			if errors.Is(err, ErrNotReady) {
				continue
			}
			if err != nil {
				return 0, fmt.Errorf("track %d: %w", i, err)
			}
			if n < 0 || n > len(p)-progress[i] {
				return 0, fmt.Errorf("track %d: invalid write count %d", i, n)
			}

			progress[i] += n
			if progress[i] == len(p) {
				pending--
			}
		}

		if pending > 0 && mw.backoff > 0 {
			Clock.Sleep(mw.backoff)
		}
	}

	return len(p), nil
}

// AttemptWrite lets a MultiWriter serve as a sink of another MultiWriter.
// It performs a full Write, so it consumes either all of p or none of it,
// and never reports ErrNotReady.
func (mw *MultiWriter) AttemptWrite(p []byte) (int, error) {
	return mw.Write(p)
}

// Flush flushes every sink in attachment order, stopping at the first
// failure. Sinks after a failed one are left unflushed.
func (mw *MultiWriter) Flush() error {
	for i, sink := range mw.sinks {
		if err := sink.Flush(); err != nil {
			return fmt.Errorf("flush track %d: %w", i, err)
		}
	}
	return nil
}

// Close releases the sinks, closing every one that implements io.Closer.
// All of them are closed even when some fail; the errors come back
// joined. The MultiWriter must not be written to afterwards.
func (mw *MultiWriter) Close() error {
	var errs error
	for i, sink := range mw.sinks {
		closer, ok := sink.(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			errs = errors.Join(errs, fmt.Errorf("close track %d: %w", i, err))
		}
	}
	return errs
}
