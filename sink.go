package multitrack

import "errors"

// ErrNotReady is reported by AttemptWrite when a sink cannot take any
// bytes at the moment without blocking. Nothing was consumed; the caller
// is expected to come back later. Wrapped values are recognized with
// errors.Is.
var ErrNotReady = errors.New("multitrack: sink not ready")

// Sink is a destination that accepts bytes in whatever increments it can
// handle.
//
// AttemptWrite pushes as much of p as the sink will take without waiting
// and returns the number of bytes consumed, which may be anything from 0
// to len(p). A short or empty accept is not an error; the remainder is
// simply offered again later. A sink with no room at all returns
// ErrNotReady instead. Any other error means the sink is broken and will
// not recover.
//
// Flush forces out anything the sink has buffered internally. It either
// succeeds or fails; ErrNotReady is not part of its contract.
//
// Sinks that hold resources should additionally implement io.Closer.
type Sink interface {
	AttemptWrite(p []byte) (int, error)
	Flush() error
}
