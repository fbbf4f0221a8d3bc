package multitrack

import (
	"errors"
	"io"
)

// Copy reads src until EOF, delivering everything it reads to every
// sink, and returns the number of bytes each sink received. With no
// sinks it reads nothing and returns 0.
//
// The sinks stay the caller's: Copy neither flushes nor closes them.
func Copy(src io.Reader, sinks ...Sink) (int64, error) {
	if len(sinks) == 0 {
		return 0, nil
	}

	return io.Copy(NewMultiWriter(sinks...), src)
}

// RoundRobin spreads whole streams across a set of sinks, one sink per
// Copy call, in rotation.
type RoundRobin struct {
	sinks []Sink
	next  int
}

// NewRoundRobin takes ownership of the given sinks. The first Copy goes
// to the first sink.
func NewRoundRobin(sinks ...Sink) *RoundRobin {
	return &RoundRobin{sinks: sinks}
}

// Copy sends all of src to the sink whose turn it is, then moves the
// turn along for the next call.
func (rr *RoundRobin) Copy(src io.Reader) (int64, error) {
	if len(rr.sinks) == 0 {
		return 0, errors.New("multitrack: round robin over no sinks")
	}

	sink := rr.sinks[rr.next]
	rr.next = (rr.next + 1) % len(rr.sinks)

	return io.Copy(NewMultiWriter(sink), src)
}

// Flush flushes every sink in order, stopping at the first failure.
func (rr *RoundRobin) Flush() error {
	return NewMultiWriter(rr.sinks...).Flush()
}

// Close releases the sinks, closing every closer among them.
func (rr *RoundRobin) Close() error {
	return NewMultiWriter(rr.sinks...).Close()
}
