package multitrack

import (
	"io"
	"sync"
)

// SegmentBuffer is the segment capacity for channels made by ChanPipe.
//
// This value is arbitrary. It only needs to be nonzero so that a sink
// feeding a channel nobody has started receiving from yet does not spin
// on ErrNotReady during startup.
const SegmentBuffer = 100

// ChanPipe returns a channel of byte segments and a sink feeding it.
func ChanPipe() (<-chan []byte, *ChanSink) {
	ch := make(chan []byte, SegmentBuffer)
	return ch, NewChanSink(ch)
}

// ChanSink delivers accepted bytes to a channel, one copied segment per
// send. A send that would block is reported as ErrNotReady instead.
type ChanSink struct {
	ch chan<- []byte

	sync.Mutex
}

var _ Sink = &ChanSink{}

// NewChanSink returns a sink feeding ch. Closing the sink closes ch.
func NewChanSink(ch chan<- []byte) *ChanSink {
	return &ChanSink{ch: ch}
}

// AttemptWrite offers a copy of p to the channel. The copy matters: the
// caller owns p and will reuse it.
func (s *ChanSink) AttemptWrite(p []byte) (int, error) {
	s.Lock()
	defer s.Unlock()

	if s.ch == nil {
		return 0, io.ErrClosedPipe
	}
	if len(p) == 0 {
		return 0, nil
	}

	seg := make([]byte, len(p))
	copy(seg, p)

	select {
	case s.ch <- seg:
		return len(p), nil
	default:
		return 0, ErrNotReady
	}
}

// Flush is a no-op; segments are handed off as they are accepted.
func (s *ChanSink) Flush() error {
	return nil
}

// Close closes the channel, telling the receiver the stream is done.
func (s *ChanSink) Close() error {
	s.Lock()
	if s.ch != nil {
		close(s.ch)
		s.ch = nil
	}
	s.Unlock()
	return nil
}
