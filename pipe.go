package multitrack

import (
	"io"
	"sync"
)

// Pipe returns the two halves of an in-memory byte pipe holding at most
// size bytes.
//
// The sink half accepts bytes only while there is room, taking what fits
// and reporting ErrNotReady once the buffer is full. The reader half
// blocks until bytes arrive. Closing the sink half ends the stream: the
// reader drains whatever is left and then reads io.EOF. Closing the
// reader half abandons it, and writes from then on fail with
// io.ErrClosedPipe.
func Pipe(size int) (*PipeReader, *PipeSink) {
	pipe := &pipe{
		cond: sync.NewCond(&sync.Mutex{}),
		max:  size,
	}
	return &PipeReader{pipe}, &PipeSink{pipe}
}

type pipe struct {
	cond        *sync.Cond
	buffer      []byte
	max         int
	writeClosed bool
	readClosed  bool
}

// PipeSink is the write half of a Pipe.
type PipeSink struct {
	p *pipe
}

var _ Sink = &PipeSink{}

// AttemptWrite takes as much of p as fits in the buffer's free space.
func (s *PipeSink) AttemptWrite(p []byte) (int, error) {
	pi := s.p
	pi.cond.L.Lock()
	defer pi.cond.L.Unlock()

	if pi.writeClosed || pi.readClosed {
		return 0, io.ErrClosedPipe
	}
	if len(p) == 0 {
		return 0, nil
	}

	room := pi.max - len(pi.buffer)
	if room == 0 {
		return 0, ErrNotReady
	}
	if room > len(p) {
		room = len(p)
	}

	pi.buffer = append(pi.buffer, p[:room]...)
	pi.cond.Signal()
	return room, nil
}

// Flush is a no-op; accepted bytes are visible to the reader right away.
func (s *PipeSink) Flush() error {
	return nil
}

// Close ends the stream. The reader sees io.EOF once the buffer drains.
func (s *PipeSink) Close() error {
	s.p.cond.L.Lock()
	defer s.p.cond.L.Unlock()

	s.p.writeClosed = true
	s.p.cond.Broadcast()
	return nil
}

// PipeReader is the read half of a Pipe.
type PipeReader struct {
	p *pipe
}

var _ io.ReadCloser = &PipeReader{}

func (r *PipeReader) Read(p []byte) (int, error) {
	pi := r.p
	pi.cond.L.Lock()
	defer pi.cond.L.Unlock()

	for len(pi.buffer) == 0 && !pi.writeClosed && !pi.readClosed {
		pi.cond.Wait()
	}

	if pi.readClosed {
		return 0, io.ErrClosedPipe
	}
	if len(pi.buffer) == 0 {
		return 0, io.EOF
	}

	n := copy(p, pi.buffer)
	pi.buffer = pi.buffer[n:]
	return n, nil
}

// Close abandons the stream, failing all future reads and writes.
func (r *PipeReader) Close() error {
	r.p.cond.L.Lock()
	defer r.p.cond.L.Unlock()

	r.p.readClosed = true
	r.p.cond.Broadcast()
	return nil
}
