package multitrack

import (
	"bytes"
	"io"
)

// WriterSink adapts an io.Writer into an always-ready sink.
//
// AttemptWrite is w.Write, short writes included. Flush calls through to
// the writer's own Flush or, failing that, Sync method, so wrapping a
// bufio.Writer or an os.File keeps its flushing behavior. Close closes w
// when it is a Closer and is a no-op otherwise.
func WriterSink(w io.Writer) Sink {
	return writerSink{w}
}

type writerSink struct {
	w io.Writer
}

func (s writerSink) AttemptWrite(p []byte) (int, error) {
	return s.w.Write(p)
}

func (s writerSink) Flush() error {
	switch w := s.w.(type) {
	case interface{ Flush() error }:
		return w.Flush()
	case interface{ Sync() error }:
		return w.Sync()
	}
	return nil
}

func (s writerSink) Close() error {
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// BufferSink collects everything it accepts in memory.
type BufferSink struct {
	buf bytes.Buffer
}

var _ Sink = &BufferSink{}

func (s *BufferSink) AttemptWrite(p []byte) (int, error) {
	return s.buf.Write(p)
}

func (s *BufferSink) Flush() error {
	return nil
}

// Bytes returns everything accepted so far.
func (s *BufferSink) Bytes() []byte {
	return s.buf.Bytes()
}

func (s *BufferSink) String() string {
	return s.buf.String()
}
