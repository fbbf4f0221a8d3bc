package multitrack

import (
	"errors"
	"net"
	"os"
	"time"
)

// DefaultPatience is how long a ConnSink lets a single attempt block
// before calling the connection not ready for this round.
const DefaultPatience = 10 * time.Millisecond

// DialSink connects to addr and returns a sink writing to the
// connection.
func DialSink(network, addr string) (*ConnSink, error) {
	conn, err := net.Dial(network, addr)
	if err != nil {
		return nil, err
	}

	return NewConnSink(conn), nil
}

// ConnSink writes to a net.Conn without blocking for long. Each attempt
// arms a short write deadline; an attempt that got nothing out before
// the deadline counts as not ready rather than a failure, while one that
// got some bytes out counts as plain progress.
type ConnSink struct {
	conn     net.Conn
	patience time.Duration
}

var _ Sink = &ConnSink{}

// NewConnSink takes ownership of conn and returns a sink writing to it.
func NewConnSink(conn net.Conn) *ConnSink {
	return &ConnSink{
		conn:     conn,
		patience: DefaultPatience,
	}
}

// SetPatience adjusts how long each attempt may block. Shorter values
// poll more aggressively; longer values approach a plain blocking write.
func (s *ConnSink) SetPatience(d time.Duration) {
	s.patience = d
}

func (s *ConnSink) AttemptWrite(p []byte) (int, error) {
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.patience)); err != nil {
		return 0, err
	}

	n, err := s.conn.Write(p)
	if err != nil && errors.Is(err, os.ErrDeadlineExceeded) {
		if n == 0 {
			return 0, ErrNotReady
		}
		err = nil
	}
	return n, err
}

// Flush is a no-op; accepted bytes are already with the kernel.
func (s *ConnSink) Flush() error {
	return nil
}

func (s *ConnSink) Close() error {
	return s.conn.Close()
}
