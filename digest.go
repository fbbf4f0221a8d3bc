package multitrack

import (
	"github.com/opencontainers/go-digest"
)

// DigestSink folds every accepted byte into a digest instead of storing
// it anywhere. It is always ready.
type DigestSink struct {
	digester digest.Digester
	n        int64
}

var _ Sink = &DigestSink{}

// NewDigestSink returns a sink hashing with the given algorithm, or
// sha256 when algo is empty.
func NewDigestSink(algo digest.Algorithm) *DigestSink {
	if algo == "" {
		algo = digest.SHA256
	}

	return &DigestSink{digester: algo.Digester()}
}

func (s *DigestSink) AttemptWrite(p []byte) (int, error) {
	n, err := s.digester.Hash().Write(p)
	s.n += int64(n)
	return n, err
}

func (s *DigestSink) Flush() error {
	return nil
}

// Digest returns the digest of everything accepted so far.
func (s *DigestSink) Digest() digest.Digest {
	return s.digester.Digest()
}

// Count returns how many bytes have been accepted so far.
func (s *DigestSink) Count() int64 {
	return s.n
}
