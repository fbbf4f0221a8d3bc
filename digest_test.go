package multitrack_test

import (
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/require"
	"github.com/vito/multitrack"
)

func TestDigestSink(t *testing.T) {
	sink := multitrack.NewDigestSink(digest.SHA256)

	mw := multitrack.NewMultiWriter(sink)

	_, err := mw.Write([]byte("hello "))
	require.NoError(t, err)
	_, err = mw.Write([]byte("world"))
	require.NoError(t, err)

	require.Equal(t, digest.FromString("hello world"), sink.Digest())
	require.Equal(t, int64(11), sink.Count())
}

func TestDigestSinkDefaultsToSHA256(t *testing.T) {
	sink := multitrack.NewDigestSink("")

	_, err := sink.AttemptWrite([]byte("hello"))
	require.NoError(t, err)

	require.Equal(t, digest.SHA256, sink.Digest().Algorithm())
}

func TestDigestSinkSHA512(t *testing.T) {
	sink := multitrack.NewDigestSink(digest.SHA512)

	_, err := sink.AttemptWrite([]byte("hello"))
	require.NoError(t, err)

	require.Equal(t, digest.SHA512.FromString("hello"), sink.Digest())
}

func TestDigestSinkSeesEveryTrackedByte(t *testing.T) {
	sum := multitrack.NewDigestSink(digest.SHA256)
	file := new(multitrack.BufferSink)

	mw := multitrack.NewMultiWriter(file, sum)

	payload := []byte("the same bytes go to both")
	_, err := mw.Write(payload)
	require.NoError(t, err)

	require.Equal(t, digest.FromBytes(payload), sum.Digest())
	require.Equal(t, payload, file.Bytes())
}
