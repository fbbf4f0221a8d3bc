package multitrack_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vito/multitrack"
)

func TestCopyDeliversToAll(t *testing.T) {
	a := &fakeSink{name: "a"}
	b := &fakeSink{name: "b", chunk: 3}
	c := &fakeSink{name: "c", stalls: 2}

	n, err := multitrack.Copy(strings.NewReader("copy that"), a, b, c)
	require.NoError(t, err)
	require.Equal(t, int64(9), n)

	require.Equal(t, "copy that", a.data.String())
	require.Equal(t, "copy that", b.data.String())
	require.Equal(t, "copy that", c.data.String())
}

func TestCopyNoSinks(t *testing.T) {
	src := strings.NewReader("nobody home")

	n, err := multitrack.Copy(src)
	require.NoError(t, err)
	require.Zero(t, n)

	// The reader was never touched.
	require.Equal(t, 11, src.Len())
}

func TestCopyPropagatesFailure(t *testing.T) {
	splice := errors.New("splice snapped")
	a := &fakeSink{name: "a"}
	b := &fakeSink{name: "b", failAt: 1, err: splice}

	_, err := multitrack.Copy(strings.NewReader("doomed"), a, b)
	require.ErrorIs(t, err, splice)
}

func TestCopyLeavesSinksOpen(t *testing.T) {
	a := &fakeSink{name: "a"}

	_, err := multitrack.Copy(strings.NewReader("still going"), a)
	require.NoError(t, err)

	require.Zero(t, a.flushes)
	require.Zero(t, a.closes)
}

func TestRoundRobinTakesTurns(t *testing.T) {
	a := &fakeSink{name: "a"}
	b := &fakeSink{name: "b"}
	c := &fakeSink{name: "c"}

	rr := multitrack.NewRoundRobin(a, b, c)

	for _, stream := range []string{"one", "two", "three", "four"} {
		n, err := rr.Copy(strings.NewReader(stream))
		require.NoError(t, err)
		require.Equal(t, int64(len(stream)), n)
	}

	// The fourth stream wraps back around to the first sink.
	require.Equal(t, "onefour", a.data.String())
	require.Equal(t, "two", b.data.String())
	require.Equal(t, "three", c.data.String())
}

func TestRoundRobinNoSinks(t *testing.T) {
	rr := multitrack.NewRoundRobin()

	_, err := rr.Copy(strings.NewReader("lost"))
	require.Error(t, err)
}

func TestRoundRobinFlushesAndClosesAll(t *testing.T) {
	a := &fakeSink{name: "a"}
	b := &fakeSink{name: "b"}

	rr := multitrack.NewRoundRobin(a, b)

	_, err := rr.Copy(strings.NewReader("turn"))
	require.NoError(t, err)

	require.NoError(t, rr.Flush())
	require.Equal(t, 1, a.flushes)
	require.Equal(t, 1, b.flushes)

	require.NoError(t, rr.Close())
	require.Equal(t, 1, a.closes)
	require.Equal(t, 1, b.closes)
}
