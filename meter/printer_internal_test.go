package meter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"github.com/vito/multitrack"
)

var textUI = Components{
	TextTrackStatus:        "%d: %s %s %s",
	TextTrackDone:          "%d: %s %s %s DONE",
	TextTrackFailed:        "%d: %s ERROR: %s",
	TextTrackProgressBound: "%s / %s",
	TextTrackProgressSolo:  "%s",
	RunningDuration:        "[%.[2]*[1]fs]",
	DoneDuration:           "[%.[2]*[1]fs]",
}

func TestTextMuxSuppression(t *testing.T) {
	fc := clockwork.NewFakeClock()
	m := NewMeter(WithClock(fc), WithUI(textUI))

	track := m.Track("take", new(multitrack.BufferSink), 100)

	buf := new(bytes.Buffer)
	p := &textMux{w: buf, ui: textUI}

	lines := func() int { return strings.Count(buf.String(), "\n") }

	write := func(n int) {
		_, err := track.AttemptWrite(bytes.Repeat([]byte{'x'}, n))
		require.NoError(t, err)
	}

	// Nothing has started, nothing to say.
	p.print(m)
	require.Zero(t, lines())

	// First sighting always prints.
	write(4)
	p.print(m)
	require.Equal(t, 1, lines())

	// A 1% step right after is noise.
	write(1)
	p.print(m)
	require.Equal(t, 1, lines())

	// An 11% step is worth a line.
	write(10)
	p.print(m)
	require.Equal(t, 2, lines())

	// So is a stale track, however small the step.
	write(1)
	fc.Advance(MinTimeDelta)
	p.print(m)
	require.Equal(t, 3, lines())

	// Completion prints exactly once.
	track.Done(nil)
	p.print(m)
	require.Equal(t, 4, lines())
	require.True(t, strings.HasSuffix(buf.String(), "0: take 16B / 100B [5.00s] DONE\n"))

	p.print(m)
	require.Equal(t, 4, lines())
}

func TestTextMuxFailure(t *testing.T) {
	fc := clockwork.NewFakeClock()
	m := NewMeter(WithClock(fc), WithUI(textUI))

	track := m.Track("bounce", new(multitrack.BufferSink), 0)

	_, err := track.AttemptWrite([]byte("x"))
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	p := &textMux{w: buf, ui: textUI}

	track.Done(errors.New("dropout"))
	p.print(m)
	require.Equal(t, "0: bounce ERROR: dropout\n", buf.String())
}
