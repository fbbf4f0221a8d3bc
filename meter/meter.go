package meter

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/vito/multitrack"
)

// Meter watches a set of tracks: sinks wrapped so that the bytes flowing
// into them are counted and can be rendered while a copy is underway.
type Meter struct {
	clock clockwork.Clock
	ui    Components
	start time.Time

	l      sync.Mutex
	tracks []*Track
}

type MeterOpt func(*Meter)

// WithClock overrides the clock used for durations and render pacing.
func WithClock(clock clockwork.Clock) MeterOpt {
	return func(m *Meter) {
		m.clock = clock
	}
}

// WithUI overrides the components the meter renders with.
func WithUI(ui Components) MeterOpt {
	return func(m *Meter) {
		m.ui = ui
	}
}

func NewMeter(opts ...MeterOpt) *Meter {
	m := &Meter{
		clock: clockwork.NewRealClock(),
		ui:    DefaultUI,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.start = m.clock.Now()

	return m
}

// Track wraps sink so that the meter sees every byte it accepts. The
// wrapper is handed to a MultiWriter in the sink's place. total is the
// expected stream size in bytes, 0 when unknown.
func (m *Meter) Track(name string, sink multitrack.Sink, total int64) *Track {
	t := &Track{
		name:  name,
		sink:  sink,
		total: total,
		clock: m.clock,
	}

	m.l.Lock()
	m.tracks = append(m.tracks, t)
	m.l.Unlock()

	return t
}

// Tracks returns the tracks in registration order.
func (m *Meter) Tracks() []*Track {
	m.l.Lock()
	defer m.l.Unlock()

	return append([]*Track{}, m.tracks...)
}

// finished reports whether every track has been marked done.
func (m *Meter) finished() bool {
	tracks := m.Tracks()
	if len(tracks) == 0 {
		return false
	}

	for _, t := range tracks {
		if t.status().completed == nil {
			return false
		}
	}
	return true
}

func (m *Meter) statuses() []trackStatus {
	tracks := m.Tracks()

	statuses := make([]trackStatus, len(tracks))
	for i, t := range tracks {
		statuses[i] = t.status()
	}
	return statuses
}

// Track is a sink wrapper that counts what flows through it.
type Track struct {
	name  string
	sink  multitrack.Sink
	total int64
	clock clockwork.Clock

	l         sync.Mutex
	current   int64
	started   *time.Time
	completed *time.Time
	err       error
}

var _ multitrack.Sink = &Track{}

type trackStatus struct {
	name      string
	current   int64
	total     int64
	started   *time.Time
	completed *time.Time
	err       error
}

// AttemptWrite passes p along to the wrapped sink, counting whatever it
// accepts. A failure is remembered and shows up in the rendering.
func (t *Track) AttemptWrite(p []byte) (int, error) {
	n, err := t.sink.AttemptWrite(p)

	t.l.Lock()
	if t.started == nil {
		now := t.clock.Now()
		t.started = &now
	}
	if n > 0 {
		t.current += int64(n)
	}
	if err != nil && !errors.Is(err, multitrack.ErrNotReady) {
		t.err = err
	}
	t.l.Unlock()

	return n, err
}

func (t *Track) Flush() error {
	return t.sink.Flush()
}

// Close closes the wrapped sink if it is a closer.
func (t *Track) Close() error {
	if c, ok := t.sink.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Done marks the track finished. A nil err leaves it succeeded; anything
// else shows as the track's failure. Calling Done again has no effect.
func (t *Track) Done(err error) {
	t.l.Lock()
	defer t.l.Unlock()

	if t.completed != nil {
		return
	}

	now := t.clock.Now()
	if t.started == nil {
		t.started = &now
	}
	t.completed = &now
	if err != nil {
		t.err = err
	}
}

// Name returns the name the track was registered under.
func (t *Track) Name() string {
	return t.name
}

// Current returns the number of bytes the track has accepted so far.
func (t *Track) Current() int64 {
	t.l.Lock()
	defer t.l.Unlock()

	return t.current
}

// Total returns the expected stream size, 0 when unknown.
func (t *Track) Total() int64 {
	return t.total
}

// Err returns the failure the track has seen, if any.
func (t *Track) Err() error {
	t.l.Lock()
	defer t.l.Unlock()

	return t.err
}

func (t *Track) status() trackStatus {
	t.l.Lock()
	defer t.l.Unlock()

	return trackStatus{
		name:      t.name,
		current:   t.current,
		total:     t.total,
		started:   t.started,
		completed: t.completed,
		err:       t.err,
	}
}
