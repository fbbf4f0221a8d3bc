package meter

import (
	"fmt"
	"io"
	"time"

	"github.com/docker/go-units"
)

// MinTimeDelta is the minimum amount of time to require before printing
// another update for a track.
const MinTimeDelta = 5 * time.Second

// MinProgressDelta is the minimum progress to require before printing
// another update for a track, as a fraction of its expected total.
const MinProgressDelta = 0.05

type lastStatus struct {
	Current   int64
	Timestamp time.Time
}

// textMux prints one line per noteworthy change, for logs and dumb
// terminals.
type textMux struct {
	w    io.Writer
	ui   Components
	last map[int]lastStatus
	done map[int]struct{}
}

func (p *textMux) print(m *Meter) {
	if p.last == nil {
		p.last = make(map[int]lastStatus)
		p.done = make(map[int]struct{})
	}

	now := m.clock.Now()

	for i, st := range m.statuses() {
		if st.started == nil {
			continue
		}
		if _, ok := p.done[i]; ok {
			continue
		}

		if st.completed != nil {
			p.done[i] = struct{}{}

			if st.err != nil {
				fmt.Fprintf(p.w, p.ui.TextTrackFailed, i, st.name, st.err)
				fmt.Fprintln(p.w)
				continue
			}

			dt := st.completed.Sub(*st.started).Truncate(time.Millisecond)
			fmt.Fprintf(p.w, p.ui.TextTrackDone, i, st.name, textBytes(p.ui, st), duration(p.ui, dt, true))
			fmt.Fprintln(p.w)
			continue
		}

		if last, ok := p.last[i]; ok {
			var progressDelta float64
			if st.total > 0 {
				progressDelta = float64(st.current-last.Current) / float64(st.total)
			}
			timeDelta := now.Sub(last.Timestamp)
			if progressDelta < MinProgressDelta && timeDelta < MinTimeDelta {
				continue
			}
		}

		p.last[i] = lastStatus{
			Current:   st.current,
			Timestamp: now,
		}

		fmt.Fprintf(p.w, p.ui.TextTrackStatus, i, st.name, textBytes(p.ui, st), duration(p.ui, now.Sub(*st.started), false))
		fmt.Fprintln(p.w)
	}
}

func textBytes(ui Components, st trackStatus) string {
	if st.total > 0 {
		return fmt.Sprintf(ui.TextTrackProgressBound, units.BytesSize(float64(st.current)), units.BytesSize(float64(st.total)))
	}
	return fmt.Sprintf(ui.TextTrackProgressSolo, units.BytesSize(float64(st.current)))
}
