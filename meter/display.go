package meter

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/containerd/console"
	"github.com/morikuni/aec"
	"github.com/tonistiigi/units"
	"golang.org/x/time/rate"
)

// Display renders the meter until every track is done, to c when it is a
// real console and to w in plain text otherwise. It returns ctx.Err()
// when canceled first.
//
// Pass a nil console to force plain text. The render rate can be dialed
// with the TTY_DISPLAY_RATE environment variable, in milliseconds.
func (m *Meter) Display(ctx context.Context, c console.Console, w io.Writer) error {
	modeConsole := c != nil

	disp := &display{c: c, ui: m.ui}
	printer := &textMux{w: w, ui: m.ui}

	tickerTimeout := 150 * time.Millisecond
	displayTimeout := 100 * time.Millisecond

	if v := os.Getenv("TTY_DISPLAY_RATE"); v != "" {
		if r, err := strconv.ParseInt(v, 10, 64); err == nil {
			tickerTimeout = time.Duration(r) * time.Millisecond
			displayTimeout = time.Duration(r) * time.Millisecond
		}
	}

	ticker := m.clock.NewTicker(tickerTimeout)
	defer ticker.Stop()

	displayLimiter := rate.NewLimiter(rate.Every(displayTimeout), 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
		}

		done := m.finished()

		if modeConsole {
			if done {
				disp.print(m, true)
				return nil
			} else if displayLimiter.Allow() {
				disp.print(m, false)
			}
		} else {
			if done || displayLimiter.Allow() {
				printer.print(m)
				if done {
					return nil
				}
			}
		}
	}
}

// Render writes one plain snapshot of every started track to w, without
// any terminal control.
func (m *Meter) Render(w io.Writer) {
	printer := &textMux{w: w, ui: m.ui}
	printer.print(m)
}

type display struct {
	c  console.Console
	ui Components

	lineCount int
	maxWidth  int
	repeated  bool
}

func (disp *display) getSize() (int, int) {
	width := 80
	height := 10
	if disp.c != nil {
		size, err := disp.c.Size()
		if err == nil && size.Width > 0 && size.Height > 0 {
			width = int(size.Width)
			height = int(size.Height)
		}
	}
	return width, height
}

func (disp *display) print(m *Meter, all bool) {
	width, _ := disp.getSize()

	b := aec.EmptyBuilder
	b = b.Up(uint(disp.lineCount))
	if !disp.repeated {
		b = b.Down(1)
	}
	disp.repeated = true
	fmt.Fprint(disp.c, b.Column(0).ANSI)

	fmt.Fprint(disp.c, aec.Hide)
	defer fmt.Fprint(disp.c, aec.Show)

	statuses := m.statuses()
	now := m.clock.Now()

	countDone := 0
	for _, st := range statuses {
		if st.completed != nil {
			countDone++
		}
	}
	done := len(statuses) > 0 && countDone == len(statuses) && all

	var lineCount int

	statusFmt := disp.ui.ConsoleRunning
	if done {
		statusFmt = disp.ui.ConsoleDone
	}

	if statusFmt != "" {
		statusLine := fmt.Sprintf(
			statusFmt,
			duration(disp.ui, now.Sub(m.start), done),
			countDone,
			len(statuses),
		)

		if l := nonAnsiLen(statusLine); l > disp.maxWidth {
			disp.maxWidth = l
		}

		fmt.Fprintf(disp.c, "%-[2]*[1]s\n", statusLine, disp.maxWidth)
		lineCount++
	}

	for _, st := range statuses {
		lineCount += disp.printTrack(st, now)
	}

	// overwrite leftovers from the previous, taller render
	if diff := disp.lineCount - lineCount; diff > 0 {
		for i := 0; i < diff; i++ {
			fmt.Fprintln(disp.c, strings.Repeat(" ", width))
		}
		fmt.Fprint(disp.c, aec.EmptyBuilder.Up(uint(diff)).Column(0).ANSI)
	}

	disp.lineCount = lineCount
}

func (disp *display) printTrack(st trackStatus, now time.Time) int {
	if st.started == nil {
		return 0
	}

	endTime := now
	if st.completed != nil {
		endTime = *st.completed
	}
	dt := endTime.Sub(*st.started).Truncate(time.Millisecond)

	var out string
	switch {
	case st.err != nil:
		out = fmt.Sprintf(disp.ui.ConsoleTrackFailed, st.name, st.err)
	case st.completed != nil:
		out = fmt.Sprintf(disp.ui.ConsoleTrackDone, st.name, consoleBytes(disp.ui, st), duration(disp.ui, dt, true))
	default:
		out = fmt.Sprintf(disp.ui.ConsoleTrackRunning, st.name, consoleBytes(disp.ui, st), duration(disp.ui, dt, false))
	}

	if l := nonAnsiLen(out); l > disp.maxWidth {
		disp.maxWidth = l
	}

	// trailing whitespace wipes out whatever was written there before
	fmt.Fprintf(disp.c, "%-[2]*[1]s\n", out, disp.maxWidth)
	return 1
}

func consoleBytes(ui Components, st trackStatus) string {
	if st.total > 0 {
		return fmt.Sprintf(ui.ConsoleTrackProgressBound, units.Bytes(st.current), units.Bytes(st.total))
	}
	return fmt.Sprintf(ui.ConsoleTrackProgressSolo, units.Bytes(st.current))
}

func nonAnsiLen(s string) int {
	l := 0

	var inAnsi bool
	for _, c := range s {
		if inAnsi {
			if c == 'm' {
				inAnsi = false
			}

			continue
		}

		if c == '\x1b' {
			inAnsi = true
			continue
		}

		l++
	}

	return l
}
