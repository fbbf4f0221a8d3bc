package meter

import (
	"fmt"
	"time"

	"github.com/muesli/termenv"
)

// Components are the format strings the meter renders with. Console
// formats draw the live terminal view; Text formats feed the plain
// line printer.
type Components struct {
	ConsoleRunning, ConsoleDone string

	ConsoleTrackRunning       string
	ConsoleTrackDone          string
	ConsoleTrackFailed        string
	ConsoleTrackProgressBound string
	ConsoleTrackProgressSolo  string

	TextTrackStatus        string
	TextTrackDone          string
	TextTrackFailed        string
	TextTrackProgressBound string
	TextTrackProgressSolo  string

	RunningDuration, DoneDuration string
}

var trackID = termenv.String("%d:").Foreground(termenv.ANSIMagenta).String()

var DefaultUI = Components{
	ConsoleRunning: "recording %s (%d/%d tracks)",
	ConsoleDone:    "recording %s (%d/%d tracks) " + termenv.String("done").Foreground(termenv.ANSIGreen).String(),

	ConsoleTrackRunning:       termenv.String("=> %s").Foreground(termenv.ANSIYellow).String() + " %s %s",
	ConsoleTrackDone:          termenv.String("=> %s").Foreground(termenv.ANSIGreen).String() + " %s %s",
	ConsoleTrackFailed:        termenv.String("=> %s ERROR: %s").Foreground(termenv.ANSIRed).String(),
	ConsoleTrackProgressBound: "%.2f / %.2f",
	ConsoleTrackProgressSolo:  "%.2f",

	TextTrackStatus:        trackID + " %s %s %s",
	TextTrackDone:          trackID + " %s %s %s " + termenv.String("DONE").Foreground(termenv.ANSIGreen).String(),
	TextTrackFailed:        trackID + " %s " + termenv.String("ERROR: %s").Foreground(termenv.ANSIRed).String(),
	TextTrackProgressBound: "%s / %s",
	TextTrackProgressSolo:  "%s",

	RunningDuration: "[%.[2]*[1]fs]",
	DoneDuration:    termenv.String("[%.[2]*[1]fs]").Foreground(termenv.ANSIBrightBlack).String(),
}

func duration(ui Components, dt time.Duration, completed bool) string {
	prec := 1
	sec := dt.Seconds()
	if sec < 10 {
		prec = 2
	} else if sec < 100 {
		prec = 1
	}

	if completed {
		return fmt.Sprintf(ui.DoneDuration, sec, prec)
	}
	return fmt.Sprintf(ui.RunningDuration, sec, prec)
}
