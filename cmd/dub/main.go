// dub copies stdin to every FILE argument and to stdout, like tee, with
// a live progress meter on the side when stderr is a terminal.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/containerd/console"
	"github.com/opencontainers/go-digest"
	"github.com/rs/zerolog"
	"github.com/vito/multitrack"
	"github.com/vito/multitrack/meter"
)

var (
	appendFiles bool
	digestAlgo  string
	progress    bool
	quiet       bool
	verbose     bool
)

func init() {
	flag.BoolVar(&appendFiles, "a", false, "append to the FILEs rather than overwriting them")
	flag.BoolVar(&appendFiles, "append", false, "append to the FILEs rather than overwriting them")
	flag.StringVar(&digestAlgo, "digest", "", "also hash the stream with the given `algorithm` (sha256, sha512)")
	flag.BoolVar(&progress, "progress", false, "print progress lines even without a terminal")
	flag.BoolVar(&quiet, "q", false, "no progress rendering")
	flag.BoolVar(&verbose, "v", false, "debug logging (suppresses the progress meter)")
}

func main() {
	flag.Parse()

	log := newLogger()

	if err := run(log, flag.Args()); err != nil {
		log.Error().Err(err).Msg("dub failed")
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	cw := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(cw).Level(level).With().Timestamp().Logger()
}

func run(log zerolog.Logger, paths []string) error {
	m := meter.NewMeter()

	var sinks []multitrack.Sink

	for _, path := range paths {
		sink, err := openFile(path)
		if err != nil {
			return err
		}
		sinks = append(sinks, m.Track(path, sink, 0))
		log.Debug().Str("file", path).Bool("append", appendFiles).Msg("opened")
	}

	stdout := bufio.NewWriter(os.Stdout)
	sinks = append(sinks, m.Track("stdout", multitrack.WriterSink(stdout), 0))

	var sum *multitrack.DigestSink
	if digestAlgo != "" {
		algo := digest.Algorithm(digestAlgo)
		if !algo.Available() {
			return fmt.Errorf("unknown digest algorithm: %s", digestAlgo)
		}
		sum = multitrack.NewDigestSink(algo)
		sinks = append(sinks, m.Track(digestAlgo, sum, 0))
	}

	mw := multitrack.NewMultiWriter(sinks...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var tty console.Console
	if !quiet && !verbose {
		if c, err := console.ConsoleFromFile(os.Stderr); err == nil {
			tty = c
		}
	}

	var wg sync.WaitGroup
	if !quiet && !verbose && (tty != nil || progress) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Display(ctx, tty, os.Stderr)
		}()
	}

	log.Debug().Int("tracks", len(sinks)).Msg("recording")

	n, copyErr := io.Copy(mw, os.Stdin)

	// tracks that failed keep their own error; the rest complete
	for _, t := range m.Tracks() {
		t.Done(nil)
	}
	wg.Wait()

	if copyErr != nil {
		mw.Close()
		return copyErr
	}

	log.Debug().Int64("bytes", n).Msg("recorded")

	if err := mw.Flush(); err != nil {
		mw.Close()
		return err
	}

	if err := mw.Close(); err != nil {
		return err
	}

	if sum != nil {
		fmt.Fprintf(os.Stderr, "%s  -\n", sum.Digest())
	}

	return nil
}

func openFile(path string) (multitrack.Sink, error) {
	if appendFiles {
		return multitrack.AppendFile(path)
	}
	return multitrack.CreateFile(path)
}
