package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/containerd/console"
	"github.com/opencontainers/go-digest"
	"github.com/vito/multitrack"
	"github.com/vito/multitrack/meter"
)

var (
	size    int64
	backoff time.Duration
)

func init() {
	flag.Int64Var(&size, "size", 8<<20, "bytes to record")
	flag.DurationVar(&backoff, "backoff", 0, "sleep between write rounds instead of spinning")
}

func main() {
	flag.Parse()

	m := meter.NewMeter()

	// a deliberately slow consumer, so the pipe fills up and the writer
	// has to keep coming back for the drain to catch up
	pr, ps := multitrack.Pipe(64 << 10)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		drain(pr)
	}()

	sum := multitrack.NewDigestSink(digest.SHA256)

	mw := multitrack.NewMultiWriter(
		m.Track("drain", ps, size),
		m.Track("discard", multitrack.WriterSink(io.Discard), size),
		m.Track("sha256", sum, size),
	)
	mw.SetBackoff(backoff)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var tty console.Console
	if c, err := console.ConsoleFromFile(os.Stderr); err == nil {
		tty = c
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		m.Display(ctx, tty, os.Stderr)
	}()

	n, err := multitrack.Copy(io.LimitReader(rand.Reader, size), mw)
	if err != nil {
		panic(err)
	}

	for _, t := range m.Tracks() {
		t.Done(nil)
	}

	if err := mw.Flush(); err != nil {
		panic(err)
	}

	if err := mw.Close(); err != nil {
		panic(err)
	}

	wg.Wait()

	fmt.Printf("recorded %d bytes\n", n)
	fmt.Printf("sha256: %s\n", sum.Digest().Encoded())
}

func drain(r io.ReadCloser) {
	buf := make([]byte, 4096)
	for {
		if _, err := r.Read(buf); err != nil {
			return
		}
		time.Sleep(time.Millisecond)
	}
}
