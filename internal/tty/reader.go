// Package tty adapts a real console into the byte source bind.Assembler
// needs (spec.md §4.6's getcmd), plus the SIGWINCH-driven resize signal
// spec.md §5 requires ("an explicit resize event posted to the input
// queue").
//
// Grounded on the teacher's term/term.go: NewTTY's background run()
// goroutine that reads the console and feeds a buffered channel while
// yielding between reads for setter mutations. internal/bind's Assembler
// now owns composite-key assembly (meta/ctlx/CSI composition), so Reader
// only has to deliver raw bytes correctly timed — no line/frame chunking
// is needed here, unlike the teacher's Line/Frame modes.
package tty

import (
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/original-birdman/nuemacs-sub000/internal/bind"
)

// Reader implements bind.KeySource against a real console, and separately
// tracks SIGWINCH so a caller's main loop can poll for a pending resize
// between key reads (original_source/code/input.c registers a SIGWINCH
// handler for the same purpose, there to escape the mini-buffer before a
// screen redraw).
type Reader struct {
	console io.Reader
	bytes   chan byte
	errs    chan error
	resize  chan struct{}

	pending    byte
	hasPending bool
}

// NewReader starts the background reader goroutine over console (normally
// the raw-mode tty opened via internal/termios) and begins watching for
// SIGWINCH.
func NewReader(console io.Reader) *Reader {
	r := &Reader{
		console: console,
		bytes:   make(chan byte, 256),
		errs:    make(chan error, 1),
		resize:  make(chan struct{}, 1),
	}
	go r.run()
	r.watchResize()
	return r
}

// run is the teacher's run() goroutine, pared down to byte-at-a-time
// delivery: no mode switch, no line buffering, no yield rendezvous, since
// nothing here mutates Reader's settings out from under a live read.
func (r *Reader) run() {
	buf := make([]byte, 256)
	for {
		n, err := r.console.Read(buf)
		for i := 0; i < n; i++ {
			r.bytes <- buf[i]
		}
		if err != nil {
			r.errs <- err
			return
		}
	}
}

func (r *Reader) watchResize() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGWINCH)
	go func() {
		for range sig {
			select {
			case r.resize <- struct{}{}:
			default:
			}
		}
	}()
}

// Resized reports, without blocking, whether a SIGWINCH has arrived since
// the last call. A caller's main loop polls this between key reads and
// posts the resize to its own input queue (spec.md §5).
func (r *Reader) Resized() bool {
	select {
	case <-r.resize:
		return true
	default:
		return false
	}
}

// ReadByte implements bind.KeySource.
func (r *Reader) ReadByte() (byte, error) {
	if r.hasPending {
		r.hasPending = false
		return r.pending, nil
	}
	select {
	case b := <-r.bytes:
		return b, nil
	case err := <-r.errs:
		return 0, err
	}
}

// PeekTimeout implements bind.KeySource, sharing bind's own CSI
// disambiguation window so a CSI introducer split across two reads isn't
// mistimed relative to Assembler's expectations. A byte that does arrive
// is buffered, not discarded, so the following ReadByte still returns it.
func (r *Reader) PeekTimeout() (byte, bool, error) {
	if r.hasPending {
		return r.pending, true, nil
	}
	select {
	case b := <-r.bytes:
		r.pending = b
		r.hasPending = true
		return b, true, nil
	case err := <-r.errs:
		return 0, false, err
	case <-time.After(bind.CSITimeoutMillis * time.Millisecond):
		return 0, false, nil
	}
}

var _ bind.KeySource = (*Reader)(nil)
