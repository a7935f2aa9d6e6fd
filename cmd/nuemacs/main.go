// Command nuemacs is the editor's terminal front end: it puts stdin into
// raw mode, assembles composite keycodes from it, and repaints the
// current window after every keystroke.
//
// Grounded on the teacher's goat.go, which opened the same raw-mode
// session (termios.NewTermSettings + Raw, deferred Reset) and then ran a
// line-editing demo loop over term.NewTTY; this replaces that demo with
// spec.md's actual editor loop: internal/bind assembles keycodes,
// internal/text holds the buffer a bare key self-inserts into, and
// internal/paint redraws the window. Binding a command language onto
// more than the single quit keycode below is cmd/nuemacs's next
// increment, not attempted here.
package main

import (
	"fmt"
	"os"

	"github.com/original-birdman/nuemacs-sub000/internal/bind"
	"github.com/original-birdman/nuemacs-sub000/internal/paint"
	"github.com/original-birdman/nuemacs-sub000/internal/termios"
	"github.com/original-birdman/nuemacs-sub000/internal/text"
	"github.com/original-birdman/nuemacs-sub000/internal/tty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "nuemacs:", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := termios.NewSettings(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := settings.Raw(); err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer settings.Reset()

	width, height, err := settings.Size()
	if err != nil {
		width, height = 80, 24
	}

	reg := text.NewRegistry()
	buf, err := reg.Create("scratch", text.TypeNormal)
	if err != nil {
		return err
	}
	wl := text.NewWindowList()
	w := wl.New(buf)
	w.Rows = height

	keys := bind.New()
	quit := bind.CtlX | bind.Control | uint32('C'&0x1f)
	keys.Bind(quit, "quit", func(bool, int) (bool, error) { return true, errQuit }, 1)

	reader := tty.NewReader(os.Stdin)
	asm := bind.NewAssembler(reader, keys)
	painter := paint.NewPainter(os.Stdout, width, height)
	painter.Paint(wl)

	for {
		kc, err := asm.Next()
		if err != nil {
			return err
		}
		if entry, ok := keys.GetBind(kc); ok && entry.Handler != nil {
			if _, err := entry.Handler(false, 1); err == errQuit {
				return nil
			} else if err != nil {
				return err
			}
			continue
		}
		if kc&^0xff == 0 {
			w.Dot = buf.InsertBytes(wl, w.Dot, []byte{byte(kc)})
		}
		painter.Paint(wl)
	}
}

type quitSignal struct{}

func (quitSignal) Error() string { return "quit" }

var errQuit error = quitSignal{}
