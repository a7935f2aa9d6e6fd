// Package termios implements low-level terminal mode control (spec.md §6's
// TTY interface) through the concrete Settings type: raw mode, restore and
// window size. It defines no terminal capability interface and no
// Termcap/Raw/Test variants.
//
// Ported from the teacher's term/termio.go and termios/termios.go, which
// reach a real terminal through a cgo `import "C"` block around
// <termios.h>/<sys/ioctl.h> plus a raw `syscall.RawSyscall` for
// TIOCGWINSZ. SPEC_FULL.md §4.11 replaces both with
// golang.org/x/sys/unix's IoctlGetTermios/IoctlSetTermios/IoctlGetWinsize —
// the idiomatic modern equivalent seen elsewhere in the retrieved pack
// (junegunn-fzf vendors the same package for the same purpose) — so the
// editor never needs cgo to build.
package termios

import "golang.org/x/sys/unix"

// Settings holds a terminal's original mode (captured at open) and its
// currently-applied mode, mirroring the teacher's TermSettings: Raw
// switches to raw mode, Reset restores the captured original.
type Settings struct {
	fd       int
	original unix.Termios
	current  unix.Termios
}

// NewSettings captures fd's current terminal mode.
func NewSettings(fd int) (*Settings, error) {
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, err
	}
	return &Settings{fd: fd, original: *t, current: *t}, nil
}

// Raw switches the terminal to a minimal raw mode suitable for a line-
// oriented editor: no canonical line buffering, no signal-generating
// control characters, no output post-processing, 8-bit clean, one byte at
// a time with no read timeout. Grounded on the teacher's Raw (which called
// the C library's cfmakeraw) and on golang.org/x/term's well-known
// IoctlGetTermios-based equivalent, since x/sys/unix has no cfmakeraw of
// its own.
func (s *Settings) Raw() error {
	t := s.original
	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cflag &^= unix.CSIZE | unix.PARENB
	t.Cflag |= unix.CS8
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0
	s.current = t
	return s.Apply()
}

// Reset restores the mode captured by NewSettings.
func (s *Settings) Reset() error {
	s.current = s.original
	return s.Apply()
}

// Apply writes the currently-held mode to the terminal, for callers
// maintaining more than one Settings value (e.g. raw vs. a subshell's
// cooked mode across spawn.c-style suspend/resume, SPEC_FULL.md §4.12).
func (s *Settings) Apply() error {
	return unix.IoctlSetTermios(s.fd, unix.TCSETS, &s.current)
}

// Size returns the terminal's current width and height in character
// cells, the result of a TIOCGWINSZ ioctl (spec.md §5's SIGWINCH-driven
// resize).
func (s *Settings) Size() (width, height int, err error) {
	ws, err := unix.IoctlGetWinsize(s.fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}
