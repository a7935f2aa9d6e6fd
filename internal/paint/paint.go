// Package paint draws the editor's window list to a terminal using ANSI
// escape sequences, grounded on the teacher's term/term_frame.go
// (Region.Draw's SetCursor/echo pattern and TTY.Clear's "\x1b[2J"), but
// replacing its generic bordered regions with spec.md §3's window/buffer
// model: each window paints its visible lines followed by an inverse-
// video mode line, and the cursor is finally placed at the current
// window's dot.
package paint

import (
	"fmt"
	"io"

	"github.com/original-birdman/nuemacs-sub000/internal/runes"
	"github.com/original-birdman/nuemacs-sub000/internal/text"
)

// TabStop is the column interval the teacher's C display code uses for
// hard tabs (original_source's default $tab of 8).
const TabStop = 8

// Painter renders a text.WindowList to out, an ANSI-capable terminal
// (normally the console opened in raw mode via internal/termios).
type Painter struct {
	out           io.Writer
	width, height int
}

// NewPainter builds a Painter for a width x height terminal.
func NewPainter(out io.Writer, width, height int) *Painter {
	return &Painter{out: out, width: width, height: height}
}

// Resize updates the dimensions used to clip lines and mode lines,
// applied the next time Paint runs (spec.md §5's resize handling).
func (p *Painter) Resize(width, height int) {
	p.width, p.height = width, height
}

// Clear erases the whole screen (the teacher's TTY.Clear).
func (p *Painter) Clear() {
	fmt.Fprint(p.out, "\x1b[2J")
}

// MoveCursor places the cursor at a 0-based column/row (the teacher's
// TTY.SetCursor, which is itself 0-based and emits 1-based codes).
func (p *Painter) MoveCursor(col, row int) {
	fmt.Fprintf(p.out, "\x1b[%d;%dH", row+1, col+1)
}

// Paint redraws every window in wl, then positions the terminal cursor at
// the current window's dot.
func (p *Painter) Paint(wl *text.WindowList) {
	p.Clear()
	for _, w := range wl.All() {
		p.paintWindow(w)
	}
	if cur := wl.Current(); cur != nil {
		p.placeCursor(cur)
	}
}

func (p *Painter) paintWindow(w *text.Window) {
	buf := w.Buf
	textRows := w.Rows - 1 // last row is the mode line
	if textRows < 0 {
		textRows = 0
	}

	id := w.Top
	row := 0
	for row < textRows && id != buf.Header() && id != text.NoLine {
		p.MoveCursor(0, w.TopRow+row)
		p.writeClipped(buf.Line(id).Bytes(), w.FirstCol)
		id = buf.Next(id)
		row++
	}
	for ; row < textRows; row++ {
		p.MoveCursor(0, w.TopRow+row)
		p.clearToEOL()
	}

	p.MoveCursor(0, w.TopRow+textRows)
	p.writeModeLine(w)
}

// writeClipped writes line starting at display column firstCol (the
// window's horizontal scroll offset), truncated to the painter's width.
func (p *Painter) writeClipped(line []byte, firstCol int) {
	col := 0
	written := 0
	for idx := 0; idx < len(line); {
		g := runes.BuildGrapheme(line, idx, len(line), false)
		width := graphemeWidth(g, col)
		if col+width > firstCol && written < p.width {
			p.out.Write(line[idx : idx+g.Bytes])
			written += width
		}
		col += width
		idx += g.Bytes
	}
	p.clearToEOL()
}

func (p *Painter) clearToEOL() {
	fmt.Fprint(p.out, "\x1b[K")
}

// writeModeLine renders the inverse-video status line spec.md §3 expects
// per window: the modified marker and the buffer's name.
func (p *Painter) writeModeLine(w *text.Window) {
	mark := "--"
	if w.Buf.Modified() {
		mark = "**"
	}
	label := fmt.Sprintf("%s %s", mark, w.Buf.Name)
	pad := p.width - len(label)
	if pad < 0 {
		label = label[:p.width]
		pad = 0
	}
	fmt.Fprintf(p.out, "\x1b[7m%s%*s\x1b[0m", label, pad, "")
}

func (p *Painter) placeCursor(w *text.Window) {
	row := 0
	id := w.Top
	for id != w.Dot.Line && id != text.NoLine && id != w.Buf.Header() {
		id = w.Buf.Next(id)
		row++
	}
	col := columnOf(w.Buf.Line(w.Dot.Line).Bytes(), w.Dot.Off) - w.FirstCol
	if col < 0 {
		col = 0
	}
	p.MoveCursor(col, w.TopRow+row)
}

// columnOf returns the display column of byte offset off within line,
// expanding hard tabs to TabStop boundaries and treating every other
// grapheme as one column (original_source/code/display.c's vtmove does
// the same tab-expansion; wide-glyph accounting is not attempted here).
func columnOf(line []byte, off int) int {
	col := 0
	for idx := 0; idx < off && idx < len(line); {
		g := runes.BuildGrapheme(line, idx, len(line), false)
		col += graphemeWidth(g, col)
		idx += g.Bytes
	}
	return col
}

func graphemeWidth(g runes.Grapheme, col int) int {
	if g.Base == '\t' {
		return TabStop - col%TabStop
	}
	return 1
}
