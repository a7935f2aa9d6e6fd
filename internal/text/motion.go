package text

import "github.com/original-birdman/nuemacs-sub000/internal/runes"

// WidthFunc computes the display-column width of a codepoint, supplied by
// the external screen painter (spec.md §4.4: "computed from an external
// character-width function").
type WidthFunc func(cp rune) int

// BackGrapheme moves a position back n graphemes, crossing line boundaries
// at buffer edges. It returns the new position and, on running out of
// buffer before consuming n graphemes, the negative of the number actually
// moved (spec.md §4.4).
func (b *Buffer) BackGrapheme(p Pos, n int) (Pos, int) {
	moved := 0
	for ; moved < n; moved++ {
		if p.Off > 0 {
			p.Off = runes.PrevOffset(b.Line(p.Line).Bytes(), p.Off, true)
			continue
		}
		prev := b.Prev(p.Line)
		if b.IsHeader(prev) {
			return p, -moved
		}
		p.Line = prev
		p.Off = b.Line(prev).Len()
	}
	return p, moved
}

// ForwGrapheme moves a position forward n graphemes, crossing line
// boundaries at buffer edges (a line boundary itself counts as one
// grapheme step, matching the original's treatment of the implicit
// newline).
func (b *Buffer) ForwGrapheme(p Pos, n int) (Pos, int) {
	moved := 0
	for ; moved < n; moved++ {
		line := b.Line(p.Line)
		if p.Off < line.Len() {
			p.Off = runes.NextOffset(line.Bytes(), p.Off, line.Len(), true)
			continue
		}
		next := b.Next(p.Line)
		if b.IsHeader(next) {
			return p, -moved
		}
		p.Line = next
		p.Off = 0
	}
	return p, moved
}

// GoalColumn computes the display column of offset off within the given
// line's text, using width to size each grapheme.
func (b *Buffer) GoalColumn(line LineID, off int, width WidthFunc) int {
	l := b.Line(line)
	col := 0
	txt := l.Bytes()
	for i := 0; i < off && i < len(txt); {
		g := runes.BuildGrapheme(txt, i, len(txt), false)
		col += width(g.Base)
		i += g.Bytes
	}
	return col
}

// OffsetForColumn finds the byte offset in line whose display column is
// closest to (without exceeding) goal, used to restore a cached goal column
// across successive vertical line moves.
func (b *Buffer) OffsetForColumn(line LineID, goal int, width WidthFunc) int {
	l := b.Line(line)
	txt := l.Bytes()
	col, i := 0, 0
	for i < len(txt) {
		g := runes.BuildGrapheme(txt, i, len(txt), false)
		w := width(g.Base)
		if col+w > goal {
			break
		}
		col += w
		i += g.Bytes
	}
	return i
}
