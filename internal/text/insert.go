package text

import "github.com/original-birdman/nuemacs-sub000/internal/runes"

// adjustShift is applied to every dot/mark in every window showing b, and to
// b's own saved (undisplayed) dot/mark, after a mutation at "at" that grows
// or shrinks line "at.Line" by delta bytes starting at byte offset "at.Off".
//
// Strictly-greater offsets shift by delta (spec.md §4.4: "Windows' dot
// offsets strictly greater than the insertion point shift by n; marks and
// pins equal to or greater than the point shift" — insertion uses >=,
// deletion's caller clamps separately since it must not go negative).
func adjustShift(wl *WindowList, b *Buffer, line LineID, atOff, delta int, dotStrict bool) {
	shift := func(p *Pos, strict bool) {
		if p.Line != line {
			return
		}
		if p.Off > atOff || (!strict && p.Off == atOff) {
			p.Off += delta
			if p.Off < atOff {
				p.Off = atOff
			}
		}
	}
	if wl != nil {
		wl.ForEachShowing(b, func(w *Window) {
			shift(&w.Dot, dotStrict)
			shift(&w.Mark, false)
		})
	}
	shift(&b.display.dot, dotStrict)
	shift(&b.display.mark, false)
}

// InsertBytes inserts p at position "at", splitting on embedded '\n' into
// separate lines (spec.md §4.4 linstr). It returns the position immediately
// following the inserted text.
func (b *Buffer) InsertBytes(wl *WindowList, at Pos, p []byte) Pos {
	pos := at
	start := 0
	for i, c := range p {
		if c != '\n' {
			continue
		}
		pos = b.insertRun(wl, pos, p[start:i], true)
		pos = b.Newline(wl, pos)
		start = i + 1
	}
	pos = b.insertRun(wl, pos, p[start:], true)
	return pos
}

// insertRun inserts a run with no embedded newline into a single line.
func (b *Buffer) insertRun(wl *WindowList, at Pos, run []byte, dotStrict bool) Pos {
	if len(run) == 0 {
		return at
	}
	if b.IsHeader(at.Line) {
		id := b.InsertLineAfter(b.Last())
		at = Pos{Line: id, Off: 0}
	}
	line := b.Line(at.Line)
	line.text.InsertAt(at.Off, run)
	adjustShift(wl, b, at.Line, at.Off, len(run), dotStrict)
	b.Flag |= FlagChanged
	return Pos{Line: at.Line, Off: at.Off + len(run)}
}

// InsertByteN inserts n copies of byte c at "at" (spec.md §4.4 linsert_byte).
// If at is the buffer's trailing sentinel position (the header), a new line
// is appended first, matching the original's special case.
func (b *Buffer) InsertByteN(wl *WindowList, at Pos, n int, c byte) Pos {
	if b.IsHeader(at.Line) {
		id := b.InsertLineAfter(b.Last())
		at = Pos{Line: id, Off: 0}
	}
	if n <= 0 {
		return at
	}
	run := make([]byte, n)
	for i := range run {
		run[i] = c
	}
	return b.insertRun(wl, at, run, true)
}

// InsertRune encodes cp and inserts it n times via InsertBytes.
func (b *Buffer) InsertRune(wl *WindowList, at Pos, n int, cp rune) Pos {
	enc := runes.Encode(cp)
	pos := at
	for i := 0; i < n; i++ {
		pos = b.InsertBytes(wl, pos, enc)
	}
	return pos
}

// Newline splits the line at "at": a new line is allocated, the suffix from
// at.Off onward moves into it. Marks strictly past "at" move with the
// suffix; dot moves with the suffix if it was at or past "at" (spec.md
// §4.4).
func (b *Buffer) Newline(wl *WindowList, at Pos) Pos {
	line := b.Line(at.Line)
	suffix := append([]byte(nil), line.text.Bytes()[at.Off:]...)
	line.text.Truncate(at.Off)

	newID := b.InsertLineAfter(at.Line)
	newLine := b.Line(newID)
	newLine.text.Set(suffix)

	// Fix up dot/mark: a dot on at.Line at or past at.Off, and a mark
	// strictly past it, move to the new line at the corresponding offset.
	move := func(p *Pos, strict bool) {
		if p.Line != at.Line || p.Off < at.Off || (strict && p.Off == at.Off) {
			return
		}
		p.Line = newID
		p.Off -= at.Off
	}
	if wl != nil {
		wl.ForEachShowing(b, func(w *Window) {
			move(&w.Dot, false)
			move(&w.Mark, true)
		})
	}
	move(&b.display.dot, false)
	move(&b.display.mark, true)

	b.Flag |= FlagChanged
	return Pos{Line: newID, Off: 0}
}

// AppendNewlineAfterLast inserts an empty line after the buffer's last line
// regardless of dot's current position — the "force-newline" case spec.md
// §4.4 calls out for yank needing to add a trailing line at EOF.
func (b *Buffer) AppendNewlineAfterLast() LineID {
	return b.InsertLineAfter(b.Last())
}
