package text

import "github.com/original-birdman/nuemacs-sub000/internal/runes"

// adjustForDelete shifts every dot/mark in every window showing b (and b's
// saved display position) to account for deleting count bytes starting at
// "at" on line "at.Line" (a pure intra-line deletion — callers merging lines
// handle the cross-line case separately in mergeLineInto).
func adjustForDelete(wl *WindowList, b *Buffer, line LineID, atOff, count int) {
	fix := func(p *Pos) {
		if p.Line != line {
			return
		}
		switch {
		case p.Off >= atOff+count:
			p.Off -= count
		case p.Off >= atOff:
			p.Off = atOff
		}
	}
	if wl != nil {
		wl.ForEachShowing(b, func(w *Window) {
			fix(&w.Dot)
			fix(&w.Mark)
		})
	}
	fix(&b.display.dot)
	fix(&b.display.mark)
}

// mergeLineInto merges "next" into the end of "line" (used when a deletion
// crosses a line boundary), relocating next's dot/mark/pins to the merge
// point plus their old offset, then frees "next".
func (b *Buffer) mergeLineInto(wl *WindowList, line, next LineID) {
	lineLen := b.Line(line).Len()
	suffix := append([]byte(nil), b.Line(next).Bytes()...)
	b.Line(line).text.Append(suffix)

	relocate := func(p *Pos) {
		if p.Line != next {
			return
		}
		p.Line = line
		p.Off += lineLen
	}
	if wl != nil {
		wl.ForEachShowing(b, func(w *Window) {
			relocate(&w.Dot)
			relocate(&w.Mark)
		})
	}
	relocate(&b.display.dot)
	relocate(&b.display.mark)

	b.RemoveLine(next)
}

// Delete consumes up to n bytes forward from "at", merging lines on
// boundary crossings. If saveToKill is set, the removed bytes are prepended
// to kill-ring slot 0 (spec.md §4.4 ldelete). It returns the number of bytes
// actually removed.
func (b *Buffer) Delete(wl *WindowList, kr *KillRing, at Pos, n int, saveToKill bool) int {
	removed := 0
	for removed < n {
		line := b.Line(at.Line)
		avail := line.Len() - at.Off
		if avail <= 0 {
			next := b.Next(at.Line)
			if b.IsHeader(next) {
				break
			}
			if saveToKill && kr != nil {
				kr.Prepend([]byte{'\n'})
			}
			b.mergeLineInto(wl, at.Line, next)
			removed++
			continue
		}
		take := n - removed
		if take > avail {
			take = avail
		}
		chunk := append([]byte(nil), line.Bytes()[at.Off:at.Off+take]...)
		line.text.DeleteNAt(at.Off, take)
		adjustForDelete(wl, b, at.Line, at.Off, take)
		if saveToKill && kr != nil {
			kr.Prepend(chunk)
		}
		b.Flag |= FlagChanged
		removed += take
	}
	return removed
}

// DeleteGrapheme deletes n graphemes forward from "at" (spec.md §4.4
// ldelgrapheme: "iterates lgetgrapheme; ldelete").
func (b *Buffer) DeleteGrapheme(wl *WindowList, kr *KillRing, at Pos, n int, saveToKill bool) int {
	removed := 0
	for i := 0; i < n; i++ {
		line := b.Line(at.Line)
		if at.Off >= line.Len() {
			if b.IsHeader(b.Next(at.Line)) {
				break
			}
			removed += b.Delete(wl, kr, at, 1, saveToKill)
			continue
		}
		g := runes.BuildGrapheme(line.Bytes(), at.Off, line.Len(), false)
		removed += b.Delete(wl, kr, at, g.Bytes, saveToKill)
	}
	return removed
}
