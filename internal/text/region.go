package text

import "github.com/original-birdman/nuemacs-sub000/internal/runes"

// Region is dot and mark together defining the current region (spec.md
// glossary: "mark — a secondary position defining the current region
// together with dot").
type Region struct {
	Start, End Pos // Start always orders before or equal to End
}

// ComparePos orders two positions in the buffer's line-list order: -1 if a
// is before b, 0 if equal, 1 if after. It walks forward from a looking for
// b, which is O(lines between them) — acceptable since regions are a
// user-visible span, not a hot loop over the whole buffer.
func (b *Buffer) ComparePos(a, bb Pos) int {
	if a.Line == bb.Line {
		switch {
		case a.Off < bb.Off:
			return -1
		case a.Off > bb.Off:
			return 1
		default:
			return 0
		}
	}
	for id := a.Line; !b.IsHeader(id); id = b.Next(id) {
		if id == bb.Line {
			return -1
		}
	}
	return 1
}

// MakeRegion orders dot and mark into a Region.
func (b *Buffer) MakeRegion(dot, mark Pos) Region {
	if b.ComparePos(dot, mark) <= 0 {
		return Region{Start: dot, End: mark}
	}
	return Region{Start: mark, End: dot}
}

// RecaseRegion applies mode to every byte in r, line by line (spec.md §4.4
// "Case of region"). If a line's recased byte length differs from its
// source, the tail is shifted and dot/mark offsets on that line are fixed
// up; Go's garbage-collected Line needs no "reallocate or relink a new line
// struct" fallback the original requires for its fixed-capacity lines.
func (b *Buffer) RecaseRegion(wl *WindowList, mode runes.CaseMode, r Region) {
	if r.Start.Line == r.End.Line {
		b.recaseSpan(wl, r.Start.Line, r.Start.Off, r.End.Off, mode)
		return
	}
	b.recaseSpan(wl, r.Start.Line, r.Start.Off, b.Line(r.Start.Line).Len(), mode)
	for id := b.Next(r.Start.Line); id != r.End.Line; id = b.Next(id) {
		b.recaseSpan(wl, id, 0, b.Line(id).Len(), mode)
	}
	b.recaseSpan(wl, r.End.Line, 0, r.End.Off, mode)
}

func (b *Buffer) recaseSpan(wl *WindowList, line LineID, from, to int, mode runes.CaseMode) {
	if to <= from {
		return
	}
	l := b.Line(line)
	src := l.Bytes()[from:to]
	recased, _ := runes.Recase(mode, src)
	delta := len(recased) - len(src)
	l.text.DeleteNAt(from, to-from)
	l.text.InsertAt(from, recased)
	if delta != 0 {
		adjustShift(wl, b, line, from, delta, false)
	}
	b.Flag |= FlagChanged
}
