package search

import (
	"github.com/original-birdman/nuemacs-sub000/internal/runes"
	"github.com/original-birdman/nuemacs-sub000/internal/text"
)

// ScanWindow flattens a buffer's line list into one contiguous byte slice
// joined by '\n' so the scanners can treat cross-line search as ordinary
// linear scanning instead of a per-line special case (spec.md §4.5 Design
// Note: a flattened scan window standing in for the original's per-line
// amatch driver). Position<->offset conversion stays cheap via a sorted
// line-start table.
type ScanWindow struct {
	lineIDs   []text.LineID
	lineStart []int
	Data      []byte
}

// NewScanWindow captures buf's current contents. Re-run it after any edit
// that may have changed line structure; it does not track a buffer live.
func NewScanWindow(buf *text.Buffer) *ScanWindow {
	w := &ScanWindow{}
	for id := buf.First(); !buf.IsHeader(id); id = buf.Next(id) {
		w.lineStart = append(w.lineStart, len(w.Data))
		w.lineIDs = append(w.lineIDs, id)
		w.Data = append(w.Data, buf.Line(id).Bytes()...)
		w.Data = append(w.Data, '\n')
	}
	return w
}

// Offset converts a buffer position to a byte offset in Data, or -1 if p's
// line is not part of this window.
func (w *ScanWindow) Offset(p text.Pos) int {
	for i, id := range w.lineIDs {
		if id == p.Line {
			return w.lineStart[i] + p.Off
		}
	}
	return -1
}

// Pos converts a byte offset in Data back to a buffer position.
func (w *ScanWindow) Pos(offset int) text.Pos {
	if len(w.lineStart) == 0 {
		return text.Pos{}
	}
	lo, hi, idx := 0, len(w.lineStart)-1, 0
	for lo <= hi {
		mid := (lo + hi) / 2
		if w.lineStart[mid] <= offset {
			idx = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return text.Pos{Line: w.lineIDs[idx], Off: offset - w.lineStart[idx]}
}

// GraphemeBoundary reports whether offset falls on a grapheme start within
// Data, used by the fast scanner to reject a byte-level literal hit that
// lands mid-grapheme.
func (w *ScanWindow) GraphemeBoundary(offset int) bool {
	if offset <= 0 || offset >= len(w.Data) {
		return true
	}
	prevStart := offset - 1
	for prevStart > 0 {
		if isGraphemeStart(w.Data, prevStart) {
			break
		}
		prevStart--
	}
	return isGraphemeStart(w.Data, offset)
}

func isGraphemeStart(b []byte, i int) bool {
	cp, _ := runes.Decode(b, i, len(b))
	return runes.ZeroWidthType(cp) == runes.KindNone
}
