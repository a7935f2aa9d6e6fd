package text

import "github.com/original-birdman/nuemacs-sub000/internal/dbuf"

// LineID is a stable handle to a line within one Buffer's slab. It never
// changes as the line's text grows or shrinks, which is what lets Pos values
// (dot/mark/pin) be copied and compared without tracking raw pointers or
// fixing them up on every regrow (spec.md §9's "arena + index" note).
type LineID int32

// NoLine is the invalid/absent LineID.
const NoLine LineID = -1

// Line owns a dynamic byte buffer holding UTF-8 text with no trailing
// newline (spec.md §3).
type Line struct {
	text       dbuf.Buffer
	next, prev LineID
	header     bool // true only for the buffer's sentinel
	free       bool // true for a freed slot available for reuse
}

// Bytes returns the line's text.
func (l *Line) Bytes() []byte { return l.text.Bytes() }

// Len returns the number of bytes in the line.
func (l *Line) Len() int { return l.text.Len() }

// lineArena is the per-buffer slab of lines, addressed by LineID.
type lineArena struct {
	slots    []*Line
	freeList []LineID
	header   LineID
}

func newLineArena() *lineArena {
	a := &lineArena{}
	a.header = a.alloc()
	h := a.get(a.header)
	h.header = true
	h.next, h.prev = a.header, a.header
	return a
}

func (a *lineArena) alloc() LineID {
	if n := len(a.freeList); n > 0 {
		id := a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
		a.slots[id] = &Line{}
		return id
	}
	a.slots = append(a.slots, &Line{})
	return LineID(len(a.slots) - 1)
}

func (a *lineArena) get(id LineID) *Line {
	if id < 0 || int(id) >= len(a.slots) {
		return nil
	}
	return a.slots[id]
}

func (a *lineArena) free(id LineID) {
	l := a.get(id)
	if l == nil || l.free {
		return
	}
	l.free = true
	l.text.Free()
	a.freeList = append(a.freeList, id)
}

// insertAfter splices a newly-allocated, empty line after "after" and returns
// its id.
func (a *lineArena) insertAfter(after LineID) LineID {
	l := a.get(after)
	id := a.alloc()
	nl := a.get(id)
	nl.prev = after
	nl.next = l.next
	a.get(l.next).prev = id
	l.next = id
	return id
}

// unlink removes id from the list (without freeing it — callers that want to
// reclaim the slot call free separately, matching the original's split of
// "unlink" vs the final lfree()).
func (a *lineArena) unlink(id LineID) {
	l := a.get(id)
	a.get(l.prev).next = l.next
	a.get(l.next).prev = l.prev
}

// Next/Prev/First/Last are thin readers used by callers that walk the list.
func (a *lineArena) next(id LineID) LineID { return a.get(id).next }
func (a *lineArena) prev(id LineID) LineID { return a.get(id).prev }
func (a *lineArena) first() LineID         { return a.get(a.header).next }
func (a *lineArena) last() LineID          { return a.get(a.header).prev }
func (a *lineArena) isHeader(id LineID) bool {
	l := a.get(id)
	return l != nil && l.header
}
