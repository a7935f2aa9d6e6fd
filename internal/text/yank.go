package text

// Kill removes count bytes forward from "at" into kill-ring slot 0, rotating
// the ring down first when it is the start of a new kill sequence (spec.md
// §4.4 kdelete: "rotates the kill ring downward by one and clears slot 0").
// continuing reports whether this kill should append to the previous one
// (successive kill commands accumulate into the same slot instead of each
// rotating the ring).
func (b *Buffer) Kill(wl *WindowList, kr *KillRing, at Pos, count int, continuing bool) int {
	if !continuing {
		kr.Clear()
	}
	return b.Delete(wl, kr, at, count, true)
}

// Yank inserts the chain currently in ring slot "slot" at "at" (spec.md
// §4.4: "Yank inserts the entire chain of slot 0 at dot"; a nonzero slot
// models "GNU yank mode" rotating by a numeric prefix before a single
// insertion). It returns the position after the inserted text and the
// number of bytes inserted, and marks the kill ring's last-was-yank flag so
// a following yank-replace can act.
func (b *Buffer) Yank(wl *WindowList, kr *KillRing, at Pos, slot int) (Pos, int) {
	data := kr.Slot(slot)
	if len(data) == 0 {
		return at, 0
	}
	end := b.InsertBytes(wl, at, data)
	kr.SetLastWasYank(true)
	return end, len(data)
}

// YankReplace replaces the text in [start, start+prevLen) — the region the
// most recent Yank inserted — with the contents of a different ring slot.
// It fails (returning the original span untouched) if the kill ring's
// last-was-yank flag is not set (spec.md §4.4).
func (b *Buffer) YankReplace(wl *WindowList, kr *KillRing, start Pos, prevLen, slot int) (Pos, int, bool) {
	if !kr.LastWasYank() {
		return start, prevLen, false
	}
	b.Delete(wl, nil, start, prevLen, false)
	end, n := b.Yank(wl, kr, start, slot)
	return end, n, true
}
