package bind

import "sort"

// rebuildKeyIndex sorts entry indices by keycode (spec.md §3: "a parallel
// sorted index over keycode (binary-searched)"). Grounded on
// original_source/code/bind.c's index_bindings, which calls idxsort_fields
// over the keytab array; here sort.Slice replaces the qsort-with-context
// helper in idxsorter.c.
func (t *Table) rebuildKeyIndex() {
	idx := make([]int, len(t.entries))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return t.entries[idx[a]].KeyCode < t.entries[idx[b]].KeyCode
	})
	t.keyIndex = idx
	t.keyIndexValid = true
}

// rebuildHandlerIndex sorts entry indices by FuncName, the Go analogue of
// original_source/code/bind.c's index_keystr sorting by handler pointer,
// plus a precomputed "next" index for next_getbyfnc's successor walk.
func (t *Table) rebuildHandlerIndex() {
	idx := make([]int, len(t.entries))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return t.entries[idx[a]].FuncName < t.entries[idx[b]].FuncName
	})
	next := make([]int, len(idx))
	for i := range idx {
		if i+1 < len(idx) && t.entries[idx[i+1]].FuncName == t.entries[idx[i]].FuncName {
			next[i] = i + 1
		} else {
			next[i] = -1
		}
	}
	t.handlerIndex = idx
	t.nextHandlerIndex = next
	t.handlerIndexValid = true
}

// GetBind binary-searches the keycode index for an exact match (spec.md
// §4.6 getbind).
func (t *Table) GetBind(keycode uint32) (*Entry, bool) {
	if !t.keyIndexValid {
		t.rebuildKeyIndex()
	}
	idx := t.keyIndex
	lo, hi := 0, len(idx)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		e := &t.entries[idx[mid]]
		switch {
		case e.KeyCode < keycode:
			lo = mid + 1
		case e.KeyCode > keycode:
			hi = mid - 1
		default:
			return e, true
		}
	}
	return nil, false
}

// GetByFunc returns the first binding (in handler-sorted order) for
// funcName, or nil (spec.md §4.6 getbyfnc, used to print a function's
// current key binding).
func (t *Table) GetByFunc(funcName string) (*Entry, bool) {
	if !t.handlerIndexValid {
		t.rebuildHandlerIndex()
	}
	idx := t.handlerIndex
	lo, hi := 0, len(idx)-1
	first := -1
	for lo <= hi {
		mid := (lo + hi) / 2
		name := t.entries[idx[mid]].FuncName
		switch {
		case name < funcName:
			lo = mid + 1
		case name > funcName:
			hi = mid - 1
		default:
			first = mid
			hi = mid - 1 // keep searching left for the first occurrence
		}
	}
	if first < 0 {
		return nil, false
	}
	return &t.entries[idx[first]], true
}

// NextByFunc enumerates every binding of the handler named by cur.FuncName,
// given a pointer previously returned by GetByFunc or NextByFunc (spec.md
// §4.6 next_getbyfnc). A nil cur, or one not in the table, yields no entry;
// start a walk with GetByFunc.
func (t *Table) NextByFunc(cur *Entry) (*Entry, bool) {
	if !t.handlerIndexValid {
		t.rebuildHandlerIndex()
	}
	if cur == nil {
		return nil, false
	}
	ci := entryIndex(t.entries, cur)
	if ci < 0 {
		return nil, false
	}
	pos := -1
	for p, ei := range t.handlerIndex {
		if ei == ci {
			pos = p
			break
		}
	}
	if pos < 0 {
		return nil, false
	}
	ni := t.nextHandlerIndex[pos]
	if ni < 0 {
		return nil, false
	}
	return &t.entries[t.handlerIndex[ni]], true
}

func entryIndex(entries []Entry, e *Entry) int {
	for i := range entries {
		if &entries[i] == e {
			return i
		}
	}
	return -1
}
