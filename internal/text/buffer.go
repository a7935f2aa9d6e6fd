package text

import "fmt"

// MaxNameLen is the buffer-name length cap from spec.md §3 ("≤31 bytes").
const MaxNameLen = 31

// Pos is a position within a Buffer: a line handle plus a byte offset into
// that line's text (spec.md glossary: dot/mark/pin are all Pos values).
type Pos struct {
	Line LineID
	Off  int
}

// MaxExecDepth bounds dobuf recursion (spec.md §4.7: "bounds ... recursion
// depth at 10").
const MaxExecDepth = 10

// narrowState holds the saved head/tail chains for Buffer narrowing
// (spec.md §3: "narrowing may be active only if both saved chains are
// present or both absent").
type narrowState struct {
	active       bool
	savedFirst   LineID
	savedLast    LineID
	savedHeadPrv LineID
	savedTailNxt LineID
}

// displaySnapshot preserves dot/mark/first-column for a buffer that is not
// currently shown in any window (spec.md §3).
type displaySnapshot struct {
	valid        bool
	dot, mark    Pos
	firstColumn  int
}

// Buffer is a named container owning its line list (spec.md §3).
type Buffer struct {
	Name     string
	Filename string
	RealPath string

	Mode Mode
	Flag BufferFlag
	Type BufferType

	Active     bool // lazily loaded from its backing file
	EOLMissing bool
	CryptKey   []byte

	// Phonetic holds the compiled translation table when Type ==
	// TypePhoneticTable or when a normal buffer has one bound via
	// set-phonetic-table; kept as interface{} to avoid an import cycle with
	// package phonetic (text is lower in the dependency graph).
	Phonetic interface{}

	// Vars holds per-buffer variables for procedure buffers (spec.md §3).
	Vars map[string]string

	ExecDepth int

	arena   *lineArena
	narrow  narrowState
	display displaySnapshot

	nwnd int // number of windows currently displaying this buffer
}

// NewBuffer allocates a buffer with its header sentinel line.
func NewBuffer(name string, typ BufferType) (*Buffer, error) {
	if len(name) > MaxNameLen {
		return nil, fmt.Errorf("text: buffer name %q exceeds %d bytes", name, MaxNameLen)
	}
	return &Buffer{
		Name:  name,
		Type:  typ,
		arena: newLineArena(),
	}, nil
}

// Header returns the sentinel line id: Header's Next is the first real line,
// its Prev is the last.
func (b *Buffer) Header() LineID { return b.arena.header }

// First returns the first real line, or Header() if the buffer is empty.
func (b *Buffer) First() LineID { return b.arena.first() }

// Last returns the last real line, or Header() if the buffer is empty.
func (b *Buffer) Last() LineID { return b.arena.last() }

// Next/Prev walk the line list; walking past the last/first line returns the
// header sentinel.
func (b *Buffer) Next(id LineID) LineID { return b.arena.next(id) }
func (b *Buffer) Prev(id LineID) LineID { return b.arena.prev(id) }

// IsHeader reports whether id is the sentinel (an empty-buffer probe or
// end-of-list marker, per spec.md §3's use of the header line).
func (b *Buffer) IsHeader(id LineID) bool { return b.arena.isHeader(id) }

// Line returns the *Line for id (nil if id is invalid).
func (b *Buffer) Line(id LineID) *Line { return b.arena.get(id) }

// IsEmpty reports whether the buffer has no real lines.
func (b *Buffer) IsEmpty() bool { return b.First() == b.Header() }

// InsertLineAfter allocates a new empty line after "after" and returns its id.
func (b *Buffer) InsertLineAfter(after LineID) LineID {
	b.Flag |= FlagChanged
	return b.arena.insertAfter(after)
}

// RemoveLine unlinks and frees id, which must not be the header.
func (b *Buffer) RemoveLine(id LineID) {
	if b.IsHeader(id) {
		return
	}
	b.arena.unlink(id)
	b.arena.free(id)
	b.Flag |= FlagChanged
}

// Narrowed reports whether the buffer currently has narrowing active.
func (b *Buffer) Narrowed() bool { return b.narrow.active }

// Narrow hides all lines outside [first, last] (inclusive) by temporarily
// splicing the header directly to first/last. Returns an error if narrowing
// is already active (spec.md §3 invariant: narrowing state is all-or-nothing).
func (b *Buffer) Narrow(first, last LineID) error {
	if b.narrow.active {
		return fmt.Errorf("text: buffer %q is already narrowed", b.Name)
	}
	header := b.arena.get(b.Header())
	b.narrow = narrowState{
		active:       true,
		savedFirst:   header.next,
		savedLast:    header.prev,
		savedHeadPrv: b.arena.get(first).prev,
		savedTailNxt: b.arena.get(last).next,
	}
	header.next = first
	header.prev = last
	b.arena.get(first).prev = b.Header()
	b.arena.get(last).next = b.Header()
	b.Flag |= FlagNarrowed
	return nil
}

// Widen reverses a prior Narrow, restoring the full line list.
func (b *Buffer) Widen() error {
	if !b.narrow.active {
		return fmt.Errorf("text: buffer %q is not narrowed", b.Name)
	}
	header := b.arena.get(b.Header())
	first, last := header.next, header.prev
	header.next = b.narrow.savedFirst
	header.prev = b.narrow.savedLast
	b.arena.get(b.narrow.savedFirst).prev = b.Header()
	b.arena.get(b.narrow.savedLast).next = b.Header()

	// Reattach the hidden ends of the narrowed range back to their outer
	// neighbours.
	if b.narrow.savedHeadPrv != NoLine {
		b.arena.get(b.narrow.savedHeadPrv).next = first
		b.arena.get(first).prev = b.narrow.savedHeadPrv
	}
	if b.narrow.savedTailNxt != NoLine {
		b.arena.get(b.narrow.savedTailNxt).prev = last
		b.arena.get(last).next = b.narrow.savedTailNxt
	}
	b.narrow = narrowState{}
	b.Flag &^= FlagNarrowed
	return nil
}

// Clear frees all non-header lines (widening first if narrowed), clears
// per-buffer variables and the phonetic table, and resets the display
// snapshot (spec.md §4.3).
func (b *Buffer) Clear() {
	if b.narrow.active {
		b.Widen()
	}
	for id := b.First(); !b.IsHeader(id); {
		next := b.Next(id)
		b.RemoveLine(id)
		id = next
	}
	b.Vars = nil
	b.Phonetic = nil
	b.display = displaySnapshot{}
}

// Modified reports whether the buffer has unsaved changes.
func (b *Buffer) Modified() bool { return b.Flag&FlagChanged != 0 }

// SetModified sets or clears the changed flag.
func (b *Buffer) SetModified(v bool) {
	if v {
		b.Flag |= FlagChanged
	} else {
		b.Flag &^= FlagChanged
	}
}

// SaveDisplay stashes dot/mark/first-column for a buffer about to be
// detached from its last window.
func (b *Buffer) SaveDisplay(dot, mark Pos, firstColumn int) {
	b.display = displaySnapshot{valid: true, dot: dot, mark: mark, firstColumn: firstColumn}
}

// RestoreDisplay returns the previously saved dot/mark/first-column, if any.
func (b *Buffer) RestoreDisplay() (dot, mark Pos, firstColumn int, ok bool) {
	return b.display.dot, b.display.mark, b.display.firstColumn, b.display.valid
}

// AttachWindow/DetachWindow track how many windows currently show this
// buffer (spec.md §4.3: lazy file-load only happens via switch-to, and
// Clear() prompts only for non-invisible, modified, buffers — displayed
// buffers are asked to confirm via the window count here).
func (b *Buffer) AttachWindow() { b.nwnd++ }
func (b *Buffer) DetachWindow() {
	if b.nwnd > 0 {
		b.nwnd--
	}
}
func (b *Buffer) Displayed() bool { return b.nwnd > 0 }
