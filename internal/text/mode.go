// Package text implements the Line/Buffer/Window model and the grapheme-aware
// edit primitives of spec.md §3 and §4.3/§4.4.
//
// Grounded on original_source/code/line.c, buffer.c, window.c, basic.c and
// region.c. The original's doubly-linked line list is kept, but its links
// are LineID handles into a per-buffer slab of *Line values (line.go) rather
// than raw pointers; windows and marks reference lines through the same
// stable LineID handle described in spec.md §9, so that callers can
// compare/store positions without holding a live *Line. Dot and mark offsets
// are still shifted on every edit (insert.go, delete.go).
package text

// Mode is the per-buffer mode bitmask (spec.md §3).
type Mode uint32

const (
	ModeWrap Mode = 1 << iota
	ModeCmode
	ModePhonetic
	ModeExact
	ModeView
	ModeOverwrite
	ModeMagic
	ModeCrypt
	ModeAutosave
	ModeEquiv
	ModeDOSLineEnds
	ModeReportMatch
)

// ModeMagicEquiv is the combination search.go checks to decide whether the
// step scanner's Equivalence-mode group matching applies.
const ModeMagicEquiv = ModeMagic | ModeEquiv

// BufferType distinguishes the four buffer kinds spec.md §3 names.
type BufferType int

const (
	TypeNormal BufferType = iota
	TypeSpecial
	TypeProcedure
	TypePhoneticTable
)

// BufferFlag holds the non-mode per-buffer state bits (invisible, changed,
// truncated, narrowed) from original_source/code/estruct.h's BF* constants.
type BufferFlag uint32

const (
	FlagInvisible BufferFlag = 1 << iota
	FlagChanged
	FlagTruncated
	FlagNarrowed
)
