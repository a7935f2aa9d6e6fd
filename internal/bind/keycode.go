package bind

// PrefixKind names one of the three built-in composite-keycode prefixes
// (spec.md §4.6: "META ... CTLX ... SPEC").
type PrefixKind int

const (
	PrefixMeta PrefixKind = iota
	PrefixCtlX
	PrefixSpec
)

// Composite keycode bits (spec.md §4.6): "CONTROL (0x10000000) is applied
// to raw bytes in 0..0x1F; META (0x20000000, via the ESC key or a
// user-bound meta prefix), CTLX (0x40000000), and SPEC (0x80000000, for
// function keys arriving via CSI)". Grounded on
// original_source/code/estruct.h's CONTROL/META/CTLX/SPEC #defines.
const (
	Control uint32 = 0x10000000
	Meta    uint32 = 0x20000000
	CtlX    uint32 = 0x40000000
	Spec    uint32 = 0x80000000

	charMask uint32 = 0x000000ff
)

// defaultMetaKey/defaultCtlXKey are the raw-byte keycodes the meta- and
// ctlx-prefix functions start out bound to: ESC (Ctrl-[) and Ctrl-X.
// defaultSpecKey has no raw-byte keycode of its own — SPEC is produced
// internally once a CSI sequence is recognized, not typed directly — so it
// is pinned to a keycode no raw byte can ever produce.
const (
	defaultMetaKey = Control | 0x1b
	defaultCtlXKey = Control | uint32('X'&0x1f)
	defaultSpecKey = Spec | 0
)

// CSITimeoutMillis bounds how long Assembler waits for the continuation of
// an ambiguous "ESC" press before deciding it was a bare Meta-prefix rather
// than the start of a CSI sequence (spec.md §4.6: "short-timeout
// disambiguation of ambiguous ESC[... sequences"). Exported so a KeySource
// implementation (internal/tty) can use the same window for its own
// PeekTimeout rather than duplicating the constant.
const CSITimeoutMillis = 50

// KeySource supplies raw input bytes to the Assembler, one at a time, with
// a way to ask whether another byte is available within the CSI
// disambiguation window. Implementations wrap the real terminal reader
// (internal/tty) or, in tests, a canned byte queue.
type KeySource interface {
	// ReadByte blocks for the next raw input byte.
	ReadByte() (byte, error)
	// PeekTimeout reports whether a further byte arrives within
	// CSITimeoutMillis of the previous one. It does not consume the byte:
	// a true result must still be followed by ReadByte to retrieve it.
	PeekTimeout() (byte, bool, error)
}

// Assembler turns a KeySource's raw bytes into the composite keycodes
// spec.md §4.6 calls getcmd's job: applying CONTROL to low-ASCII control
// bytes, recognizing the rebindable meta- and ctlx-prefix bytes and
// composing their keycode with the next byte's, and recognizing CSI
// (ESC '[') sequences as SPEC-tagged function keys.
type Assembler struct {
	src   KeySource
	table *Table
}

// NewAssembler builds a keycode assembler that resolves prefix bytes
// against table's current meta-/ctlx-/spec-prefix bindings, so rebinding
// the prefix functions (spec.md's prefix-rebind rule) takes effect on the
// very next key read.
func NewAssembler(src KeySource, table *Table) *Assembler {
	return &Assembler{src: src, table: table}
}

// Next reads one composite keycode. A raw control byte (0x00-0x1F) other
// than the current meta/ctlx prefix bytes is tagged with CONTROL directly;
// the meta and ctlx prefix bytes compose their tag onto whatever keycode
// follows (allowing nesting, e.g. ESC Ctrl-X); an unescaped CSI
// introduction composes SPEC onto the final byte of the escape sequence.
func (a *Assembler) Next() (uint32, error) {
	b, err := a.src.ReadByte()
	if err != nil {
		return 0, err
	}
	raw := rawKeycode(b)

	switch raw {
	case a.table.PrefixKeycode(PrefixMeta):
		if esc, ok, err := a.tryCSI(); err != nil {
			return 0, err
		} else if ok {
			return esc, nil
		}
		inner, err := a.Next()
		if err != nil {
			return 0, err
		}
		return Meta | inner, nil
	case a.table.PrefixKeycode(PrefixCtlX):
		inner, err := a.Next()
		if err != nil {
			return 0, err
		}
		return CtlX | inner, nil
	}
	return raw, nil
}

// tryCSI checks, within the disambiguation timeout, whether the byte after
// an ESC is '[' (a CSI introducer); if so it reads the rest of the
// sequence and returns a SPEC-tagged keycode for its final byte. The final
// byte, not the whole sequence, is what distinguishes one function key
// from another in the binding table, matching the original's collapsing
// of each CSI escape to a single SPEC keycode.
func (a *Assembler) tryCSI() (uint32, bool, error) {
	nb, ok, err := a.src.PeekTimeout()
	if err != nil {
		return 0, false, err
	}
	if !ok || nb != '[' {
		return 0, false, nil
	}
	if _, err := a.src.ReadByte(); err != nil { // consume '['
		return 0, false, err
	}
	var final byte
	for {
		b, err := a.src.ReadByte()
		if err != nil {
			return 0, false, err
		}
		if b >= 0x40 && b <= 0x7e {
			final = b
			break
		}
	}
	return Spec | uint32(final), true, nil
}

// rawKeycode applies CONTROL to bytes in 0x00-0x1F (and DEL, 0x7F, which
// the original also treats as a control keycode); anything else passes
// through as its own byte value.
func rawKeycode(b byte) uint32 {
	if b < 0x20 || b == 0x7f {
		return Control | uint32(b)
	}
	return uint32(b)
}
