// Package bind implements the key-binding and function-name tables of
// spec.md §4.6: a growable binding table with sorted indices for binary
// search and reverse (handler) lookup, the composite-keycode assembler, and
// the static function-name table consulted by the command interpreter and
// completion dispatch.
//
// Grounded on original_source/code/bind.c (getbind/getbyfnc/next_getbyfnc,
// bindtokey/unbindkey) and idxsorter.c, whose qsort-with-context indexing is
// reimplemented with sort.Slice (SPEC_FULL.md §4.12: "a direct port would be
// non-idiomatic Go").
package bind

import "fmt"

// EntryType distinguishes a key bound to a Go handler from one bound to a
// user-defined procedure buffer (spec.md §3 key-binding table: "type ∈
// {EndStructure, EndList, Function, Procedure}" — the two end-sentinel
// kinds are an artifact of the original's fixed array and have no
// counterpart here; a Go slice simply has a length).
type EntryType int

const (
	TypeFunction EntryType = iota
	TypeProcedure
)

// HandlerFunc is a bound command handler. It returns the command's success
// status (spec.md §4.7's "!force" and "$force_status" operate on this) and
// an error for abnormal termination.
type HandlerFunc func(f bool, n int) (bool, error)

// Entry is one key binding (spec.md §3: "{keycode, type, handler, info,
// binding-multiplier}").
type Entry struct {
	KeyCode    uint32
	Type       EntryType
	FuncName   string // identifies the handler; Go func values aren't comparable or orderable, so reverse lookup keys off this instead of a function pointer as the original does
	Handler    HandlerFunc
	ProcBuffer string // buffer name, set when Type == TypeProcedure
	Multiplier int
}

// Table is the growable key-binding table plus its two lazily-rebuilt
// sorted indices.
type Table struct {
	entries []Entry

	keyIndex      []int
	keyIndexValid bool

	handlerIndex      []int
	nextHandlerIndex  []int
	handlerIndexValid bool

	// pauseIndexRebuild suppresses rebuilding the key index after every
	// Bind call while a batch of startup-file bindings is being applied
	// (spec.md §4.6's "rebuild is suppressed during batch binding changes
	// from init files").
	pauseIndexRebuild bool

	prefixKey  map[PrefixKind]uint32
	prefixFunc map[string]PrefixKind
}

// New returns an empty table with the standard prefix-function names
// registered against their default prefix keycodes.
func New() *Table {
	t := &Table{
		prefixKey:  map[PrefixKind]uint32{},
		prefixFunc: map[string]PrefixKind{},
	}
	t.RegisterPrefixFunc("meta-prefix", PrefixMeta, defaultMetaKey)
	t.RegisterPrefixFunc("ctlx-prefix", PrefixCtlX, defaultCtlXKey)
	t.RegisterPrefixFunc("spec-prefix", PrefixSpec, defaultSpecKey)
	return t
}

// RegisterPrefixFunc declares funcName as the handler for a prefix kind,
// recording its current keycode. Only needed for the three built-in
// prefixes; user-bound procedures are never prefixes.
func (t *Table) RegisterPrefixFunc(funcName string, kind PrefixKind, keycode uint32) {
	t.prefixFunc[funcName] = kind
	t.prefixKey[kind] = keycode
}

// PrefixKeycode returns the raw keycode currently bound to kind.
func (t *Table) PrefixKeycode(kind PrefixKind) uint32 { return t.prefixKey[kind] }

// PauseIndexRebuild suppresses index invalidation-triggered rebuilds until
// ResumeIndexRebuild is called, for loading a startup file's many bindings
// without re-sorting after each one.
func (t *Table) PauseIndexRebuild()  { t.pauseIndexRebuild = true }
func (t *Table) ResumeIndexRebuild() { t.pauseIndexRebuild = false; t.invalidate() }

func (t *Table) invalidate() {
	if t.pauseIndexRebuild {
		return
	}
	t.keyIndexValid = false
	t.handlerIndexValid = false
}

// Bind associates keycode with a Go-level handler. If funcName names a
// registered prefix function, every other key currently bound to it is
// unbound first and the prefix's keycode variable is updated (spec.md
// §4.6: "Binding a function that acts as a prefix first unbinds all other
// keys currently bound to that same prefix function").
func (t *Table) Bind(keycode uint32, funcName string, h HandlerFunc, multiplier int) {
	if kind, isPrefix := t.prefixFunc[funcName]; isPrefix {
		t.UnbindFunc(funcName)
		t.prefixKey[kind] = keycode
	}
	t.removeAt(keycode)
	t.entries = append(t.entries, Entry{
		KeyCode: keycode, Type: TypeFunction, FuncName: funcName,
		Handler: h, Multiplier: multiplier,
	})
	t.invalidate()
}

// BindProcedure associates keycode with a user-defined procedure buffer.
func (t *Table) BindProcedure(keycode uint32, bufferName string, multiplier int) {
	t.removeAt(keycode)
	t.entries = append(t.entries, Entry{
		KeyCode: keycode, Type: TypeProcedure, ProcBuffer: bufferName, Multiplier: multiplier,
	})
	t.invalidate()
}

// removeAt drops any existing binding for keycode (a rebind replaces, it
// doesn't stack — matching the original's "one entry per keycode"
// invariant enforced by bindtokey's pre-scan).
func (t *Table) removeAt(keycode uint32) {
	for i, e := range t.entries {
		if e.KeyCode == keycode {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return
		}
	}
}

// Unbind removes the binding at keycode, if any.
func (t *Table) Unbind(keycode uint32) {
	t.removeAt(keycode)
	t.invalidate()
}

// UnbindFunc removes every key bound to funcName (spec.md §4.6 prefix
// rebind rule, and user-facing `unbind-function`-style commands).
func (t *Table) UnbindFunc(funcName string) {
	out := t.entries[:0]
	for _, e := range t.entries {
		if e.Type == TypeFunction && e.FuncName == funcName {
			continue
		}
		out = append(out, e)
	}
	t.entries = out
	t.invalidate()
}

// Len reports how many bindings are in the table.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns the table's raw entries for diagnostics (e.g. a
// buffer-to-key dump command); callers must not mutate the result.
func (t *Table) Entries() []Entry { return t.entries }

func (e Entry) String() string {
	switch e.Type {
	case TypeProcedure:
		return fmt.Sprintf("%#x -> procedure %q", e.KeyCode, e.ProcBuffer)
	default:
		return fmt.Sprintf("%#x -> %s", e.KeyCode, e.FuncName)
	}
}
