package exec

import (
	"fmt"

	"github.com/original-birdman/nuemacs-sub000/internal/bind"
	"github.com/original-birdman/nuemacs-sub000/internal/text"
)

// StoreCompleter lets a macro-recording store hand its finished buffer to a
// compiler when `!endm` closes it — used for phonetic translation tables
// (spec.md §4.8: "the compiler produces a singly-linked list of rules").
// internal/phonetic implements this; exec stays decoupled from it the same
// way internal/search stays decoupled from exec itself, to avoid an import
// cycle (phonetic's rule compiler has no business driving the interpreter).
type StoreCompleter interface {
	CompileStore(buf *text.Buffer) error
}

// Executor runs command lines (Docmd) and procedure buffers (Execute),
// carrying the conditional-skip level, variable namespace, reexecute
// history and active macro-recording state across calls (spec.md §4.7).
// Grounded on original_source/code/exec.c's module-level `execlevel`,
// `execstr`, `prev_line_seen`, `mstore`/`bstore` globals, gathered into one
// struct instead of package-level state so multiple editor instances don't
// share them (a Go-idiomatic change the original's single-process design
// never had to make).
type Executor struct {
	Funcs    *bind.FuncTable
	Registry *text.Registry
	Vars     *Vars

	PttCompiler StoreCompleter

	execLevel int
	prevLine  string
	inReexec  bool
	cursor    string

	store      *text.Buffer
	storingPtt bool
}

// New builds an Executor dispatching through funcs and creating macro
// buffers in reg.
func New(funcs *bind.FuncTable, reg *text.Registry) *Executor {
	return &Executor{Funcs: funcs, Registry: reg, Vars: NewVars()}
}

// NextArg pulls the next whitespace/quote-delimited token off the current
// command line's unconsumed tail and evaluates it, for handlers that need
// more than the leading repeat-count/flag pair (spec.md §4.7's `macarg`/
// `nextarg`). ok is false once the tail is exhausted.
func (e *Executor) NextArg() (arg string, ok bool) {
	if e.cursor == "" {
		return "", false
	}
	tok, rest := NextToken(e.cursor)
	e.cursor = rest
	return e.Eval(tok), true
}

// BeginStoreMacro starts recording into one of the 40 numbered macro
// buffers (spec.md §4.7's macro recording; grounded on
// original_source/code/exec.c's `storemac`). It is shaped as a
// bind.HandlerFunc so it can be bound directly to a key or function name.
func (e *Executor) BeginStoreMacro(f bool, n int) (bool, error) {
	if !f {
		return false, fmt.Errorf("No macro specified")
	}
	if n < 1 || n > 40 {
		return false, fmt.Errorf("Macro number out of range")
	}
	name := fmt.Sprintf("/Macro %02d", n)
	buf, ok := e.Registry.Find(name)
	if !ok {
		var err error
		buf, err = e.Registry.Create(name, text.TypeProcedure)
		if err != nil {
			return false, fmt.Errorf("Cannot create macro")
		}
	}
	e.beginStore(buf, false)
	return true, nil
}

// BeginStoreBuffer starts recording into an arbitrary named procedure (or
// phonetic-table) buffer, the general form behind `store-procedure` and
// `set-phonetic-table`'s recording mode.
func (e *Executor) BeginStoreBuffer(name string, typ text.BufferType, isPtt bool) (*text.Buffer, error) {
	buf, ok := e.Registry.Find(name)
	if !ok {
		var err error
		buf, err = e.Registry.Create(name, typ)
		if err != nil {
			return nil, err
		}
	}
	e.beginStore(buf, isPtt)
	return buf, nil
}

func (e *Executor) beginStore(buf *text.Buffer, isPtt bool) {
	buf.Clear()
	e.store = buf
	e.storingPtt = isPtt
}

// storeLine appends line, verbatim, as a new last line of the buffer being
// recorded (spec.md §4.7: "allocating a line of the exact required size
// and splicing it before the target buffer's header" — appending after the
// last real line achieves the same "just before the header" placement).
func (e *Executor) storeLine(line string) {
	id := e.store.AppendNewlineAfterLast()
	e.store.InsertBytes(nil, text.Pos{Line: id, Off: 0}, []byte(line))
}

// finishStore closes out the active recording on `!endm`, invoking
// PttCompiler if the buffer being recorded was a phonetic table.
func (e *Executor) finishStore() error {
	buf := e.store
	wasPtt := e.storingPtt
	e.store = nil
	e.storingPtt = false
	if wasPtt && e.PttCompiler != nil {
		return e.PttCompiler.CompileStore(buf)
	}
	return nil
}
