package bind

import "sort"

// FuncOption is a bitmask of per-function dispatch properties (spec.md §3
// "function-name table: {name, handler, option bits}"). Grounded on
// original_source/code/names.c's NONAM/NAME table flag bits
// (CTRLN/VIEWOK/etc. rolled into one mask per entry).
type FuncOption uint8

const (
	// OptSkipInMacro: the function is a no-op when invoked from inside a
	// !while/procedure replay (original's NONAM-class commands that only
	// make sense interactively).
	OptSkipInMacro FuncOption = 1 << iota
	// OptNotInMinibuffer: refused while the minibuffer prompt is active.
	OptNotInMinibuffer
	// OptNotInteractive: callable only from the command interpreter, never
	// bound to a key (e.g. internal bookkeeping functions).
	OptNotInteractive
	// OptSearchOKInMacro: explicitly exempted from OptSkipInMacro for the
	// search-family commands, which remain meaningful during macro replay.
	OptSearchOKInMacro
	// OptSinglePass: the function's effect is idempotent across repeated
	// invocation within the same keystroke, so a repeat count invokes the
	// handler once instead of n times (e.g. newline-and-indent style
	// commands per spec.md's edge cases around repeat counts).
	OptSinglePass
)

// FuncEntry is one row of the static function-name table.
type FuncEntry struct {
	Name    string
	Handler HandlerFunc
	Options FuncOption
}

// FuncTable is the function-name table plus its two sorted indices (by
// name, for command-language and completion lookup; by handler identity,
// for binding-table display). Built once and never mutated afterward,
// matching the original's static `names[]` array.
type FuncTable struct {
	entries []FuncEntry

	byName    []int
	byHandler []int
}

// NewFuncTable builds a FuncTable from entries, sorting both indices via
// sort.Slice (SPEC_FULL.md §4.12: idxsorter.c's qsort-with-context
// reimplemented idiomatically).
func NewFuncTable(entries []FuncEntry) *FuncTable {
	ft := &FuncTable{entries: entries}
	ft.byName = make([]int, len(entries))
	ft.byHandler = make([]int, len(entries))
	for i := range entries {
		ft.byName[i] = i
		ft.byHandler[i] = i
	}
	sort.Slice(ft.byName, func(a, b int) bool {
		return entries[ft.byName[a]].Name < entries[ft.byName[b]].Name
	})
	sort.Slice(ft.byHandler, func(a, b int) bool {
		na, nb := entries[ft.byHandler[a]], entries[ft.byHandler[b]]
		if na.Name != nb.Name {
			return funcIdentity(na) < funcIdentity(nb)
		}
		return na.Name < nb.Name
	})
	return ft
}

// funcIdentity stands in for the original's function-pointer comparison
// key: since Go func values are neither comparable nor orderable, handler
// identity for sorting purposes is the function's own declared name — two
// table entries binding the same underlying handler always share it.
func funcIdentity(e FuncEntry) string { return e.Name }

// Lookup finds a function by exact name via binary search over byName
// (spec.md §4.9's FunctionName completion context and §4.7's command-word
// resolution both route through this).
func (ft *FuncTable) Lookup(name string) (*FuncEntry, bool) {
	idx := ft.byName
	lo, hi := 0, len(idx)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		n := ft.entries[idx[mid]].Name
		switch {
		case n < name:
			lo = mid + 1
		case n > name:
			hi = mid - 1
		default:
			return &ft.entries[idx[mid]], true
		}
	}
	return nil, false
}

// Names returns every function name in sorted order, for completion's
// common-prefix accumulation over the FunctionName context.
func (ft *FuncTable) Names() []string {
	out := make([]string, len(ft.byName))
	for i, ei := range ft.byName {
		out[i] = ft.entries[ei].Name
	}
	return out
}

// MatchPrefix returns every function name beginning with prefix, in sorted
// order, via binary search to the first candidate followed by a linear
// scan to the end of the matching run.
func (ft *FuncTable) MatchPrefix(prefix string) []string {
	idx := ft.byName
	lo, hi := 0, len(idx)
	for lo < hi {
		mid := (lo + hi) / 2
		if ft.entries[idx[mid]].Name < prefix {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	var out []string
	for ; lo < len(idx); lo++ {
		n := ft.entries[idx[lo]].Name
		if len(n) < len(prefix) || n[:len(prefix)] != prefix {
			break
		}
		out = append(out, n)
	}
	return out
}

// Len reports the number of functions in the table.
func (ft *FuncTable) Len() int { return len(ft.entries) }
