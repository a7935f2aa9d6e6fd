// Package complete implements the mini-buffer completion dispatch of
// spec.md §4.9: given an input string and a context, it enumerates every
// matching candidate, extends the input by their longest common prefix,
// and formats whatever remains ambiguous into a choices line.
package complete

// Context selects which candidate collection a completion request searches.
type Context int

const (
	ContextNone Context = iota
	ContextFile
	ContextBuffer
	ContextProcedure
	ContextPhoneticTable
	ContextFunctionName
	ContextVariable
	ContextSearchRing
)

// Source enumerates every completion candidate beginning with prefix, in
// the context's canonical order (directory order for files, sorted-index
// order for function names and variables, buffer-list order otherwise).
// Each context's Source wraps whatever collection already owns its data
// (bind.FuncTable, text.Registry, exec.Vars, search.Ring, the filesystem) —
// spec.md §4.9's "first/next iterator" per context, expressed as a single
// Go method instead of a two-call C iterator protocol.
type Source interface {
	Candidates(prefix string) []string
}

// Result is the outcome of one completion request.
type Result struct {
	// Extended is input lengthened by the longest prefix shared by every
	// entry in Matches. If there are no matches, Extended == input.
	Extended string
	// Matches holds every candidate beginning with input, in the source's
	// order. Empty means no completion was possible.
	Matches []string
	// Unique is true when Matches holds exactly one candidate equal to
	// Extended — the input names a completion outright.
	Unique bool
}

// Complete runs one completion request: src.Candidates(input) supplies the
// matching set, and the longest common prefix among them becomes Extended
// (spec.md §4.9: "Common-prefix accumulation yields the completion
// result").
func Complete(src Source, input string) Result {
	matches := src.Candidates(input)
	if len(matches) == 0 {
		return Result{Extended: input}
	}
	prefix := commonPrefix(matches)
	return Result{
		Extended: prefix,
		Matches:  matches,
		Unique:   len(matches) == 1 && matches[0] == prefix,
	}
}

// commonPrefix returns the longest string every entry of ss begins with.
// ss must be non-empty.
func commonPrefix(ss []string) string {
	prefix := ss[0]
	for _, s := range ss[1:] {
		prefix = sharedPrefix(prefix, s)
		if prefix == "" {
			break
		}
	}
	return prefix
}

func sharedPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
