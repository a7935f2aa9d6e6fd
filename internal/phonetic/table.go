// Package phonetic implements per-buffer compiled translation tables and
// on-the-fly grapheme-trigger substitution (spec.md §4.8). original_source
// has no filtered ptt.c (the phonetic-table compiler/matcher isn't among the
// files _INDEX.md lists), so the rule syntax and the caseset re-casing rules
// below are grounded directly on spec.md's prose rather than on ported C;
// see DESIGN.md for the Open Question decisions this entailed.
package phonetic

// CaseMode is a rule's caseset state, set by whichever caseset-* directive
// most recently preceded it in the table's source buffer (spec.md §4.8).
// Off/On additionally control whether the rule's from-string is matched
// case-insensitively: any mode other than Off folds the match.
type CaseMode int

const (
	CaseOff CaseMode = iota
	CaseOn
	CaseCapInit1
	CaseCapInitAll
	CaseLowInit1
	CaseLowInitAll
)

// Rule is one compiled translation rule: an optional word-start anchor, a
// from-string to match immediately before the triggering codepoint, and a
// to-string to substitute in its place.
type Rule struct {
	Anchored bool
	From     []byte // already lower-cased when FoldCase is set
	FoldCase bool
	To       []byte
	Final    rune
	Case     CaseMode

	next *Rule
}

// Table is a compiled phonetic translation table: rules linked in singly-
// linked chains keyed by the final base codepoint of their from-string, so
// OnInsert only has to walk the chain for the codepoint just typed (spec.md
// §4.8).
type Table struct {
	heads map[rune]*Rule

	// DisplayCode is the codepoint most recently named by a display-code
	// directive: the glyph a table designates to represent that its
	// Phonetic mode is active (e.g. shown in a window's mode line).
	DisplayCode rune
}

func newTable() *Table {
	return &Table{heads: map[rune]*Rule{}}
}

func (t *Table) add(r *Rule) {
	r.next = t.heads[r.Final]
	t.heads[r.Final] = r
}

// Rules returns the head of the rule chain keyed by final codepoint fin, or
// nil if no rule ends in it.
func (t *Table) Rules(fin rune) *Rule {
	return t.heads[fin]
}
