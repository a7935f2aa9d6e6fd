package search

import (
	"github.com/original-birdman/nuemacs-sub000/internal/text"
)

// IncrementalSearch implements search-as-you-type against a buffer,
// supplemented from original_source/code/isearch.c per SPEC_FULL.md §4.12:
// each keystroke appends to (or, on Backspace, trims) the query, and the
// whole query re-searches from the point the search started. A query with
// any uppercase letter is exact; an all-lowercase query folds case, the
// "smart case" rule isearch.c applies via its cmode flag.
type IncrementalSearch struct {
	buf     *text.Buffer
	win     *ScanWindow
	origin  text.Pos
	forward bool
	query   []rune
	matched text.Pos // start of the current match; the previous match is kept if Failed
	matchEnd text.Pos
	Failed  bool
}

// NewIncrementalSearch starts a session from "at" in the given direction.
func NewIncrementalSearch(buf *text.Buffer, at text.Pos, forward bool) *IncrementalSearch {
	return &IncrementalSearch{
		buf:      buf,
		win:      NewScanWindow(buf),
		origin:   at,
		forward:  forward,
		matched:  at,
		matchEnd: at,
	}
}

func hasUpper(rs []rune) bool {
	for _, r := range rs {
		if r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}

// AddRune appends r to the query and re-searches, returning the new
// match bounds (equal to the previous match, with Failed set, if nothing
// matches).
func (s *IncrementalSearch) AddRune(r rune) (text.Pos, text.Pos) {
	s.query = append(s.query, r)
	s.rescan()
	return s.matched, s.matchEnd
}

// Backspace removes the last query rune and re-searches.
func (s *IncrementalSearch) Backspace() (text.Pos, text.Pos) {
	if len(s.query) > 0 {
		s.query = s.query[:len(s.query)-1]
	}
	s.rescan()
	return s.matched, s.matchEnd
}

func (s *IncrementalSearch) rescan() {
	if len(s.query) == 0 {
		s.matched, s.matchEnd, s.Failed = s.origin, s.origin, false
		return
	}
	exact := hasUpper(s.query)
	pat, err := Compile(string(s.query), false, exact, false)
	if err != nil {
		s.Failed = true
		return
	}
	eng := NewEngine(pat)
	var m Match
	var start, end text.Pos
	var ok bool
	if s.forward {
		m, start, end, ok = eng.Forward(s.win, s.origin)
	} else {
		m, start, end, ok = eng.Backward(s.win, s.origin)
	}
	_ = m
	if !ok {
		s.Failed = true
		return
	}
	s.Failed = false
	s.matched, s.matchEnd = start, end
}

// Cancel reports the position the search should restore dot to if the user
// aborts.
func (s *IncrementalSearch) Cancel() text.Pos { return s.origin }

// Accept reports the final match bounds at the moment the search ends
// (Enter, or any non-search command).
func (s *IncrementalSearch) Accept() (text.Pos, text.Pos) { return s.matched, s.matchEnd }

// ToggleDirection flips search direction and re-scans from the original
// starting point, matching isearch.c's reverse-search keystroke.
func (s *IncrementalSearch) ToggleDirection() (text.Pos, text.Pos) {
	s.forward = !s.forward
	s.rescan()
	return s.matched, s.matchEnd
}
