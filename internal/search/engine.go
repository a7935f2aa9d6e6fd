package search

import "github.com/original-birdman/nuemacs-sub000/internal/text"

// CanHuntState is the tri-state "can we repeat the last search" flag spec.md §4.5
// names: a hunt (repeat) is only valid once a search has actually run, and
// becomes invalid again once the pattern changes.
type CanHuntState int

const (
	HuntUnknown CanHuntState = iota
	HuntReady
	HuntExhausted
)

// Engine pairs a compiled Pattern with the scanner-selection and overlap
// policy spec.md §4.5 describes. A fresh Engine is built per compiled
// pattern; the search ring ([Ring]) is what persists across searches for an
// editor session.
type Engine struct {
	Pattern *Pattern
	fast    *fastScanner // non-nil when Pattern.PureLiteral

	// Overlap controls whether a forward hunt may start inside the previous
	// match (spec.md §4.5 "overlap policy (SRCHOLAP)"); default true.
	Overlap bool
	Hunt    CanHuntState
}

// NewEngine selects a scanner for p (spec.md §4.5: "scanner-selection
// rule" — literal patterns get the Boyer-Moore-lite fast scanner, anything
// with metacharacter structure falls back to the step scanner).
func NewEngine(p *Pattern) *Engine {
	e := &Engine{Pattern: p, Overlap: true}
	if p.PureLiteral && len(p.Literal) > 0 {
		fold := !p.Exact
		e.fast = newFastScanner(p.Literal, fold)
	}
	return e
}

// Forward scans w starting at "from" (inclusive) and returns the match
// position translated back into buffer coordinates.
func (e *Engine) Forward(w *ScanWindow, from text.Pos) (Match, text.Pos, text.Pos, bool) {
	offset := w.Offset(from)
	if offset < 0 {
		return Match{}, text.Pos{}, text.Pos{}, false
	}
	if e.fast != nil {
		start := e.fast.findForward(w.Data, offset, w.GraphemeBoundary)
		if start < 0 {
			e.Hunt = HuntExhausted
			return Match{}, text.Pos{}, text.Pos{}, false
		}
		end := start + len(e.fast.lit)
		e.Hunt = HuntReady
		return Match{Start: start, End: end}, w.Pos(start), w.Pos(end), true
	}
	m, ok := e.Pattern.FindFrom(w.Data, offset)
	if !ok {
		e.Hunt = HuntExhausted
		return Match{}, text.Pos{}, text.Pos{}, false
	}
	e.Hunt = HuntReady
	return m, w.Pos(m.Start), w.Pos(m.End), true
}

// Backward scans w for the nearest match that starts before "from".
func (e *Engine) Backward(w *ScanWindow, from text.Pos) (Match, text.Pos, text.Pos, bool) {
	offset := w.Offset(from)
	if offset < 0 {
		return Match{}, text.Pos{}, text.Pos{}, false
	}
	if e.fast != nil {
		start := e.fast.findBackward(w.Data, offset-1, w.GraphemeBoundary)
		if start < 0 {
			e.Hunt = HuntExhausted
			return Match{}, text.Pos{}, text.Pos{}, false
		}
		end := start + len(e.fast.lit)
		e.Hunt = HuntReady
		return Match{Start: start, End: end}, w.Pos(start), w.Pos(end), true
	}
	m, ok := e.Pattern.FindBackwardFrom(w.Data, offset-1)
	if !ok {
		e.Hunt = HuntExhausted
		return Match{}, text.Pos{}, text.Pos{}, false
	}
	e.Hunt = HuntReady
	return m, w.Pos(m.Start), w.Pos(m.End), true
}

// NextForwardFrom computes the offset a following hunt should resume from
// given the previous match, honoring Overlap (spec.md §4.5 SRCHOLAP).
func (e *Engine) NextForwardFrom(prev Match) int {
	if e.Overlap {
		return prev.Start + 1
	}
	if prev.End > prev.Start {
		return prev.End
	}
	return prev.Start + 1
}
