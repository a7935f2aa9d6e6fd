package search

import "github.com/original-birdman/nuemacs-sub000/internal/text"

// ReplaceDecision is what a query-replace prompt callback returns for one
// candidate match (spec.md §4.5 replacement engine: "qreplace").
type ReplaceDecision int

const (
	ReplaceSkip ReplaceDecision = iota
	ReplaceYes
	ReplaceAll
	ReplaceQuit
)

// QueryReplace runs an interactive find-and-replace from "from" to the end
// of the buffer, calling ask for each match and applying repl's expansion
// when ask returns ReplaceYes or ReplaceAll (after which remaining matches
// are replaced without asking). It returns the number of replacements made
// and the final dot position.
func QueryReplace(wl *text.WindowList, buf *text.Buffer, kr *text.KillRing, pat *Pattern, repl *Replacement, interp Interpolator, from text.Pos, ask func(matchStart, matchEnd text.Pos) ReplaceDecision) (int, text.Pos) {
	eng := NewEngine(pat)
	state := &CounterState{}
	count := 0
	all := false
	pos := from
	for {
		win := NewScanWindow(buf)
		_, start, end, ok := eng.Forward(win, pos)
		if !ok {
			return count, pos
		}
		decision := ReplaceYes
		if !all {
			decision = ask(start, end)
		}
		switch decision {
		case ReplaceQuit:
			return count, start
		case ReplaceSkip:
			pos = stepOne(win, start)
			continue
		case ReplaceAll:
			all = true
			fallthrough
		case ReplaceYes:
			groups := matchGroupsFor(pat, win, start)
			text_, err := repl.Expand(groups, win.Data, interp, state)
			if err != nil {
				return count, start
			}
			matchByteLen := win.Offset(end) - win.Offset(start)
			buf.Delete(wl, nil, start, matchByteLen, false)
			newEnd := buf.InsertBytes(wl, start, []byte(text_))
			count++
			pos = newEnd
		}
	}
}

// matchGroupsFor recomputes the capture groups for the match at "start" by
// re-running the step scanner once more (the fast scanner path carries no
// groups, so replacement-with-group-refs always routes through the step
// scanner regardless of PureLiteral).
func matchGroupsFor(pat *Pattern, win *ScanWindow, start text.Pos) []GroupMatch {
	offset := win.Offset(start)
	m := &matcher{input: win.Data, equivalence: pat.Equivalence, groups: make([]GroupMatch, pat.NumGroups)}
	var end int
	ok := m.matchUnit(pat.Root, offset, func(np int) bool { end = np; return true })
	if !ok {
		return make([]GroupMatch, pat.NumGroups)
	}
	m.groups[0] = GroupMatch{Valid: true, Start: offset, End: end}
	return m.groups
}

func stepOne(win *ScanWindow, p text.Pos) text.Pos {
	offset := win.Offset(p)
	if offset+1 >= len(win.Data) {
		return win.Pos(len(win.Data))
	}
	return win.Pos(offset + 1)
}

// GlobalReplace replaces every match from "from" to the end of the buffer
// unconditionally, returning the count (spec.md §4.5 "sreplace").
func GlobalReplace(wl *text.WindowList, buf *text.Buffer, pat *Pattern, repl *Replacement, interp Interpolator, from text.Pos) int {
	n, _ := QueryReplace(wl, buf, nil, pat, repl, interp, from, func(text.Pos, text.Pos) ReplaceDecision {
		return ReplaceAll
	})
	return n
}
