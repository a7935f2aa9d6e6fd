package search

import "github.com/original-birdman/nuemacs-sub000/internal/runes"

// GroupMatch records where a captured group matched within Input (spec.md
// §3 "match group table": "per-group matched line+offset+length"; this
// package flattens a multi-line scan window into one byte slice, so the
// line/offset pair collapses to a single Start/End byte range).
type GroupMatch struct {
	Valid      bool
	Start, End int
}

// Match is the result of a successful scan: group 0 is the whole match.
type Match struct {
	Start, End int
	Groups     []GroupMatch
}

type matcher struct {
	input       []byte
	equivalence bool
	groups      []GroupMatch
	steps       int
}

const stepBudget = 2_000_000 // backtracking guard against pathological patterns

type cont func(pos int) bool

// FindFrom runs the step/NFA scanner forward starting at "from", returning
// the first match at or after that position (spec.md §4.5 "step scanner":
// "amatch-equivalent with group open/close, alternation ... greedy/minimal
// repetition, anchors as positions not bytes").
func (p *Pattern) FindFrom(input []byte, from int) (Match, bool) {
	for start := from; start <= len(input); start++ {
		m := &matcher{input: input, equivalence: p.Equivalence, groups: make([]GroupMatch, p.NumGroups)}
		var end int
		ok := m.matchUnit(p.Root, start, func(np int) bool {
			end = np
			return true
		})
		if ok {
			m.groups[0] = GroupMatch{Valid: true, Start: start, End: end}
			return Match{Start: start, End: end, Groups: m.groups}, true
		}
		if len(input) > 0 && start < len(input) {
			// advance by one grapheme, not one byte, so literal/class probes
			// always see a clean grapheme boundary (spec.md's grapheme-aware
			// edit primitives apply to search alignment too).
			g := runes.BuildGrapheme(input, start, len(input), false)
			if g.Bytes > 1 {
				start += g.Bytes - 1
			}
		}
	}
	return Match{}, false
}

// FindBackwardFrom runs the scanner backward: it tries each start position
// from "from" down to 0 and returns the first match found, i.e. the one with
// the greatest start at or before "from". The match's end is not limited to
// "from".
func (p *Pattern) FindBackwardFrom(input []byte, from int) (Match, bool) {
	for start := from; start >= 0; start-- {
		m := &matcher{input: input, equivalence: p.Equivalence, groups: make([]GroupMatch, p.NumGroups)}
		var end int
		ok := m.matchUnit(p.Root, start, func(np int) bool {
			end = np
			return true
		})
		if ok {
			m.groups[0] = GroupMatch{Valid: true, Start: start, End: end}
			return Match{Start: start, End: end, Groups: m.groups}, true
		}
	}
	return Match{}, false
}

func (m *matcher) matchSeq(nodes []*Node, pos int, k cont) bool {
	m.steps++
	if m.steps > stepBudget {
		return false
	}
	if len(nodes) == 0 {
		return k(pos)
	}
	n, rest := nodes[0], nodes[1:]
	switch n.Kind {
	case NBOL:
		if pos == 0 || m.input[pos-1] == '\n' {
			return m.matchSeq(rest, pos, k)
		}
		return false
	case NEOL:
		if pos == len(m.input) || m.input[pos] == '\n' {
			return m.matchSeq(rest, pos, k)
		}
		return false
	}
	if n.Rep.Has {
		return m.repeat(n, rest, pos, 0, k)
	}
	return m.matchUnit(n, pos, func(np int) bool { return m.matchSeq(rest, np, k) })
}

// matchUnit matches node n exactly once at pos, then calls k with the
// resulting position. For NGroup it tries each alternative in turn,
// restoring captured-group state on backtrack so a later alternative (or an
// earlier repetition) is never polluted by a failed attempt.
func (m *matcher) matchUnit(n *Node, pos int, k cont) bool {
	switch n.Kind {
	case NLiteralByte:
		if pos >= len(m.input) {
			return false
		}
		if !byteEq(m.input[pos], n.Byte, n.CaseFold) {
			return false
		}
		return k(pos + 1)
	case NUnicodeLiteral:
		cp, size := runes.Decode(m.input, pos, len(m.input))
		if pos >= len(m.input) || size == 0 {
			return false
		}
		if !m.codepointEq(cp, n.CP) {
			return false
		}
		return k(pos + size)
	case NAny:
		if pos >= len(m.input) {
			return false
		}
		g := runes.BuildGrapheme(m.input, pos, len(m.input), false)
		if g.Bytes == 0 {
			return false
		}
		return k(pos + g.Bytes)
	case NClass:
		if pos >= len(m.input) {
			return false
		}
		g := runes.BuildGrapheme(m.input, pos, len(m.input), false)
		if g.Bytes == 0 {
			return false
		}
		if !n.Class.Matches(g.Base, m.equivalence) {
			return false
		}
		return k(pos + g.Bytes)
	case NBackref:
		gm := m.groups[n.GroupNum]
		if !gm.Valid {
			return false
		}
		text := m.input[gm.Start:gm.End]
		if pos+len(text) > len(m.input) {
			return false
		}
		if !bytesEqFold(m.input[pos:pos+len(text)], text, false) {
			return false
		}
		return k(pos + len(text))
	case NGroup:
		saved := m.groups[n.GroupNum]
		for _, alt := range n.Alts {
			ok := m.matchSeq(alt, pos, func(np int) bool {
				old := m.groups[n.GroupNum]
				m.groups[n.GroupNum] = GroupMatch{Valid: true, Start: pos, End: np}
				if k(np) {
					return true
				}
				m.groups[n.GroupNum] = old
				return false
			})
			if ok {
				return true
			}
		}
		m.groups[n.GroupNum] = saved
		return false
	}
	return false
}

// repeat matches node n between Rep.Low and Rep.High times (High == -1 is
// unbounded) before continuing with rest, honoring greedy vs. minimal order
// (spec.md §4.5: "the critical minimal-match rule ... try shortest match
// first" from original_source/code/search.c's amatch lo_lim/hi_lim loop).
func (m *matcher) repeat(n *Node, rest []*Node, pos, count int, k cont) bool {
	m.steps++
	if m.steps > stepBudget {
		return false
	}
	canMore := n.Rep.High < 0 || count < n.Rep.High
	canStop := count >= n.Rep.Low

	consumeMore := func() bool {
		if !canMore {
			return false
		}
		return m.matchUnit(n, pos, func(np int) bool {
			if np == pos {
				return false // refuse zero-width progress to avoid infinite loops
			}
			return m.repeat(n, rest, np, count+1, k)
		})
	}
	stopHere := func() bool {
		if !canStop {
			return false
		}
		return m.matchSeq(rest, pos, k)
	}

	if n.Rep.Greedy {
		if consumeMore() {
			return true
		}
		return stopHere()
	}
	if stopHere() {
		return true
	}
	return consumeMore()
}

func byteEq(a, b byte, fold bool) bool {
	if a == b {
		return true
	}
	if !fold {
		return false
	}
	return toLowerASCII(a) == toLowerASCII(b)
}

func toLowerASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func bytesEqFold(a, b []byte, fold bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !byteEq(a[i], b[i], fold) {
			return false
		}
	}
	return true
}

func (m *matcher) codepointEq(a, b rune) bool {
	if a == b {
		return true
	}
	if m.equivalence {
		return runes.Equivalent([]byte(string(a)), []byte(string(b)))
	}
	return false
}
