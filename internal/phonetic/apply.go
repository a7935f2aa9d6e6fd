package phonetic

import (
	"strings"
	"unicode"

	"github.com/original-birdman/nuemacs-sub000/internal/runes"
	"github.com/original-birdman/nuemacs-sub000/internal/text"
)

// OnInsert is called immediately after codepoint cp has been inserted into
// buf ending at dot, while buf's Phonetic mode is on (spec.md §4.8). It
// walks every rule keyed by cp and applies the first whose from-string
// matches the bytes immediately preceding dot, returning the (possibly
// moved) dot position and whether a substitution happened. Rules compiled
// under a case-folding caseset key their final codepoint in lower case, so
// an upper-case keystroke is also tried against that lower-cased chain.
func (t *Table) OnInsert(wl *text.WindowList, buf *text.Buffer, dot text.Pos, cp rune) (text.Pos, bool) {
	if newDot, ok := applyChain(t.heads[cp], wl, buf, dot); ok {
		return newDot, true
	}
	if lower := unicode.ToLower(cp); lower != cp {
		if newDot, ok := applyChain(t.heads[lower], wl, buf, dot); ok {
			return newDot, true
		}
	}
	return dot, false
}

func applyChain(r *Rule, wl *text.WindowList, buf *text.Buffer, dot text.Pos) (text.Pos, bool) {
	for ; r != nil; r = r.next {
		if newDot, ok := r.tryApply(wl, buf, dot); ok {
			return newDot, true
		}
	}
	return dot, false
}

func (r *Rule) tryApply(wl *text.WindowList, buf *text.Buffer, dot text.Pos) (text.Pos, bool) {
	line := buf.Line(dot.Line)
	lineBytes := line.Bytes()

	spanLen := len(r.From)
	if dot.Off < spanLen {
		return dot, false
	}
	start := dot.Off - spanLen
	span := lineBytes[start:dot.Off]

	if r.FoldCase {
		if !strings.EqualFold(string(span), string(r.From)) {
			return dot, false
		}
	} else if string(span) != string(r.From) {
		return dot, false
	}

	if r.Anchored && start > 0 {
		prevStart := runes.PrevOffset(lineBytes, start, true)
		pcp, n := runes.Decode(lineBytes, prevStart, start)
		if n > 0 && runes.IsWordLetter(pcp) {
			return dot, false
		}
	}

	matchUpper := false
	if cp0, n := runes.Decode(span, 0, len(span)); n > 0 {
		matchUpper = unicode.IsUpper(cp0)
	}
	to := recase(r.Case, r.To, matchUpper)

	at := text.Pos{Line: dot.Line, Off: start}
	buf.Delete(wl, nil, at, spanLen, false)
	return buf.InsertBytes(wl, at, to), true
}

// recase applies a rule's caseset mode to its to-string once a match is
// found, using the matched from-span's leading-letter case for the
// input-dependent modes (spec.md §4.8: "re-cased per the rule's caseset
// mode"). The "...1" modes follow the matched input's case; the "...All"
// modes force the casing unconditionally — an Open Question resolution
// recorded in DESIGN.md since no ported source names the exact rule.
func recase(mode CaseMode, to []byte, matchUpper bool) []byte {
	switch mode {
	case CaseOn:
		if matchUpper {
			out, _ := runes.Recase(runes.Upper, to)
			return out
		}
		out, _ := runes.Recase(runes.Lower, to)
		return out
	case CaseCapInit1:
		if matchUpper {
			return recaseFirst(runes.Title, to)
		}
	case CaseCapInitAll:
		return recaseFirst(runes.Title, to)
	case CaseLowInit1:
		if !matchUpper {
			return recaseFirst(runes.Lower, to)
		}
	case CaseLowInitAll:
		return recaseFirst(runes.Lower, to)
	}
	return to
}

func recaseFirst(mode runes.CaseMode, b []byte) []byte {
	_, n := runes.Decode(b, 0, len(b))
	if n == 0 {
		return b
	}
	head, _ := runes.Recase(mode, b[:n])
	out := make([]byte, 0, len(head)+len(b)-n)
	out = append(out, head...)
	out = append(out, b[n:]...)
	return out
}
