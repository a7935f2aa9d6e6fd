package exec

import (
	"fmt"
	"strings"

	"github.com/original-birdman/nuemacs-sub000/internal/text"
)

type whileKind int

const (
	wbWhile whileKind = iota
	wbBreak
)

// whileBlock links a `!while` or `!break` statement to the `!endwhile` that
// closes it, so `dobuf`'s main pass can jump directly to (or past) it
// without re-scanning the buffer. Grounded on
// original_source/code/exec.c's `struct while_block`.
type whileBlock struct {
	kind       whileKind
	begin, end text.LineID
}

// linkWhileBlocks makes dobuf's pre-pass over buf: every `!while` and
// `!break` pushes a pending block, and every `!endwhile` pops blocks off
// the pending stack — all the `!break`s since the innermost unmatched
// `!while`, plus that `!while` itself — onto the resolved list. Grounded on
// original_source/code/exec.c's scanning loop that builds `whlist` via
// `scanner`.
func linkWhileBlocks(buf *text.Buffer) ([]*whileBlock, error) {
	var scanner []*whileBlock
	var resolved []*whileBlock

	for lp := buf.First(); !buf.IsHeader(lp); lp = buf.Next(lp) {
		line := strings.TrimLeft(string(buf.Line(lp).Bytes()), " \t")
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "!wh"):
			scanner = append(scanner, &whileBlock{kind: wbWhile, begin: lp})
		case strings.HasPrefix(line, "!br"):
			if len(scanner) == 0 {
				return nil, fmt.Errorf("%%!BREAK outside of any !WHILE loop")
			}
			scanner = append(scanner, &whileBlock{kind: wbBreak, begin: lp})
		case strings.HasPrefix(line, "!endw"):
			if len(scanner) == 0 {
				return nil, fmt.Errorf("%%!ENDWHILE with no preceding !WHILE")
			}
			for {
				top := scanner[len(scanner)-1]
				scanner = scanner[:len(scanner)-1]
				top.end = lp
				resolved = append(resolved, top)
				if top.kind == wbWhile {
					break
				}
			}
		}
	}
	if len(scanner) != 0 {
		return nil, fmt.Errorf("%%!WHILE with no matching !ENDWHILE")
	}
	return resolved, nil
}

func findBlockByBegin(blocks []*whileBlock, lp text.LineID) *whileBlock {
	for _, b := range blocks {
		if b.begin == lp {
			return b
		}
	}
	return nil
}

func findBlockByEnd(blocks []*whileBlock, lp text.LineID) *whileBlock {
	for _, b := range blocks {
		if b.kind == wbWhile && b.end == lp {
			return b
		}
	}
	return nil
}

// findLabel locates a `*label` line (unindented, matching `!goto`'s target
// syntax exactly as original_source/code/exec.c's DGOTO case does — no
// leading-whitespace trimming for label lines).
func findLabel(buf *text.Buffer, label string) (text.LineID, bool) {
	for lp := buf.First(); !buf.IsHeader(lp); lp = buf.Next(lp) {
		raw := buf.Line(lp).Bytes()
		if len(raw) > 0 && raw[0] == '*' && strings.HasPrefix(string(raw[1:]), label) {
			return lp, true
		}
	}
	return text.NoLine, false
}
