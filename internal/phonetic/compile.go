package phonetic

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/original-birdman/nuemacs-sub000/internal/runes"
	"github.com/original-birdman/nuemacs-sub000/internal/text"
)

// Compile builds a Table from a procedure-like buffer (spec.md §4.8), one
// rule per line. A line is a comment (ignored) if blank or starting with
// ';'; one of the six caseset-* directives, which changes the caseset
// applied to every rule compiled after it; a "display-code <grapheme>"
// directive, which sets Table.DisplayCode; or a rule: an optional leading
// '^' anchor, a from-string token, then one or more to-string tokens
// concatenated (with no separator) to build the replacement text. Each
// to-token is either a "0xNN" literal byte, a "U+XXXX" literal codepoint, or
// a bare token appended verbatim.
func Compile(buf *text.Buffer) (*Table, error) {
	t := newTable()
	mode := CaseOff

	for id := buf.First(); !buf.IsHeader(id); id = buf.Next(id) {
		line := strings.TrimSpace(string(buf.Line(id).Bytes()))
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}

		if m, ok := directiveCaseMode(line); ok {
			mode = m
			continue
		}
		if strings.HasPrefix(line, "display-code ") {
			arg := strings.TrimSpace(line[len("display-code "):])
			piece, err := decodeToToken(arg)
			if err != nil {
				return nil, err
			}
			cp, n := runes.Decode([]byte(piece), 0, len(piece))
			if n == 0 {
				return nil, fmt.Errorf("phonetic: malformed display-code directive %q", line)
			}
			t.DisplayCode = cp
			continue
		}

		r, err := compileRule(line, mode)
		if err != nil {
			return nil, err
		}
		t.add(r)
	}
	return t, nil
}

func directiveCaseMode(line string) (CaseMode, bool) {
	switch line {
	case "caseset-off":
		return CaseOff, true
	case "caseset-on":
		return CaseOn, true
	case "caseset-capinit1":
		return CaseCapInit1, true
	case "caseset-capinitall":
		return CaseCapInitAll, true
	case "caseset-lowinit1":
		return CaseLowInit1, true
	case "caseset-lowinitall":
		return CaseLowInitAll, true
	}
	return CaseOff, false
}

func compileRule(line string, mode CaseMode) (*Rule, error) {
	anchored := strings.HasPrefix(line, "^")
	if anchored {
		line = line[1:]
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, fmt.Errorf("phonetic: malformed rule %q", line)
	}

	from := fields[0]
	fold := mode != CaseOff
	if fold {
		from = strings.ToLower(from)
	}
	fromBytes := []byte(from)

	var to strings.Builder
	for _, tok := range fields[1:] {
		piece, err := decodeToToken(tok)
		if err != nil {
			return nil, err
		}
		to.WriteString(piece)
	}

	if len(fromBytes) == 0 {
		return nil, fmt.Errorf("phonetic: empty from-string in rule %q", line)
	}
	final, n := runes.Decode(fromBytes, runes.PrevOffset(fromBytes, len(fromBytes), false), len(fromBytes))
	if n == 0 {
		return nil, fmt.Errorf("phonetic: empty from-string in rule %q", line)
	}

	return &Rule{
		Anchored: anchored,
		From:     fromBytes,
		FoldCase: fold,
		To:       []byte(to.String()),
		Final:    final,
		Case:     mode,
	}, nil
}

func decodeToToken(tok string) (string, error) {
	switch {
	case strings.HasPrefix(tok, "0x"), strings.HasPrefix(tok, "0X"):
		v, err := strconv.ParseUint(tok[2:], 16, 8)
		if err != nil {
			return "", fmt.Errorf("phonetic: bad literal byte %q", tok)
		}
		return string([]byte{byte(v)}), nil
	case strings.HasPrefix(tok, "U+"), strings.HasPrefix(tok, "u+"):
		v, err := strconv.ParseUint(tok[2:], 16, 32)
		if err != nil {
			return "", fmt.Errorf("phonetic: bad literal codepoint %q", tok)
		}
		return string(runes.Encode(rune(v))), nil
	default:
		return tok, nil
	}
}
