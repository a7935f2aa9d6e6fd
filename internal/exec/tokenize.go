// Package exec implements the command-language interpreter of spec.md
// §4.7: a tokenizer, the directive-driven `dobuf` buffer executor, single
// command-line dispatch (`docmd`), and `reexecute` history.
//
// Grounded on original_source/code/exec.c (`token`, `docmd`, `dobuf`,
// `macarg`/`nextarg`, `storemac`, `execcmd`, `namedcmd`).
package exec

import "strings"

// NextToken chops one whitespace-separated token off src, honoring `"…"`
// quoting and the `~r ~n ~t ~b ~f` character escapes (any other `~x`
// escapes to the literal byte x). It returns the token and the unconsumed
// remainder of src. Grounded line-for-line on original_source/code/exec.c's
// `token`, with the original's NSTRING truncation dropped since Go strings
// have no fixed capacity to overflow.
func NextToken(src string) (tok string, rest string) {
	i := 0
	for i < len(src) && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	src = src[i:]

	var b strings.Builder
	quoted := false
	j := 0
loop:
	for j < len(src) {
		c := src[j]
		if c == '~' {
			j++
			if j >= len(src) {
				break loop
			}
			e := src[j]
			j++
			switch e {
			case 'r':
				b.WriteByte(13)
			case 'n':
				b.WriteByte(10)
			case 't':
				b.WriteByte(9)
			case 'b':
				b.WriteByte(8)
			case 'f':
				b.WriteByte(12)
			default:
				b.WriteByte(e)
			}
			continue
		}
		if quoted {
			if c == '"' {
				break loop
			}
		} else if c == ' ' || c == '\t' {
			break loop
		}
		if c == '"' {
			quoted = true
			j++
			continue
		}
		b.WriteByte(c)
		j++
	}
	if j < len(src) {
		j++ // skip the terminating space/tab/close-quote
	}
	return b.String(), src[j:]
}

// isCommandWord reports whether tok parses as a command name rather than a
// leading numeric-argument expression: it is a command word unless it looks
// like a bare integer or a variable/function reference that still needs
// evaluating (spec.md §4.7: "an argument whose first token is not a
// recognized command name is the repeat-count prefix").
func isCommandWord(tok string) bool {
	if tok == "" {
		return false
	}
	switch tok[0] {
	case '$', '%', '&':
		return false
	}
	if tok[0] == '-' || (tok[0] >= '0' && tok[0] <= '9') {
		for _, c := range tok[1:] {
			if c < '0' || c > '9' {
				return true
			}
		}
		return false
	}
	return true
}
