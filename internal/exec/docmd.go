package exec

import (
	"fmt"
	"strconv"
)

// Docmd translates one command line — `{# arg} <command-name>
// {<argument string(s)>}` — into a function lookup and call (spec.md
// §4.7). Grounded on original_source/code/exec.c's `docmd`.
//
// While execLevel is nonzero (inside a conditionally-skipped `!if`/`!while`
// branch) Docmd is a no-op returning true, matching the original's "if we
// are scanning and not executing ... go back" early return.
func (e *Executor) Docmd(line string) (bool, error) {
	if e.execLevel != 0 {
		return true, nil
	}

	tok, rest := NextToken(line)
	if tok == "" {
		return true, nil
	}

	f := false
	n := 1
	if !isCommandWord(tok) {
		f = true
		n, _ = strconv.Atoi(e.Eval(tok))
		tok, rest = NextToken(rest)
		if tok == "" {
			return false, fmt.Errorf("%%No command given")
		}
	}

	if tok == "reexecute" {
		return e.reexecute()
	}

	entry, ok := e.Funcs.Lookup(tok)
	if !ok {
		return false, fmt.Errorf("%%No such Function: %s", tok)
	}

	savedCursor := e.cursor
	e.cursor = rest
	status, err := entry.Handler(f, n)
	e.cursor = savedCursor
	if err != nil {
		return false, err
	}
	if !e.inReexec {
		e.prevLine = line
	}
	return status, nil
}

// reexecute replays the previous command line (spec.md §4.7: "the
// reexecute command re-runs the previous command line; recursion is
// permitted and the 'previous line' slot is saved across the recursive
// call"). inReexec suppresses updating prevLine while a reexecute is live,
// so a chain of repeated reexecutes keeps replaying the original command
// rather than collapsing to "reexecute" itself — the net effect of the
// original's this_line_seen/prev_line_seen swap-at-exit dance, reached here
// without needing to juggle C string ownership.
func (e *Executor) reexecute() (bool, error) {
	if e.prevLine == "" {
		return false, fmt.Errorf("%%Nothing to reexecute")
	}
	wasReexec := e.inReexec
	e.inReexec = true
	status, err := e.Docmd(e.prevLine)
	e.inReexec = wasReexec
	return status, err
}

// ExecuteLine runs a single command line from outside any buffer — the
// core of `execute-command-line` (spec.md §4.7's `execcmd`). The
// conditional-skip level is reset first since a stand-alone command line
// is never inside a `!if`.
func (e *Executor) ExecuteLine(line string) (bool, error) {
	e.execLevel = 0
	return e.Docmd(line)
}
