package exec

import (
	"fmt"
	"strings"

	"github.com/original-birdman/nuemacs-sub000/internal/text"
)

type directive int

const (
	dNone directive = iota
	dIf
	dWhile
	dBreak
	dElse
	dEndif
	dGoto
	dReturn
	dEndwhile
	dForce
	dFinish
	dEndm
)

// directiveNames mirrors original_source/code/exec.c's `dname[]` table;
// order doesn't matter here since none of these words is a prefix of
// another.
var directiveNames = []struct {
	name string
	dir  directive
}{
	{"if", dIf}, {"while", dWhile}, {"break", dBreak}, {"else", dElse},
	{"endif", dEndif}, {"goto", dGoto}, {"return", dReturn},
	{"endwhile", dEndwhile}, {"force", dForce}, {"finish", dFinish},
	{"endm", dEndm},
}

func matchDirective(afterBang string) (dir directive, rest string, ok bool) {
	for _, e := range directiveNames {
		if strings.HasPrefix(afterBang, e.name) {
			return e.dir, afterBang[len(e.name):], true
		}
	}
	return dNone, afterBang, false
}

// Execute is `dobuf`: it runs every line of buf as a command or directive
// (spec.md §4.7). Grounded on original_source/code/exec.c's `dobuf`.
func (e *Executor) Execute(buf *text.Buffer) (bool, error) {
	if buf.ExecDepth >= text.MaxExecDepth {
		return false, fmt.Errorf("%%Maximum recursion level, %d, exceeded!", text.MaxExecDepth)
	}

	origView := buf.Mode&text.ModeView != 0
	buf.Mode |= text.ModeView
	buf.ExecDepth++
	defer func() {
		buf.ExecDepth--
		if !origView {
			buf.Mode &^= text.ModeView
		}
	}()

	whlist, err := linkWhileBlocks(buf)
	if err != nil {
		return false, err
	}

	savedLevel := e.execLevel
	e.execLevel = 0
	defer func() { e.execLevel = savedLevel }()

	returnStat := true

	lp := buf.First()
	for !buf.IsHeader(lp) {
		raw := string(buf.Line(lp).Bytes())
		eline := strings.TrimLeft(raw, " \t")
		if eline == "" || eline[0] == ';' {
			lp = buf.Next(lp)
			continue
		}

		var (
			dir   directive
			body  string
			isDir bool
		)
		if eline[0] == '!' {
			dir, body, isDir = matchDirective(eline[1:])
			if !isDir {
				return false, fmt.Errorf("%%Unknown Directive")
			}
			if dir == dEndm {
				if e.store != nil {
					if err := e.finishStore(); err != nil {
						return false, err
					}
				}
				lp = buf.Next(lp)
				continue
			}
		}

		if e.store != nil {
			e.storeLine(eline)
			lp = buf.Next(lp)
			continue
		}

		if eline[0] == '*' {
			// label definition: inert during normal execution, only a
			// !goto target
			lp = buf.Next(lp)
			continue
		}

		force := false
		if isDir {
			body = strings.TrimLeft(body, " \t")
			next, handled, err := e.runDirective(dir, body, buf, lp, whlist, &returnStat, &force)
			if err != nil {
				if r, ok := err.(errReturn); ok {
					return r.status, nil
				}
				return false, err
			}
			if handled {
				lp = next
				continue
			}
			eline = body
		}

		if e.execLevel != 0 {
			lp = buf.Next(lp)
			continue
		}

		status, err := e.Docmd(eline)
		if err != nil {
			return false, err
		}
		if force {
			e.Vars.ForceStatus = status
			status = true
		}
		if !status {
			// The original also repositions every window showing buf to the
			// failing line; that needs a *text.WindowList, which dobuf's
			// caller owns and this package does not, so it's left to the
			// caller to do after Execute returns false.
			return false, nil
		}
		lp = buf.Next(lp)
	}

	return returnStat, nil
}

// runDirective executes one `!directive`. next is the line to resume at
// when handled is true (the directive fully disposed of this line);
// handled is false only for `!force`, which falls through into executing
// the remainder of its own line as a forced command.
func (e *Executor) runDirective(dir directive, body string, buf *text.Buffer, lp text.LineID, whlist []*whileBlock, returnStat *bool, force *bool) (next text.LineID, handled bool, err error) {
	switch dir {
	case dIf:
		if e.execLevel == 0 {
			tok, _ := NextToken(body)
			if !stol(e.Eval(tok)) {
				e.execLevel++
			}
		} else {
			e.execLevel++
		}
		return buf.Next(lp), true, nil

	case dWhile:
		if e.execLevel == 0 {
			tok, _ := NextToken(body)
			if stol(e.Eval(tok)) {
				return buf.Next(lp), true, nil
			}
		}
		fallthrough
	case dBreak:
		if dir == dBreak && e.execLevel != 0 {
			return buf.Next(lp), true, nil
		}
		wb := findBlockByBegin(whlist, lp)
		if wb == nil {
			return text.NoLine, true, fmt.Errorf("%%Internal While loop error")
		}
		// wb.end is the !endwhile line itself; resume on the line after it,
		// same as every other directive's implicit "advance one more line"
		// step (original_source/code/exec.c's "goto onward").
		return buf.Next(wb.end), true, nil

	case dElse:
		if e.execLevel == 1 {
			e.execLevel--
		} else if e.execLevel == 0 {
			e.execLevel++
		}
		return buf.Next(lp), true, nil

	case dEndif:
		if e.execLevel != 0 {
			e.execLevel--
		}
		return buf.Next(lp), true, nil

	case dGoto:
		if e.execLevel == 0 {
			label, _ := NextToken(body)
			target, ok := findLabel(buf, label)
			if !ok {
				return text.NoLine, true, fmt.Errorf("%%No such label")
			}
			// target is the label line itself; resume on the line after it.
			return buf.Next(target), true, nil
		}
		return buf.Next(lp), true, nil

	case dReturn:
		if e.execLevel == 0 {
			return text.NoLine, true, errReturn{*returnStat}
		}
		return buf.Next(lp), true, nil

	case dEndwhile:
		if e.execLevel != 0 {
			e.execLevel--
			return buf.Next(lp), true, nil
		}
		wb := findBlockByEnd(whlist, lp)
		if wb == nil {
			return text.NoLine, true, fmt.Errorf("%%Internal While loop error")
		}
		// Resume at the !while line itself to re-evaluate its condition.
		return wb.begin, true, nil

	case dForce:
		*force = true
		return text.NoLine, false, nil

	case dFinish:
		if e.execLevel == 0 {
			return text.NoLine, true, errReturn{false}
		}
		return buf.Next(lp), true, nil
	}
	return buf.Next(lp), true, nil
}

// errReturn carries a !return/!finish exit out of runDirective's switch so
// Execute can turn it back into a plain (bool, nil) result without a
// labeled-loop/goto translation of the original's `goto eexec`.
type errReturn struct{ status bool }

func (errReturn) Error() string { return "exec: directive-triggered return" }
