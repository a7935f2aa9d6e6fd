package search

import (
	"fmt"
	"strconv"
	"strings"
)

// Interpolator resolves the variable and function references a replacement
// template can contain (spec.md §4.5: "${name} variable interpolation ...
// ${&...} function calls via re-tokenization"). The command interpreter
// (internal/exec) implements this; search stays decoupled from it so the
// two packages don't form an import cycle.
type Interpolator interface {
	Variable(name string) (string, bool)
	Call(name string, args []string) (string, error)
}

// ReplToken is one piece of a compiled replacement template.
type ReplToken struct {
	Literal  string
	GroupRef int // -1 unless this token is a ${n} backreference
	VarRef   string
	Counter  *Counter
	Call     *FuncCall
}

// Counter is a ${@:start=,incr=,fmt=} auto-incrementing token (spec.md
// §4.5), grounded on original_source/code/search.c's getrepl counter
// handling.
type Counter struct {
	Start  int
	Incr   int
	Format string
}

// FuncCall is a ${&name arg...} embedded function call.
type FuncCall struct {
	Name string
	Args []string
}

// Replacement is a compiled replacement template.
type Replacement struct {
	Tokens []ReplToken
}

// CounterState carries a Counter's running value across the repeated
// expansions of one query-replace or global-replace pass.
type CounterState struct {
	next        int
	initialized bool
}

// CompileReplacement parses a replacement string once up front so repeated
// expansion (one per match, in a global replace) does no further parsing.
func CompileReplacement(s string) (*Replacement, error) {
	r := &Replacement{}
	i := 0
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			r.Tokens = append(r.Tokens, ReplToken{Literal: lit.String(), GroupRef: -1})
			lit.Reset()
		}
	}
	for i < len(s) {
		if s[i] == '$' && i+1 < len(s) && s[i+1] == '{' {
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				return nil, fmt.Errorf("search: unterminated ${ in replacement")
			}
			body := s[i+2 : i+2+end]
			flush()
			tok, err := parseReplToken(body)
			if err != nil {
				return nil, err
			}
			r.Tokens = append(r.Tokens, tok)
			i += 2 + end + 1
			continue
		}
		lit.WriteByte(s[i])
		i++
	}
	flush()
	return r, nil
}

func parseReplToken(body string) (ReplToken, error) {
	switch {
	case body == "":
		return ReplToken{GroupRef: -1}, nil
	case body[0] >= '0' && body[0] <= '9':
		n, err := strconv.Atoi(body)
		if err != nil {
			return ReplToken{}, fmt.Errorf("search: bad group reference ${%s}", body)
		}
		return ReplToken{GroupRef: n}, nil
	case strings.HasPrefix(body, "@:"):
		c := &Counter{Incr: 1, Format: "%d"}
		for _, field := range strings.Split(body[2:], ",") {
			kv := strings.SplitN(field, "=", 2)
			if len(kv) != 2 {
				continue
			}
			switch kv[0] {
			case "start":
				c.Start, _ = strconv.Atoi(kv[1])
			case "incr":
				c.Incr, _ = strconv.Atoi(kv[1])
			case "fmt":
				c.Format = kv[1]
			}
		}
		return ReplToken{GroupRef: -1, Counter: c}, nil
	case strings.HasPrefix(body, "&"):
		fields := strings.Fields(body[1:])
		if len(fields) == 0 {
			return ReplToken{}, fmt.Errorf("search: empty ${&...} call")
		}
		return ReplToken{GroupRef: -1, Call: &FuncCall{Name: fields[0], Args: fields[1:]}}, nil
	default:
		return ReplToken{GroupRef: -1, VarRef: body}, nil
	}
}

// Expand renders r against a completed match: groups[0] is the whole match,
// input is the scan window it matched in, interp resolves variables and
// function calls (may be nil if the template has none), and state (if
// non-nil) carries a running ${@:...} counter across calls.
func (r *Replacement) Expand(groups []GroupMatch, input []byte, interp Interpolator, state *CounterState) (string, error) {
	var out strings.Builder
	for _, tok := range r.Tokens {
		switch {
		case tok.Literal != "":
			out.WriteString(tok.Literal)
		case tok.Counter != nil:
			if state == nil {
				state = &CounterState{}
			}
			if !state.initialized {
				state.next = tok.Counter.Start
				state.initialized = true
			}
			out.WriteString(fmt.Sprintf(tok.Counter.Format, state.next))
			state.next += tok.Counter.Incr
		case tok.Call != nil:
			if interp == nil {
				return "", fmt.Errorf("search: ${&%s ...} with no interpolator", tok.Call.Name)
			}
			v, err := interp.Call(tok.Call.Name, tok.Call.Args)
			if err != nil {
				return "", err
			}
			out.WriteString(v)
		case tok.VarRef != "":
			if interp == nil {
				return "", fmt.Errorf("search: ${%s} with no interpolator", tok.VarRef)
			}
			v, ok := interp.Variable(tok.VarRef)
			if !ok {
				return "", fmt.Errorf("search: unknown variable %q", tok.VarRef)
			}
			out.WriteString(v)
		case tok.GroupRef >= 0:
			if tok.GroupRef >= len(groups) || !groups[tok.GroupRef].Valid {
				return "", fmt.Errorf("search: group ${%d} did not participate in the match", tok.GroupRef)
			}
			g := groups[tok.GroupRef]
			out.Write(input[g.Start:g.End])
		}
	}
	return out.String(), nil
}
