package complete

import (
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"strings"

	"github.com/original-birdman/nuemacs-sub000/internal/bind"
	"github.com/original-birdman/nuemacs-sub000/internal/exec"
	"github.com/original-birdman/nuemacs-sub000/internal/search"
	"github.com/original-birdman/nuemacs-sub000/internal/text"
)

// FileSource enumerates filesystem entries for the File completion context
// (spec.md §4.9: "directory iteration for files (with ~user expansion via
// password database and ~/ expansion to $HOME)").
type FileSource struct{}

// Candidates expands a leading "~" or "~user" in prefix, then lists the
// entries of prefix's directory that begin with its final path component.
func (FileSource) Candidates(prefix string) []string {
	expanded := ExpandTilde(prefix)
	dir, base := filepath.Split(expanded)
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, base) {
			continue
		}
		full := filepath.Join(dir, name)
		if e.IsDir() {
			full += string(filepath.Separator)
		}
		out = append(out, full)
	}
	sort.Strings(out)
	return out
}

// ExpandTilde expands a leading "~/" to $HOME and a leading "~user" (via the
// system password database) to that user's home directory, leaving p
// unchanged if neither form applies or the lookup fails.
func ExpandTilde(p string) string {
	if !strings.HasPrefix(p, "~") {
		return p
	}
	rest := p[1:]
	if rest == "" || rest[0] == '/' {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return home + rest
	}
	slash := strings.IndexByte(rest, '/')
	name, tail := rest, ""
	if slash >= 0 {
		name, tail = rest[:slash], rest[slash:]
	}
	u, err := user.Lookup(name)
	if err != nil {
		return p
	}
	return u.HomeDir + tail
}

// BufferSource enumerates the buffer registry for the Buffer, Procedure and
// PhoneticTable completion contexts (spec.md §4.9: "linear scan of the
// buffer list (filtered by type and by the '/' or '[' leading byte
// convention)").
type BufferSource struct {
	Registry *text.Registry
	// Type restricts candidates to one buffer type. The zero value,
	// text.TypeNormal, is also used unrestricted when AnyType is set.
	Type    text.BufferType
	AnyType bool
	// IncludeSystem allows buffers whose name starts with '/' or '[' —
	// internal buffers such as macros and directory listings — to appear.
	// Plain buffer-name completion excludes them by default; Procedure and
	// PhoneticTable completion set this since those contexts exist
	// specifically to name that kind of buffer.
	IncludeSystem bool
}

func (s BufferSource) Candidates(prefix string) []string {
	var out []string
	for _, b := range s.Registry.List() {
		if !s.AnyType && b.Type != s.Type {
			continue
		}
		if !s.IncludeSystem && len(b.Name) > 0 && (b.Name[0] == '/' || b.Name[0] == '[') {
			continue
		}
		if strings.HasPrefix(b.Name, prefix) {
			out = append(out, b.Name)
		}
	}
	return out
}

// FunctionSource enumerates the function-name table for the FunctionName
// completion context, delegating to its sorted-index prefix search (spec.md
// §4.9: "sorted-index walk over the function-name table").
type FunctionSource struct {
	Funcs *bind.FuncTable
}

func (s FunctionSource) Candidates(prefix string) []string {
	return s.Funcs.MatchPrefix(prefix)
}

// VariableSource enumerates variable names for the Variable completion
// context: a leading '$' walks environment variables then global
// interpreter variables, a leading '%' walks user variables, matching
// spec.md §4.9's "sorted-index walk over env-var then user-var tables for
// $ / % prefixes".
type VariableSource struct {
	Vars *exec.Vars
}

func (s VariableSource) Candidates(prefix string) []string {
	if prefix == "" {
		return nil
	}
	sigil := prefix[0]
	if sigil != '$' && sigil != '%' {
		return nil
	}
	rest := prefix[1:]

	var names []string
	if sigil == '$' {
		for _, kv := range os.Environ() {
			if name, _, ok := strings.Cut(kv, "="); ok {
				names = append(names, "$"+name)
			}
		}
	}
	for _, n := range s.Vars.Names() {
		if n[0] == byte(sigil) {
			names = append(names, n)
		}
	}

	var out []string
	seen := map[string]bool{}
	for _, n := range names {
		if !strings.HasPrefix(n[1:], rest) || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// SearchRingSource enumerates recorded search patterns for the SearchRing
// completion context (spec.md §4.9).
type SearchRingSource struct {
	Ring *search.Ring
}

func (s SearchRingSource) Candidates(prefix string) []string {
	var out []string
	for _, p := range s.Ring.Patterns() {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	return out
}

// NoneSource is the completion context for plain text with no completable
// vocabulary: it never offers a candidate, so Complete always returns the
// input unchanged.
type NoneSource struct{}

func (NoneSource) Candidates(string) []string { return nil }
