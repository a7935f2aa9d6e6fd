package phonetic

import (
	"fmt"

	"github.com/original-birdman/nuemacs-sub000/internal/text"
)

// Compiler adapts Compile to internal/exec's StoreCompleter interface, so a
// phonetic-table buffer just closed by "!endm" gets compiled and attached
// to itself without internal/exec needing to import this package.
type Compiler struct{}

func (Compiler) CompileStore(buf *text.Buffer) error {
	t, err := Compile(buf)
	if err != nil {
		return err
	}
	buf.Phonetic = t
	return nil
}

// Attach compiles the named phonetic-table buffer (if it hasn't already
// been compiled) and binds it as target's translation table, the effect of
// "set-phonetic-table" (spec.md §3: buffer carries "a pointer to a compiled
// phonetic table").
func Attach(reg *text.Registry, target *text.Buffer, tableName string) error {
	src, ok := reg.Find(tableName)
	if !ok {
		return fmt.Errorf("phonetic: no such buffer %q", tableName)
	}
	if src.Type != text.TypePhoneticTable {
		return fmt.Errorf("phonetic: %q is not a phonetic-table buffer", tableName)
	}
	if _, ok := src.Phonetic.(*Table); !ok {
		t, err := Compile(src)
		if err != nil {
			return err
		}
		src.Phonetic = t
	}
	target.Phonetic = src.Phonetic
	return nil
}

// Detach clears target's translation table, the effect of invoking
// "set-phonetic-table" with no argument.
func Detach(target *text.Buffer) {
	target.Phonetic = nil
}
