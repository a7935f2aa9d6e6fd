package bind

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopHandler(f bool, n int) (bool, error) { return true, nil }

func TestBindAndGetBind(t *testing.T) {
	tb := New()
	tb.Bind(uint32('a'), "self-insert", noopHandler, 1)
	tb.Bind(uint32('b'), "self-insert", noopHandler, 1)

	e, ok := tb.GetBind(uint32('a'))
	require.True(t, ok)
	assert.Equal(t, "self-insert", e.FuncName)

	_, ok = tb.GetBind(uint32('z'))
	assert.False(t, ok)
}

func TestRebindReplacesNotStacks(t *testing.T) {
	tb := New()
	tb.Bind(uint32('a'), "forward-char", noopHandler, 1)
	tb.Bind(uint32('a'), "backward-char", noopHandler, 1)

	assert.Equal(t, 1, tb.Len())
	e, ok := tb.GetBind(uint32('a'))
	require.True(t, ok)
	assert.Equal(t, "backward-char", e.FuncName)
}

func TestBindingPrefixFunctionUnbindsOthersAndMovesKeycode(t *testing.T) {
	tb := New()
	// rebind meta-prefix onto a new raw key; any other key previously
	// bound to meta-prefix should be unbound, and PrefixKeycode(PrefixMeta)
	// should reflect the new key.
	tb.Bind(defaultMetaKey, "meta-prefix", noopHandler, 1)
	tb.Bind(uint32('q'), "meta-prefix", noopHandler, 1)

	_, ok := tb.GetBind(defaultMetaKey)
	assert.False(t, ok, "old meta-prefix binding must be removed")

	e, ok := tb.GetBind(uint32('q'))
	require.True(t, ok)
	assert.Equal(t, "meta-prefix", e.FuncName)
	assert.Equal(t, uint32('q'), tb.PrefixKeycode(PrefixMeta))
}

func TestUnbindFunc(t *testing.T) {
	tb := New()
	tb.Bind(uint32('a'), "forward-char", noopHandler, 1)
	tb.Bind(uint32('b'), "forward-char", noopHandler, 1)
	tb.Bind(uint32('c'), "backward-char", noopHandler, 1)

	tb.UnbindFunc("forward-char")

	_, ok := tb.GetBind(uint32('a'))
	assert.False(t, ok)
	_, ok = tb.GetBind(uint32('b'))
	assert.False(t, ok)
	_, ok = tb.GetBind(uint32('c'))
	assert.True(t, ok)
}

func TestGetByFuncAndNextByFunc(t *testing.T) {
	tb := New()
	tb.Bind(uint32('a'), "forward-char", noopHandler, 1)
	tb.Bind(uint32('b'), "forward-char", noopHandler, 1)
	tb.Bind(uint32('c'), "forward-char", noopHandler, 1)
	tb.Bind(uint32('d'), "backward-char", noopHandler, 1)

	first, ok := tb.GetByFunc("forward-char")
	require.True(t, ok)

	seen := map[uint32]bool{first.KeyCode: true}
	cur := first
	for {
		nxt, ok := tb.NextByFunc(cur)
		if !ok {
			break
		}
		seen[nxt.KeyCode] = true
		cur = nxt
	}
	assert.Len(t, seen, 3)
	assert.True(t, seen[uint32('a')] && seen[uint32('b')] && seen[uint32('c')])

	_, ok = tb.GetByFunc("no-such-function")
	assert.False(t, ok)
}

func TestPauseIndexRebuildBatches(t *testing.T) {
	tb := New()
	tb.PauseIndexRebuild()
	tb.Bind(uint32('a'), "forward-char", noopHandler, 1)
	tb.Bind(uint32('b'), "backward-char", noopHandler, 1)
	assert.False(t, tb.keyIndexValid)
	tb.ResumeIndexRebuild()

	_, ok := tb.GetBind(uint32('b'))
	assert.True(t, ok)
}

func TestFuncTableLookupAndPrefix(t *testing.T) {
	ft := NewFuncTable([]FuncEntry{
		{Name: "forward-char", Handler: noopHandler},
		{Name: "forward-word", Handler: noopHandler},
		{Name: "backward-char", Handler: noopHandler},
	})

	e, ok := ft.Lookup("forward-word")
	require.True(t, ok)
	assert.Equal(t, "forward-word", e.Name)

	_, ok = ft.Lookup("missing")
	assert.False(t, ok)

	matches := ft.MatchPrefix("forward-")
	assert.ElementsMatch(t, []string{"forward-char", "forward-word"}, matches)

	names := ft.Names()
	assert.Equal(t, []string{"backward-char", "forward-char", "forward-word"}, names)
}

// queueSource is a canned KeySource for Assembler tests: PeekTimeout
// reports whether the next queued byte exists at all, standing in for the
// real timeout-based disambiguation against a live terminal.
type queueSource struct {
	bytes []byte
	pos   int
}

func (q *queueSource) ReadByte() (byte, error) {
	if q.pos >= len(q.bytes) {
		return 0, errors.New("queueSource: exhausted")
	}
	b := q.bytes[q.pos]
	q.pos++
	return b, nil
}

func (q *queueSource) PeekTimeout() (byte, bool, error) {
	if q.pos >= len(q.bytes) {
		return 0, false, nil
	}
	return q.bytes[q.pos], true, nil
}

func TestAssemblerRawControlByte(t *testing.T) {
	tb := New()
	asm := NewAssembler(&queueSource{bytes: []byte{0x01}}, tb) // Ctrl-A
	kc, err := asm.Next()
	require.NoError(t, err)
	assert.Equal(t, Control|0x01, kc)
}

func TestAssemblerMetaPrefixComposesWithNextByte(t *testing.T) {
	tb := New()
	asm := NewAssembler(&queueSource{bytes: []byte{0x1b, 'x'}}, tb)
	kc, err := asm.Next()
	require.NoError(t, err)
	assert.Equal(t, Meta|uint32('x'), kc)
}

func TestAssemblerCtlXPrefixComposesWithNextByte(t *testing.T) {
	tb := New()
	asm := NewAssembler(&queueSource{bytes: []byte{0x18, 0x03}}, tb) // Ctrl-X Ctrl-C
	kc, err := asm.Next()
	require.NoError(t, err)
	assert.Equal(t, CtlX|(Control|0x03), kc)
}

func TestAssemblerCSIProducesSpecKeycode(t *testing.T) {
	tb := New()
	// ESC [ A  (up-arrow on most terminals)
	asm := NewAssembler(&queueSource{bytes: []byte{0x1b, '[', 'A'}}, tb)
	kc, err := asm.Next()
	require.NoError(t, err)
	assert.Equal(t, Spec|uint32('A'), kc)
}

func TestAssemblerBareEscWithoutFollowupErrors(t *testing.T) {
	tb := New()
	// ESC with no following byte at all still must compose Meta with
	// whatever comes next; here nothing follows so Next on the inner read
	// errors, which is the expected behavior for a truncated stream.
	asm := NewAssembler(&queueSource{bytes: []byte{0x1b}}, tb)
	_, err := asm.Next()
	assert.Error(t, err)
}
