package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/original-birdman/nuemacs-sub000/internal/runes"
)

func newTestBuffer(t *testing.T) (*Buffer, *WindowList, *Window) {
	t.Helper()
	b, err := NewBuffer("test", TypeNormal)
	require.NoError(t, err)
	wl := NewWindowList()
	w := wl.New(b)
	return b, wl, w
}

func TestInsertThenDeleteRoundTrips(t *testing.T) {
	b, wl, w := newTestBuffer(t)
	dot := Pos{Line: b.First(), Off: 0}
	dot = b.InsertBytes(wl, dot, []byte("hello"))
	w.Dot = dot

	before := snapshotBuffer(b)

	after := b.InsertByteN(wl, w.Dot, 3, 'x')
	w.Dot = after
	n := b.Delete(wl, nil, Pos{Line: w.Dot.Line, Off: w.Dot.Off - 3}, 3, false)
	require.Equal(t, 3, n)
	w.Dot.Off -= 3

	assert.Equal(t, before, snapshotBuffer(b), "buffer must be byte-identical after insert+delete round trip")
}

func snapshotBuffer(b *Buffer) []string {
	var out []string
	for id := b.First(); !b.IsHeader(id); id = b.Next(id) {
		out = append(out, string(b.Line(id).Bytes()))
	}
	return out
}

func TestNewlineSplitsAndMergeRejoins(t *testing.T) {
	b, wl, w := newTestBuffer(t)
	dot := b.InsertBytes(wl, Pos{Line: b.First()}, []byte("abcdef"))
	w.Dot = dot

	splitAt := Pos{Line: b.First(), Off: 3}
	newPos := b.Newline(wl, splitAt)
	assert.Equal(t, []string{"abc", "def"}, snapshotBuffer(b))
	assert.Equal(t, 0, newPos.Off)

	// Deleting the newline (crossing the boundary) should merge the lines
	// back together.
	b.Delete(wl, nil, Pos{Line: b.First(), Off: 3}, 1, false)
	assert.Equal(t, []string{"abcdef"}, snapshotBuffer(b))
}

func TestDotMarkShiftOnInsertAndDelete(t *testing.T) {
	b, wl, w := newTestBuffer(t)
	w.Dot = b.InsertBytes(wl, Pos{Line: b.First()}, []byte("0123456789"))
	w.Mark = Pos{Line: b.First(), Off: 5}
	w.Dot = Pos{Line: b.First(), Off: 5}

	b.InsertByteN(wl, Pos{Line: b.First(), Off: 2}, 2, 'x')
	assert.Equal(t, 7, w.Mark.Off, "mark at/after insertion point shifts")

	b.Delete(wl, nil, Pos{Line: b.First(), Off: 0}, 2, false)
	assert.Equal(t, 5, w.Mark.Off, "mark shifts back after a preceding deletion")
}

func TestKillAndYank(t *testing.T) {
	b, wl, w := newTestBuffer(t)
	w.Dot = b.InsertBytes(wl, Pos{Line: b.First()}, []byte("hello world"))
	kr := NewKillRing()

	killPos := Pos{Line: b.First(), Off: 5}
	b.Kill(wl, kr, killPos, 6, false)
	assert.Equal(t, "hello", string(b.Line(b.First()).Bytes()))
	assert.Equal(t, " world", string(kr.Bytes()))

	end, n := b.Yank(wl, kr, Pos{Line: b.First(), Off: 0}, 0)
	assert.Equal(t, 6, n)
	assert.Equal(t, " worldhello", string(b.Line(b.First()).Bytes()))
	assert.Equal(t, 6, end.Off)
}

func TestYankReplaceRequiresLastWasYank(t *testing.T) {
	b, wl, w := newTestBuffer(t)
	w.Dot = b.InsertBytes(wl, Pos{Line: b.First()}, []byte("x"))
	kr := NewKillRing()
	kr.Prepend([]byte("A"))
	kr.Clear() // slot 0 -> slot 1 holds "A", slot 0 cleared
	kr.Prepend([]byte("B"))

	_, _, ok := b.YankReplace(wl, kr, Pos{Line: b.First(), Off: 1}, 1, 1)
	assert.False(t, ok, "yank-replace must fail when the last op wasn't a yank")

	end, n := b.Yank(wl, kr, Pos{Line: b.First(), Off: 1}, 0)
	assert.Equal(t, 1, n)
	assert.Equal(t, "xB", string(b.Line(b.First()).Bytes()))

	newEnd, newN, ok := b.YankReplace(wl, kr, Pos{Line: b.First(), Off: end.Off - n}, n, 1)
	require.True(t, ok)
	assert.Equal(t, 1, newN)
	assert.Equal(t, "xA", string(b.Line(b.First()).Bytes()))
	assert.Equal(t, 2, newEnd.Off)
}

func TestRecaseRegionUpper(t *testing.T) {
	b, wl, _ := newTestBuffer(t)
	b.InsertBytes(wl, Pos{Line: b.First()}, []byte("abc"))
	r := b.MakeRegion(Pos{Line: b.First(), Off: 0}, Pos{Line: b.First(), Off: 3})
	b.RecaseRegion(wl, runes.Upper, r)
	assert.Equal(t, "ABC", string(b.Line(b.First()).Bytes()))
	assert.True(t, b.Modified())
}

func TestNarrowWiden(t *testing.T) {
	b, wl, _ := newTestBuffer(t)
	b.InsertBytes(wl, Pos{Line: b.First()}, []byte("a\nb\nc"))
	lines := snapshotBuffer(b)
	require.Equal(t, []string{"a", "b", "c"}, lines)

	first := b.First()
	second := b.Next(first)
	require.NoError(t, b.Narrow(second, second))
	assert.Equal(t, []string{"b"}, snapshotBuffer(b))

	require.NoError(t, b.Widen())
	assert.Equal(t, []string{"a", "b", "c"}, snapshotBuffer(b))
}

func TestBufferNameTooLong(t *testing.T) {
	long := make([]byte, MaxNameLen+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err := NewBuffer(string(long), TypeNormal)
	require.Error(t, err)
}

func TestRegistryUniqueNames(t *testing.T) {
	r := NewRegistry()
	_, err := r.Create("scratch", TypeNormal)
	require.NoError(t, err)
	_, err = r.Create("scratch", TypeNormal)
	require.Error(t, err)
}
