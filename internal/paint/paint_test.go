package paint

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/original-birdman/nuemacs-sub000/internal/text"
)

func newWindow(t *testing.T, lines ...string) (*text.WindowList, *text.Window) {
	t.Helper()
	reg := text.NewRegistry()
	buf, err := reg.Create("scratch", text.TypeNormal)
	require.NoError(t, err)

	wl := text.NewWindowList()
	w := wl.New(buf)
	at := text.Pos{Line: buf.First()}
	for i, line := range lines {
		at = buf.InsertBytes(wl, at, []byte(line))
		if i < len(lines)-1 {
			at = buf.Newline(wl, at)
		}
	}
	w.Top = buf.First()
	w.Rows = len(lines) + 1
	w.Dot = text.Pos{Line: buf.First()}
	return wl, w
}

func TestPaintWritesVisibleLinesAndModeLine(t *testing.T) {
	wl, _ := newWindow(t, "hello", "world")

	var buf bytes.Buffer
	p := NewPainter(&buf, 80, 24)
	p.Paint(wl)

	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "world")
	assert.Contains(t, out, "scratch")
}

func TestPaintClearsScreenFirst(t *testing.T) {
	wl, _ := newWindow(t, "x")

	var buf bytes.Buffer
	p := NewPainter(&buf, 80, 24)
	p.Paint(wl)

	assert.True(t, strings.HasPrefix(buf.String(), "\x1b[2J"))
}

func TestColumnOfExpandsTabs(t *testing.T) {
	assert.Equal(t, 8, columnOf([]byte("\tx"), 1))
	assert.Equal(t, 3, columnOf([]byte("abc"), 3))
}

func TestPlaceCursorUsesDotColumn(t *testing.T) {
	wl, w := newWindow(t, "abcdef")
	w.Dot.Off = 3

	var buf bytes.Buffer
	p := NewPainter(&buf, 80, 24)
	p.Paint(wl)

	assert.Contains(t, buf.String(), "\x1b[1;4H")
}
