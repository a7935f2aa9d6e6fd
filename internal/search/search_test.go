package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/original-birdman/nuemacs-sub000/internal/text"
)

func newBufferWithText(t *testing.T, s string) (*text.Buffer, *text.WindowList, *text.Window) {
	t.Helper()
	b, err := text.NewBuffer("scratch", text.TypeNormal)
	require.NoError(t, err)
	wl := text.NewWindowList()
	w := wl.New(b)
	b.InsertBytes(wl, text.Pos{Line: b.First()}, []byte(s))
	return b, wl, w
}

func TestCompilePureLiteral(t *testing.T) {
	p, err := Compile("hello", true, true, false)
	require.NoError(t, err)
	assert.True(t, p.PureLiteral)
	assert.Equal(t, "hello", string(p.Literal))
}

func TestCompileWithMetacharsIsNotPureLiteral(t *testing.T) {
	p, err := Compile("he.lo", true, true, false)
	require.NoError(t, err)
	assert.False(t, p.PureLiteral)
}

func TestFindFromLiteralCaseFold(t *testing.T) {
	p, err := Compile("WORLD", true, false, false)
	require.NoError(t, err)
	m, ok := p.FindFrom([]byte("hello world\n"), 0)
	require.True(t, ok)
	assert.Equal(t, 6, m.Start)
	assert.Equal(t, 11, m.End)
}

func TestFindFromGreedyStar(t *testing.T) {
	p, err := Compile("a.*b", true, true, false)
	require.NoError(t, err)
	m, ok := p.FindFrom([]byte("xaXXbYYbz"), 0)
	require.True(t, ok)
	assert.Equal(t, 1, m.Start)
	assert.Equal(t, 8, m.End, "greedy .* must consume through the last b")
}

func TestFindFromMinimalStar(t *testing.T) {
	p, err := Compile("a.*?b", true, true, false)
	require.NoError(t, err)
	m, ok := p.FindFrom([]byte("xaXXbYYbz"), 0)
	require.True(t, ok)
	assert.Equal(t, 1, m.Start)
	assert.Equal(t, 5, m.End, "minimal .*? must stop at the first b")
}

func TestFindFromGroupsAndAlternation(t *testing.T) {
	p, err := Compile("(foo|bar)([0-9]+)", true, true, false)
	require.NoError(t, err)
	m, ok := p.FindFrom([]byte("xx bar42 yy"), 0)
	require.True(t, ok)
	require.Len(t, m.Groups, 3)
	assert.Equal(t, "bar", string([]byte("xx bar42 yy")[m.Groups[1].Start:m.Groups[1].End]))
	assert.Equal(t, "42", string([]byte("xx bar42 yy")[m.Groups[2].Start:m.Groups[2].End]))
}

func TestFindFromBackreference(t *testing.T) {
	p, err := Compile(`(ab)\1`, true, true, false)
	require.NoError(t, err)
	_, ok := p.FindFrom([]byte("xxababyy"), 0)
	assert.True(t, ok)
	_, ok = p.FindFrom([]byte("xxabcdyy"), 0)
	assert.False(t, ok)
}

func TestAnchors(t *testing.T) {
	p, err := Compile("^abc$", true, true, false)
	require.NoError(t, err)
	m, ok := p.FindFrom([]byte("abc\nxyz\n"), 0)
	require.True(t, ok)
	assert.Equal(t, 0, m.Start)
	assert.Equal(t, 3, m.End)

	_, ok = p.FindFrom([]byte("xabc\n"), 0)
	assert.False(t, ok)
}

func TestEngineForwardOverBuffer(t *testing.T) {
	b, _, _ := newBufferWithText(t, "one\ntwo\nthree")
	win := NewScanWindow(b)
	p, err := Compile("two", true, true, false)
	require.NoError(t, err)
	eng := NewEngine(p)
	_, start, end, ok := eng.Forward(win, text.Pos{Line: b.First(), Off: 0})
	require.True(t, ok)
	assert.Equal(t, b.Next(b.First()), start.Line)
	assert.Equal(t, 0, start.Off)
	assert.Equal(t, 3, end.Off)
}

func TestCompileReplacementGroupRef(t *testing.T) {
	repl, err := CompileReplacement("<${1}>")
	require.NoError(t, err)
	groups := []GroupMatch{{Valid: true, Start: 0, End: 3}, {Valid: true, Start: 0, End: 3}}
	out, err := repl.Expand(groups, []byte("foo"), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "<foo>", out)
}

func TestCompileReplacementCounter(t *testing.T) {
	repl, err := CompileReplacement("n${@:start=1,incr=2,fmt=%03d}")
	require.NoError(t, err)
	state := &CounterState{}
	out1, err := repl.Expand(nil, nil, nil, state)
	require.NoError(t, err)
	out2, err := repl.Expand(nil, nil, nil, state)
	require.NoError(t, err)
	assert.Equal(t, "n001", out1)
	assert.Equal(t, "n003", out2)
}

type stubInterp struct{ vars map[string]string }

func (s stubInterp) Variable(name string) (string, bool) { v, ok := s.vars[name]; return v, ok }
func (s stubInterp) Call(name string, args []string) (string, error) {
	return name + ":" + args[0], nil
}

func TestCompileReplacementVariableAndCall(t *testing.T) {
	repl, err := CompileReplacement("${name}-${&upper x}")
	require.NoError(t, err)
	out, err := repl.Expand(nil, nil, stubInterp{vars: map[string]string{"name": "buf1"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "buf1-upper:x", out)
}

func TestQueryReplaceAll(t *testing.T) {
	b, wl, _ := newBufferWithText(t, "cat cat cat")
	pat, err := Compile("cat", true, true, false)
	require.NoError(t, err)
	repl, err := CompileReplacement("dog")
	require.NoError(t, err)
	n := GlobalReplace(wl, b, pat, repl, nil, text.Pos{Line: b.First(), Off: 0})
	assert.Equal(t, 3, n)
	assert.Equal(t, "dog dog dog", string(b.Line(b.First()).Bytes()))
}

func TestQueryReplaceAsksAndSkips(t *testing.T) {
	b, wl, _ := newBufferWithText(t, "cat cat")
	pat, err := Compile("cat", true, true, false)
	require.NoError(t, err)
	repl, err := CompileReplacement("dog")
	require.NoError(t, err)
	calls := 0
	n, _ := QueryReplace(wl, b, nil, pat, repl, nil, text.Pos{Line: b.First(), Off: 0}, func(_, _ text.Pos) ReplaceDecision {
		calls++
		if calls == 1 {
			return ReplaceSkip
		}
		return ReplaceYes
	})
	assert.Equal(t, 1, n)
	assert.Equal(t, "cat dog", string(b.Line(b.First()).Bytes()))
}

func TestIncrementalSearchTypeAndBackspace(t *testing.T) {
	b, _, _ := newBufferWithText(t, "hello world")
	is := NewIncrementalSearch(b, text.Pos{Line: b.First(), Off: 0}, true)
	for _, r := range "worl" {
		is.AddRune(r)
	}
	start, end := is.Accept()
	assert.False(t, is.Failed)
	assert.Equal(t, 6, start.Off)
	assert.Equal(t, 10, end.Off)

	is.Backspace()
	is.Backspace()
	start, end = is.Accept()
	assert.False(t, is.Failed)
	assert.Equal(t, 6, start.Off)
	assert.Equal(t, 8, end.Off)
}

func TestIncrementalSearchFails(t *testing.T) {
	b, _, _ := newBufferWithText(t, "hello world")
	is := NewIncrementalSearch(b, text.Pos{Line: b.First(), Off: 0}, true)
	for _, r := range "zzz" {
		is.AddRune(r)
	}
	assert.True(t, is.Failed)
}

func TestRingHistory(t *testing.T) {
	r := NewRing()
	r.PushPattern("foo")
	r.PushPattern("bar")
	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, "bar", last)
	prev, ok := r.Pattern(1)
	require.True(t, ok)
	assert.Equal(t, "foo", prev)
}

func TestFastScannerForwardAndBackward(t *testing.T) {
	fs := newFastScanner([]byte("lo"), false)
	data := []byte("hello world")
	idx := fs.findForward(data, 0, func(int) bool { return true })
	assert.Equal(t, 3, idx)
	idx = fs.findBackward(data, len(data), func(int) bool { return true })
	assert.Equal(t, 3, idx)
}
