package complete

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/original-birdman/nuemacs-sub000/internal/bind"
	"github.com/original-birdman/nuemacs-sub000/internal/exec"
	"github.com/original-birdman/nuemacs-sub000/internal/search"
	"github.com/original-birdman/nuemacs-sub000/internal/text"
)

func TestCommonPrefixAccumulation(t *testing.T) {
	r := Complete(stubSource{"alpha", "alphabet", "alphanumeric"}, "al")
	assert.Equal(t, "alpha", r.Extended)
	assert.Len(t, r.Matches, 3)
	assert.False(t, r.Unique)
}

func TestCompleteUniqueMatch(t *testing.T) {
	r := Complete(stubSource{"alpha"}, "al")
	assert.Equal(t, "alpha", r.Extended)
	assert.True(t, r.Unique)
}

func TestCompleteNoMatches(t *testing.T) {
	r := Complete(stubSource{}, "zz")
	assert.Equal(t, "zz", r.Extended)
	assert.Empty(t, r.Matches)
}

type stubSource []string

func (s stubSource) Candidates(prefix string) []string {
	var out []string
	for _, c := range s {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			out = append(out, c)
		}
	}
	return out
}

func TestFileSourceListsMatchingEntries(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alpha.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alphabet.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "beta.txt"), nil, 0o644))

	var fs FileSource
	got := fs.Candidates(filepath.Join(dir, "alpha"))
	assert.Len(t, got, 2)
}

func TestExpandTildeHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, home+"/foo", ExpandTilde("~/foo"))
}

func TestBufferSourceFiltersByTypeAndSystemConvention(t *testing.T) {
	reg := text.NewRegistry()
	_, err := reg.Create("scratch", text.TypeNormal)
	require.NoError(t, err)
	_, err = reg.Create("scratch2", text.TypeNormal)
	require.NoError(t, err)
	_, err = reg.Create("/Macro 01", text.TypeProcedure)
	require.NoError(t, err)

	bs := BufferSource{Registry: reg, Type: text.TypeNormal}
	got := bs.Candidates("scratch")
	assert.ElementsMatch(t, []string{"scratch", "scratch2"}, got)

	ps := BufferSource{Registry: reg, Type: text.TypeProcedure, IncludeSystem: true}
	got = ps.Candidates("/Macro")
	assert.Equal(t, []string{"/Macro 01"}, got)
}

func TestFunctionSourceDelegatesToFuncTable(t *testing.T) {
	ft := bind.NewFuncTable([]bind.FuncEntry{
		{Name: "forward-char", Handler: func(bool, int) (bool, error) { return true, nil }},
		{Name: "forward-word", Handler: func(bool, int) (bool, error) { return true, nil }},
		{Name: "backward-char", Handler: func(bool, int) (bool, error) { return true, nil }},
	})
	fs := FunctionSource{Funcs: ft}
	got := fs.Candidates("forward-")
	assert.ElementsMatch(t, []string{"forward-char", "forward-word"}, got)
}

func TestVariableSourceSplitsDollarAndPercent(t *testing.T) {
	vars := exec.NewVars()
	vars.SetGlobal("greeting", "hi")
	vars.SetUser("name", "bob")

	vs := VariableSource{Vars: vars}
	got := vs.Candidates("$gree")
	assert.Equal(t, []string{"$greeting"}, got)

	got = vs.Candidates("%na")
	assert.Equal(t, []string{"%name"}, got)
}

func TestSearchRingSourceListsRecordedPatterns(t *testing.T) {
	ring := search.NewRing()
	ring.PushPattern("foobar")
	ring.PushPattern("foobaz")
	ring.PushPattern("quux")

	rs := SearchRingSource{Ring: ring}
	got := rs.Candidates("foo")
	assert.ElementsMatch(t, []string{"foobar", "foobaz"}, got)
}

func TestNoneSourceNeverMatches(t *testing.T) {
	assert.Nil(t, NoneSource{}.Candidates("anything"))
}

func TestFormatChoicesWrapsColumns(t *testing.T) {
	rows := FormatChoices([]string{"aa", "bb", "cc", "dd"}, 10)
	require.NotEmpty(t, rows)
	for _, r := range rows {
		assert.LessOrEqual(t, len(r), 10)
	}
}

func TestFormatChoicesEmpty(t *testing.T) {
	assert.Nil(t, FormatChoices(nil, 80))
}
