package phonetic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/original-birdman/nuemacs-sub000/internal/text"
)

func newTableBuffer(t *testing.T, lines []string) *text.Buffer {
	t.Helper()
	buf, err := text.NewBuffer("/ttbuild", text.TypePhoneticTable)
	require.NoError(t, err)
	for _, l := range lines {
		id := buf.AppendNewlineAfterLast()
		buf.InsertBytes(nil, text.Pos{Line: id, Off: 0}, []byte(l))
	}
	return buf
}

func insertAndApply(t *testing.T, table *Table, buf *text.Buffer, s string) {
	t.Helper()
	id := buf.First()
	if buf.IsHeader(id) {
		id = buf.AppendNewlineAfterLast()
	}
	dot := text.Pos{Line: id, Off: buf.Line(id).Len()}
	for _, r := range s {
		dot = buf.InsertBytes(nil, dot, []byte(string(r)))
		if newDot, ok := table.OnInsert(nil, buf, dot, r); ok {
			dot = newDot
		}
	}
}

func TestCompileSimpleRuleAndSubstitute(t *testing.T) {
	src := newTableBuffer(t, []string{"kh 0x6b"}) // kh -> 'k' (0x6b)
	table, err := Compile(src)
	require.NoError(t, err)

	buf, err := text.NewBuffer("/doc", text.TypeNormal)
	require.NoError(t, err)
	insertAndApply(t, table, buf, "kh")

	assert.Equal(t, "k", string(buf.Line(buf.First()).Bytes()))
}

func TestCompileLiteralCodepointToken(t *testing.T) {
	src := newTableBuffer(t, []string{"a U+00E9"}) // a -> é
	table, err := Compile(src)
	require.NoError(t, err)

	buf, err := text.NewBuffer("/doc", text.TypeNormal)
	require.NoError(t, err)
	insertAndApply(t, table, buf, "a")

	assert.Equal(t, "é", string(buf.Line(buf.First()).Bytes()))
}

func TestAnchoredRuleOnlyFiresAtWordStart(t *testing.T) {
	src := newTableBuffer(t, []string{"^th 0x54"}) // ^th -> 'T', word-start only
	table, err := Compile(src)
	require.NoError(t, err)

	buf, err := text.NewBuffer("/doc", text.TypeNormal)
	require.NoError(t, err)
	insertAndApply(t, table, buf, "th")
	assert.Equal(t, "T", string(buf.Line(buf.First()).Bytes()))

	buf2, err := text.NewBuffer("/doc2", text.TypeNormal)
	require.NoError(t, err)
	insertAndApply(t, table, buf2, "xth")
	assert.Equal(t, "xth", string(buf2.Line(buf2.First()).Bytes()))
}

func TestCaseFoldedMatching(t *testing.T) {
	src := newTableBuffer(t, []string{"caseset-on", "kh 0x6b"})
	table, err := Compile(src)
	require.NoError(t, err)

	buf, err := text.NewBuffer("/doc", text.TypeNormal)
	require.NoError(t, err)
	insertAndApply(t, table, buf, "KH")

	assert.Equal(t, "K", string(buf.Line(buf.First()).Bytes()), "caseset-on should re-case the substitution to match the input")
}

func TestCaseCapInit1OnlyCapitalizesWhenInputWasUpper(t *testing.T) {
	src := newTableBuffer(t, []string{"caseset-capinit1", "sh sch"})
	table, err := Compile(src)
	require.NoError(t, err)

	buf, err := text.NewBuffer("/lower", text.TypeNormal)
	require.NoError(t, err)
	insertAndApply(t, table, buf, "sh")
	assert.Equal(t, "sch", string(buf.Line(buf.First()).Bytes()))

	buf2, err := text.NewBuffer("/upper", text.TypeNormal)
	require.NoError(t, err)
	insertAndApply(t, table, buf2, "Sh")
	assert.Equal(t, "Sch", string(buf2.Line(buf2.First()).Bytes()))
}

func TestDisplayCodeDirective(t *testing.T) {
	src := newTableBuffer(t, []string{"display-code U+2318", "kh 0x6b"})
	table, err := Compile(src)
	require.NoError(t, err)
	assert.Equal(t, rune(0x2318), table.DisplayCode)
}

func TestCommentAndBlankLinesIgnored(t *testing.T) {
	src := newTableBuffer(t, []string{"", "; a comment", "kh 0x6b"})
	table, err := Compile(src)
	require.NoError(t, err)
	assert.NotNil(t, table.Rules('h'))
}

func TestCompileRejectsMalformedRule(t *testing.T) {
	src := newTableBuffer(t, []string{"onlyonetoken"})
	_, err := Compile(src)
	assert.Error(t, err)
}

func TestCompilerAdapterAttachesTableOnStore(t *testing.T) {
	ptt := newTableBuffer(t, []string{"kh 0x6b"})
	var c Compiler
	require.NoError(t, c.CompileStore(ptt))
	_, ok := ptt.Phonetic.(*Table)
	assert.True(t, ok)
}

func TestAttachBindsCompiledTableToTargetBuffer(t *testing.T) {
	reg := text.NewRegistry()
	ptt, err := reg.Create("/Ptt 01", text.TypePhoneticTable)
	require.NoError(t, err)
	id := ptt.AppendNewlineAfterLast()
	ptt.InsertBytes(nil, text.Pos{Line: id, Off: 0}, []byte("kh 0x6b"))

	doc, err := reg.Create("/doc", text.TypeNormal)
	require.NoError(t, err)

	require.NoError(t, Attach(reg, doc, "/Ptt 01"))
	table, ok := doc.Phonetic.(*Table)
	require.True(t, ok)
	assert.NotNil(t, table.Rules('h'))

	Detach(doc)
	assert.Nil(t, doc.Phonetic)
}
