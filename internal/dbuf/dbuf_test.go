package dbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndAppend(t *testing.T) {
	b := New(String)
	b.SetString("hello")
	b.AppendString(" world")
	assert.Equal(t, "hello world", b.String())
}

func TestInsertAtNoopPastEnd(t *testing.T) {
	b := New(Binary)
	b.SetString("abc")
	b.InsertAt(10, []byte("x"))
	assert.Equal(t, "abc", b.String(), "insert past end must be a no-op")
}

func TestInsertAndDelete(t *testing.T) {
	b := New(Binary)
	b.SetString("ace")
	b.InsertAt(1, []byte("b"))
	assert.Equal(t, "abce", b.String())
	b.InsertAt(3, []byte("d"))
	assert.Equal(t, "abcde", b.String())
	b.DeleteNAt(1, 2)
	assert.Equal(t, "ade", b.String())
}

func TestCharAtAndSetCharAt(t *testing.T) {
	b := New(Binary)
	b.SetString("abc")
	assert.Equal(t, byte('b'), b.CharAt(1))
	assert.True(t, b.SetCharAt(1, 'X'))
	assert.Equal(t, "aXc", b.String())
	assert.False(t, b.SetCharAt(10, 'Y'))
}

func TestCompareFold(t *testing.T) {
	b := New(String)
	b.SetString("Hello")
	assert.Equal(t, 0, b.CompareFold([]byte("hello")))
	assert.NotEqual(t, 0, b.Compare([]byte("hello")))
}

func TestTruncateAndClear(t *testing.T) {
	b := New(Binary)
	b.SetString("abcdef")
	b.Truncate(3)
	assert.Equal(t, "abc", b.String())
	b.Clear()
	assert.Equal(t, 0, b.Len())
}

func TestPrintf(t *testing.T) {
	b := New(String)
	b.Printf("%s=%d", "n", 42)
	assert.Equal(t, "n=42", b.String())
}
