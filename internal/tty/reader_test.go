package tty

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderDeliversBytesInOrder(t *testing.T) {
	pr, pw := io.Pipe()
	r := NewReader(pr)
	go func() { pw.Write([]byte("ab")) }()

	b, err := r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte('a'), b)

	b, err = r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte('b'), b)
}

func TestPeekTimeoutDoesNotConsumeByte(t *testing.T) {
	pr, pw := io.Pipe()
	r := NewReader(pr)
	go func() { pw.Write([]byte("x")) }()

	b, ok, err := r.PeekTimeout()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, byte('x'), b)

	b2, err := r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte('x'), b2)
}

func TestPeekTimeoutExpiresWithoutInput(t *testing.T) {
	pr, _ := io.Pipe()
	r := NewReader(pr)

	start := time.Now()
	_, ok, err := r.PeekTimeout()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Less(t, time.Since(start), time.Second)
}

func TestReaderReportsEOFAfterClose(t *testing.T) {
	pr, pw := io.Pipe()
	r := NewReader(pr)
	pw.Close()

	_, err := r.ReadByte()
	assert.Error(t, err)
}
