// Package dbuf implements the dynamic buffer described in spec.md §4.1: a
// growable byte container parameterised by "string" vs "binary" discipline,
// used throughout the editor for lines, variables and prompts.
//
// Grounded on original_source/code/dyn_buf.c and dyn_buf.h (the db type and
// its _dbp_* operations).
package dbuf

import "fmt"

// Discipline records whether a Buffer holds a string or binary data. The
// value is stored but no operation depends on it: neither discipline keeps
// a NUL terminator, and Bytes/Len never include one.
type Discipline int

const (
	Binary Discipline = iota
	String
)

// growthGranularity is the power-of-two-aligned rounding unit spec.md §4.1
// requires ("64-byte granularity").
const growthGranularity = 64

// Buffer is a growable byte container. The zero value is a ready-to-use
// Binary buffer.
type Buffer struct {
	val  []byte
	disc Discipline
}

// New returns a Buffer using the given discipline.
func New(disc Discipline) *Buffer {
	return &Buffer{disc: disc}
}

// Len returns the number of valid bytes (excluding any NUL terminator).
func (b *Buffer) Len() int { return len(b.val) }

// Bytes returns the valid bytes. The caller must not retain or mutate it
// across later calls: Go slices are no different than the original's NUL-
// terminated char* in this respect — callers should treat it as a read-only
// view, as the original's db_val(a) macro implies.
func (b *Buffer) Bytes() []byte { return b.val }

// String returns the valid bytes as a string.
func (b *Buffer) String() string { return string(b.val) }

func grow(n int) int {
	if n <= 0 {
		return growthGranularity
	}
	return ((n + growthGranularity - 1) / growthGranularity) * growthGranularity
}

// Set replaces the contents with a copy of p.
func (b *Buffer) Set(p []byte) {
	b.val = append(b.val[:0], p...)
}

// SetString replaces the contents with s.
func (b *Buffer) SetString(s string) {
	b.Set([]byte(s))
}

// Append adds p to the end of the buffer.
func (b *Buffer) Append(p []byte) {
	b.val = append(b.val, p...)
}

// AppendString adds s to the end of the buffer.
func (b *Buffer) AppendString(s string) {
	b.Append([]byte(s))
}

// AddByte appends a single byte.
func (b *Buffer) AddByte(c byte) {
	b.val = append(b.val, c)
}

// InsertAt inserts p at offset w. Per spec.md §4.1, an insert at an offset
// greater than Len is a no-op.
func (b *Buffer) InsertAt(w int, p []byte) {
	if w < 0 || w > len(b.val) {
		return
	}
	out := make([]byte, 0, grow(len(b.val)+len(p)))
	out = append(out, b.val[:w]...)
	out = append(out, p...)
	out = append(out, b.val[w:]...)
	b.val = out
}

// DeleteNAt deletes up to n bytes starting at offset w.
func (b *Buffer) DeleteNAt(w, n int) {
	if w < 0 || w >= len(b.val) || n <= 0 {
		return
	}
	end := w + n
	if end > len(b.val) {
		end = len(b.val)
	}
	b.val = append(b.val[:w], b.val[end:]...)
}

// OverwriteNAt overwrites up to n bytes of p starting at offset w, growing
// the buffer if the write extends past its current end.
func (b *Buffer) OverwriteNAt(w int, p []byte, n int) {
	if w < 0 {
		return
	}
	if n > len(p) {
		n = len(p)
	}
	need := w + n
	if need > len(b.val) {
		grown := make([]byte, need)
		copy(grown, b.val)
		b.val = grown
	}
	copy(b.val[w:need], p[:n])
}

// CharAt returns the byte at offset w, or 0 if out of range.
func (b *Buffer) CharAt(w int) byte {
	if w < 0 || w >= len(b.val) {
		return 0
	}
	return b.val[w]
}

// SetCharAt overwrites the byte at offset w. It reports false if w is out of
// range.
func (b *Buffer) SetCharAt(w int, c byte) bool {
	if w < 0 || w >= len(b.val) {
		return false
	}
	b.val[w] = c
	return true
}

// Truncate shortens the buffer to n bytes (a no-op if n >= Len).
func (b *Buffer) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(b.val) {
		b.val = b.val[:n]
	}
}

// Clear empties the buffer without releasing its backing array.
func (b *Buffer) Clear() {
	b.val = b.val[:0]
}

// Free releases the backing array.
func (b *Buffer) Free() {
	b.val = nil
}

// Compare does a byte-exact comparison against s (like strcmp: <0, 0, >0).
func (b *Buffer) Compare(s []byte) int {
	return compareBytes(b.val, s)
}

// CompareFold does a case-insensitive ASCII comparison against s.
func (b *Buffer) CompareFold(s []byte) int {
	return compareFold(b.val, s)
}

func compareBytes(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

func foldByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func compareFold(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		fa, fb := foldByte(a[i]), foldByte(b[i])
		if fa != fb {
			if fa < fb {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// Printf formats into the buffer, replacing its contents, regrowing as
// needed (fmt.Sprintf already handles arbitrary length, so "regrow" is
// implicit in the returned string's allocation).
func (b *Buffer) Printf(format string, args ...interface{}) {
	b.SetString(fmt.Sprintf(format, args...))
}

// AppendPrintf formats and appends to the buffer's current contents.
func (b *Buffer) AppendPrintf(format string, args ...interface{}) {
	b.AppendString(fmt.Sprintf(format, args...))
}
