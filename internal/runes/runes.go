// Package runes implements the UTF-8/grapheme layer (spec.md §4.2): byte↔codepoint
// conversion, grapheme-boundary walking, zero-width classification and case mapping.
//
// Grounded on original_source/code/utf8.c (utf8_to_unicode/unicode_to_utf8/
// next_utf8_offset/prev_utf8_offset/zerowidth_type).
package runes

// NOCHAR is the sentinel "no character" value (spec.md §3).
const NOCHAR rune = 0x0FFF_FFFF

// MaxCodepoint is the highest Unicode scalar value accepted by Decode.
const MaxCodepoint rune = 0x10FFFF

const maxUTF8Len = 6 // the original accepts up to 6-byte sequences (pre-RFC3629)

// Decode converts the UTF-8 (or Latin-1 fallback) sequence at b[index:end] to a
// codepoint, returning the codepoint and the number of bytes consumed.
//
// Mirrors utf8_to_unicode: any invalid lead byte (0x80-0xBF, a continuation
// byte found where a lead was expected) is treated as a single Latin-1 byte,
// overlong encodings are accepted without validation, and only values that
// would exceed MaxCodepoint are rejected (falling back to a single byte).
func Decode(b []byte, index, end int) (cp rune, size int) {
	if index >= end || index >= len(b) {
		return 0, 0
	}
	c := b[index]
	if c < 0xc0 {
		// 0xxxxxxx is plain ASCII; 10xxxxxx is an orphan continuation byte
		// treated as Latin-1.
		return rune(c), 1
	}

	mask := byte(0x20)
	nbytes := 2
	for c&mask != 0 {
		nbytes++
		mask >>= 1
	}
	if nbytes > maxUTF8Len || index+nbytes > end || index+nbytes > len(b) {
		return rune(c), 1
	}

	value := rune(c & (mask - 1))
	for i := 1; i < nbytes; i++ {
		cb := b[index+i]
		if cb&0xc0 != 0x80 {
			return rune(c), 1
		}
		value = (value << 6) | rune(cb&0x3f)
	}
	if value > MaxCodepoint {
		return rune(c), 1
	}
	return value, nbytes
}

// Encode produces the canonical shortest UTF-8 byte sequence for cp.
func Encode(cp rune) []byte {
	if cp < 0x80 {
		return []byte{byte(cp)}
	}
	var tmp [6]byte
	n := 0
	prefix := rune(0x40)
	c := cp
	for {
		tmp[n] = byte(0x80 + (c & 0x3f))
		n++
		prefix >>= 1
		c >>= 6
		if c <= prefix {
			tmp[n] = byte(c - 2*prefix)
			n++
			break
		}
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = tmp[n-1-i]
	}
	return out
}

// NextOffset advances one codepoint from idx. When graphemeStart is set, it
// additionally absorbs every immediately-following zero-width codepoint so the
// caller steps over a whole grapheme rather than a bare codepoint.
func NextOffset(b []byte, idx, end int, graphemeStart bool) int {
	_, n := Decode(b, idx, end)
	offs := idx + n
	if graphemeStart {
		for {
			cp, step := Decode(b, offs, end)
			if step == 0 || ZeroWidthType(cp) == 0 {
				break
			}
			offs += step
		}
	}
	return offs
}

// PrevOffset walks back over at most maxUTF8Len-1 continuation bytes to reach a
// valid lead byte; if no valid multi-byte sequence is found it falls back to
// decrementing by a single byte. With graphemeStart set, it additionally walks
// back over any zero-width codepoint so the result lands on a grapheme base.
func PrevOffset(b []byte, offset int, graphemeStart bool) int {
	if offset <= 0 {
		return -1
	}
	offs := offset
	var res rune
	for {
		offs--
		c := b[offs]
		res = rune(c)
		if c&0xc0 == 0x80 {
			trypos := offs
			tryb := maxUTF8Len
			marker := int8(0xc0)
			valmask := byte(0x1f)
			bitsSoFar := 0
			var poss rune = rune(c & 0x3f)
			gotUTF8 := false
			for {
				trypos--
				tryb--
				if trypos < 0 || tryb < 0 {
					break
				}
				cc := b[trypos]
				if cc&0xc0 == 0x80 {
					marker >>= 1
					valmask >>= 1
					addin := rune(cc & 0x3f)
					bitsSoFar += 6
					poss |= addin << bitsSoFar
					continue
				}
				if cc&^valmask == byte(marker) {
					addin := rune(cc & valmask)
					bitsSoFar += 6
					poss |= addin << bitsSoFar
					offs = trypos
					gotUTF8 = true
				}
				break
			}
			if gotUTF8 {
				res = poss
			}
		}
		if !graphemeStart || offs <= 0 || ZeroWidthType(res) == 0 {
			break
		}
	}
	return offs
}
