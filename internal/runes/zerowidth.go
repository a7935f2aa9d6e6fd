package runes

// Zero-width classification kinds, grounded on the zero_width range table in
// original_source/code/utf8.c.
const (
	KindNone = iota
	KindSpacingModifier
	KindCombiningDiacritic
	KindZWJoiner
	KindDirectionalMark
)

type zwRange struct {
	lo, hi rune
	kind   int
}

// Sorted by lo, as the original table requires.
var zeroWidthRanges = []zwRange{
	{0x02B0, 0x02FF, KindSpacingModifier},
	{0x0300, 0x036F, KindCombiningDiacritic},
	{0x1AB0, 0x1AFF, KindCombiningDiacritic},
	{0x1DC0, 0x1DFF, KindCombiningDiacritic},
	{0x200B, 0x200D, KindZWJoiner},
	{0x200E, 0x200F, KindDirectionalMark},
	{0x202A, 0x202E, KindDirectionalMark},
	{0x2060, 0x206F, KindZWJoiner},
	{0x20D0, 0x20FF, KindCombiningDiacritic},
	{0xFE20, 0xFE2F, KindCombiningDiacritic},
}

// spacingModifierIsZeroWidth mirrors the original's spmod_l_is_zw toggle: by
// default, Spacing Modifier Letters are not treated as zero-width.
var spacingModifierIsZeroWidth = false

// SetSpacingModifierZeroWidth lets a caller (e.g. a display-width probe)
// toggle whether Spacing Modifier Letters count as zero-width.
func SetSpacingModifierZeroWidth(on bool) { spacingModifierIsZeroWidth = on }

// ZeroWidthType classifies cp, returning KindNone if cp is not zero-width.
func ZeroWidthType(cp rune) int {
	for _, r := range zeroWidthRanges {
		if cp < r.lo {
			return KindNone
		}
		if cp <= r.hi {
			if r.kind == KindSpacingModifier && !spacingModifierIsZeroWidth {
				return KindNone
			}
			return r.kind
		}
	}
	return KindNone
}

// Grapheme is a base codepoint plus its trailing zero-width tail: the first
// combining codepoint is stored inline, any further ones live in Ext
// (terminated conceptually by len(Ext), no sentinel needed in the slice form).
type Grapheme struct {
	Base  rune
	Comb  rune // NOCHAR if absent
	Ext   []rune
	Bytes int // total byte length of the grapheme in its source buffer
}

// BuildGrapheme reads a base codepoint plus its trailing zero-width tail
// starting at idx. withExt controls whether codepoints beyond the first
// combining mark are collected into Ext (callers that only need the byte
// count can skip the allocation).
func BuildGrapheme(b []byte, idx, end int, withExt bool) Grapheme {
	g := Grapheme{Comb: NOCHAR}
	cp, n := Decode(b, idx, end)
	g.Base = cp
	g.Bytes = n
	offs := idx + n
	first := true
	for {
		cp, step := Decode(b, offs, end)
		if step == 0 || ZeroWidthType(cp) == 0 {
			break
		}
		if first {
			g.Comb = cp
			first = false
		} else if withExt {
			g.Ext = append(g.Ext, cp)
		}
		g.Bytes += step
		offs += step
	}
	return g
}
