package runes

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CaseMode selects the case-mapping discipline for Recase.
type CaseMode int

const (
	Upper CaseMode = iota
	Lower
	Title
)

// Recase applies the given case mapping to b, returning a freshly allocated
// byte slice and the number of codepoints it contains. Sharp-S (U+00DF)
// uppercases to "SS" per spec.md §4.2, which golang.org/x/text/cases models
// as a full (non-1:1) case fold — plain per-rune mapping would silently drop
// the expansion, so Recase always routes through cases.Caser rather than
// unicode.To.
func Recase(mode CaseMode, b []byte) (out []byte, codepoints int) {
	var caser cases.Caser
	switch mode {
	case Upper:
		caser = cases.Upper(language.Und)
	case Lower:
		caser = cases.Lower(language.Und)
	case Title:
		caser = cases.Title(language.Und)
	}
	out = caser.Bytes(b)
	for i := 0; i < len(out); {
		_, n := Decode(out, i, len(out))
		if n == 0 {
			break
		}
		i += n
		codepoints++
	}
	return out, codepoints
}
