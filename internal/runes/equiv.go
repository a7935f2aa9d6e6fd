package runes

import "golang.org/x/text/unicode/norm"

// Equivalent reports whether a and b are the same grapheme under canonical
// (NFKC-style) equivalence, as spec.md §4.2 requires of the "equivalence
// comparison" delegated from Recase/search group-class matching (§4.5,
// Equivalence mode). Grounded on the pack's idiomatic choice of
// golang.org/x/text/unicode/norm for normalisation rather than a hand-rolled
// decomposition table.
func Equivalent(a, b []byte) bool {
	return norm.NFKC.String(string(a)) == norm.NFKC.String(string(b))
}

// Normalize returns the NFKC normal form of b.
func Normalize(b []byte) []byte {
	return norm.NFKC.Bytes(b)
}
