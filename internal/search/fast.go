package search

// fastScanner is the Boyer-Moore-lite literal scanner (spec.md §4.5: "fast
// scanner (forward/backward jump tables, case-fold via alphabet-doubled
// tables, grapheme-alignment check after byte match)"). It only applies to
// PureLiteral patterns; anything with metacharacter structure falls back to
// the step scanner.
//
// Grounded on original_source/code/search.c's fbound/nextbyte/fast_scanner,
// which build one skip-distance table per byte value rather than the full
// Boyer-Moore-Horspool "bad character for every position" table — hence
// "lite": this package does the same, trading a little skip efficiency for
// a table sized 256 instead of len(pattern)*256.
type fastScanner struct {
	lit      []byte
	fold     bool
	skipFwd  [256]int
	skipBack [256]int
}

func newFastScanner(lit []byte, fold bool) *fastScanner {
	fs := &fastScanner{lit: lit, fold: fold}
	n := len(lit)
	for i := range fs.skipFwd {
		fs.skipFwd[i] = n + 1
		fs.skipBack[i] = n + 1
	}
	for i, b := range lit {
		fs.setSkip(&fs.skipFwd, b, n-i)
	}
	for i := 0; i < n; i++ {
		b := lit[n-1-i]
		fs.setSkip(&fs.skipBack, b, n-i)
	}
	return fs
}

func (fs *fastScanner) setSkip(table *[256]int, b byte, dist int) {
	table[b] = dist
	if fs.fold {
		table[toLowerASCII(b)] = dist
		table[toUpperASCII(b)] = dist
	}
}

func toUpperASCII(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

// findForward returns the byte offset of the next match at or after "from",
// or -1. It requires the match to start on a grapheme boundary, checked via
// graphemeStart.
func (fs *fastScanner) findForward(input []byte, from int, graphemeStart func(int) bool) int {
	n := len(fs.lit)
	if n == 0 {
		return from
	}
	i := from
	for i+n <= len(input) {
		if bytesEqFold(input[i:i+n], fs.lit, fs.fold) && graphemeStart(i) {
			return i
		}
		if i+n >= len(input) {
			break
		}
		skip := fs.skipFwd[input[i+n]]
		if skip < 1 {
			skip = 1
		}
		i += skip
	}
	return -1
}

// findBackward returns the start offset of the match nearest to (at or
// before) "from", scanning from the end of the literal backward, or -1.
func (fs *fastScanner) findBackward(input []byte, from int, graphemeStart func(int) bool) int {
	n := len(fs.lit)
	if n == 0 {
		if from > len(input) {
			from = len(input)
		}
		return from
	}
	i := from
	for i >= 0 {
		if i+n <= len(input) && bytesEqFold(input[i:i+n], fs.lit, fs.fold) && graphemeStart(i) {
			return i
		}
		if i >= len(input) {
			i = len(input) - n
			continue
		}
		if i == 0 {
			break
		}
		skip := fs.skipBack[input[i-1]]
		if skip < 1 {
			skip = 1
		}
		i -= skip
	}
	return -1
}
