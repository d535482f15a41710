package scanner

// Reverse is the structural mirror of Transform: it recognizes the
// replacement punctuation and reserved words in code context and
// substitutes the surface spellings back. String, comment, and
// interpolation classification is identical in both directions; only
// the matching side of the table is swapped. A reserved word embedded
// in a longer identifier is never un-substituted.
func Reverse(source []byte, table *Table) []byte {
	s := newScanner(source, table, modeReverse)
	s.run()
	return s.out.Bytes()
}
