package scanner

// Transform rewrites Drake Maye source into the canonical host syntax:
// surface tokens in code and interpolation-expression context become
// bracket punctuation or reserved words; string literals, comments, and
// everything else pass through byte for byte. The output has exactly as
// many line breaks as the input, so downstream compiler line numbers
// map 1:1 back to the original.
//
// Transform never fails. Malformed or unterminated quoting is emitted
// verbatim; rejecting it is the downstream compiler's job.
func Transform(source []byte, table *Table) []byte {
	s := newScanner(source, table, modeForward)
	s.run()
	return s.out.Bytes()
}
