// Package ddmm converts between drakedrakemayemaye source and Python.
//
// The dialect replaces Python's bracket punctuation with reserved words:
// drake/maye for parens, Drake/Maye for curly braces, DRAKE/MAYE for
// square brackets, plus a handful of keyword aliases such as Recipe for
// import. Everything else, including strings, comments, and f-string
// literal text, passes through untouched.
package ddmm

import "github.com/ddmm-lang/ddmm/scanner"

// Transform rewrites dialect source into Python using the default
// keyword table. The result always has the same number of lines as the
// input.
func Transform(source []byte) []byte {
	return scanner.Transform(source, scanner.Default())
}

// Reverse rewrites Python source into the dialect using the default
// keyword table.
func Reverse(source []byte) []byte {
	return scanner.Reverse(source, scanner.Default())
}

// CheckBalance audits dialect source for bracket-word balance and
// returns every problem found, in source order. An empty slice means
// the source is balanced.
func CheckBalance(source []byte) []scanner.Diagnostic {
	return scanner.CheckBalance(source, scanner.Default())
}
