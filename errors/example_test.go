package errors_test

import (
	"fmt"

	"github.com/ddmm-lang/ddmm/errors"
	"github.com/ddmm-lang/ddmm/scanner"
)

// Example showing how to use TextFormatter for CLI output
func ExampleTextFormatter() {
	source := []byte("f drake x")
	diags := scanner.CheckBalance(source, scanner.Default())

	formatter := errors.NewTextFormatter(errors.WithFilename("main.ddmm"))
	fmt.Println(formatter.FormatAll(diags))
	// Output: main.ddmm:1:3: unclosed "drake" (paren)
}

// Example showing how to use JSONFormatter for tooling output
func ExampleJSONFormatter() {
	source := []byte("drake Maye")
	diags := scanner.CheckBalance(source, scanner.Default())

	formatter := errors.NewJSONFormatter()
	fmt.Println(formatter.FormatAll(diags))
	// Output will be a JSON array with structured diagnostic information
}
