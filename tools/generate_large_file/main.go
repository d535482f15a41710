// Large Dialect File Generator
//
// This tool generates a large drakedrakemayemaye file for performance testing
// and profiling. It creates realistic code with various features to
// stress-test the scanner.
//
// Usage:
//
//	go run main.go > large.ddmm
//	go run main.go 20000000 > large.ddmm  # Specify target size in bytes
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
)

const (
	defaultTargetSize = 10 * 1024 * 1024 // 10MB
)

var (
	identifiers = []string{
		"total", "result", "payload", "config", "handler",
		"request", "response", "index", "cursor", "buffer",
		"record", "entries", "snapshot", "summary", "batch",
	}

	functions = []string{
		"resolve", "collect", "flatten", "merge", "render",
		"parse_line", "load_config", "write_report", "next_batch",
	}

	modules = []string{
		"os", "sys", "json", "math", "collections", "itertools",
	}

	words = []string{
		"alpha", "beta", "gamma", "delta", "omega",
		"north", "south", "east", "west",
	}
)

func main() {
	targetSize := defaultTargetSize
	if len(os.Args) > 1 {
		if size, err := strconv.Atoi(os.Args[1]); err == nil {
			targetSize = size
		}
	}

	// Note: rand.Seed is no longer needed in Go 1.20+
	// The global random generator is automatically seeded

	writeHeader()

	bytesWritten := 0
	blockCount := 0

	for bytesWritten < targetSize {
		var output string
		switch rand.Intn(10) {
		case 0, 1: // 20% - imports
			output = generateImport()
		case 2, 3, 4: // 30% - function definition
			output = generateFunction()
		case 5, 6: // 20% - data literal
			output = generateData()
		case 7: // 10% - comment block
			output = generateComment()
		default: // 20% - expression with interpolation
			output = generateInterpolation()
		}

		fmt.Print(output)
		bytesWritten += len(output)
		blockCount++
	}

	fmt.Fprintf(os.Stderr, "Generated %d blocks, %d bytes\n", blockCount, bytesWritten)
}

func writeHeader() {
	fmt.Println("# Generated stress-test source. Do not edit.")
	fmt.Println()
}

func pick(list []string) string {
	return list[rand.Intn(len(list))]
}

func generateImport() string {
	if rand.Intn(2) == 0 {
		return fmt.Sprintf("Recipe %s\n\n", pick(modules))
	}
	return fmt.Sprintf("Bake %s Recipe %s\n\n", pick(modules), pick(identifiers))
}

func generateFunction() string {
	var b strings.Builder
	name := pick(functions)
	arg := pick(identifiers)

	fmt.Fprintf(&b, "throw %s drake %s maye:\n", name, arg)
	fmt.Fprintf(&b, "    %s = DRAKE x * %d for x in %s MAYE\n",
		pick(identifiers), rand.Intn(100), arg)
	fmt.Fprintf(&b, "    touchdown %s\n\n", pick(identifiers))
	return b.String()
}

func generateData() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s = Drake\n", pick(identifiers))
	n := 2 + rand.Intn(4)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "    '%s': DRAKE %d, %d MAYE,\n",
			pick(words), rand.Intn(1000), rand.Intn(1000))
	}
	b.WriteString("Maye\n\n")
	return b.String()
}

func generateComment() string {
	// Keywords inside comments must survive conversion untouched.
	return fmt.Sprintf("# %s drake maye %s\n", pick(words), pick(words))
}

func generateInterpolation() string {
	return fmt.Sprintf("print drake f\"{%s drake '%s' maye}\" maye\n\n",
		pick(functions), pick(words))
}
