package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/ddmm-lang/ddmm/scanner"
)

type ReplCmd struct {
	NoBanner bool `help:"Skip the startup banner."`
}

const historyFile = ".ddmm_history"

func (cmd *ReplCmd) Run(ctx *kong.Context, globals *Globals) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("repl requires an interactive terminal; pipe input through 'convert -' instead")
	}

	table := scanner.Default()

	if !cmd.NoBanner {
		printBanner(ctx.Stdout, table)
	}

	line := liner.NewLiner()
	defer func() { _ = line.Close() }()
	line.SetCtrlCAborts(true)

	historyPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyPath = filepath.Join(home, historyFile)
		if f, err := os.Open(historyPath); err == nil {
			_, _ = line.ReadHistory(f)
			_ = f.Close()
		}
	}

	defer func() {
		if historyPath == "" {
			return
		}
		if f, err := os.Create(historyPath); err == nil {
			_, _ = line.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		block, err := readBlock(line, table)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err == io.EOF {
			_, _ = fmt.Fprintln(ctx.Stdout)
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(block) == "" {
			continue
		}

		line.AppendHistory(block)

		source := []byte(block)
		if diags := scanner.CheckBalance(source, table); len(diags) > 0 {
			renderer := NewDiagnosticRenderer(source)
			_, _ = fmt.Fprintln(ctx.Stderr, renderer.RenderAll(diags))
			continue
		}

		_, _ = fmt.Fprintln(ctx.Stdout, string(scanner.Transform(source, table)))
	}
}

// readBlock reads one logical input block. It continues onto further
// lines while the text so far has unclosed brackets or ends in a
// backslash, and after a line ending in a colon it keeps reading until
// a blank line closes the suite.
func readBlock(line *liner.State, table *scanner.Table) (string, error) {
	input, err := line.Prompt(">>> ")
	if err != nil {
		return "", err
	}

	blockMode := false
	for {
		trimmed := strings.TrimRight(input, " \t")
		if strings.HasSuffix(trimmed, ":") {
			blockMode = true
		}
		if !blockMode && !strings.HasSuffix(trimmed, "\\") && !hasUnclosed(input, table) {
			break
		}

		next, err := line.Prompt("... ")
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if next == "" {
			if !hasUnclosed(input, table) && !strings.HasSuffix(trimmed, "\\") {
				break
			}
			continue
		}
		input += "\n" + next
	}

	return input, nil
}

// hasUnclosed reports whether the only thing wrong with the input is
// openers still waiting for closers. A mismatch is complete enough to
// report.
func hasUnclosed(input string, table *scanner.Table) bool {
	diags := scanner.CheckBalance([]byte(input), table)
	if len(diags) == 0 {
		return false
	}
	for _, d := range diags {
		if d.Kind != scanner.Unclosed {
			return false
		}
	}
	return true
}

// printBanner prints the keyword reference generated from the live
// table, so a custom table documents itself.
func printBanner(w io.Writer, table *scanner.Table) {
	printInfof(w, "drakedrakemayemaye interactive session")
	_, _ = fmt.Fprintln(w)

	for _, entry := range table.Entries() {
		_, _ = fmt.Fprintf(w, "  %-10s %s\n", entry.Surface, entry.Text)
	}

	_, _ = fmt.Fprintln(w)
	printInfof(w, "Enter dialect code; the Python translation prints after each block.")
	_, _ = fmt.Fprintln(w)
}
