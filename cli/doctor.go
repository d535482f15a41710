package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/ddmm-lang/ddmm/scanner"
)

// DoctorCmd provides doctor utilities for debugging conversions.
type DoctorCmd struct {
	Table  TableCmd  `cmd:"" help:"Show the active keyword table."`
	Events EventsCmd `cmd:"" help:"Show bracket events from a dialect file."`
}

// TableCmd dumps the active keyword table.
type TableCmd struct{}

// Run executes the table command.
func (cmd *TableCmd) Run(ctx *kong.Context, globals *Globals) error {
	repr.Println(scanner.Default().Entries())
	return nil
}

// EventsCmd shows the audit walk's bracket events from a dialect file.
type EventsCmd struct {
	File FileOrStdin `help:"Dialect input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

// Run executes the events command.
func (cmd *EventsCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	content, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	// Display events in the format: OPEN/CLOSE line:col kind "surface"
	for _, ev := range scanner.Events(content, scanner.Default()) {
		direction := "CLOSE"
		if ev.Open {
			direction = "OPEN"
		}

		_, _ = fmt.Fprintf(ctx.Stdout, "%-6s %d:%d    %-14s %q\n",
			direction,
			ev.Pos.Line,
			ev.Pos.Column,
			ev.Kind.String(),
			ev.Surface)
	}

	return nil
}
