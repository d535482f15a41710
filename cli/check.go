package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ddmm-lang/ddmm/errors"
	"github.com/ddmm-lang/ddmm/output"
	"github.com/ddmm-lang/ddmm/scanner"
	"github.com/ddmm-lang/ddmm/telemetry"
)

type CheckCmd struct {
	File FileOrStdin `help:"Dialect input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	JSON bool        `help:"Report diagnostics as JSON."`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx := context.Background()

	var collector telemetry.Collector
	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		defer func() {
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr, output.NewStyles(ctx.Stderr))
		}()
	}

	source, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	timer := telemetry.FromContext(runCtx).Start(fmt.Sprintf("check %s", filepath.Base(cmd.File.Filename)))
	diags := scanner.CheckBalance(source, scanner.Default())
	timer.End()

	if cmd.JSON {
		formatter := errors.NewJSONFormatter()
		_, _ = fmt.Fprintln(ctx.Stdout, formatter.FormatAll(diags))
		if len(diags) > 0 {
			return NewCommandError(1)
		}
		return nil
	}

	if len(diags) > 0 {
		renderer := NewDiagnosticRenderer(source)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.RenderAll(diags))

		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, fmt.Sprintf("%d balance problem(s) found", len(diags)))
		return NewCommandError(1)
	}

	printSuccess(ctx.Stdout, "Check passed")

	return nil
}
