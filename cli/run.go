package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/alecthomas/kong"

	"github.com/ddmm-lang/ddmm/output"
	"github.com/ddmm-lang/ddmm/scanner"
	"github.com/ddmm-lang/ddmm/telemetry"
)

type RunCmd struct {
	File   FileOrStdin `help:"Dialect input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Python string      `help:"Python interpreter to run." default:"python3"`
	Args   []string    `help:"Arguments passed through to the program." arg:"" optional:"" passthrough:""`
}

func (cmd *RunCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx := context.Background()

	if globals.Telemetry {
		collector := telemetry.NewTimingCollector()
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

	// An unbalanced file would produce a confusing interpreter error;
	// audit first so the message points at the dialect source.
	if diags := scanner.CheckBalance(source, scanner.Default()); len(diags) > 0 {
		renderer := NewDiagnosticRenderer(source)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.RenderAll(diags))
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, fmt.Sprintf("%d balance problem(s) found", len(diags)))
		return NewCommandError(1)
	}

	timer := telemetry.FromContext(runCtx).Start("transform")
	converted := scanner.Transform(source, scanner.Default())
	timer.End()

	args := append([]string{"-"}, cmd.Args...)
	python := exec.Command(cmd.Python, args...)
	python.Stdin = bytes.NewReader(converted)
	python.Stdout = os.Stdout
	python.Stderr = os.Stderr

	if err := python.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return NewCommandError(exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run %s: %w", cmd.Python, err)
	}

	return nil
}
