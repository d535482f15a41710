package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/go-python/gpython/parser"
	"github.com/go-python/gpython/py"

	"github.com/ddmm-lang/ddmm/loader"
	"github.com/ddmm-lang/ddmm/output"
	"github.com/ddmm-lang/ddmm/telemetry"
)

type ConvertCmd struct {
	File   FileOrStdin `help:"Dialect input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Output string      `help:"Write the Python output to this file instead of stdout." short:"o"`
	Force  bool        `help:"Overwrite the output file without confirmation." short:"f"`
	Follow bool        `help:"Also convert local modules the file imports."`
	Cache  bool        `help:"Reuse and populate the __ddmmcache__ conversion cache."`
	Verify bool        `help:"Parse the converted output with a Python parser and fail on syntax errors."`
}

func (cmd *ConvertCmd) Run(ctx *kong.Context, globals *Globals) error {
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

	units, err := cmd.load(runCtx)
	if err != nil {
		return err
	}

	if cmd.Verify {
		for _, unit := range units {
			if err := verifyPython(unit.Filename, unit.Output); err != nil {
				printError(ctx.Stderr, err.Error())
				return NewCommandError(1)
			}
		}
	}

	if cmd.Output == "" {
		for _, unit := range units {
			_, _ = ctx.Stdout.Write(unit.Output)
		}
		return nil
	}

	if len(units) > 1 {
		return fmt.Errorf("--output only supports a single file; --follow converted %d", len(units))
	}

	if !cmd.Force {
		if _, err := os.Stat(cmd.Output); err == nil {
			confirmed, err := promptYesNo(ctx, fmt.Sprintf("File %q exists. Overwrite?", cmd.Output))
			if err != nil {
				return fmt.Errorf("failed to read confirmation: %w", err)
			}
			if !confirmed {
				return fmt.Errorf("refusing to overwrite %s", cmd.Output)
			}
		}
	}

	if err := os.WriteFile(cmd.Output, units[0].Output, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", cmd.Output, err)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Converted %s to %s",
		pathStyle.Render(cmd.File.Filename), pathStyle.Render(cmd.Output)))

	return nil
}

func (cmd *ConvertCmd) load(runCtx context.Context) ([]*loader.Unit, error) {
	var opts []loader.Option
	if cmd.Follow {
		opts = append(opts, loader.WithFollowImports())
	}
	if cmd.Cache {
		opts = append(opts, loader.WithCache())
	}
	ldr := loader.New(opts...)

	if cmd.File.Filename == "<stdin>" {
		if cmd.Follow || cmd.Cache {
			return nil, fmt.Errorf("--follow and --cache are not supported when reading from stdin")
		}
		return loadStdin(&cmd.File)
	}

	return ldr.Load(runCtx, cmd.File.GetAbsoluteFilename())
}

// loadStdin converts stdin contents without touching the filesystem.
func loadStdin(file *FileOrStdin) ([]*loader.Unit, error) {
	ldr := loader.New()
	unit := ldr.ConvertBytes(file.Filename, file.Contents)
	return []*loader.Unit{unit}, nil
}

// verifyPython parses converted output with the gpython parser, the
// same grammar the downstream interpreter applies.
func verifyPython(filename string, output []byte) error {
	_, err := parser.Parse(strings.NewReader(string(output)), filepath.Base(filename), py.ExecMode)
	if err != nil {
		return fmt.Errorf("converted output of %s is not valid Python: %v", filename, err)
	}
	return nil
}
