package cli

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ddmm-lang/ddmm/scanner"
)

type RevertCmd struct {
	File   FileOrStdin `help:"Python input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Output string      `help:"Write the dialect output to this file instead of stdout." short:"o"`
	Force  bool        `help:"Overwrite the output file without confirmation." short:"f"`
}

func (cmd *RevertCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	source, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	output := scanner.Reverse(source, scanner.Default())

	if cmd.Output == "" {
		_, _ = ctx.Stdout.Write(output)
		return nil
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

	if err := os.WriteFile(cmd.Output, output, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", cmd.Output, err)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Reverted %s to %s",
		pathStyle.Render(cmd.File.Filename), pathStyle.Render(cmd.Output)))

	return nil
}
