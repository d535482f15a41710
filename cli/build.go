package cli

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/ddmm-lang/ddmm/loader"
	"github.com/ddmm-lang/ddmm/output"
	"github.com/ddmm-lang/ddmm/telemetry"
)

type BuildCmd struct {
	Path  string `help:"Directory (or single file) to convert." arg:"" default:"." type:"path"`
	Cache bool   `help:"Reuse and populate the __ddmmcache__ conversion cache."`
	Watch bool   `help:"Stay running and re-convert files as they change." short:"w"`
}

func (cmd *BuildCmd) Run(ctx *kong.Context, globals *Globals) error {
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

	files, err := findSources(cmd.Path)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		printInfof(ctx.Stdout, "No .ddmm files under %s", pathStyle.Render(cmd.Path))
		if !cmd.Watch {
			return nil
		}
	}

	if err := cmd.buildAll(runCtx, ctx, files); err != nil {
		return err
	}

	if cmd.Watch {
		return cmd.watch(runCtx, ctx)
	}

	return nil
}

// findSources collects every .ddmm file under root in sorted order.
// A root that is itself a file converts alone.
func findSources(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Cache directories hold compiled output, never sources.
			if d.Name() == "__ddmmcache__" {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".ddmm") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)
	return files, nil
}

func (cmd *BuildCmd) buildAll(runCtx context.Context, ctx *kong.Context, files []string) error {
	var opts []loader.Option
	if cmd.Cache {
		opts = append(opts, loader.WithCache())
	}
	ldr := loader.New(opts...)

	start := time.Now()
	lines := 0

	for _, file := range files {
		units, err := ldr.Load(runCtx, file)
		if err != nil {
			return err
		}
		unit := units[0]

		target := strings.TrimSuffix(file, ".ddmm") + ".py"
		if err := os.WriteFile(target, unit.Output, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}

		lines += bytes.Count(unit.Source, []byte("\n"))
		printSuccess(ctx.Stdout, fmt.Sprintf("%s %s %s",
			pathStyle.Render(file), infoSymbol, pathStyle.Render(target)))
	}

	elapsed := time.Since(start)
	rate := "n/a"
	if elapsed > 0 {
		rate = decimal.NewFromInt(int64(lines)).
			Div(decimal.NewFromFloat(elapsed.Seconds())).
			Round(0).String() + " lines/s"
	}
	printInfof(ctx.Stdout, "Converted %d file(s), %d line(s) in %s (%s)",
		len(files), lines, elapsed.Round(time.Millisecond), rate)

	return nil
}

// watch re-converts sources as they change. Editors often write files
// in multiple steps, so events are debounced.
func (cmd *BuildCmd) watch(runCtx context.Context, ctx *kong.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	root := cmd.Path
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		root = filepath.Dir(root)
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() != "__ddmmcache__" {
			if werr := watcher.Add(path); werr != nil {
				log.Printf("Warning: failed to watch %s: %v", path, werr)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	printInfof(ctx.Stdout, "Watching %s for changes", pathStyle.Render(root))

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	const debounceDelay = 100 * time.Millisecond

	for {
		select {
		case <-runCtx.Done():
			return runCtx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !strings.HasSuffix(event.Name, ".ddmm") {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}

			debounceTimer = time.AfterFunc(debounceDelay, func() {
				files, err := findSources(cmd.Path)
				if err != nil {
					log.Printf("Failed to rescan sources: %v", err)
					return
				}
				if err := cmd.buildAll(runCtx, ctx, files); err != nil {
					log.Printf("Rebuild failed: %v", err)
				}
			})

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("File watcher error: %v", werr)
		}
	}
}
