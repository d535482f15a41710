// Package loader turns dialect files into Python compilation units, with
// support for following local imports. It can recursively resolve module
// references against sibling files and deduplicate modules that are
// imported more than once.
//
// The loader supports two modes of operation:
//   - Simple mode: Converts a single file; import statements are left for
//     the Python interpreter to resolve
//   - Follow mode: Recursively converts every local module the output
//     imports, so a whole program can be emitted in one call
//
// When following imports, a module name resolves to a sibling
// <name>.ddmm file or a <name>/__init__.ddmm package file, relative to
// the directory of the importing file.
//
// Example usage:
//
//	// Convert a single file
//	loader := loader.New()
//	units, err := loader.Load(ctx, "main.ddmm")
//
//	// Convert with recursive import resolution
//	loader := loader.New(loader.WithFollowImports())
//	units, err := loader.Load(ctx, "main.ddmm")
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ddmm-lang/ddmm/scanner"
	"github.com/ddmm-lang/ddmm/telemetry"
)

// Unit is one converted file.
type Unit struct {
	// Filename is the path of the dialect source file.
	Filename string

	// Source is the dialect source as read from disk.
	Source []byte

	// Output is the converted Python source.
	Output []byte

	// Imports holds the local module files this unit's output imports,
	// resolved to paths. Only populated in follow mode.
	Imports []string

	// Cached reports whether Output was served from the conversion
	// cache instead of being recomputed.
	Cached bool
}

// Loader converts dialect files with optional import resolution and
// caching.
//
// Configure the loader using functional options passed to New:
//
//	loader := New(WithFollowImports(), WithCache())
type Loader struct {
	// FollowImports determines whether local module references in the
	// converted output are recursively loaded as well.
	FollowImports bool

	// UseCache enables the __ddmmcache__ conversion cache. Cache
	// entries are validated against the source file's mtime.
	UseCache bool

	table *scanner.Table
}

// Option configures how files are loaded.
type Option func(*Loader)

// WithFollowImports configures the loader to recursively convert every
// local module referenced by import statements in the output. A module
// name resolves to <name>.ddmm or <name>/__init__.ddmm next to the
// importing file; names that resolve to neither are assumed to be
// stdlib or third-party modules and are skipped. Modules imported more
// than once are converted once.
func WithFollowImports() Option {
	return func(l *Loader) {
		l.FollowImports = true
	}
}

// WithCache configures the loader to reuse conversion results from the
// __ddmmcache__ directory next to each source file, and to write them
// back after converting.
func WithCache() Option {
	return func(l *Loader) {
		l.UseCache = true
	}
}

// WithTable sets the keyword table used for conversion. Defaults to
// scanner.Default().
func WithTable(table *scanner.Table) Option {
	return func(l *Loader) {
		l.table = table
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{}

	for _, opt := range opts {
		opt(l)
	}

	if l.table == nil {
		l.table = scanner.Default()
	}

	return l
}

// ConvertBytes converts in-memory source without touching the
// filesystem or the cache. Used for stdin input.
func (l *Loader) ConvertBytes(filename string, source []byte) *Unit {
	return &Unit{
		Filename: filename,
		Source:   source,
		Output:   scanner.Transform(source, l.table),
	}
}

// Load converts a dialect file. The returned slice starts with the
// named file's unit; in follow mode it is followed by one unit per
// local module, in discovery order.
func (l *Loader) Load(ctx context.Context, filename string) ([]*Unit, error) {
	timer := telemetry.FromContext(ctx).Start("Load " + filepath.Base(filename))
	defer timer.End()

	state := &loaderState{
		loader:  l,
		visited: make(map[string]bool),
	}

	return state.loadRecursive(ctx, filename)
}

// loaderState tracks state during recursive loading.
type loaderState struct {
	loader  *Loader
	visited map[string]bool // Absolute paths of files already loaded
}

// loadRecursive converts a file and, in follow mode, all modules its
// output imports.
func (l *loaderState) loadRecursive(ctx context.Context, filename string) ([]*Unit, error) {
	absPath, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for %s: %w", filename, err)
	}

	// Same module imported along two paths converts once.
	if l.visited[absPath] {
		return nil, nil
	}
	l.visited[absPath] = true

	unit, err := l.loadOne(filename)
	if err != nil {
		return nil, err
	}

	units := []*Unit{unit}
	if !l.loader.FollowImports {
		return units, nil
	}

	baseDir := filepath.Dir(absPath)
	for _, name := range importedModules(unit.Output) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		target, ok := resolveModule(baseDir, name)
		if !ok {
			continue
		}
		unit.Imports = append(unit.Imports, target)

		imported, err := l.loadRecursive(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("in file %s: %w", filename, err)
		}
		units = append(units, imported...)
	}

	return units, nil
}

// loadOne reads and converts a single file, consulting the cache when
// enabled.
func (l *loaderState) loadOne(filename string) (*Unit, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", filename, err)
	}

	source, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	unit := &Unit{Filename: filename, Source: source}

	if l.loader.UseCache {
		if output, ok := readCache(filename, info.ModTime()); ok {
			unit.Output = output
			unit.Cached = true
			return unit, nil
		}
	}

	unit.Output = scanner.Transform(source, l.loader.table)

	if l.loader.UseCache {
		// A failed cache write never fails the conversion.
		_ = writeCache(filename, info.ModTime(), unit.Output)
	}

	return unit, nil
}

// importedModules extracts module names from import statements in
// converted Python output. Only top-of-line statements count; an
// indented or inline import is left to the interpreter.
func importedModules(output []byte) []string {
	var names []string
	seen := make(map[string]bool)

	add := func(name string) {
		name = strings.TrimSpace(name)
		// "import a.b as c" and "import a.b" both live in package a.
		if i := strings.IndexByte(name, ' '); i >= 0 {
			name = name[:i]
		}
		if i := strings.IndexByte(name, '.'); i >= 0 {
			name = name[:i]
		}
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}

	for _, line := range strings.Split(string(output), "\n") {
		switch {
		case strings.HasPrefix(line, "import "):
			for _, part := range strings.Split(line[len("import "):], ",") {
				add(part)
			}
		case strings.HasPrefix(line, "from "):
			rest := line[len("from "):]
			if i := strings.Index(rest, " import "); i >= 0 {
				rest = rest[:i]
			}
			add(rest)
		}
	}

	return names
}

// resolveModule maps a module name to a dialect file next to the
// importing file, trying <name>.ddmm then <name>/__init__.ddmm.
func resolveModule(baseDir, name string) (string, bool) {
	candidates := []string{
		filepath.Join(baseDir, name+".ddmm"),
		filepath.Join(baseDir, name, "__init__.ddmm"),
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, true
		}
	}

	return "", false
}
