// Package genenv discovers generator packages installed on the host and runs them.
package genenv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/saylorsolutions/genmenu/navigator"
	"github.com/saylorsolutions/genmenu/spawn"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// GeneratorPattern matches the package.json of scoped and unscoped generator packages under a lookup root.
const GeneratorPattern = "{generator-*,@*/generator-*}/package.json"

var _ navigator.Environment = (*Environment)(nil)

type packageJSON struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Environment finds generator packages in a set of node_modules directories.
type Environment struct {
	roots      []string
	runCommand string
	runner     spawn.Runner
	logger     *slog.Logger

	mux   sync.RWMutex
	found map[string]navigator.Generator
	stubs map[string]navigator.Generator
}

// Option configures an [Environment].
type Option func(*Environment)

// WithLookupPaths sets the node_modules directories to search, in priority order.
func WithLookupPaths(paths ...string) Option {
	return func(e *Environment) {
		e.roots = slices.Clone(paths)
	}
}

// WithRunner sets the [spawn.Runner] used to run generators.
func WithRunner(runner spawn.Runner) Option {
	return func(e *Environment) {
		if runner != nil {
			e.runner = runner
		}
	}
}

// WithRunCommand sets the command used to run a generator namespace.
func WithRunCommand(command string) Option {
	return func(e *Environment) {
		if len(command) > 0 {
			e.runCommand = command
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Environment) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an [Environment].
// Without [WithLookupPaths], the [DefaultLookupPaths] are searched.
func New(opts ...Option) *Environment {
	e := &Environment{
		roots:      DefaultLookupPaths(),
		runCommand: "yo",
		runner:     spawn.Inherit(),
		logger:     slog.New(slog.DiscardHandler),
		found:      map[string]navigator.Generator{},
		stubs:      map[string]navigator.Generator{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DefaultLookupPaths returns the local node_modules directory, entries in NODE_PATH, and common global npm install locations.
func DefaultLookupPaths() []string {
	paths := []string{"node_modules"}
	for _, p := range filepath.SplitList(os.Getenv("NODE_PATH")) {
		if len(strings.TrimSpace(p)) > 0 {
			paths = append(paths, p)
		}
	}
	if prefix := os.Getenv("NPM_CONFIG_PREFIX"); len(prefix) > 0 {
		paths = append(paths, filepath.Join(prefix, "lib", "node_modules"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".npm-global", "lib", "node_modules"))
	}
	if appData := os.Getenv("APPDATA"); len(appData) > 0 {
		paths = append(paths, filepath.Join(appData, "npm", "node_modules"))
	}
	paths = append(paths,
		"/usr/local/lib/node_modules",
		"/opt/homebrew/lib/node_modules",
		"/usr/lib/node_modules",
	)
	return slices.Compact(paths)
}

// Register adds a generator directly, as if it were installed.
// Registered generators take precedence over discovered ones with the same name.
func (e *Environment) Register(gen navigator.Generator) {
	if len(gen.PrettyName) == 0 {
		gen.PrettyName = PrettyName(gen.Name)
	}
	if len(gen.Namespace) == 0 {
		gen.Namespace = Namespace(gen.Name)
	}
	e.mux.Lock()
	defer e.mux.Unlock()
	e.stubs[gen.Name] = gen
}

// Lookup scans the lookup paths for installed generators, replacing previous results.
func (e *Environment) Lookup(ctx context.Context) error {
	found := map[string]navigator.Generator{}
	for _, root := range e.roots {
		if err := ctx.Err(); err != nil {
			return err
		}
		gens, err := scanRoot(root)
		if err != nil {
			return err
		}
		for _, gen := range gens {
			if _, exists := found[gen.Name]; exists {
				continue
			}
			found[gen.Name] = gen
		}
	}
	e.logger.Debug("Generator lookup complete", "roots", len(e.roots), "found", len(found))
	e.mux.Lock()
	defer e.mux.Unlock()
	e.found = found
	return nil
}

func scanRoot(root string) ([]navigator.Generator, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, nil
	}
	fsys := os.DirFS(root)
	matches, err := doublestar.Glob(fsys, GeneratorPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search '%s': %w", root, err)
	}
	slices.Sort(matches)
	var gens []navigator.Generator
	for _, match := range matches {
		pkg, err := readPackage(fsys, match)
		if err != nil {
			continue
		}
		dir := path.Dir(match)
		if len(pkg.Name) == 0 {
			pkg.Name = dir
		}
		gen := Describe(pkg.Name)
		gen.Version = pkg.Version
		gen.Path = filepath.Join(root, filepath.FromSlash(dir))
		gens = append(gens, gen)
	}
	return gens, nil
}

func readPackage(fsys fs.FS, name string) (packageJSON, error) {
	var pkg packageJSON
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return pkg, err
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return pkg, err
	}
	return pkg, nil
}

// Generators rescans the lookup paths and returns every installed generator, sorted by name.
func (e *Environment) Generators(ctx context.Context) ([]navigator.Generator, error) {
	if err := e.Lookup(ctx); err != nil {
		return nil, err
	}
	return e.snapshot(), nil
}

// Cached returns the generators known from the last lookup, without rescanning.
func (e *Environment) Cached() []navigator.Generator {
	return e.snapshot()
}

func (e *Environment) snapshot() []navigator.Generator {
	e.mux.RLock()
	defer e.mux.RUnlock()
	gens := make([]navigator.Generator, 0, len(e.found)+len(e.stubs))
	for name, gen := range e.found {
		if _, stubbed := e.stubs[name]; stubbed {
			continue
		}
		gens = append(gens, gen)
	}
	for _, gen := range e.stubs {
		gens = append(gens, gen)
	}
	slices.SortFunc(gens, func(a, b navigator.Generator) int {
		return strings.Compare(a.Name, b.Name)
	})
	return gens
}

// Get returns a generator known from the last lookup, or registered directly.
func (e *Environment) Get(name string) (navigator.Generator, bool) {
	e.mux.RLock()
	defer e.mux.RUnlock()
	if gen, ok := e.stubs[name]; ok {
		return gen, true
	}
	gen, ok := e.found[name]
	return gen, ok
}

// Run executes the generator namespace with the configured run command.
func (e *Environment) Run(ctx context.Context, namespace string, args ...string) error {
	if len(strings.TrimSpace(namespace)) == 0 {
		return errors.New("empty generator namespace")
	}
	e.logger.Info("Running generator", "namespace", namespace, "command", e.runCommand)
	return e.runner.Run(ctx, e.runCommand, append([]string{namespace}, args...)...)
}
