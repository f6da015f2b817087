// Package routes implements the built-in screens of the generator menu.
//
// Each screen is a [navigator.Handler] that asks the user a question through a [prompt.Prompter], acts on the answer, and navigates to the next screen.
// The session ends when a screen returns without navigating, as the run, help, and exit screens do.
package routes

import (
	"context"
	"errors"
	"fmt"
	"github.com/saylorsolutions/genmenu/cli"
	"github.com/saylorsolutions/genmenu/config"
	"github.com/saylorsolutions/genmenu/globalconfig"
	"github.com/saylorsolutions/genmenu/navigator"
	"github.com/saylorsolutions/genmenu/prompt"
	"github.com/saylorsolutions/genmenu/registry"
	"github.com/saylorsolutions/genmenu/spawn"
	"slices"
	"strings"
)

var (
	ErrUnknownGenerator = errors.New("unknown generator")
	ErrNoRegistry       = errors.New("no package registry configured")
)

// GlobalStore is the persisted global configuration that the clearConfig screen manages.
type GlobalStore interface {
	GetAll() map[string]globalconfig.Settings
	Remove(key string) error
	RemoveAll() error
}

// Searcher finds installable generator packages.
type Searcher interface {
	Search(ctx context.Context, term string) ([]registry.Package, error)
	Deprecated(ctx context.Context, name string) (bool, error)
}

// RunCounter records generator runs, so frequently used generators are listed first.
type RunCounter interface {
	IncrementRunCount(name string) error
}

// Routes holds the collaborators used by the built-in screens, beyond what the [navigator.Navigator] provides.
type Routes struct {
	Prompt     prompt.Prompter
	Global     GlobalStore // Global may be nil, which hides the clearConfig entry on the home screen.
	Registry   Searcher
	Spawner    spawn.Runner // Spawner runs the package manager, and defaults to [spawn.Inherit].
	Counts     RunCounter   // Counts is optional.
	Printer    *cli.Printer
	DenyList   []string // DenyList names packages that are never offered for installation.
	NPMCommand string   // NPMCommand defaults to "npm".
}

// Register adds every built-in screen to nav.
// Passing a Routes without a Prompt will panic.
func (r *Routes) Register(nav *navigator.Navigator) *navigator.Navigator {
	if r.Prompt == nil {
		panic("nil prompter")
	}
	if r.Printer == nil {
		r.Printer = cli.NewPrinter()
	}
	if r.Spawner == nil {
		r.Spawner = spawn.Inherit()
	}
	if len(r.NPMCommand) == 0 {
		r.NPMCommand = "npm"
	}
	return nav.
		RegisterRoute(navigator.RouteHome, r.home).
		RegisterRoute(navigator.RouteRun, r.run).
		RegisterRoute(navigator.RouteInstall, r.install).
		RegisterRoute(navigator.RouteUpdate, r.update).
		RegisterRoute(navigator.RouteClearConfig, r.clearConfig).
		RegisterRoute(navigator.RouteHelp, r.help).
		RegisterRoute(navigator.RouteExit, r.exit)
}

// runCounts reads run counts, keyed by short name, from the navigator's config.
func runCounts(nav *navigator.Navigator) map[string]int {
	if nav.Config() == nil {
		return map[string]int{}
	}
	return config.CountsFrom(nav.Config().Get(config.KeyRunCount))
}

// installed returns the navigator's generator view ordered by run count, most used first, and then by pretty name.
func installed(nav *navigator.Navigator) []navigator.Generator {
	counts := runCounts(nav)
	gens := make([]navigator.Generator, 0)
	for _, gen := range nav.Generators() {
		gens = append(gens, gen)
	}
	slices.SortFunc(gens, func(a, b navigator.Generator) int {
		if diff := counts[b.ShortName()] - counts[a.ShortName()]; diff != 0 {
			return diff
		}
		if cmp := strings.Compare(a.PrettyName, b.PrettyName); cmp != 0 {
			return cmp
		}
		return strings.Compare(a.Name, b.Name)
	})
	return gens
}

// findGenerator resolves a generator by package name, short name, or namespace.
func findGenerator(nav *navigator.Navigator, name string) (navigator.Generator, error) {
	gens := nav.Generators()
	if gen, ok := gens[name]; ok {
		return gen, nil
	}
	for _, gen := range gens {
		if gen.ShortName() == name || gen.Namespace == name {
			return gen, nil
		}
	}
	if nav.Env() != nil {
		if gen, ok := nav.Env().Get(name); ok {
			return gen, nil
		}
	}
	return navigator.Generator{}, fmt.Errorf("%w: %s", ErrUnknownGenerator, name)
}

// cancelled reports whether err should end the session rather than being shown to the user.
func cancelled(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, prompt.ErrCancelled)
}

func (r *Routes) installPackages(ctx context.Context, nav *navigator.Navigator, names ...string) error {
	args := append([]string{"install", "--global"}, names...)
	nav.Logger().Debug("Installing packages", "command", r.NPMCommand, "packages", names)
	if err := r.Spawner.Run(ctx, r.NPMCommand, args...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.Printer.Failf("Failed to install %s: %v", strings.Join(names, ", "), err)
		return nav.Navigate(ctx, navigator.RouteHome)
	}
	r.Printer.Successf("Installed %s", strings.Join(names, ", "))
	if err := nav.RefreshGenerators(ctx); err != nil {
		nav.Logger().Warn("Failed to refresh generators after install", "error", err)
	}
	return nav.Navigate(ctx, navigator.RouteHome)
}
