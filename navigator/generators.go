package navigator

import (
	"context"
	"fmt"
	"maps"
	"strings"
)

// Generator describes an installed generator package.
type Generator struct {
	Name       string // Package name, like "generator-unicorn".
	PrettyName string // Human-friendly label, like "Unicorn".
	Namespace  string // Identifier used to run the generator, like "unicorn:app".
	Version    string
	Path       string
}

// ShortName returns the package name without the "generator-" prefix, keeping any npm scope.
func (g Generator) ShortName() string {
	return ShortName(g.Name)
}

// ShortName strips the "generator-" prefix from a package name, keeping any npm scope.
//
//	ShortName("generator-unicorn")      // unicorn
//	ShortName("@acme/generator-web")    // @acme/web
func ShortName(name string) string {
	scope, pkg, scoped := strings.Cut(name, "/")
	if !scoped || !strings.HasPrefix(scope, "@") {
		return strings.TrimPrefix(name, "generator-")
	}
	return scope + "/" + strings.TrimPrefix(pkg, "generator-")
}

// Generators returns a copy of the installed generator view, keyed by package name.
func (n *Navigator) Generators() map[string]Generator {
	n.mux.RLock()
	defer n.mux.RUnlock()
	return maps.Clone(n.generators)
}

// SetGenerators replaces the installed generator view.
func (n *Navigator) SetGenerators(generators map[string]Generator) {
	view := make(map[string]Generator, len(generators))
	maps.Copy(view, generators)
	n.mux.Lock()
	defer n.mux.Unlock()
	n.generators = view
}

// RefreshGenerators rebuilds the installed generator view from the [Environment].
// This should be called after anything that changes which generators are installed.
func (n *Navigator) RefreshGenerators(ctx context.Context) error {
	if n.env == nil {
		return nil
	}
	found, err := n.env.Generators(ctx)
	if err != nil {
		return fmt.Errorf("failed to list generators: %w", err)
	}
	view := make(map[string]Generator, len(found))
	for _, gen := range found {
		view[gen.Name] = gen
	}
	n.SetGenerators(view)
	n.logger.Debug("Refreshed generators", "count", len(view))
	return nil
}
