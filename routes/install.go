package routes

import (
	"context"
	"fmt"
	"github.com/saylorsolutions/genmenu/navigator"
	"github.com/saylorsolutions/genmenu/prompt"
	"github.com/saylorsolutions/genmenu/registry"
	"sync"
)

// deprecationWorkers bounds the concurrent package lookups made while filtering search results.
const deprecationWorkers = 8

func (r *Routes) install(ctx context.Context, nav *navigator.Navigator, _ ...any) error {
	term, err := r.Prompt.Input(ctx, prompt.InputQuestion{
		Name:     "searchTerm",
		Message:  "Search npm for generators:",
		Validate: prompt.Required,
	})
	if err != nil {
		return err
	}
	if r.Registry == nil {
		return ErrNoRegistry
	}
	pkgs, err := r.search(ctx, nav, term)
	if err != nil {
		if cancelled(ctx, err) {
			return err
		}
		r.Printer.Failf("Failed to search for generators: %v", err)
		return nav.Navigate(ctx, navigator.RouteHome)
	}

	q := prompt.Question{Name: "toInstall"}
	if len(pkgs) > 0 {
		q.Message = "Here's what I found. Install one?"
		for _, pkg := range pkgs {
			q.Choices = append(q.Choices, prompt.Choice{Name: describe(pkg), Value: pkg.Name})
		}
		q.Choices = append(q.Choices, prompt.Separator(""))
	} else {
		q.Message = "Sorry, no results matches your search term"
	}
	q.Choices = append(q.Choices,
		prompt.Choice{Name: "Search again", Value: string(navigator.RouteInstall)},
		prompt.Choice{Name: "Return home", Value: string(navigator.RouteHome)},
	)
	answer, err := r.Prompt.Select(ctx, q)
	if err != nil {
		return err
	}
	switch navigator.Route(answer) {
	case navigator.RouteInstall, navigator.RouteHome:
		return nav.Navigate(ctx, navigator.Route(answer))
	}
	return r.installPackages(ctx, nav, answer)
}

func describe(pkg registry.Package) string {
	if len(pkg.Description) == 0 {
		return pkg.Name
	}
	return fmt.Sprintf("%s - %s", pkg.Name, pkg.Description)
}

// search returns installable generators matching term, best matches first.
func (r *Routes) search(ctx context.Context, nav *navigator.Navigator, term string) ([]registry.Package, error) {
	found, err := r.Registry.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	var installedNames []string
	for name := range nav.Generators() {
		installedNames = append(installedNames, name)
	}
	absent := func(pkg registry.Package) bool {
		if nav.Env() == nil {
			return true
		}
		_, ok := nav.Env().Get(pkg.Name)
		return !ok
	}
	filter := registry.IsGenerator().
		And(registry.Matches(term)).
		And(registry.Not(registry.Named(installedNames...))).
		And(absent).
		And(registry.Not(registry.Named(r.DenyList...)))
	candidates := r.dropDeprecated(ctx, nav, registry.Select(found, filter))
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	nav.Logger().Debug("Searched for generators", "term", term, "results", len(found), "candidates", len(candidates))
	return registry.Rank(term, candidates), nil
}

// dropDeprecated removes packages whose latest version is deprecated, keeping the original order.
// Packages that can't be checked are kept.
func (r *Routes) dropDeprecated(ctx context.Context, nav *navigator.Navigator, pkgs []registry.Package) []registry.Package {
	var (
		wg         sync.WaitGroup
		sem        = make(chan struct{}, deprecationWorkers)
		deprecated = make([]bool, len(pkgs))
	)
	for i, pkg := range pkgs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()
			isDeprecated, err := r.Registry.Deprecated(ctx, pkg.Name)
			if err != nil {
				nav.Logger().Debug("Unable to check for deprecation", "package", pkg.Name, "error", err)
				return
			}
			deprecated[i] = isDeprecated
		}()
	}
	wg.Wait()
	current := make([]registry.Package, 0, len(pkgs))
	for i, pkg := range pkgs {
		if !deprecated[i] {
			current = append(current, pkg)
		}
	}
	return current
}
