package registry

import (
	"cmp"
	"github.com/agnivade/levenshtein"
	"github.com/saylorsolutions/genmenu/navigator"
	"slices"
	"strings"
)

// Filter returns true if a [Package] should be kept.
type Filter func(Package) bool

// And combines two filters, where both must be true to keep the [Package].
func (f Filter) And(other Filter) Filter {
	if other == nil {
		return f
	}
	return func(pkg Package) bool {
		return f(pkg) && other(pkg)
	}
}

// Or combines two filters, where either must be true to keep the [Package].
func (f Filter) Or(other Filter) Filter {
	if other == nil {
		return f
	}
	return func(pkg Package) bool {
		return f(pkg) || other(pkg)
	}
}

// Not inverts a [Filter].
func Not(filter Filter) Filter {
	return func(pkg Package) bool {
		return !filter(pkg)
	}
}

// IsGenerator keeps packages named like a generator, scoped or not.
func IsGenerator() Filter {
	return func(pkg Package) bool {
		name := pkg.Name
		if _, after, scoped := strings.Cut(name, "/"); scoped && strings.HasPrefix(name, "@") {
			name = after
		}
		return strings.HasPrefix(name, "generator-")
	}
}

// Matches keeps packages where term appears in the name or description, ignoring case.
// An empty term matches everything.
func Matches(term string) Filter {
	term = strings.ToLower(strings.TrimSpace(term))
	return func(pkg Package) bool {
		if len(term) == 0 {
			return true
		}
		return strings.Contains(strings.ToLower(pkg.Name), term) ||
			strings.Contains(strings.ToLower(pkg.Description), term)
	}
}

// Named keeps packages with any of the given names.
func Named(names ...string) Filter {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return func(pkg Package) bool {
		_, ok := set[pkg.Name]
		return ok
	}
}

// Select returns the packages kept by filter, preserving order.
func Select(pkgs []Package, filter Filter) []Package {
	if filter == nil {
		panic("nil filter")
	}
	var kept []Package
	for _, pkg := range pkgs {
		if filter(pkg) {
			kept = append(kept, pkg)
		}
	}
	return kept
}

// Rank orders packages by edit distance between term and the package's short name, closest first.
// Ties keep their original order.
func Rank(term string, pkgs []Package) []Package {
	term = strings.ToLower(strings.TrimSpace(term))
	ranked := slices.Clone(pkgs)
	distance := make(map[string]int, len(ranked))
	for _, pkg := range ranked {
		distance[pkg.Name] = levenshtein.ComputeDistance(term, strings.ToLower(navigator.ShortName(pkg.Name)))
	}
	slices.SortStableFunc(ranked, func(a, b Package) int {
		return cmp.Compare(distance[a.Name], distance[b.Name])
	})
	return ranked
}
