package genenv

import (
	"github.com/saylorsolutions/genmenu/navigator"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"strings"
)

// PrettyName turns a package name into a display label.
// It's safe to call from multiple goroutines.
//
//	PrettyName("generator-foo-bar")     // Foo Bar
//	PrettyName("@acme/generator-web")   // Web
func PrettyName(name string) string {
	short := navigator.ShortName(name)
	if _, after, scoped := strings.Cut(short, "/"); scoped {
		short = after
	}
	words := strings.FieldsFunc(short, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})
	// A Caser holds state between calls, so each call gets its own.
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// Namespace returns the identifier used to run the default generator in a package.
func Namespace(name string) string {
	return navigator.ShortName(name) + ":app"
}

// Describe builds a [navigator.Generator] from a package name.
func Describe(name string) navigator.Generator {
	return navigator.Generator{
		Name:       name,
		PrettyName: PrettyName(name),
		Namespace:  Namespace(name),
	}
}
