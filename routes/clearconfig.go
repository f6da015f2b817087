package routes

import (
	"context"
	"github.com/charmbracelet/lipgloss"
	"github.com/saylorsolutions/genmenu/navigator"
	"github.com/saylorsolutions/genmenu/prompt"
	"slices"
	"strings"
)

const (
	clearAll     = "*"
	notInstalled = " (not installed anymore)"
)

var notInstalledColor = lipgloss.Color("1")

func (r *Routes) clearConfig(ctx context.Context, nav *navigator.Navigator, _ ...any) error {
	if r.Global == nil {
		r.Printer.Warnf("There is no global config to clear.")
		return nav.Navigate(ctx, navigator.RouteHome)
	}
	var (
		entries = r.Global.GetAll()
		gens    = nav.Generators()
		counts  = runCounts(nav)
		keys    = make([]string, 0, len(entries))
	)
	for key := range entries {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if diff := counts[navigator.ShortName(b)] - counts[navigator.ShortName(a)]; diff != 0 {
			return diff
		}
		return strings.Compare(a, b)
	})

	q := prompt.Question{
		Name:    "whatNext",
		Message: "Which store would you like to clear?",
	}
	for _, key := range keys {
		name := navigator.ShortName(key) + r.Printer.Colorize(notInstalledColor, notInstalled)
		if gen, ok := gens[key]; ok {
			name = gen.PrettyName
		}
		q.Choices = append(q.Choices, prompt.Choice{Name: name, Value: key})
	}
	q.Choices = append(q.Choices,
		prompt.Separator(""),
		prompt.Choice{Name: "Clear all", Value: clearAll},
		prompt.Choice{Name: "Return to the home screen", Value: string(navigator.RouteHome)},
	)
	answer, err := r.Prompt.Select(ctx, q)
	if err != nil {
		return err
	}
	switch answer {
	case string(navigator.RouteHome):
	case clearAll:
		if err := r.Global.RemoveAll(); err != nil {
			r.Printer.Failf("Failed to clear global config: %v", err)
		} else {
			r.Printer.Successf("Global config cleared.")
		}
	default:
		if err := r.Global.Remove(answer); err != nil {
			r.Printer.Failf("Failed to clear global config for %s: %v", answer, err)
		} else {
			r.Printer.Successf("Global config cleared for %s.", answer)
		}
	}
	return nav.Navigate(ctx, navigator.RouteHome)
}
