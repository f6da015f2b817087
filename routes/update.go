package routes

import (
	"context"
	"github.com/saylorsolutions/genmenu/navigator"
	"github.com/saylorsolutions/genmenu/prompt"
)

func (r *Routes) update(ctx context.Context, nav *navigator.Navigator, _ ...any) error {
	gens := installed(nav)
	if len(gens) == 0 {
		r.Printer.Warnf("There are no generators to update.")
		return nav.Navigate(ctx, navigator.RouteHome)
	}
	q := prompt.Question{
		Name:    "generators",
		Message: "Generators to update",
	}
	for _, gen := range gens {
		q.Choices = append(q.Choices, prompt.Choice{Name: gen.PrettyName, Value: gen.Name, Checked: true})
	}
	names, err := r.Prompt.Checkbox(ctx, q)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return nav.Navigate(ctx, navigator.RouteHome)
	}
	return r.installPackages(ctx, nav, names...)
}
