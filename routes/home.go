package routes

import (
	"context"
	"github.com/saylorsolutions/genmenu/navigator"
	"github.com/saylorsolutions/genmenu/prompt"
	"strings"
)

const runPrefix = "run:"

func (r *Routes) home(ctx context.Context, nav *navigator.Navigator, _ ...any) error {
	gens := installed(nav)
	var choices []prompt.Choice
	if len(gens) > 0 {
		choices = append(choices, prompt.Separator("Run a generator"))
		for _, gen := range gens {
			choices = append(choices, prompt.Choice{Name: gen.PrettyName, Value: runPrefix + gen.Name})
		}
		choices = append(choices, prompt.Separator(""))
	} else {
		r.Printer.Warnf("You don't seem to have a generator installed. Install one to get started.")
	}
	choices = append(choices, prompt.Choice{Name: "Install a generator", Value: string(navigator.RouteInstall)})
	if len(gens) > 0 {
		choices = append(choices, prompt.Choice{Name: "Update your generators", Value: string(navigator.RouteUpdate)})
	}
	if r.Global != nil && len(r.Global.GetAll()) > 0 {
		choices = append(choices, prompt.Choice{Name: "Clear global config", Value: string(navigator.RouteClearConfig)})
	}
	choices = append(choices,
		prompt.Choice{Name: "Get me some help", Value: string(navigator.RouteHelp)},
		prompt.Choice{Name: "Get me out of here!", Value: string(navigator.RouteExit)},
	)

	answer, err := r.Prompt.Select(ctx, prompt.Question{
		Name:    "whatNext",
		Message: "What would you like to do?",
		Choices: choices,
	})
	if err != nil {
		return err
	}
	if name, ok := strings.CutPrefix(answer, runPrefix); ok {
		gen, err := findGenerator(nav, name)
		if err != nil {
			return err
		}
		return nav.Navigate(ctx, navigator.RouteRun, gen)
	}
	return nav.Navigate(ctx, navigator.Route(answer))
}
