package routes

import (
	"context"
	"github.com/saylorsolutions/genmenu/navigator"
	"github.com/saylorsolutions/genmenu/prompt"
)

var helpLinks = []prompt.Choice{
	{Name: "Take me to the documentation", Value: "https://yeoman.io/learning/"},
	{Name: "Browse the generator directory", Value: "https://yeoman.io/generators/"},
	{Name: "Ask for help on Stack Overflow", Value: "https://stackoverflow.com/questions/tagged/yeoman"},
	{Name: "Report an issue", Value: "https://github.com/yeoman/yo/issues"},
}

func (r *Routes) help(ctx context.Context, nav *navigator.Navigator, _ ...any) error {
	choices := append(append([]prompt.Choice{}, helpLinks...),
		prompt.Separator(""),
		prompt.Choice{Name: "Return home", Value: string(navigator.RouteHome)},
	)
	answer, err := r.Prompt.Select(ctx, prompt.Question{
		Name:    "whereTo",
		Message: "Here are a few helpful resources.",
		Choices: choices,
	})
	if err != nil {
		return err
	}
	if answer == string(navigator.RouteHome) {
		return nav.Navigate(ctx, navigator.RouteHome)
	}
	r.Printer.Printf("Open this link in your browser: %s\n", r.Printer.Colorize("4", answer))
	return nil
}

func (r *Routes) exit(_ context.Context, _ *navigator.Navigator, _ ...any) error {
	r.Printer.Println("Bye from us! Chat soon.")
	return nil
}
