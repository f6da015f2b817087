package routes

import (
	"context"
	"errors"
	"fmt"
	"github.com/saylorsolutions/genmenu/navigator"
)

// run expects a [navigator.Generator], or the name of one, as its first argument.
func (r *Routes) run(ctx context.Context, nav *navigator.Navigator, args ...any) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no generator given", ErrUnknownGenerator)
	}
	var gen navigator.Generator
	switch arg := args[0].(type) {
	case navigator.Generator:
		gen = arg
	case string:
		found, err := findGenerator(nav, arg)
		if err != nil {
			return err
		}
		gen = found
	default:
		return fmt.Errorf("%w: unexpected argument type %T", ErrUnknownGenerator, arg)
	}
	if nav.Env() == nil {
		return errors.New("no generator environment to run with")
	}
	if r.Counts != nil {
		if err := r.Counts.IncrementRunCount(gen.ShortName()); err != nil {
			nav.Logger().Warn("Failed to record generator run", "generator", gen.Name, "error", err)
		}
	}
	r.Printer.Warnf("\nMake sure you are in the directory you want to scaffold into.")
	r.Printer.Printf("This generator can also be run with: %s\n\n", r.Printer.Colorize("4", "genmenu run "+gen.ShortName()))
	return nav.Env().Run(ctx, gen.Namespace)
}
