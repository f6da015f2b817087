package cli

import (
	"fmt"
)

// MustGet is used with a [pflag.FlagSet] getter to panic if the flag is not defined, or is not the right type.
// Flags are registered by the same code that reads them, so a failure here is a programming error.
func MustGet[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MapArgs assigns positional arguments to targets in order, and requires at least the first minArgs of them.
// Extra arguments are ignored, and targets without an argument are left unchanged.
//
// Missing arguments are returned as a [UsageError] wrapping [ErrArgMap], naming the first missing target.
// Passing fewer names than minArgs, or a nil target, will panic.
func MapArgs(args []string, minArgs int, targets ...Arg) error {
	if len(targets) < minArgs {
		panic(fmt.Sprintf("%d argument targets can't satisfy %d required arguments", len(targets), minArgs))
	}
	for i, target := range targets {
		if target.Target == nil {
			panic(fmt.Sprintf("nil target for argument '%s'", target.Name))
		}
		if i >= len(args) {
			if i < minArgs {
				return &UsageError{wrapped: fmt.Errorf("%w: %s", ErrArgMap, target.Name)}
			}
			continue
		}
		*target.Target = args[i]
	}
	return nil
}

// Arg names a positional argument for [MapArgs].
type Arg struct {
	Name   string
	Target *string
}
