package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/saylorsolutions/genmenu/cli"
	"github.com/saylorsolutions/genmenu/completion"
	"github.com/saylorsolutions/genmenu/config"
	"github.com/saylorsolutions/genmenu/genenv"
	"github.com/saylorsolutions/genmenu/globalconfig"
	"github.com/saylorsolutions/genmenu/logging"
	"github.com/saylorsolutions/genmenu/navigator"
	"github.com/saylorsolutions/genmenu/prompt"
	"github.com/saylorsolutions/genmenu/registry"
	"github.com/saylorsolutions/genmenu/routes"
	"github.com/saylorsolutions/genmenu/spawn"
	flag "github.com/spf13/pflag"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"
)

const (
	progName = "genmenu"

	exitError     = 1
	exitCancelled = 130
)

// app holds the streams a session talks through.
type app struct {
	stdin   *os.File
	stdout  io.Writer
	stderr  io.Writer
	printer *cli.Printer
}

// session is everything a route needs, built from settings.
type session struct {
	nav    *navigator.Navigator
	env    *genenv.Environment
	logger *slog.Logger
	close  func() error
}

func run(args []string, stdin *os.File, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	set := a.commands()
	a.printer = set.Printer()
	a.printer.Redirect(stderr)
	if _, noColor := os.LookupEnv(config.EnvNoColor); noColor {
		a.printer.DisableColor()
	}

	ctx, stop := cli.InterruptContext(context.Background(), func() {
		os.Exit(exitCancelled)
	})
	defer stop()

	if set.RespondUsage(args, "Interactive menu for installing and running project generators.") {
		return 0
	}
	err := set.Exec(ctx, args)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, prompt.ErrCancelled), errors.Is(err, context.Canceled):
		return exitCancelled
	case errors.Is(err, &cli.UsageError{}):
		// Already printed with the command's usage.
	case errors.Is(err, cli.ErrUnknownCommand):
		a.printer.Failf("%v", err)
		a.printer.Println()
		a.printer.Print(set.CommandUsages())
	case navigator.IsRouteNotFound(err):
		a.printer.Failf("Internal error, the menu tried to open a screen that doesn't exist: %v", err)
	default:
		a.printer.Failf("Error: %v", err)
	}
	return exitError
}

func addSessionFlags(flags *flag.FlagSet) {
	flags.StringP("config", "c", "", "Reads settings from this TOML file")
	flags.Bool("debug", false, "Enables debug logging")
}

func (a *app) commands() *cli.CommandSet {
	set := cli.NewCommandSet(progName)

	navigateTo := func(route navigator.Route) cli.CommandFunc {
		return func(ctx context.Context, flags *flag.FlagSet, _ *cli.Printer) error {
			s, err := a.open(ctx, flags, true)
			if err != nil {
				return err
			}
			defer s.release()
			return s.nav.Navigate(ctx, route)
		}
	}

	menu := set.AddCommand("menu", "Opens the interactive menu", "home")
	addSessionFlags(menu.Flags())
	menu.Usage("[FLAGS]").Does(navigateTo(navigator.RouteHome))

	install := set.AddCommand("install", "Searches for generators to install", "i")
	addSessionFlags(install.Flags())
	install.Usage("install [FLAGS]").Does(navigateTo(navigator.RouteInstall))

	update := set.AddCommand("update", "Updates installed generators", "u")
	addSessionFlags(update.Flags())
	update.Usage("update [FLAGS]").Does(navigateTo(navigator.RouteUpdate))

	clearCmd := set.AddCommand("clear-config", "Clears generator entries from the global config")
	addSessionFlags(clearCmd.Flags())
	clearCmd.Usage("clear-config [FLAGS]").Does(navigateTo(navigator.RouteClearConfig))

	runCmd := set.AddCommand("run", "Runs an installed generator", "r")
	addSessionFlags(runCmd.Flags())
	runCmd.Usage("run [FLAGS] GENERATOR").Does(func(ctx context.Context, flags *flag.FlagSet, _ *cli.Printer) error {
		var name string
		if err := cli.MapArgs(flags.Args(), 1, cli.Arg{Name: "GENERATOR", Target: &name}); err != nil {
			return err
		}
		s, err := a.open(ctx, flags, true)
		if err != nil {
			return err
		}
		defer s.release()
		return s.nav.Navigate(ctx, navigator.RouteRun, name)
	})

	script := set.AddCommand("completion", "Prints a shell completion script")
	script.Usage("completion [bash|zsh]").Does(func(_ context.Context, flags *flag.FlagSet, _ *cli.Printer) error {
		shell := "bash"
		if flags.NArg() > 0 {
			shell = flags.Arg(0)
		}
		text, err := completion.Script(shell, progName)
		if err != nil {
			return cli.AsUsage(err)
		}
		_, err = fmt.Fprint(a.stdout, text)
		return err
	})

	complete := set.AddCommand("complete", "Prints completion candidates for the given words")
	addSessionFlags(complete.Flags())
	complete.Usage("complete [FLAGS] -- WORDS...").Does(func(ctx context.Context, flags *flag.FlagSet, _ *cli.Printer) error {
		s, err := a.open(ctx, flags, false)
		if err != nil {
			return err
		}
		defer s.release()
		completer := &completion.Completer{
			Commands: slices.DeleteFunc(set.Keys(), func(key string) bool { return key == "complete" }),
			Env:      s.env,
		}
		candidates, err := completer.Candidates(ctx, flags.Args())
		if err != nil {
			return err
		}
		for _, candidate := range candidates {
			_, _ = fmt.Fprintln(a.stdout, candidate)
		}
		return nil
	})

	set.Default("menu")
	return set
}

// open loads settings and wires the collaborators for a session.
// Interactive sessions also refresh the installed generators and register the menu screens.
func (a *app) open(ctx context.Context, flags *flag.FlagSet, interactive bool) (*session, error) {
	settings, err := config.Load(cli.MustGet(flags.GetString("config")))
	if err != nil {
		return nil, err
	}
	debug := settings.Debug || config.EnvBool(config.EnvDebug, false) || cli.MustGet(flags.GetBool("debug"))
	logger, closeLog, err := logging.New(logging.Options{
		Debug:  debug,
		Output: a.printer,
		File:   settings.LogFile,
	})
	if err != nil {
		return nil, err
	}
	s := &session{logger: logger, close: closeLog}

	envOpts := []genenv.Option{
		genenv.WithRunCommand(settings.RunCommand),
		genenv.WithLogger(logger),
	}
	if len(settings.LookupPaths) > 0 {
		envOpts = append(envOpts, genenv.WithLookupPaths(settings.LookupPaths...))
	}
	s.env = genenv.New(envOpts...)
	if !interactive {
		return s, nil
	}

	insight, err := config.OpenStore(settings.InsightPath)
	if err != nil {
		s.release()
		return nil, err
	}
	globalPath := settings.GlobalConfig
	if len(globalPath) == 0 {
		if globalPath, err = globalconfig.DefaultPath(); err != nil {
			s.release()
			return nil, err
		}
	}
	global, err := globalconfig.Open(globalPath)
	if err != nil {
		s.release()
		return nil, err
	}
	client, err := registry.NewClient(settings.RegistryURL,
		registry.WithLogger(logger),
		registry.WithSearchSize(settings.SearchSize),
		registry.WithRetries(settings.SearchAttempts, 500*time.Millisecond),
	)
	if err != nil {
		s.release()
		return nil, err
	}

	styles := prompt.DefaultStyles()
	if _, noColor := os.LookupEnv(config.EnvNoColor); noColor {
		styles = prompt.PlainStyles()
	}
	s.nav = navigator.New(s.env, insight, navigator.WithLogger(logger))
	r := &routes.Routes{
		Prompt:     prompt.Auto(a.stdin, a.stderr, styles),
		Global:     global,
		Registry:   client,
		Spawner:    spawn.Inherit(),
		Counts:     insight,
		Printer:    a.printer,
		DenyList:   settings.DenyList,
		NPMCommand: settings.NPMCommand,
	}
	r.Register(s.nav)
	if err := s.nav.RefreshGenerators(ctx); err != nil {
		s.release()
		return nil, err
	}
	return s, nil
}

func (s *session) release() {
	if err := s.close(); err != nil {
		s.logger.Warn("Failed to close log file", "error", err)
	}
}
