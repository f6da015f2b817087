package cli

import (
	"context"
	"errors"
	"fmt"
	flag "github.com/spf13/pflag"
	"regexp"
	"slices"
	"strings"
)

var (
	HelpPatterns      = []string{"--help", "-h"} // HelpPatterns is a slice of flags that trigger usage output from the top-level [CommandSet].

	keyCleansePattern = regexp.MustCompile(`\s`)
)

// CommandFunc is a function that may be executed within a [Command].
type CommandFunc = func(ctx context.Context, flags *flag.FlagSet, printer *Printer) error

// Command is an executable function in a CLI.
// It should be linked to a [CommandSet] to establish a tree of commands available to the user.
type Command struct {
	CommandSet
	flags      *flag.FlagSet
	exec       CommandFunc
	parent     string
	shortUsage string
	aliases    []string
}

func cleanseKey(key string) string {
	return keyCleansePattern.ReplaceAllString(strings.ToLower(key), "")
}

func newCommand(key, parent, shortUsage string, printer *Printer) *Command {
	key = cleanseKey(key)
	fs := flag.NewFlagSet(key, flag.ContinueOnError)
	fs.BoolP("help", "h", false, "Prints this usage information")
	fs.SetInterspersed(false)
	fs.SetOutput(printer)
	cmd := &Command{flags: fs, parent: parent, shortUsage: shortUsage}
	cmd.CommandSet.printer = printer
	if len(parent) > 0 {
		cmd.CommandSet.parent = strings.Join([]string{parent, key}, " ")
	} else {
		cmd.CommandSet.parent = key
	}
	cmd.Usage("%s", key).Does(func(_ context.Context, flags *flag.FlagSet, _ *Printer) error {
		flags.Usage()
		return nil
	})
	return cmd
}

// Does specifies the [CommandFunc] that should be executed by this [Command].
func (c *Command) Does(commandFunc CommandFunc) *Command {
	if commandFunc == nil {
		return c
	}
	c.exec = commandFunc
	return c
}

// Flags returns the [flag.FlagSet] for this [Command].
func (c *Command) Flags() *flag.FlagSet {
	return c.flags
}

// Usage allows specifying a longer description of the [Command] that will be output when a [HelpPatterns] flag is passed.
//
// The short description, flag usages, and sub-command usages will be appended to this description.
func (c *Command) Usage(format string, args ...any) *Command {
	text := fmt.Sprintf(format, args...)
	if len(c.parent) > 0 && len(text) > 0 {
		text = c.parent + " " + text
	}
	if len(text) > 0 {
		text = "USAGE:\n" + text
	}
	c.flags.Usage = func() {
		var buf strings.Builder
		if len(text) == 0 {
			buf.WriteString("\n" + c.shortUsage)
		} else {
			if !strings.HasSuffix(text, "\n") {
				text += "\n"
			}
			buf.WriteString(fmt.Sprintf("%s\n\n%s", c.shortUsage, text))
		}
		buf.WriteString("\nFLAGS\n")
		buf.WriteString(c.flags.FlagUsages())
		if len(c.CommandSet.commands) > 0 {
			buf.WriteString("\nCOMMANDS\n")
			buf.WriteString(c.CommandUsages())
		}
		c.Printer().Print(buf.String())
	}
	return c
}

// Exec executes the command with given arguments, parsing flags.
// If the first argument names a sub-command, then that is executed instead.
//
// A [UsageError] returned from the [CommandFunc] is printed along with this command's usage, and then returned.
func (c *Command) Exec(ctx context.Context, args []string) error {
	if err := c.CommandSet.exec(ctx, args, false); err != nil {
		if !errors.Is(err, ErrUnknownCommand) {
			return err
		}
	} else {
		return nil
	}
	if err := c.flags.Parse(args); err != nil {
		return NewUsageError("%w", err)
	}
	if val, _ := c.flags.GetBool("help"); val {
		c.flags.Usage()
		return nil
	}
	err := c.exec(ctx, c.flags, c.Printer())
	if errors.Is(err, &UsageError{}) {
		c.Printer().Println(err)
		c.Printer().Println()
		c.flags.Usage()
	}
	return err
}

// CommandSet is a group of [Command].
type CommandSet struct {
	commands   map[string]*Command
	aliases    map[string]*Command
	defaultKey string
	printer    *Printer
	parent     string
}

// NewCommandSet is used to set up a top level [CommandSet] as the root of a CLI's command structure.
//
// Note: the parent(s) passed to this function will be used to populate sub-command usage information.
// So they should only contain the commands used to invoke this [CommandSet].
func NewCommandSet(parent ...string) *CommandSet {
	var _parent string
	if len(parent) > 0 {
		_parent = strings.Join(parent, " ")
	}
	return &CommandSet{printer: NewPrinter(), parent: _parent}
}

// Parent retrieves the parent [CommandSet] name.
func (s *CommandSet) Parent() string {
	return s.parent
}

// AddCommand adds a sub-command to this [CommandSet].
// The key parameter will be cleansed to remove spaces, and normalize to lower-case.
// Aliases may be added as a way to support shorter variants of the same [Command].
func (s *CommandSet) AddCommand(key, shortUsage string, aliases ...string) *Command {
	key = cleanseKey(key)
	cmd := newCommand(key, s.parent, shortUsage, s.Printer())
	if s.commands == nil {
		s.commands = map[string]*Command{}
	}
	s.commands[key] = cmd
	if len(aliases) > 0 {
		_aliases := make([]string, 0, len(aliases))
		for _, alias := range aliases {
			alias = cleanseKey(alias)
			if len(alias) == 0 {
				continue
			}
			if s.aliases == nil {
				s.aliases = map[string]*Command{}
			}
			s.aliases[alias] = cmd
			_aliases = append(_aliases, alias)
		}
		slices.Sort(_aliases)
		cmd.aliases = _aliases
	}
	return cmd
}

// Default sets the sub-command that is executed when no sub-command key is given, or the first argument is a flag.
// Passing a key that hasn't been added will panic.
func (s *CommandSet) Default(key string) *CommandSet {
	key = cleanseKey(key)
	if _, ok := s.commands[key]; !ok {
		panic(fmt.Sprintf("default command '%s' has not been added", key))
	}
	s.defaultKey = key
	return s
}

// Keys returns the sorted keys of sub-commands in this [CommandSet], excluding aliases.
func (s *CommandSet) Keys() []string {
	keys := make([]string, 0, len(s.commands))
	for key := range s.commands {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Printer returns the cached [Printer] for this [CommandSet].
func (s *CommandSet) Printer() *Printer {
	if s.printer == nil {
		s.printer = NewPrinter()
	}
	return s.printer
}

// Exec executes this [CommandSet].
// It's expected that the first 1+ arguments include the key/alias for a sub-command, unless a [CommandSet.Default] has been set.
func (s *CommandSet) Exec(ctx context.Context, args []string) error {
	return s.exec(ctx, args, true)
}

func (s *CommandSet) exec(ctx context.Context, args []string, useDefault bool) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		if useDefault && len(s.defaultKey) > 0 && !(len(args) > 0 && slices.Contains(HelpPatterns, args[0])) {
			return s.commands[s.defaultKey].Exec(ctx, args)
		}
		return fmt.Errorf("%w: no sub-command given", ErrUnknownCommand)
	}
	key := strings.ToLower(args[0])
	cmd, ok := s.commands[key]
	if !ok {
		cmd, ok = s.aliases[key]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
		}
	}
	return cmd.Exec(ctx, args[1:])
}

// RespondUsage will print usage information with the [Printer] if one of [HelpPatterns] is the first of args.
// If usage information was printed, then true will be returned.
func (s *CommandSet) RespondUsage(args []string, format string, vals ...any) bool {
	if len(args) == 0 {
		return false
	}
	if slices.Contains(HelpPatterns, args[0]) {
		text := fmt.Sprintf(format, vals...)
		if len(text) > 0 {
			text = strings.TrimSuffix("\n\n"+text, "\n")
		}
		usage := fmt.Sprintf("%s%s\n\nCOMMANDS:\n%s", s.parent, text, s.CommandUsages())
		s.Printer().Print(usage)
		return true
	}
	return false
}

// CommandUsages returns a string including the usage information for sub-commands in this [CommandSet].
//
// The sub-command keys will be sorted alphabetically before output.
func (s *CommandSet) CommandUsages() string {
	var (
		buf         strings.Builder
		keys        = s.Keys()
		withAliases = make([]string, len(keys))
		maxLen      int
	)
	for i, key := range keys {
		cmd := s.commands[key]
		withAliases[i] = key
		if len(cmd.aliases) > 0 {
			withAliases[i] = strings.Join(append([]string{key}, cmd.aliases...), ", ")
		}
		if key == s.defaultKey {
			withAliases[i] += " (default)"
		}
		maxLen = max(maxLen, len(withAliases[i]))
	}
	fmtStr := fmt.Sprintf("  %%-%ds\t%%s\n", maxLen)
	for i, key := range keys {
		buf.WriteString(fmt.Sprintf(fmtStr, withAliases[i], s.commands[key].shortUsage))
	}
	return buf.String()
}
