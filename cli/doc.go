/*
Package cli structures the genmenu command line as a tree of sub-commands.

  - User-visible output goes to STDERR by default through a [Printer], leaving STDOUT for generator output and completion candidates.
  - Flags are parsed with [pflag], and are NOT interspersed with arguments.
  - Every [Command] gets '-h' and '--help' flags that print its usage.
  - A [CommandSet] may name a default sub-command with [CommandSet.Default], which runs when no sub-command is given.

# Invocation

	genmenu [SUB-COMMAND...] [FLAGS...] [ARGS...]

Each [CommandFunc] receives a [context.Context] that is cancelled when the user interrupts the process, see [InterruptContext].

[pflag]: https://github.com/spf13/pflag
*/
package cli
