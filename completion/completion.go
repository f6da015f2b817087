// Package completion provides shell completion for the genmenu command line.
//
// The shell script printed by [Script] calls back into the program with the words typed so far, and the program answers with [Completer.Candidates], one per line.
package completion

import (
	"context"
	"errors"
	"fmt"
	"github.com/saylorsolutions/genmenu/navigator"
	"regexp"
	"slices"
	"strings"
	"text/template"
)

var (
	ErrUnsupportedShell = errors.New("unsupported shell")

	// Shells lists the shells that [Script] supports.
	Shells = []string{"bash", "zsh"}

	identPattern = regexp.MustCompile(`[^A-Za-z0-9_]`)
	scripts      = map[string]*template.Template{
		"bash": template.Must(template.New("bash").Parse(bashScript)),
		"zsh":  template.Must(template.New("zsh").Parse(zshScript)),
	}
)

const bashScript = `# {{.Prog}} completion for bash
# Add this to your ~/.bashrc: eval "$({{.Prog}} completion bash)"
_{{.Func}}_completion() {
  local IFS=$'\n'
  COMPREPLY=($({{.Prog}} complete -- "${COMP_WORDS[@]:1:$COMP_CWORD}" 2>/dev/null))
}
complete -o default -F _{{.Func}}_completion {{.Prog}}
`

const zshScript = `#compdef {{.Prog}}
# {{.Prog}} completion for zsh
# Add this to your ~/.zshrc: eval "$({{.Prog}} completion zsh)"
_{{.Func}}_completion() {
  local -a candidates
  candidates=("${(@f)$({{.Prog}} complete -- "${(@)words[2,$CURRENT]}" 2>/dev/null)}")
  compadd -a candidates
}
compdef _{{.Func}}_completion {{.Prog}}
`

// Script returns the completion script for shell, which registers completion for the program named prog.
func Script(shell, prog string) (string, error) {
	tmpl, ok := scripts[strings.ToLower(shell)]
	if !ok {
		return "", fmt.Errorf("%w '%s', expected one of %s", ErrUnsupportedShell, shell, strings.Join(Shells, ", "))
	}
	if len(prog) == 0 {
		return "", errors.New("empty program name")
	}
	var buf strings.Builder
	err := tmpl.Execute(&buf, struct {
		Prog string
		Func string
	}{
		Prog: prog,
		Func: identPattern.ReplaceAllString(prog, "_"),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Lister lists installed generators.
type Lister interface {
	Generators(ctx context.Context) ([]navigator.Generator, error)
}

// Completer produces candidates for the word being completed.
type Completer struct {
	Commands []string // Commands are the top-level sub-commands.
	Env      Lister   // Env supplies generator names for the run sub-command, and may be nil.
}

// Candidates returns the sorted completions for the last of words, where words are the arguments typed after the program name.
// The last word may be empty, which matches every candidate.
func (c *Completer) Candidates(ctx context.Context, words []string) ([]string, error) {
	if len(words) == 0 {
		words = []string{""}
	}
	prefix := words[len(words)-1]
	var options []string
	switch {
	case len(words) == 1:
		options = c.Commands
	case len(words) == 2 && words[0] == "run":
		if c.Env == nil {
			return nil, nil
		}
		gens, err := c.Env.Generators(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list generators: %w", err)
		}
		for _, gen := range gens {
			options = append(options, gen.ShortName())
		}
	case len(words) == 2 && words[0] == "completion":
		options = Shells
	}
	return filter(options, prefix), nil
}

func filter(options []string, prefix string) []string {
	var matched []string
	for _, option := range options {
		if strings.HasPrefix(option, prefix) {
			matched = append(matched, option)
		}
	}
	slices.Sort(matched)
	return slices.Compact(matched)
}
