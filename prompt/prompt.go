/*
Package prompt gathers input from the user for route handlers.

A [Prompter] asks three kinds of questions:
  - [Prompter.Select] picks one value from a list of [Choice].
  - [Prompter.Checkbox] picks any number of values from a list of [Choice].
  - [Prompter.Input] reads free text.

[Terminal] renders interactive lists when attached to a terminal, while [Line] reads numbered answers from any reader, which is useful for pipes and tests.
Use [Auto] to pick between them.

If the user interrupts a prompt, then [ErrCancelled] is returned.
*/
package prompt

import (
	"context"
	"errors"
	"golang.org/x/term"
	"io"
	"os"
)

var (
	ErrCancelled = errors.New("prompt cancelled by user")
	ErrNoChoices = errors.New("no selectable choices")
)

// Choice is a single entry in a list prompt.
// Separators are displayed but can't be selected.
type Choice struct {
	Name      string // Name is the label shown to the user. The Value is shown if this is empty.
	Value     string
	Checked   bool // Checked pre-selects the Choice in a checkbox prompt. A blank [Line] answer selects the checked choices.
	Separator bool
}

// Label returns the text displayed for the [Choice].
func (c Choice) Label() string {
	if len(c.Name) > 0 {
		return c.Name
	}
	return c.Value
}

// Separator creates a non-selectable [Choice] that groups other choices under a label.
func Separator(label string) Choice {
	return Choice{Name: label, Separator: true}
}

// Question describes a list prompt.
type Question struct {
	Name    string // Name identifies the question, such as "whatNext".
	Message string
	Choices []Choice
}

func (q Question) selectable() []Choice {
	var choices []Choice
	for _, c := range q.Choices {
		if !c.Separator {
			choices = append(choices, c)
		}
	}
	return choices
}

// InputQuestion describes a free text prompt.
type InputQuestion struct {
	Name     string
	Message  string
	Default  string            // Default is returned when the user enters nothing.
	Validate func(string) error // Validate may reject an answer, and the user is asked again.
}

// Prompter asks the user questions.
type Prompter interface {
	Select(ctx context.Context, q Question) (string, error)
	Checkbox(ctx context.Context, q Question) ([]string, error)
	Input(ctx context.Context, q InputQuestion) (string, error)
}

// Required is an [InputQuestion.Validate] function that rejects blank answers.
func Required(answer string) error {
	for _, r := range answer {
		if r != ' ' && r != '\t' {
			return nil
		}
	}
	return errors.New("an answer is required")
}

// Auto returns a [Terminal] if in is a terminal, and a [Line] otherwise.
func Auto(in *os.File, out io.Writer, styles Styles) Prompter {
	if term.IsTerminal(int(in.Fd())) {
		return NewTerminal(in, out, styles)
	}
	return NewLine(in, out)
}
