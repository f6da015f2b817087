package prompt

import (
	"context"
	"errors"
	"fmt"
	tea "github.com/charmbracelet/bubbletea"
	"io"
	"sync"
)

// Terminal renders interactive prompts on a terminal.
type Terminal struct {
	mux    sync.Mutex
	in     io.Reader
	out    io.Writer
	styles Styles
}

func NewTerminal(in io.Reader, out io.Writer, styles Styles) *Terminal {
	return &Terminal{in: in, out: out, styles: styles}
}

func (t *Terminal) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	t.mux.Lock()
	defer t.mux.Unlock()
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
			return nil, ErrCancelled
		}
		return nil, fmt.Errorf("failed to run prompt: %w", err)
	}
	return final, nil
}

func (t *Terminal) Select(ctx context.Context, q Question) (string, error) {
	if len(q.selectable()) == 0 {
		return "", ErrNoChoices
	}
	final, err := t.run(ctx, newListModel(q, t.styles, false))
	if err != nil {
		return "", err
	}
	m := final.(*listModel)
	if m.cancelled || !m.done {
		return "", ErrCancelled
	}
	return m.value(), nil
}

func (t *Terminal) Checkbox(ctx context.Context, q Question) ([]string, error) {
	if len(q.selectable()) == 0 {
		return nil, ErrNoChoices
	}
	final, err := t.run(ctx, newListModel(q, t.styles, true))
	if err != nil {
		return nil, err
	}
	m := final.(*listModel)
	if m.cancelled || !m.done {
		return nil, ErrCancelled
	}
	return m.values(), nil
}

func (t *Terminal) Input(ctx context.Context, q InputQuestion) (string, error) {
	final, err := t.run(ctx, newInputModel(q, t.styles))
	if err != nil {
		return "", err
	}
	m := final.(*inputModel)
	if m.cancelled || !m.done {
		return "", ErrCancelled
	}
	return m.answer(), nil
}
