package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// Line asks questions one line at a time, with choices numbered from 1.
// Answers may be given as a number or as the choice's value.
type Line struct {
	mux     sync.Mutex
	scanner *bufio.Scanner
	out     io.Writer
}

func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{scanner: bufio.NewScanner(in), out: out}
}

func (l *Line) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(l.out, format, args...)
}

func (l *Line) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", ErrCancelled
	}
	if !l.scanner.Scan() {
		if err := l.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
		return "", ErrCancelled
	}
	return strings.TrimSpace(l.scanner.Text()), nil
}

func (l *Line) printChoices(q Question) []Choice {
	l.printf("? %s\n", q.Message)
	var selectable []Choice
	for _, c := range q.Choices {
		if c.Separator {
			l.printf("  %s\n", c.Label())
			continue
		}
		selectable = append(selectable, c)
		l.printf("  %d) %s\n", len(selectable), c.Label())
	}
	return selectable
}

func resolveAnswer(answer string, selectable []Choice) (string, bool) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(selectable) {
			return selectable[n-1].Value, true
		}
		return "", false
	}
	for _, c := range selectable {
		if c.Value == answer {
			return c.Value, true
		}
	}
	return "", false
}

func (l *Line) Select(ctx context.Context, q Question) (string, error) {
	l.mux.Lock()
	defer l.mux.Unlock()
	selectable := l.printChoices(q)
	if len(selectable) == 0 {
		return "", ErrNoChoices
	}
	for {
		l.printf("Answer: ")
		answer, err := l.readLine(ctx)
		if err != nil {
			return "", err
		}
		if val, ok := resolveAnswer(answer, selectable); ok {
			return val, nil
		}
		l.printf("Please enter a number between 1 and %d\n", len(selectable))
	}
}

func (l *Line) Checkbox(ctx context.Context, q Question) ([]string, error) {
	l.mux.Lock()
	defer l.mux.Unlock()
	selectable := l.printChoices(q)
	if len(selectable) == 0 {
		return nil, ErrNoChoices
	}
	var (
		defaults []string
		hint     = "blank for none"
	)
	for _, c := range selectable {
		if c.Checked {
			defaults = append(defaults, c.Value)
		}
	}
	if len(defaults) > 0 {
		hint = "blank keeps " + strings.Join(defaults, ", ")
	}
outer:
	for {
		l.printf("Answer (comma separated, %s): ", hint)
		answer, err := l.readLine(ctx)
		if err != nil {
			return nil, err
		}
		if len(answer) == 0 {
			return defaults, nil
		}
		var (
			values []string
			seen   = map[string]bool{}
		)
		for _, field := range strings.FieldsFunc(answer, func(r rune) bool { return r == ',' || r == ' ' }) {
			val, ok := resolveAnswer(field, selectable)
			if !ok {
				l.printf("Unknown choice '%s'\n", field)
				continue outer
			}
			if !seen[val] {
				seen[val] = true
				values = append(values, val)
			}
		}
		return values, nil
	}
}

func (l *Line) Input(ctx context.Context, q InputQuestion) (string, error) {
	l.mux.Lock()
	defer l.mux.Unlock()
	for {
		if len(q.Default) > 0 {
			l.printf("? %s (%s) ", q.Message, q.Default)
		} else {
			l.printf("? %s ", q.Message)
		}
		answer, err := l.readLine(ctx)
		if err != nil {
			return "", err
		}
		if len(answer) == 0 {
			answer = q.Default
		}
		if q.Validate != nil {
			if err := q.Validate(answer); err != nil {
				l.printf("%v\n", err)
				continue
			}
		}
		return answer, nil
	}
}
