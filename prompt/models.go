package prompt

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"strings"
)

type listModel struct {
	question  Question
	styles    Styles
	keys      keyMap
	multi     bool
	cursor    int
	checked   map[int]bool
	done      bool
	cancelled bool
}

func newListModel(q Question, styles Styles, multi bool) *listModel {
	m := &listModel{question: q, styles: styles, keys: defaultKeys(), multi: multi, cursor: -1, checked: map[int]bool{}}
	for i, c := range q.Choices {
		if c.Separator {
			continue
		}
		if m.cursor < 0 {
			m.cursor = i
		}
		if c.Checked {
			m.checked[i] = true
		}
	}
	return m
}

func (m *listModel) Init() tea.Cmd {
	return nil
}

// move advances the cursor by delta, skipping separators and wrapping around the list.
func (m *listModel) move(delta int) {
	n := len(m.question.Choices)
	if n == 0 || m.cursor < 0 {
		return
	}
	next := m.cursor
	for range n {
		next = (next + delta + n) % n
		if !m.question.Choices[next].Separator {
			m.cursor = next
			return
		}
	}
}

func (m *listModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Up):
		m.move(-1)
	case key.Matches(keyMsg, m.keys.Down):
		m.move(1)
	case key.Matches(keyMsg, m.keys.Toggle):
		m.toggle()
	case key.Matches(keyMsg, m.keys.Confirm):
		if m.cursor >= 0 {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *listModel) toggle() {
	if !m.multi || m.cursor < 0 {
		return
	}
	m.checked[m.cursor] = !m.checked[m.cursor]
}

func (m *listModel) value() string {
	if m.cursor < 0 {
		return ""
	}
	return m.question.Choices[m.cursor].Value
}

func (m *listModel) values() []string {
	var vals []string
	for i, c := range m.question.Choices {
		if m.checked[i] && !c.Separator {
			vals = append(vals, c.Value)
		}
	}
	return vals
}

func (m *listModel) View() string {
	var buf strings.Builder
	buf.WriteString(m.styles.Question.Render("? " + m.question.Message))
	if m.done || m.cancelled {
		if m.done && !m.multi {
			buf.WriteString(" " + m.styles.Selected.Render(m.question.Choices[m.cursor].Label()))
		}
		buf.WriteString("\n")
		return buf.String()
	}
	if m.multi {
		buf.WriteString(m.styles.Hint.Render(hint(m.keys.Toggle, m.keys.Confirm)))
	}
	buf.WriteString("\n")
	for i, c := range m.question.Choices {
		if c.Separator {
			buf.WriteString("  " + m.styles.Separator.Render(c.Label()) + "\n")
			continue
		}
		pointer := "  "
		label := c.Label()
		if m.multi {
			box := "◯ "
			if m.checked[i] {
				box = "◉ "
			}
			label = box + label
		}
		if i == m.cursor {
			pointer = m.styles.Cursor.Render("❯ ")
			label = m.styles.Cursor.Render(label)
		}
		buf.WriteString(pointer + label + "\n")
	}
	return buf.String()
}

type inputModel struct {
	question  InputQuestion
	styles    Styles
	keys      keyMap
	input     textinput.Model
	err       string
	done      bool
	cancelled bool
}

func newInputModel(q InputQuestion, styles Styles) *inputModel {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = q.Default
	input.PlaceholderStyle = styles.Hint
	input.Cursor.Style = styles.Cursor
	input.Focus()
	return &inputModel{question: q, styles: styles, keys: defaultKeys(), input: input}
}

func (m *inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Cancel):
			m.cancelled = true
			m.input.Blur()
			return m, tea.Quit
		case key.Matches(keyMsg, m.keys.Confirm):
			answer := m.answer()
			if m.question.Validate != nil {
				if err := m.question.Validate(answer); err != nil {
					m.err = err.Error()
					return m, nil
				}
			}
			m.done = true
			m.input.Blur()
			return m, tea.Quit
		}
		m.err = ""
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *inputModel) answer() string {
	answer := strings.TrimSpace(m.input.Value())
	if len(answer) == 0 {
		return m.question.Default
	}
	return answer
}

func (m *inputModel) View() string {
	var buf strings.Builder
	buf.WriteString(m.styles.Question.Render("? " + m.question.Message))
	buf.WriteString(" ")
	if m.done {
		buf.WriteString(m.styles.Selected.Render(m.answer()) + "\n")
		return buf.String()
	}
	if m.cancelled {
		return buf.String() + m.input.Value() + "\n"
	}
	buf.WriteString(m.input.View())
	if len(m.err) > 0 {
		buf.WriteString("\n" + m.styles.Error.Render(">> "+m.err))
	}
	return buf.String() + "\n"
}
