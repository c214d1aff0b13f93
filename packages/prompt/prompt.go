package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned when the user leaves a prompt with esc or ctrl+c.
var ErrAborted = errors.New("prompt aborted")

var (
	labelStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Prompter runs prompts against a terminal.
type Prompter struct {
	in  io.Reader
	out io.Writer
}

type Option func(*Prompter)

func WithInput(r io.Reader) Option {
	return func(p *Prompter) {
		p.in = r
	}
}

func WithOutput(w io.Writer) Option {
	return func(p *Prompter) {
		p.out = w
	}
}

func New(opts ...Option) *Prompter {
	p := &Prompter{in: os.Stdin, out: os.Stderr}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Input asks for one non-empty line of text.
func (p *Prompter) Input(label string) (string, error) {
	final, err := p.run(newInputModel(label))
	if err != nil {
		return "", err
	}
	m := final.(inputModel)
	if m.aborted {
		return "", ErrAborted
	}
	return m.value(), nil
}

// MultiSelect lets the user toggle any number of items and returns the
// indexes of the chosen ones in ascending order.
func (p *Prompter) MultiSelect(label string, items []string) ([]int, error) {
	if len(items) == 0 {
		return nil, nil
	}
	final, err := p.run(newSelectModel(label, items))
	if err != nil {
		return nil, err
	}
	m := final.(selectModel)
	if m.aborted {
		return nil, ErrAborted
	}
	return m.chosen(), nil
}

func (p *Prompter) run(m tea.Model) (tea.Model, error) {
	program := tea.NewProgram(m, tea.WithInput(p.in), tea.WithOutput(p.out))
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("run prompt: %w", err)
	}
	return final, nil
}

type inputModel struct {
	label   string
	input   textinput.Model
	errMsg  string
	done    bool
	aborted bool
}

func newInputModel(label string) inputModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	return inputModel{label: label, input: ti}
}

func (m inputModel) value() string {
	return strings.TrimSpace(m.input.Value())
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.value() == "" {
				m.errMsg = "value cannot be empty"
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		}
	}

	m.errMsg = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	var b strings.Builder
	b.WriteString(labelStyle.Render(m.label))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	return b.String()
}

type selectModel struct {
	label    string
	items    []string
	cursor   int
	selected map[int]bool
	done     bool
	aborted  bool
}

func newSelectModel(label string, items []string) selectModel {
	return selectModel{label: label, items: items, selected: make(map[int]bool)}
}

func (m selectModel) chosen() []int {
	var out []int
	for i := range m.items {
		if m.selected[i] {
			out = append(out, i)
		}
	}
	return out
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "esc", "ctrl+c":
		m.aborted = true
		return m, tea.Quit
	case "enter":
		m.done = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case " ", "x":
		m.selected[m.cursor] = !m.selected[m.cursor]
	case "a":
		all := len(m.chosen()) < len(m.items)
		for i := range m.items {
			m.selected[i] = all
		}
	}
	return m, nil
}

func (m selectModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	var b strings.Builder
	b.WriteString(labelStyle.Render(m.label))
	b.WriteString("\n")
	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		box := "[ ]"
		if m.selected[i] {
			box = selectedStyle.Render("[x]")
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, box, item)
	}
	b.WriteString(helpStyle.Render("space: toggle  a: all  enter: confirm  esc: cancel"))
	b.WriteString("\n")
	return b.String()
}
