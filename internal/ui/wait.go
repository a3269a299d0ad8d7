package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultWaitPrompt is shown by WaitForEnter when no prompt is given.
const DefaultWaitPrompt = "Press Enter to exit"

// waitModel shows a prompt and quits on Enter, Esc or Ctrl+C.
type waitModel struct {
	prompt string
	done   bool
}

func newWaitModel(prompt string) waitModel {
	if prompt == "" {
		prompt = DefaultWaitPrompt
	}
	return waitModel{prompt: prompt}
}

// Init implements tea.Model
func (m waitModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m waitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter, tea.KeyEsc, tea.KeyCtrlC:
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model
func (m waitModel) View() string {
	if m.done {
		return ""
	}
	return PromptStyle.Render("  "+m.prompt) + "\n"
}

// WaitForEnter blocks until the user presses Enter. On a terminal the prompt
// runs as a Bubble Tea program; otherwise a single line is read from in.
func WaitForEnter(in *os.File, out io.Writer, prompt string) error {
	m := newWaitModel(prompt)

	if !IsTerminal(in) {
		_, _ = fmt.Fprint(out, m.View())
		_, err := bufio.NewReader(in).ReadString('\n')
		if err == io.EOF {
			return nil
		}
		return err
	}

	_, err := tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out)).Run()
	return err
}
