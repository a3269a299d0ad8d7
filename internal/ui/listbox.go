package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ListBox is a titled box of plain lines, used for match offsets and the
// signature catalog.
type ListBox struct {
	Title    string
	Lines    []string
	Width    int
	MaxLines int // 0 = unlimited
}

// NewListBox creates a list box
func NewListBox(title string, lines []string) *ListBox {
	return &ListBox{
		Title: title,
		Lines: lines,
		Width: GetTerminalWidth(),
	}
}

// SetWidth sets the width for responsive rendering
func (l *ListBox) SetWidth(width int) *ListBox {
	l.Width = width
	return l
}

// SetMaxLines limits the number of lines displayed
func (l *ListBox) SetMaxLines(max int) *ListBox {
	l.MaxLines = max
	return l
}

// Render returns the styled box as a string
func (l *ListBox) Render() string {
	width := l.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	lines := l.Lines
	if l.MaxLines > 0 && len(lines) > l.MaxLines {
		hidden := len(lines) - l.MaxLines
		lines = append(lines[:l.MaxLines:l.MaxLines], fmt.Sprintf("... (%d more)", hidden))
	}
	if len(lines) == 0 {
		lines = []string{"(none)"}
	}

	inner := lipgloss.JoinVertical(lipgloss.Left,
		ListTitleStyle.Render(l.Title),
		"",
		ListContentStyle.Render(strings.Join(lines, "\n")),
	)

	boxWidth := width - 4
	if boxWidth < 40 {
		boxWidth = 40
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Width(boxWidth).
		Padding(0, 1).
		MarginLeft(2).
		Render(inner)
}

// String implements fmt.Stringer
func (l *ListBox) String() string {
	return l.Render()
}
