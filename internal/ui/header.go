package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Header is the box printed above a verbose scan: a title, the image path
// and a few parameters.
type Header struct {
	Title  string   // e.g., "SMU CHECK"
	Path   string   // image path as given on the command line
	Params []Detail // e.g., {"Read chunk", "4 KiB"}
	Width  int
}

// NewHeader creates a new header with the given values
func NewHeader(title, path string, params ...Detail) *Header {
	return &Header{
		Title:  title,
		Path:   path,
		Params: params,
		Width:  GetTerminalWidth(),
	}
}

// SetWidth sets the width for responsive rendering
func (h *Header) SetWidth(width int) *Header {
	h.Width = width
	return h
}

// Render returns the styled header as a string
func (h *Header) Render() string {
	width := h.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	top := lipgloss.JoinVertical(lipgloss.Left,
		HeaderTitleStyle.Render(strings.ToUpper(h.Title)),
		HeaderCommandStyle.Render(h.Path),
	)

	content := top
	if len(h.Params) > 0 {
		paramLines := make([]string, 0, len(h.Params))
		for _, p := range h.Params {
			paramLines = append(paramLines,
				HeaderParamKeyStyle.Render(p.Key+":")+" "+HeaderParamValueStyle.Render(p.Value))
		}
		dividerWidth := width - 6 // border and padding
		if dividerWidth < 10 {
			dividerWidth = 10
		}
		divider := RenderHorizontalDivider(dividerWidth, "─", PrimaryColor)
		content = lipgloss.JoinVertical(lipgloss.Left, top, divider, strings.Join(paramLines, "\n"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2).
		Render(content)
}

// String implements fmt.Stringer
func (h *Header) String() string {
	return h.Render()
}
