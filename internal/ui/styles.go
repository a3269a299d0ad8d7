package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette for boxes and progress
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - success, checkmarks
	ErrorColor   = lipgloss.Color("#FF5555") // Red - errors, X marks
	WarningColor = lipgloss.Color("#FFA500") // Orange - warnings
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Console palette used by the report. These are the 16 ANSI colors so the
// report looks the same on any terminal theme.
var (
	BannerBackground = lipgloss.Color("4") // dark blue
	TableBackground  = lipgloss.Color("6") // dark cyan
	BoardColor       = lipgloss.Color("3") // dark yellow
	EntryColor       = lipgloss.Color("2") // green
	LabelColor       = lipgloss.Color("7") // gray
	DimColor         = lipgloss.Color("8") // dark gray
	BlackColor       = lipgloss.Color("0")
	WhiteColor       = lipgloss.Color("15")
)

// Layout constants
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
	ReportWidth      = 75  // Width of the report when nothing else is set
)

// Styles for boxes and step output
var (
	// HeaderTitleStyle is for the header title (e.g., "SMU CHECK")
	HeaderTitleStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Bold(true).
				PaddingLeft(2)

	// HeaderCommandStyle is for the image path
	HeaderCommandStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				PaddingLeft(2)

	HeaderParamKeyStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				PaddingLeft(2)

	HeaderParamValueStyle = lipgloss.NewStyle().
				Foreground(TextColor)

	StepCompleteStyle = lipgloss.NewStyle().
				Foreground(SuccessColor)

	StepRunningStyle = lipgloss.NewStyle().
				Foreground(WarningColor)

	StepPendingStyle = lipgloss.NewStyle().
				Foreground(MutedColor)

	// StepNoteStyle is for optional notes in parentheses
	StepNoteStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	SuccessTitleStyle = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Bold(true)

	ErrorTitleStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningTitleStyle = lipgloss.NewStyle().
				Foreground(WarningColor).
				Bold(true)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(ErrorColor)

	// ResultKeyStyle is for result detail keys
	ResultKeyStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(15)

	ResultValueStyle = lipgloss.NewStyle().
				Foreground(TextColor)

	TroubleshootingTitleStyle = lipgloss.NewStyle().
					Foreground(MutedColor).
					Bold(true)

	TroubleshootingItemStyle = lipgloss.NewStyle().
					Foreground(MutedColor)

	ListTitleStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Bold(true)

	ListContentStyle = lipgloss.NewStyle().
				Foreground(TextColor)

	PromptStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)
)

// Report styles
var (
	BannerStyle = lipgloss.NewStyle().
			Background(BannerBackground).
			Foreground(WhiteColor).
			Align(lipgloss.Center)

	CreditsStyle = lipgloss.NewStyle().
			Background(BannerBackground).
			Foreground(BlackColor).
			Align(lipgloss.Center)

	TableHeaderStyle = lipgloss.NewStyle().
				Background(TableBackground).
				Foreground(BlackColor)

	VendorStyle = lipgloss.NewStyle().Foreground(WhiteColor)
	BoardStyle  = lipgloss.NewStyle().Foreground(BoardColor)
	AgesaStyle  = lipgloss.NewStyle().Foreground(WhiteColor)
	LabelStyle  = lipgloss.NewStyle().Foreground(LabelColor)
	EntryStyle  = lipgloss.NewStyle().Foreground(EntryColor)
	DimStyle    = lipgloss.NewStyle().Foreground(DimColor)
)

// Step status markers
const (
	StepMarkerComplete = "✓"
	StepMarkerRunning  = "●"
	StepMarkerPending  = "·"
	StepMarkerSkipped  = "⊘"
	SuccessMarker      = "✓"
	FailureMarker      = "✗"
	WarningMarker      = "⚠"
)

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// RenderHorizontalDivider creates a horizontal line of the specified width
func RenderHorizontalDivider(width int, char string, color lipgloss.Color) string {
	if width < 1 {
		width = 1
	}
	line := ""
	for i := 0; i < width; i++ {
		line += char
	}
	return lipgloss.NewStyle().
		Foreground(color).
		Render(line)
}
