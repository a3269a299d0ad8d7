package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/am5tools/smucheck/internal/scan"
)

// Printer writes UI components to a writer. Commands print through it so
// tests can capture output.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a Printer that writes to w. A nil w means os.Stdout and
// a width of 0 means ReportWidth.
func NewPrinter(w io.Writer, width int) *Printer {
	if w == nil {
		w = os.Stdout
	}
	if width <= 0 {
		width = ReportWidth
	}
	return &Printer{out: w, width: width}
}

// Width returns the width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintReport prints a scan report.
func (p *Printer) PrintReport(rep *scan.Report) {
	p.Println(RenderReport(rep, p.width))
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details ...Detail) {
	p.Println(NewSuccessResult(title, details...).SetWidth(p.width).Render())
}

// PrintWarning prints a warning result box
func (p *Printer) PrintWarning(title string, details ...Detail) {
	p.Println(NewWarningResult(title, details...).SetWidth(p.width).Render())
}

// PrintError prints an error result box with troubleshooting tips
func (p *Printer) PrintError(title string, err error, troubleshooting []string) {
	p.Println(NewFailureResult(title, err, troubleshooting).SetWidth(p.width).Render())
}

// PrintList prints a titled list box.
func (p *Printer) PrintList(title string, lines []string, maxLines int) {
	p.Println(NewListBox(title, lines).SetWidth(p.width).SetMaxLines(maxLines).Render())
}
