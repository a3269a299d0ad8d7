package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/am5tools/smucheck/internal/image"
	"github.com/am5tools/smucheck/internal/scan"
)

// ScanRunnerConfig holds configuration for printing one image scan.
type ScanRunnerConfig struct {
	Width   int       // Report width (default: ReportWidth)
	Verbose bool      // Print header and step progress before the report
	Output  io.Writer // Output writer (default: os.Stdout)
}

// ScanOperation performs the scan and reports progress through onStep.
type ScanOperation func(ctx context.Context, onStep scan.StepFunc) (*scan.Report, error)

// ScanRunner prints the UI around a single image scan: in verbose mode a
// header, one line per step and a progress bar; then the report, or a
// failure box when the scan could not run.
type ScanRunner struct {
	config    ScanRunnerConfig
	progress  *Progress
	output    io.Writer
	startTime time.Time
}

// NewScanRunner creates a runner for one image.
func NewScanRunner(config ScanRunnerConfig) *ScanRunner {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if config.Width <= 0 {
		config.Width = ReportWidth
	}

	p := NewProgress(scan.StepNames)
	p.SetWidth(config.Width)

	return &ScanRunner{
		config:   config,
		progress: p,
		output:   config.Output,
	}
}

// Run executes the scan of path and prints the outcome.
func (r *ScanRunner) Run(ctx context.Context, path string, operation ScanOperation, params ...Detail) (*scan.Report, error) {
	r.startTime = time.Now()

	if r.config.Verbose {
		_, _ = fmt.Fprintln(r.output, NewHeader("SMU Check", path, params...).SetWidth(r.config.Width).Render())
		_, _ = fmt.Fprintln(r.output)
	}

	rep, err := operation(ctx, r.createStepCallback())
	duration := time.Since(r.startTime)

	if r.config.Verbose {
		if err != nil {
			r.progress.FailRunning(err.Error())
		}
		_, _ = fmt.Fprintln(r.output)
		_, _ = fmt.Fprintln(r.output, r.progress.RenderBar())
		_, _ = fmt.Fprintln(r.output, StepNoteStyle.Render(fmt.Sprintf("  finished in %s", duration.Round(time.Millisecond))))
		_, _ = fmt.Fprintln(r.output)
	}

	if err != nil {
		r.printFailure(path, err)
		return nil, err
	}

	_, _ = fmt.Fprintln(r.output, RenderReport(rep, r.config.Width))
	return rep, nil
}

// createStepCallback maps scan progress onto the step list. Step lines are
// only printed in verbose mode.
func (r *ScanRunner) createStepCallback() scan.StepFunc {
	return func(step int, name string, done bool, detail string) {
		if step < 1 || step > r.progress.Total() {
			return
		}
		if name != "" {
			r.progress.Steps[step-1].Name = name
		}

		if done {
			r.progress.CompleteStep(step, detail)
		} else {
			r.progress.StartStep(step, detail)
		}

		if !r.config.Verbose {
			return
		}
		line := r.progress.renderStepLine(r.progress.Steps[step-1])
		if done {
			_, _ = fmt.Fprintln(r.output, line)
		} else {
			// overwritten when the step completes
			_, _ = fmt.Fprint(r.output, line+"\r")
		}
	}
}

func (r *ScanRunner) printFailure(path string, err error) {
	result := NewFailureResult("Could not scan "+path, err, Troubleshooting(err))
	result.SetWidth(r.config.Width)
	_, _ = fmt.Fprintln(r.output, result.Render())
}

// Troubleshooting returns tips that fit err.
func Troubleshooting(err error) []string {
	var noImage *image.NoImageError
	var loadErr *image.LoadError

	switch {
	case errors.As(err, &noImage):
		return []string{
			"The archive must contain the firmware image itself",
			"Extract the archive and pass the image file directly",
		}
	case errors.As(err, &loadErr):
		return []string{
			"Check the path and file permissions",
			"Zip archives are detected by their .zip extension",
		}
	case errors.Is(err, context.Canceled):
		return nil
	default:
		return []string{
			"Run with SMUCHECK_LOG_LEVEL=debug for details",
		}
	}
}
