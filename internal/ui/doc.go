// Package ui renders smucheck output in the terminal.
//
// Output is "run once and exit": every component renders to a string with
// Lipgloss and is printed, nothing is interactive except the optional
// --wait prompt.
//
// # Components
//
//   - RenderReport: the scan report (UEFI block, chipset records, SMU table)
//   - Header: banner shown above a verbose scan
//   - Progress: step list and progress bar for verbose scans
//   - Result: success, warning and failure boxes
//   - ListBox: titled list used by the search and signatures commands
//
// ScanRunner ties them together for one image:
//
//	runner := ui.NewScanRunner(ui.ScanRunnerConfig{
//	    Width:   cfg.Output.Width,
//	    Verbose: verbose,
//	})
//
//	rep, err := runner.Run(ctx, path, func(ctx context.Context, onStep scan.StepFunc) (*scan.Report, error) {
//	    return scanner.ScanFile(ctx, path, onStep)
//	})
//
// # Logging Integration
//
// zap logging is silent unless SMUCHECK_LOG_LEVEL is set, and it writes to
// stderr, so the report on stdout stays clean.
package ui
