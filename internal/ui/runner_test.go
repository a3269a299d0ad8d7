package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/am5tools/smucheck/internal/image"
	"github.com/am5tools/smucheck/internal/scan"
)

func fakeScan(rep *scan.Report, err error) ScanOperation {
	return func(ctx context.Context, onStep scan.StepFunc) (*scan.Report, error) {
		for i, name := range scan.StepNames {
			step := i + 1
			onStep(step, name, false, "")
			if err != nil && step == scan.StepMetadata {
				return nil, err
			}
			onStep(step, name, true, "ok")
		}
		return rep, nil
	}
}

func TestProgress_UpdateStep(t *testing.T) {
	p := NewProgress([]string{"a", "b", "c", "d"})

	p.StartStep(1, "")
	if p.Current != 1 || p.Percent != 0 {
		t.Errorf("after start: Current=%d Percent=%v", p.Current, p.Percent)
	}

	p.CompleteStep(1, "done")
	p.CompleteStep(2, "")
	if p.Percent != 0.5 {
		t.Errorf("Percent = %v, want 0.5", p.Percent)
	}
	if p.Steps[0].Message != "done" {
		t.Errorf("Message = %q", p.Steps[0].Message)
	}

	// Out of range updates are ignored
	p.UpdateStep(0, StepComplete, "")
	p.UpdateStep(5, StepComplete, "")
	if p.Percent != 0.5 {
		t.Errorf("Percent changed by out-of-range update: %v", p.Percent)
	}
}

func TestProgress_FailRunning(t *testing.T) {
	p := NewProgress([]string{"a", "b", "c"})
	p.CompleteStep(1, "")
	p.StartStep(2, "")
	p.FailRunning("boom")

	want := []StepStatus{StepComplete, StepFailed, StepSkipped}
	for i, s := range p.Steps {
		if s.Status != want[i] {
			t.Errorf("step %d status = %v, want %v", i+1, s.Status, want[i])
		}
	}
	if p.Steps[1].Message != "boom" {
		t.Errorf("failed step message = %q", p.Steps[1].Message)
	}
}

func TestProgress_Render(t *testing.T) {
	p := NewProgress(scan.StepNames)
	p.CompleteStep(1, "bios.bin")
	out := p.Render()

	for _, part := range []string{"[1/4] Load image", "(bios.bin)", "[4/4] Search SMU signatures", "25%"} {
		if !strings.Contains(out, part) {
			t.Errorf("Render() missing expected part: %s", part)
		}
	}
}

func TestScanRunner_Verbose(t *testing.T) {
	var buf bytes.Buffer
	r := NewScanRunner(ScanRunnerConfig{Verbose: true, Output: &buf})

	rep, err := r.Run(context.Background(), "bios.bin", fakeScan(getSampleReport(t), nil), Detail{Key: "Read chunk", Value: "4 KiB"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if rep == nil {
		t.Fatal("Run() returned nil report")
	}

	out := buf.String()
	expectedParts := []string{
		"SMU CHECK",
		"bios.bin",
		"Read chunk:",
		"[2/4] Decode firmware metadata",
		"100%",
		"Raphael/X",
	}
	for _, part := range expectedParts {
		if !strings.Contains(out, part) {
			t.Errorf("verbose output missing expected part: %s", part)
		}
	}
}

func TestScanRunner_Quiet(t *testing.T) {
	var buf bytes.Buffer
	r := NewScanRunner(ScanRunnerConfig{Output: &buf})

	if _, err := r.Run(context.Background(), "bios.bin", fakeScan(getSampleReport(t), nil)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "[1/4]") || strings.Contains(out, "SMU CHECK") {
		t.Error("quiet run printed step output")
	}
	if !strings.Contains(out, "U E F I   I N F O") {
		t.Error("quiet run did not print the report")
	}
}

func TestScanRunner_Failure(t *testing.T) {
	var buf bytes.Buffer
	r := NewScanRunner(ScanRunnerConfig{Verbose: true, Output: &buf})

	scanErr := &image.NoImageError{Archive: "a.zip"}
	rep, err := r.Run(context.Background(), "a.zip", fakeScan(nil, scanErr))
	if !errors.Is(err, scanErr) {
		t.Fatalf("Run() error = %v, want %v", err, scanErr)
	}
	if rep != nil {
		t.Error("Run() returned a report on failure")
	}

	out := buf.String()
	for _, part := range []string{"FAILED", "could not retrieve a firmware image", "Troubleshooting:", FailureMarker} {
		if !strings.Contains(out, part) {
			t.Errorf("failure output missing expected part: %s", part)
		}
	}
	if strings.Contains(out, "S Y S T E M") {
		t.Error("report printed after failure")
	}
}

func TestTroubleshooting(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		empty bool
	}{
		{"no image", &image.NoImageError{Archive: "a.zip"}, false},
		{"load", &image.LoadError{Path: "x", Err: errors.New("denied")}, false},
		{"canceled", context.Canceled, true},
		{"other", errors.New("other"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Troubleshooting(tt.err)
			if (len(got) == 0) != tt.empty {
				t.Errorf("Troubleshooting() = %v", got)
			}
		})
	}
}

func TestResult_Render(t *testing.T) {
	res := NewWarningResult("Skipped missing file", Detail{Key: "Path", Value: "gone.bin"}).SetWidth(75)
	out := res.Render()
	for _, part := range []string{"WARNING", "Skipped missing file", "Path:", "gone.bin"} {
		if !strings.Contains(out, part) {
			t.Errorf("Render() missing expected part: %s", part)
		}
	}

	// Details keep insertion order
	res = NewSuccessResult("Done").AddDetail("First", "1").AddDetail("Second", "2").SetWidth(75)
	out = res.Render()
	if strings.Index(out, "First") > strings.Index(out, "Second") {
		t.Error("details out of order")
	}
}

func TestListBox_MaxLines(t *testing.T) {
	box := NewListBox("Matches", []string{"0x10", "0x20", "0x30"}).SetWidth(75).SetMaxLines(2)
	out := box.Render()
	if !strings.Contains(out, "... (1 more)") {
		t.Error("truncation note missing")
	}
	if strings.Contains(out, "0x30") {
		t.Error("line past MaxLines rendered")
	}

	empty := NewListBox("Matches", nil).SetWidth(75).Render()
	if !strings.Contains(empty, "(none)") {
		t.Error("empty list should render (none)")
	}
}

func TestWaitModel(t *testing.T) {
	m := newWaitModel("")
	if !strings.Contains(m.View(), DefaultWaitPrompt) {
		t.Errorf("View() = %q", m.View())
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if cmd != nil {
		t.Error("rune key should not quit")
	}

	next, cmd = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should quit")
	}
	if next.View() != "" {
		t.Errorf("View() after enter = %q", next.View())
	}
}
