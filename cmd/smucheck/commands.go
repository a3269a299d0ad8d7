package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/am5tools/smucheck/internal/config"
	"github.com/am5tools/smucheck/internal/image"
	"github.com/am5tools/smucheck/internal/logging"
	"github.com/am5tools/smucheck/internal/pattern"
	"github.com/am5tools/smucheck/internal/scan"
	"github.com/am5tools/smucheck/internal/signatures"
	"github.com/am5tools/smucheck/internal/ui"
)

// Root command flags
var (
	configPath string
	verbose    bool
	waitExit   bool
)

// Search command flags
var (
	searchPattern string
	searchMask    string
	searchBias    int
	searchLimit   int
)

var catalogTips = []string{
	"The built-in signature catalog failed to load",
	"This is a defect in smucheck, not missing hardware support",
	"Please report it together with the output of: smucheck version",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: platform config dir/smucheck/config.yaml)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show scan steps")
	rootCmd.Flags().BoolVar(&waitExit, "wait", false, "Wait for Enter before exiting")

	rootCmd.AddCommand(signaturesCmd)
	rootCmd.AddCommand(searchCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	// Suppress usage on execution errors (we're past argument parsing)
	cmd.SilenceUsage = true
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		ui.NewPrinter(out, 0).PrintError("Configuration error", err, []string{
			"Check the YAML syntax and value ranges in the config file",
			"Unset SMUCHECK_* environment variables to rule them out",
		})
		return err
	}
	p := ui.NewPrinter(out, cfg.Output.Width)

	cat, err := signatures.Load()
	if err != nil {
		p.PrintError("Signature error", err, catalogTips)
		return err
	}
	scanner := scan.New(cat, cfg)

	params := []ui.Detail{
		{Key: "Read chunk", Value: humanize.IBytes(uint64(cfg.Scan.ReadChunkSize))},
		{Key: "Decode buffer", Value: humanize.IBytes(uint64(cfg.Scan.DecodeBufferSize))},
		{Key: "Signatures", Value: fmt.Sprintf("%d families", cat.Count())},
	}

	failed := 0
	for _, path := range args {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			logging.Warn("Skipping missing file", zap.String("path", path))
			p.PrintWarning("Skipped missing file", ui.Detail{Key: "Path", Value: path})
			continue
		}

		runner := ui.NewScanRunner(ui.ScanRunnerConfig{
			Width:   cfg.Output.Width,
			Verbose: verbose,
			Output:  out,
		})
		_, err := runner.Run(cmd.Context(), path, func(ctx context.Context, onStep scan.StepFunc) (*scan.Report, error) {
			return scanner.ScanFile(ctx, path, onStep)
		}, params...)
		if err != nil {
			logging.Error("Scan failed", zap.String("path", path), zap.Error(err))
			failed++
			if errors.Is(err, context.Canceled) {
				break
			}
		}
		p.Newline()
	}

	if waitExit {
		if err := ui.WaitForEnter(os.Stdin, out, ""); err != nil {
			logging.Debug("Wait prompt ended", zap.Error(err))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) could not be scanned", failed, len(args))
	}
	return nil
}

// signaturesCmd lists the built-in catalog
var signaturesCmd = &cobra.Command{
	Use:   "signatures",
	Short: "List the built-in SMU signatures",
	Long: `List the signature catalog compiled into smucheck: the SMU header
pattern, bias and CPUID probes of every processor family, and the chipset
and AGESA text markers.`,
	Args: cobra.NoArgs,
	RunE: runSignatures,
}

func runSignatures(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	p := ui.NewPrinter(cmd.OutOrStdout(), 0)

	cat, err := signatures.Load()
	if err != nil {
		p.PrintError("Signature error", err, catalogTips)
		return err
	}

	for _, f := range cat.Families {
		lines := []string{
			"Family:  " + f.Name,
			"Header:  " + f.Header.String(),
			"Bias:    " + formatOffset(f.Bias),
		}
		for _, probe := range f.CPUID {
			lines = append(lines, fmt.Sprintf("CPUID:   % X  (mask % X)", probe.Sequence, probe.Mask))
		}
		p.PrintList(f.String(), lines, 0)
	}

	p.PrintList("Markers", []string{
		fmt.Sprintf("Chipset:     %s  (max %d records)", cat.Chipset.Marker, cat.Chipset.MaxEntries),
		fmt.Sprintf("AGESA text:  %s  (bias %s, max %d bytes)", cat.AgesaText.Marker, formatOffset(cat.AgesaText.Bias), cat.AgesaText.MaxLength),
	}, 0)
	return nil
}

// searchCmd exposes the raw matcher
var searchCmd = &cobra.Command{
	Use:   "search FILE",
	Short: "Search an image for a byte pattern",
	Long: `Search a firmware image for a byte pattern and print every match offset.

The pattern is whitespace separated hex bytes; "?" matches any byte. The
bias is added to every offset. With --mask the pattern is a plain sequence
and only its presence is reported; a mask byte of 00 ignores that position.`,
	Example: `  # Find Raphael SMU headers and report entry offsets
  smucheck search bios.bin --pattern "54 ? 00 00 00 00 00 00 00 ? ? ? ?" --bias -0x62

  # Check for a Raphael CPUID
  smucheck search bios.bin --pattern "12 60 0A 05 80" --mask "FF FF FF 00 FF"`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchPattern, "pattern", "p", "", "Byte pattern to search for")
	searchCmd.Flags().StringVar(&searchMask, "mask", "", "Mask for a masked sequence probe")
	searchCmd.Flags().IntVar(&searchBias, "bias", 0, "Value added to every match offset (accepts 0x and -0x)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 50, "Maximum offsets to print (0 = all)")
	_ = searchCmd.MarkFlagRequired("pattern")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	p := ui.NewPrinter(cmd.OutOrStdout(), 0)
	path := args[0]

	img, err := image.Load(cmd.Context(), path)
	if err != nil {
		p.PrintError("Could not load "+path, err, ui.Troubleshooting(err))
		return err
	}

	if searchMask != "" {
		return runMaskedSearch(p, img)
	}

	pat, err := pattern.Parse(searchPattern)
	if err != nil {
		p.PrintError("Invalid pattern", err, []string{`Use hex bytes separated by spaces, "?" for any byte`})
		return err
	}

	offsets, err := pattern.Search(img.Data, pat, searchBias)
	if err != nil {
		p.PrintError("Search failed", err, searchTips(err))
		return err
	}
	logging.LogMatches(pat.String(), offsets)

	lines := make([]string, len(offsets))
	for i, off := range offsets {
		lines[i] = formatOffset(off)
	}
	p.PrintList(fmt.Sprintf("%d matches in %s", len(offsets), img.Name), lines, searchLimit)
	return nil
}

func runMaskedSearch(p *ui.Printer, img *image.Image) error {
	seq, err := pattern.ParseHex(searchPattern)
	if err != nil {
		p.PrintError("Invalid pattern", err, []string{"Masked probes take plain hex bytes, no wildcards"})
		return err
	}
	mask, err := pattern.ParseHex(searchMask)
	if err != nil {
		p.PrintError("Invalid mask", err, nil)
		return err
	}
	if len(mask) != len(seq) {
		err := fmt.Errorf("mask has %d bytes, pattern has %d", len(mask), len(seq))
		p.PrintError("Invalid mask", err, nil)
		return err
	}

	if pattern.ContainsMasked(img.Data, seq, mask) {
		p.PrintSuccess("Sequence found", ui.Detail{Key: "Image", Value: img.Name})
	} else {
		p.PrintWarning("Sequence not found", ui.Detail{Key: "Image", Value: img.Name})
	}
	return nil
}

func searchTips(err error) []string {
	switch {
	case errors.Is(err, pattern.ErrPatternTooLarge):
		return []string{"The pattern is longer than the image", "Check that the file is a complete firmware image"}
	case errors.Is(err, pattern.ErrEmptyInput):
		return []string{"The image is empty"}
	}
	return nil
}

func formatOffset(off int) string {
	if off < 0 {
		return fmt.Sprintf("-0x%X", -off)
	}
	return fmt.Sprintf("0x%08X", off)
}
