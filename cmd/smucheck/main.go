// Smucheck reports the UEFI, AGESA, chipset and SMU firmware versions found
// in AM5 motherboard firmware images.
//
// Each argument is a firmware image or a zip archive holding one. For every
// image smucheck prints the board vendor and name, the AGESA version, the
// UEFI version and build date, chipset firmware records and the SMU
// firmware entries for Raphael, Phoenix and Granite Ridge processors.
//
// Usage:
//
//	smucheck [flags] FILE...
//
// See 'smucheck --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/am5tools/smucheck/internal/logging"
	"github.com/am5tools/smucheck/internal/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

var rootCmd = &cobra.Command{
	Use:   "smucheck [flags] FILE...",
	Short: "AM5 SMU Checker",
	Long: `Inspect AM5 motherboard firmware images.

For each image (or zip archive containing one) smucheck prints:
  - board vendor, board name and AGESA version
  - UEFI version, build date and file size
  - chipset firmware records
  - SMU firmware entries for Raphael, Phoenix and Granite Ridge

Files that do not exist are skipped with a warning.`,
	Version: version.Version,
	Example: `  # Check one image
  smucheck B650E-Taichi-3.10.AS05

  # Check a vendor archive and show scan steps
  smucheck -v PRIME-X670E-PRO-WIFI-ASUS-3024.zip

  # Keep the window open (drag and drop on Windows)
  smucheck --wait bios.cap`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "smucheck %s (commit: %s)\n", version.Version, version.Commit)
	},
}
