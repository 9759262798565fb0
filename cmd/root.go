package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes: cobra usage errors exit with 1, copy failures with 2, so
// scripts can tell a bad invocation from a failed flash.
const (
	exitUsage   = 1
	exitFailure = 2
)

var (
	// Global output flags only
	verbose      bool
	quiet        bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "go-bmap",
	Short: "Block-map guided sparse image flasher",
	Long: `go-bmap copies only the populated regions of a sparse disk image onto a
target block device, guided by the image's block-map (.bmap) descriptor.
Unmapped regions are skipped entirely, which makes flashing large,
mostly-empty OS images fast and gentle on flash media.

Commands:
  copy    Flash an image onto a block device
  info    Show a parsed block-map descriptor`,
	Version:       "0.1.0-dev",
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Command handlers exit with exitFailure themselves, so any
// error surfacing here is a usage error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitUsage)
	}
}

func init() {
	// Only global output control flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json)")
}
