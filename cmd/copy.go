package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-bmap/internal/flasher"
	"github.com/deploymenttheory/go-bmap/internal/types"
)

var copyCmd = &cobra.Command{
	Use:   "copy <image> <device>",
	Short: "Flash an image onto a block device",
	Long: `Copy the populated ranges of a sparse disk image onto a target block
device or file. The block-map descriptor is expected next to the image,
named "<image filename>.bmap".

Examples:
  # Flash an OS image onto an SD card
  go-bmap copy build/core-image.wic /dev/sdX

  # Flash quietly, suppressing per-chunk progress
  go-bmap copy -q build/core-image.wic /dev/sdX`,

	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCopy(args[0], args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error during bmap copy: %v\n", err)
			os.Exit(exitFailure)
		}
	},
}

func init() {
	rootCmd.AddCommand(copyCmd)
}

func runCopy(sourcePath, targetPath string) error {
	config, err := flasher.LoadConfig()
	if err != nil {
		return err
	}

	f := flasher.NewImageFlasher(config)

	if verbose {
		fmt.Printf("Operation:  %s\n", uuid.New())
		fmt.Printf("Descriptor: %s\n", f.DescriptorPath(sourcePath))
	}

	var progressFn types.ProgressFunc
	if !quiet {
		progressFn = printProgress
	}

	if err := f.Copy(sourcePath, targetPath, progressFn); err != nil {
		return err
	}

	if !quiet {
		fmt.Println("Copy done.")
	}

	return nil
}

func printProgress(p types.Progress) {
	fmt.Printf("Blocks written: %d (%d%%) Remaining: %d\n",
		p.BlocksWritten, p.Percent(), p.MappedBlocks-p.BlocksWritten)
}
