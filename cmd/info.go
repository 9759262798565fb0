package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-bmap/internal/flasher"
	"github.com/deploymenttheory/go-bmap/internal/parsers/bmap"
	"github.com/deploymenttheory/go-bmap/internal/types"
)

var infoCmd = &cobra.Command{
	Use:   "info <image>",
	Short: "Show a parsed block-map descriptor",
	Long: `Locate the block-map descriptor for an image, parse it, and print the
whole-image metadata and the list of populated ranges.

Examples:
  go-bmap info build/core-image.wic
  go-bmap info -o json build/core-image.wic`,

	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInfo(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitFailure)
		}
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(sourcePath string) error {
	config, err := flasher.LoadConfig()
	if err != nil {
		return err
	}

	descriptorPath := flasher.NewImageFlasher(config).DescriptorPath(sourcePath)

	desc, err := bmap.NewDescriptorLoader().Load(descriptorPath)
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		return printDescriptorJSON(desc)
	}

	printDescriptor(descriptorPath, desc)
	return nil
}

func printDescriptor(path string, desc *types.Descriptor) {
	fmt.Printf("Descriptor: %s\n", path)
	fmt.Printf("  imageSize:    %d\n", desc.ImageSize)
	fmt.Printf("  blockSize:    %d\n", desc.BlockSize)
	fmt.Printf("  blocks:       %d\n", desc.BlocksCount)
	fmt.Printf("  mappedBlocks: %d\n", desc.MappedBlocksCount)
	fmt.Printf("  checksumType: %s\n", desc.ChecksumType)
	fmt.Printf("  checksum:     %s\n", desc.Checksum)
	fmt.Printf("  BlockMap:\n")

	for _, r := range desc.BlockMap {
		fmt.Printf("    Range: offset=%d blocks=%d checksum=%s\n", r.Offset, r.BlockCount, r.Checksum)
	}
}

func printDescriptorJSON(desc *types.Descriptor) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(desc)
}
