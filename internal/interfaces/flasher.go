// File: internal/interfaces/flasher.go
package interfaces

import (
	"github.com/deploymenttheory/go-bmap/internal/types"
)

// ImageFlasher copies the populated ranges of a sparse disk image onto a
// target block device or file, guided by the image's block-map descriptor.
type ImageFlasher interface {
	// Copy flashes sourcePath onto targetPath, invoking progress (when
	// non-nil) after every buffered chunk. The target must already exist;
	// unmapped regions of it are left untouched.
	Copy(sourcePath, targetPath string, progress types.ProgressFunc) error

	// DescriptorPath returns the conventional descriptor location for a
	// source image path.
	DescriptorPath(sourcePath string) string
}
