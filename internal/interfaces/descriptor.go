// File: internal/interfaces/descriptor.go
package interfaces

import (
	"github.com/deploymenttheory/go-bmap/internal/types"
)

// DescriptorLoader provides methods for loading block-map descriptors
type DescriptorLoader interface {
	// Load reads and parses the descriptor document at the given path
	Load(path string) (*types.Descriptor, error)

	// Parse parses a descriptor document from raw bytes
	Parse(data []byte) (*types.Descriptor, error)
}
