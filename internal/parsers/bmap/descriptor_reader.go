package bmap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/beevik/etree"

	"github.com/deploymenttheory/go-bmap/internal/interfaces"
	"github.com/deploymenttheory/go-bmap/internal/types"
)

// descriptorLoader implements the DescriptorLoader interface
type descriptorLoader struct{}

// NewDescriptorLoader creates a new DescriptorLoader implementation
func NewDescriptorLoader() interfaces.DescriptorLoader {
	return &descriptorLoader{}
}

// Load reads the descriptor document at path and parses it.
func (dl *descriptorLoader) Load(path string) (*types.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: descriptor file %s", types.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: reading descriptor %s: %v", types.ErrIO, path, err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", types.ErrEmptyDescriptor, path)
	}

	desc, err := dl.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing descriptor %s: %w", path, err)
	}

	return desc, nil
}

// Parse parses a descriptor document from raw bytes and validates its
// internal consistency.
func (dl *descriptorLoader) Parse(data []byte) (*types.Descriptor, error) {
	if len(data) == 0 {
		return nil, types.ErrEmptyDescriptor
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: malformed document: %v", types.ErrParse, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: document has no root element", types.ErrParse)
	}

	desc := &types.Descriptor{}

	var err error
	if desc.ImageSize, err = uintAtPath(root, "ImageSize"); err != nil {
		return nil, err
	}
	if desc.BlockSize, err = uintAtPath(root, "BlockSize"); err != nil {
		return nil, err
	}
	if desc.BlocksCount, err = uintAtPath(root, "BlocksCount"); err != nil {
		return nil, err
	}
	if desc.MappedBlocksCount, err = uintAtPath(root, "MappedBlocksCount"); err != nil {
		return nil, err
	}
	if desc.ChecksumType, err = stringAtPath(root, "ChecksumType"); err != nil {
		return nil, err
	}
	if desc.Checksum, err = stringAtPath(root, "BmapFileChecksum"); err != nil {
		return nil, err
	}

	// A missing BlockMap element is a valid all-sparse image, not an error.
	if blockMap := root.SelectElement("BlockMap"); blockMap != nil {
		for _, rangeElem := range blockMap.SelectElements("Range") {
			r, err := parseRange(rangeElem)
			if err != nil {
				return nil, err
			}
			desc.BlockMap = append(desc.BlockMap, r)
		}
	}

	if err := validateDescriptor(desc); err != nil {
		return nil, err
	}

	return desc, nil
}

// validateDescriptor checks the invariants the copy engine relies on. The
// seek-skip logic silently corrupts the target when ranges are unordered or
// overlapping, so every violation fails the parse instead.
func validateDescriptor(desc *types.Descriptor) error {
	if desc.BlockSize == 0 {
		return fmt.Errorf("%w: block size is zero", types.ErrParse)
	}

	if desc.ImageSize != desc.BlocksCount*desc.BlockSize {
		return fmt.Errorf("%w: image size %d does not equal %d blocks of %d bytes",
			types.ErrParse, desc.ImageSize, desc.BlocksCount, desc.BlockSize)
	}

	var mapped uint64
	var nextOffset uint64
	for i, r := range desc.BlockMap {
		if i > 0 && r.Offset < nextOffset {
			return fmt.Errorf("%w: range %d (blocks %d-%d) overlaps or precedes the previous range",
				types.ErrParse, i, r.Offset, r.End()-1)
		}
		if r.End() > desc.BlocksCount {
			return fmt.Errorf("%w: range %d (blocks %d-%d) exceeds image block count %d",
				types.ErrParse, i, r.Offset, r.End()-1, desc.BlocksCount)
		}
		nextOffset = r.End()
		mapped += r.BlockCount
	}

	if mapped != desc.MappedBlocksCount {
		return fmt.Errorf("%w: block map covers %d blocks but MappedBlocksCount declares %d",
			types.ErrParse, mapped, desc.MappedBlocksCount)
	}

	return nil
}
