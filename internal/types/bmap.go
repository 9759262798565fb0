// File: internal/types/bmap.go
package types

// Range describes one contiguous span of populated blocks in the source
// image, as declared by the block-map descriptor. Offsets and counts are in
// blocks, not bytes.
type Range struct {
	// Offset is the index of the first block in the range
	Offset uint64

	// BlockCount is the number of contiguous populated blocks, always >= 1
	BlockCount uint64

	// Checksum is the declared checksum of the range's data, using the
	// descriptor's ChecksumType algorithm. Empty when the descriptor
	// omitted the chksum attribute.
	Checksum string
}

// End returns the first block index after the range.
func (r Range) End() uint64 {
	return r.Offset + r.BlockCount
}

// Descriptor is the parsed block-map descriptor for a sparse disk image.
// It is constructed once per copy operation and read-only afterwards.
type Descriptor struct {
	// ImageSize is the total image size in bytes
	ImageSize uint64

	// BlockSize is the size of a single block in bytes
	BlockSize uint64

	// BlocksCount is the total number of blocks in the image,
	// populated and unpopulated
	BlocksCount uint64

	// MappedBlocksCount is the total number of populated blocks,
	// equal to the sum of all range block counts
	MappedBlocksCount uint64

	// ChecksumType names the hash algorithm used for the per-range and
	// whole-file checksums (e.g. "sha256")
	ChecksumType string

	// Checksum is the declared whole-file checksum of the descriptor
	// document itself; advisory only, never verified by the copy engine
	Checksum string

	// BlockMap lists the populated ranges in ascending, non-overlapping
	// offset order
	BlockMap []Range
}

// MappedBytes returns the number of bytes the copy engine will transfer.
func (d *Descriptor) MappedBytes() uint64 {
	return d.MappedBlocksCount * d.BlockSize
}

// Progress is a snapshot of a running copy operation. It is passed to the
// caller's progress callback after every buffered chunk.
type Progress struct {
	// MappedBlocks is the total number of blocks that will be written,
	// fixed for the whole operation
	MappedBlocks uint64

	// BlocksWritten is the cumulative number of blocks written so far,
	// monotonically increasing
	BlocksWritten uint64
}

// Percent returns the completed fraction as a truncated integer in [0,100].
// An image with no mapped blocks reports 100, since nothing remains to copy.
func (p Progress) Percent() int {
	if p.MappedBlocks == 0 {
		return 100
	}
	return int(100 * p.BlocksWritten / p.MappedBlocks)
}

// ProgressFunc receives Progress snapshots during a copy. It is invoked
// synchronously from the copy loop and must not block indefinitely.
type ProgressFunc func(Progress)
