package flasher

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/deploymenttheory/go-bmap/internal/interfaces"
	"github.com/deploymenttheory/go-bmap/internal/parsers/bmap"
	"github.com/deploymenttheory/go-bmap/internal/types"
)

// imageFlasher implements the ImageFlasher interface
type imageFlasher struct {
	config *Config
	loader interfaces.DescriptorLoader
}

// NewImageFlasher creates a new ImageFlasher implementation. A nil config
// selects the built-in defaults.
func NewImageFlasher(config *Config) interfaces.ImageFlasher {
	if config == nil {
		config = DefaultConfig()
	}

	return &imageFlasher{
		config: config,
		loader: bmap.NewDescriptorLoader(),
	}
}

// DescriptorPath returns the conventional descriptor location for a source
// image: same directory, descriptor suffix appended to the full filename
// (extension included, not stem-stripped). Existing descriptor-producing
// tools name the file that way.
func (f *imageFlasher) DescriptorPath(sourcePath string) string {
	return filepath.Join(filepath.Dir(sourcePath), filepath.Base(sourcePath)+f.config.DescriptorSuffix)
}

// Copy flashes the populated ranges of sourcePath onto targetPath. The
// target is opened read-write without truncation: unmapped regions keep
// whatever content they already hold.
func (f *imageFlasher) Copy(sourcePath, targetPath string, progressFn types.ProgressFunc) error {
	if err := f.checkSourceFormat(sourcePath); err != nil {
		return err
	}

	if _, err := os.Stat(sourcePath); err != nil {
		return fmt.Errorf("%w: source image %s", types.ErrNotFound, sourcePath)
	}
	if _, err := os.Stat(targetPath); err != nil {
		return fmt.Errorf("%w: target device %s", types.ErrNotFound, targetPath)
	}

	desc, err := f.loader.Load(f.DescriptorPath(sourcePath))
	if err != nil {
		return err
	}

	return f.copyRanges(sourcePath, targetPath, desc, progressFn)
}

// checkSourceFormat classifies the source extension: recognized uncompressed
// formats pass, recognized compressed formats are not implemented, anything
// else is unsupported.
func (f *imageFlasher) checkSourceFormat(sourcePath string) error {
	for _, ext := range f.config.CompressedExtensions {
		if strings.HasSuffix(sourcePath, ext) {
			return fmt.Errorf("%w: compressed image %s", types.ErrNotImplemented, sourcePath)
		}
	}

	for _, ext := range f.config.SourceExtensions {
		if strings.HasSuffix(sourcePath, ext) {
			return nil
		}
	}

	return fmt.Errorf("%w: expected one of %s, got %s",
		types.ErrUnsupportedFormat,
		strings.Join(append(append([]string{}, f.config.SourceExtensions...), f.config.CompressedExtensions...), ", "),
		sourcePath)
}

// copyRanges runs the sequential seek-skip copy loop over the descriptor's
// block map.
func (f *imageFlasher) copyRanges(sourcePath, targetPath string, desc *types.Descriptor, progressFn types.ProgressFunc) error {
	source, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("%w: opening source image: %v", types.ErrIO, err)
	}
	defer source.Close()

	target, err := os.OpenFile(targetPath, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("%w: opening target device %s for writing, maybe missing permissions: %v",
			types.ErrIO, targetPath, err)
	}
	defer target.Close()

	buffer := make([]byte, workingBufferSize(desc.BlockSize, f.config.MaxBufferSize))
	bufferMaxBlocks := uint64(len(buffer)) / desc.BlockSize

	progress := types.Progress{MappedBlocks: desc.MappedBlocksCount}

	// Block index both cursors currently point at. Tracked separately from
	// BlocksWritten so gaps between ranges do not shift later seeks.
	var position uint64

	for _, r := range desc.BlockMap {
		if r.Offset > position {
			skipBytes := int64((r.Offset - position) * desc.BlockSize)
			if _, err := source.Seek(skipBytes, io.SeekCurrent); err != nil {
				return fmt.Errorf("%w: seeking source to block %d: %v", types.ErrIO, r.Offset, err)
			}
			if _, err := target.Seek(skipBytes, io.SeekCurrent); err != nil {
				return fmt.Errorf("%w: seeking target to block %d: %v", types.ErrIO, r.Offset, err)
			}
			position = r.Offset
		}

		for remaining := r.BlockCount; remaining > 0; {
			chunkBlocks := remaining
			if bufferMaxBlocks < chunkBlocks {
				chunkBlocks = bufferMaxBlocks
			}
			chunk := buffer[:chunkBlocks*desc.BlockSize]

			if _, err := io.ReadFull(source, chunk); err != nil {
				return fmt.Errorf("%w: reading %d blocks at block %d: %v", types.ErrIO, chunkBlocks, position, err)
			}

			n, err := target.Write(chunk)
			if err != nil {
				return fmt.Errorf("%w: writing %d blocks at block %d: %v", types.ErrIO, chunkBlocks, position, err)
			}
			if n != len(chunk) {
				return fmt.Errorf("%w: short write at block %d: %d of %d bytes", types.ErrIO, position, n, len(chunk))
			}

			position += chunkBlocks
			progress.BlocksWritten += chunkBlocks
			remaining -= chunkBlocks

			if progressFn != nil {
				progressFn(progress)
			}
		}

		// Durability barrier: the range's data reaches stable storage
		// before the next range starts, so a crash loses at most one
		// range of unflushed writes.
		if err := target.Sync(); err != nil {
			return fmt.Errorf("%w: syncing target after block %d: %v", types.ErrIO, position, err)
		}
	}

	return nil
}

// workingBufferSize picks the transfer buffer size: blockSize*2048 capped at
// maxBufferSize, but never below a single block.
func workingBufferSize(blockSize, maxBufferSize uint64) uint64 {
	size := blockSize * bufferBlocks
	if size > maxBufferSize {
		size = maxBufferSize
	}
	if size < blockSize {
		size = blockSize
	}
	return size
}
