package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_Percent(t *testing.T) {
	tests := []struct {
		name     string
		progress Progress
		want     int
	}{
		{
			name:     "nothing written",
			progress: Progress{MappedBlocks: 8, BlocksWritten: 0},
			want:     0,
		},
		{
			name:     "halfway",
			progress: Progress{MappedBlocks: 8, BlocksWritten: 4},
			want:     50,
		},
		{
			name:     "complete",
			progress: Progress{MappedBlocks: 8, BlocksWritten: 8},
			want:     100,
		},
		{
			name:     "truncates toward zero",
			progress: Progress{MappedBlocks: 3, BlocksWritten: 1},
			want:     33,
		},
		{
			name:     "no mapped blocks",
			progress: Progress{MappedBlocks: 0, BlocksWritten: 0},
			want:     100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.progress.Percent())
		})
	}
}

func TestRange_End(t *testing.T) {
	r := Range{Offset: 5, BlockCount: 5}
	assert.Equal(t, uint64(10), r.End())
}

func TestDescriptor_MappedBytes(t *testing.T) {
	desc := Descriptor{BlockSize: 512, MappedBlocksCount: 8}
	assert.Equal(t, uint64(4096), desc.MappedBytes())
}
