package bmap

import (
	"errors"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-bmap/internal/types"
)

const valueReaderFixture = `<bmap version="2.0">
    <ImageSize> 5120 </ImageSize>
    <ChecksumType>sha256</ChecksumType>
    <Nested>
        <Inner>
            <Leaf> 42 </Leaf>
        </Inner>
    </Nested>
</bmap>`

func fixtureRoot(t *testing.T) *etree.Element {
	t.Helper()

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(valueReaderFixture))
	require.NotNil(t, doc.Root())

	return doc.Root()
}

func TestUintAtPath(t *testing.T) {
	root := fixtureRoot(t)

	v, err := uintAtPath(root, "ImageSize")
	require.NoError(t, err)
	assert.Equal(t, uint64(5120), v)

	v, err = uintAtPath(root, "Nested/Inner/Leaf")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), v)
}

func TestUintAtPath_Errors(t *testing.T) {
	root := fixtureRoot(t)

	tests := []struct {
		name     string
		path     string
		errorMsg string
	}{
		{
			name:     "missing top-level element",
			path:     "BlockSize",
			errorMsg: `no child element named "BlockSize"`,
		},
		{
			name:     "path fails at intermediate segment",
			path:     "Nested/Missing/Leaf",
			errorMsg: `no child element named "Missing"`,
		},
		{
			name:     "non-numeric text",
			path:     "ChecksumType",
			errorMsg: "non-numeric text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uintAtPath(root, tt.path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrParse), "expected ErrParse, got %v", err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestStringAtPath(t *testing.T) {
	root := fixtureRoot(t)

	s, err := stringAtPath(root, "ChecksumType")
	require.NoError(t, err)
	assert.Equal(t, "sha256", s)

	// Text content comes back verbatim, whitespace included.
	s, err = stringAtPath(root, "ImageSize")
	require.NoError(t, err)
	assert.Equal(t, " 5120 ", s)

	_, err = stringAtPath(root, "Missing")
	assert.True(t, errors.Is(err, types.ErrParse))
}

func TestElementValue_NilElement(t *testing.T) {
	_, err := elementUint(nil)
	assert.True(t, errors.Is(err, types.ErrParse))

	_, err = elementString(nil)
	assert.True(t, errors.Is(err, types.ErrParse))
}
