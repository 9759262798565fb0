package bmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/deploymenttheory/go-bmap/internal/types"
)

// parseRange converts one Range element into a types.Range. The element text
// is either a single block index "N" or an inclusive span "N-M"; the chksum
// attribute holds the range's declared checksum and may be absent.
func parseRange(elem *etree.Element) (types.Range, error) {
	if elem == nil {
		return types.Range{}, fmt.Errorf("%w: range element is nil", types.ErrParse)
	}

	text := strings.TrimSpace(elem.Text())
	checksum := elem.SelectAttrValue("chksum", "")

	// A single index means exactly one block. Keep the two shapes as
	// explicit cases rather than folding them into one formula.
	if !strings.Contains(text, "-") {
		offset, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return types.Range{}, fmt.Errorf("%w: invalid range text %q", types.ErrParse, text)
		}

		return types.Range{
			Offset:     offset,
			BlockCount: 1,
			Checksum:   checksum,
		}, nil
	}

	startText, endText, _ := strings.Cut(text, "-")

	start, err := strconv.ParseUint(strings.TrimSpace(startText), 10, 64)
	if err != nil {
		return types.Range{}, fmt.Errorf("%w: invalid range start %q in %q", types.ErrParse, startText, text)
	}

	end, err := strconv.ParseUint(strings.TrimSpace(endText), 10, 64)
	if err != nil {
		return types.Range{}, fmt.Errorf("%w: invalid range end %q in %q", types.ErrParse, endText, text)
	}

	if end < start {
		return types.Range{}, fmt.Errorf("%w: range %q ends before it starts", types.ErrParse, text)
	}

	return types.Range{
		Offset:     start,
		BlockCount: end - start + 1,
		Checksum:   checksum,
	}, nil
}
