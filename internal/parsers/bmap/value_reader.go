package bmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/deploymenttheory/go-bmap/internal/types"
)

// elementUint parses the element's text content as an unsigned integer.
func elementUint(elem *etree.Element) (uint64, error) {
	if elem == nil {
		return 0, fmt.Errorf("%w: element is nil", types.ErrParse)
	}

	// Stream-style numeric extraction tolerates surrounding whitespace;
	// string fields stay verbatim.
	v, err := strconv.ParseUint(strings.TrimSpace(elem.Text()), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: element %q has non-numeric text %q", types.ErrParse, elem.Tag, elem.Text())
	}

	return v, nil
}

// elementString returns the element's text content verbatim, untrimmed.
func elementString(elem *etree.Element) (string, error) {
	if elem == nil {
		return "", fmt.Errorf("%w: element is nil", types.ErrParse)
	}

	return elem.Text(), nil
}

// elementAtPath walks a slash-separated path of child element names starting
// at root and returns the final element. It fails at the first segment with
// no matching child.
func elementAtPath(root *etree.Element, path string) (*etree.Element, error) {
	elem := root
	for _, segment := range strings.Split(path, "/") {
		elem = elem.SelectElement(segment)
		if elem == nil {
			return nil, fmt.Errorf("%w: no child element named %q in path %q", types.ErrParse, segment, path)
		}
	}

	return elem, nil
}

// uintAtPath resolves path below root and parses the target element's text
// as an unsigned integer.
func uintAtPath(root *etree.Element, path string) (uint64, error) {
	elem, err := elementAtPath(root, path)
	if err != nil {
		return 0, err
	}

	return elementUint(elem)
}

// stringAtPath resolves path below root and returns the target element's
// text verbatim.
func stringAtPath(root *etree.Element, path string) (string, error) {
	elem, err := elementAtPath(root, path)
	if err != nil {
		return "", err
	}

	return elementString(elem)
}
