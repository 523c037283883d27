package compression

import (
	"strings"

	"amfkit/errs"
)

// Algorithm selects a compression backend.
type Algorithm string

const (
	// Deflate is raw deflate (RFC 1951) with no wrapper.
	Deflate Algorithm = "deflate"
	// Zlib is deflate wrapped in a zlib header and checksum (RFC 1950).
	Zlib Algorithm = "zlib"
	// LZMA is the classic .lzma stream format.
	LZMA Algorithm = "lzma"
)

var Algorithms = []Algorithm{Deflate, Zlib, LZMA}

func ParseAlgorithm(s string) (Algorithm, error) {
	alg := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Algorithms {
		if alg == known {
			return alg, nil
		}
	}
	return "", errs.Unsupported("compression algorithm %q", s)
}

func (a Algorithm) String() string {
	return string(a)
}
