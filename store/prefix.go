package store

import (
	"strings"
)

// Prefixer returns a key builder that joins its parts under prefix with "/".
func Prefixer(prefix string) func(parts ...string) []byte {
	return func(parts ...string) []byte {
		return []byte(strings.Join(append([]string{prefix}, parts...), "/"))
	}
}
