package testfs

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTempDir creates a scratch directory and returns a func that removes it.
func NewTempDir(t *testing.T) (string, func()) {
	dir, err := ioutil.TempDir("", "amfkit_")
	require.NoError(t, err)
	return dir, func() {
		require.NoError(t, os.RemoveAll(dir))
	}
}

// WriteFile writes data to name inside dir and returns the full path.
func WriteFile(t *testing.T, dir, name string, data []byte) string {
	path := dir + string(os.PathSeparator) + name
	require.NoError(t, ioutil.WriteFile(path, data, 0644))
	return path
}
