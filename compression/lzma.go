package compression

import (
	"bytes"
	"io/ioutil"

	"amfkit/log"

	"github.com/pkg/errors"
	"github.com/ulikunitz/xz/lzma"
)

// DefaultLZMADictCap matches the dictionary size of LZMA preset level 1.
const DefaultLZMADictCap = 1 << 20

// LZMABackend is an AsyncBackend producing .lzma streams.
type LZMABackend struct {
	DictCap int
	lgr     log.Logger
}

// NewLZMA returns an asynchronous LZMA backend. Every call runs on its own
// goroutine and reports through the callback.
func NewLZMA() *LZMABackend {
	return &LZMABackend{
		DictCap: DefaultLZMADictCap,
		lgr:     log.WithModule("compression"),
	}
}

func (l *LZMABackend) CompressAsync(data []byte, done Callback) {
	go func() {
		out, err := l.compress(data)
		l.lgr.Trace("lzma compress finished", "in", len(data), "out", len(out))
		done(out, err)
	}()
}

func (l *LZMABackend) DecompressAsync(data []byte, done Callback) {
	go func() {
		out, err := l.decompress(data)
		l.lgr.Trace("lzma decompress finished", "in", len(data), "out", len(out))
		done(out, err)
	}()
}

func (l *LZMABackend) compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	cfg := lzma.WriterConfig{
		DictCap: l.DictCap,
	}
	w, err := cfg.NewWriter(&buf)
	if err != nil {
		return nil, errors.Wrap(err, "error opening lzma writer")
	}
	if _, err := w.Write(data); err != nil {
		return nil, errors.Wrap(err, "error writing lzma stream")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "error flushing lzma stream")
	}
	return buf.Bytes(), nil
}

func (l *LZMABackend) decompress(data []byte) ([]byte, error) {
	r, err := lzma.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "error opening lzma reader")
	}
	out, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "error reading lzma stream")
	}
	return out, nil
}
