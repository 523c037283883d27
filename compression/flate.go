package compression

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"context"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
)

type writerFunc func(w io.Writer) (io.WriteCloser, error)
type readerFunc func(r io.Reader) (io.ReadCloser, error)

type streamBackend struct {
	name      string
	newWriter writerFunc
	newReader readerFunc
}

// NewDeflate returns a synchronous raw deflate backend.
func NewDeflate() Backend {
	return &streamBackend{
		name: string(Deflate),
		newWriter: func(w io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(w, flate.DefaultCompression)
		},
		newReader: func(r io.Reader) (io.ReadCloser, error) {
			return flate.NewReader(r), nil
		},
	}
}

// NewZlib returns a synchronous zlib backend.
func NewZlib() Backend {
	return &streamBackend{
		name: string(Zlib),
		newWriter: func(w io.Writer) (io.WriteCloser, error) {
			return zlib.NewWriter(w), nil
		},
		newReader: func(r io.Reader) (io.ReadCloser, error) {
			return zlib.NewReader(r)
		},
	}
}

func (s *streamBackend) Compress(ctx context.Context, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, contextErr(err, "compress")
	}
	var buf bytes.Buffer
	w, err := s.newWriter(&buf)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening %s writer", s.name)
	}
	if _, err := w.Write(data); err != nil {
		return nil, errors.Wrapf(err, "error writing %s stream", s.name)
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrapf(err, "error flushing %s stream", s.name)
	}
	return buf.Bytes(), nil
}

func (s *streamBackend) Decompress(ctx context.Context, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, contextErr(err, "decompress")
	}
	r, err := s.newReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "error opening %s reader", s.name)
	}
	defer r.Close()
	out, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading %s stream", s.name)
	}
	return out, nil
}
