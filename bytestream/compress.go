package bytestream

import (
	"context"

	"amfkit/compression"

	"github.com/pkg/errors"
)

func (s *Stream) Compress(alg compression.Algorithm) error {
	return s.CompressContext(context.Background(), alg)
}

func (s *Stream) Uncompress(alg compression.Algorithm) error {
	return s.UncompressContext(context.Background(), alg)
}

// Deflate compresses the buffer with raw deflate.
func (s *Stream) Deflate() error {
	return s.Compress(compression.Deflate)
}

// Inflate decompresses a raw deflate buffer.
func (s *Stream) Inflate() error {
	return s.Uncompress(compression.Deflate)
}

// CompressContext replaces the whole buffer with its compressed form and
// resets the cursor. It blocks until the backend is done, ctx is done or the
// stream's compression timeout expires.
func (s *Stream) CompressContext(ctx context.Context, alg compression.Algorithm) error {
	return s.transform(ctx, alg, "compress", func(ctx context.Context, b compression.Backend, in []byte) ([]byte, error) {
		return b.Compress(ctx, in)
	})
}

// UncompressContext is the inverse of CompressContext.
func (s *Stream) UncompressContext(ctx context.Context, alg compression.Algorithm) error {
	return s.transform(ctx, alg, "uncompress", func(ctx context.Context, b compression.Backend, in []byte) ([]byte, error) {
		return b.Decompress(ctx, in)
	})
}

type transformFunc func(ctx context.Context, b compression.Backend, in []byte) ([]byte, error)

func (s *Stream) transform(ctx context.Context, alg compression.Algorithm, op string, fn transformFunc) error {
	backend, err := s.compressors.Lookup(alg)
	if err != nil {
		return err
	}
	if s.compressTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.compressTimeout)
		defer cancel()
	}

	in := s.buf.Bytes()
	out, err := fn(ctx, backend, in)
	if err != nil {
		return errors.Wrapf(err, "error during %s %s", alg, op)
	}
	s.buf.replace(out)
	s.pos = 0
	s.lgr.Debug("transformed buffer", "op", op, "algorithm", alg, "in", len(in), "out", len(out))
	return nil
}
