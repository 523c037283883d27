package compression

import (
	"context"
	"sync"

	"amfkit/errs"
	"amfkit/log"

	"github.com/pkg/errors"
)

type result struct {
	data []byte
	err  error
}

type syncBackend struct {
	async AsyncBackend
	lgr   log.Logger
}

// Synchronize adapts an AsyncBackend to the blocking Backend contract. The
// calling goroutine is parked on a channel until the callback fires or ctx is
// done. A callback that fires after the caller gave up is discarded.
func Synchronize(async AsyncBackend) Backend {
	return &syncBackend{
		async: async,
		lgr:   log.WithModule("compression"),
	}
}

func (s *syncBackend) Compress(ctx context.Context, data []byte) ([]byte, error) {
	return s.await(ctx, "compress", func(done Callback) {
		s.async.CompressAsync(data, done)
	})
}

func (s *syncBackend) Decompress(ctx context.Context, data []byte) ([]byte, error) {
	return s.await(ctx, "decompress", func(done Callback) {
		s.async.DecompressAsync(data, done)
	})
}

func (s *syncBackend) await(ctx context.Context, op string, start func(Callback)) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, contextErr(err, op)
	}

	resCh := make(chan result, 1)
	var once sync.Once
	start(func(data []byte, err error) {
		once.Do(func() {
			resCh <- result{data, err}
		})
	})

	select {
	case res := <-resCh:
		return res.data, res.err
	case <-ctx.Done():
		s.lgr.Warn("abandoned pending backend call", "op", op, "err", ctx.Err())
		return nil, contextErr(ctx.Err(), op)
	}
}

func contextErr(err error, op string) error {
	if err == context.DeadlineExceeded {
		return errs.Timeout("%s did not complete", op)
	}
	return errors.Wrapf(err, "%s cancelled", op)
}
