package compression

import (
	"bytes"
	"context"
	"testing"
	"time"

	"amfkit/errs"

	"github.com/fortytw2/leaktest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestParseAlgorithm(t *testing.T) {
	alg, err := ParseAlgorithm(" ZLIB ")
	require.NoError(t, err)
	require.Equal(t, Zlib, alg)

	_, err = ParseAlgorithm("brotli")
	require.True(t, errors.Is(err, errs.ErrUnsupportedEncoding))
}

func TestRegistry_RoundTrip(t *testing.T) {
	defer leaktest.Check(t)()

	inputs := map[string][]byte{
		"empty":      {},
		"short":      []byte("Comp/method"),
		"zeros":      make([]byte, 4096),
		"repetitive": bytes.Repeat([]byte("onResult/onStatus"), 300),
	}
	reg := DefaultRegistry()
	ctx := context.Background()
	for _, alg := range Algorithms {
		for name, in := range inputs {
			t.Run(string(alg)+"/"+name, func(t *testing.T) {
				packed, err := reg.Compress(ctx, alg, in)
				require.NoError(t, err)
				out, err := reg.Decompress(ctx, alg, packed)
				require.NoError(t, err)
				require.Equal(t, len(in), len(out))
				require.True(t, bytes.Equal(in, out))
			})
		}
	}
}

func TestRegistry_Unknown(t *testing.T) {
	_, err := NewRegistry().Compress(context.Background(), Zlib, []byte{1})
	require.True(t, errors.Is(err, errs.ErrUnsupportedEncoding))
}

func TestZlib_Header(t *testing.T) {
	packed, err := NewZlib().Compress(context.Background(), []byte("abc"))
	require.NoError(t, err)
	require.EqualValues(t, 0x78, packed[0])

	_, err = NewZlib().Decompress(context.Background(), []byte{0x00, 0x01})
	require.Error(t, err)
}

type stalledBackend struct {
	release chan struct{}
}

func (s *stalledBackend) CompressAsync(data []byte, done Callback) {
	go func() {
		<-s.release
		done(data, nil)
	}()
}

func (s *stalledBackend) DecompressAsync(data []byte, done Callback) {
	s.CompressAsync(data, done)
}

func TestSynchronize_Timeout(t *testing.T) {
	defer leaktest.Check(t)()

	stalled := &stalledBackend{release: make(chan struct{})}
	b := Synchronize(stalled)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := b.Compress(ctx, []byte{1, 2, 3})
	require.True(t, errors.Is(err, errs.ErrTimeout))

	// the late callback must not block the backend goroutine
	close(stalled.release)
}

func TestSynchronize_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Synchronize(NewLZMA()).Decompress(ctx, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled))
	require.False(t, errors.Is(err, errs.ErrTimeout))
}

type doubleCallback struct{}

func (doubleCallback) CompressAsync(data []byte, done Callback) {
	done([]byte{1}, nil)
	done([]byte{2}, nil)
}

func (d doubleCallback) DecompressAsync(data []byte, done Callback) {
	d.CompressAsync(data, done)
}

func TestSynchronize_FirstCallbackWins(t *testing.T) {
	out, err := Synchronize(doubleCallback{}).Compress(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, []byte{1}, out)
}
