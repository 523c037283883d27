package compression

import (
	"context"
	"sync"

	"amfkit/errs"
)

// Backend transforms a byte slice and returns only once the result is
// complete.
type Backend interface {
	Compress(ctx context.Context, data []byte) ([]byte, error)
	Decompress(ctx context.Context, data []byte) ([]byte, error)
}

// Callback receives the outcome of an asynchronous transform. It is invoked
// exactly once.
type Callback func(result []byte, err error)

// AsyncBackend is a backend that signals completion through a callback,
// possibly from another goroutine.
type AsyncBackend interface {
	CompressAsync(data []byte, done Callback)
	DecompressAsync(data []byte, done Callback)
}

// Registry maps algorithms to backends. It is safe for concurrent use.
type Registry struct {
	backends map[Algorithm]Backend
	mtx      sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		backends: make(map[Algorithm]Backend),
	}
}

// DefaultRegistry returns a registry with raw deflate, zlib and LZMA
// installed. The LZMA backend is asynchronous and bridged with Synchronize.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Deflate, NewDeflate())
	r.Register(Zlib, NewZlib())
	r.Register(LZMA, Synchronize(NewLZMA()))
	return r
}

func (r *Registry) Register(alg Algorithm, b Backend) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.backends[alg] = b
}

func (r *Registry) Lookup(alg Algorithm) (Backend, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	b, ok := r.backends[alg]
	if !ok {
		return nil, errs.Unsupported("compression algorithm %q", string(alg))
	}
	return b, nil
}

func (r *Registry) Compress(ctx context.Context, alg Algorithm, data []byte) ([]byte, error) {
	b, err := r.Lookup(alg)
	if err != nil {
		return nil, err
	}
	return b.Compress(ctx, data)
}

func (r *Registry) Decompress(ctx context.Context, alg Algorithm, data []byte) ([]byte, error) {
	b, err := r.Lookup(alg)
	if err != nil {
		return nil, err
	}
	return b.Decompress(ctx, data)
}
