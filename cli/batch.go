package cli

import (
	"context"
	"io/ioutil"
	"os"

	"amfkit/compression"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

type BatchResult struct {
	Source string
	Dest   string
	InLen  int
	OutLen int
}

// OutputPath is where a compressed copy of path is written.
func OutputPath(path string, alg compression.Algorithm) string {
	return path + "." + alg.String()
}

// CompressFiles compresses every file in paths next to its source using at
// most workers concurrent streams. The first failure cancels the rest.
func (e *Env) CompressFiles(ctx context.Context, alg compression.Algorithm, paths []string, workers int) ([]BatchResult, error) {
	if workers < 1 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	results := make([]BatchResult, len(paths))
	g, gCtx := errgroup.WithContext(ctx)
	for i, p := range paths {
		i, p := i, p
		if err := sem.Acquire(gCtx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			res, err := e.compressFile(gCtx, alg, p)
			if err != nil {
				return errors.Wrapf(err, "error compressing %s", p)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Env) compressFile(ctx context.Context, alg compression.Algorithm, path string) (BatchResult, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return BatchResult{}, err
	}
	s, err := e.NewStream(data)
	if err != nil {
		return BatchResult{}, err
	}
	if err := s.CompressContext(ctx, alg); err != nil {
		return BatchResult{}, err
	}
	dest := OutputPath(path, alg)
	if err := ioutil.WriteFile(dest, s.Bytes(), 0644); err != nil {
		return BatchResult{}, err
	}
	logger.Debug("compressed file", "source", path, "dest", dest, "algorithm", alg)
	return BatchResult{
		Source: path,
		Dest:   dest,
		InLen:  len(data),
		OutLen: s.Len(),
	}, nil
}

// ReadInput reads the named file, or stdin when name is "-".
func ReadInput(name string) ([]byte, error) {
	if name == "-" {
		return ioutil.ReadAll(os.Stdin)
	}
	return ioutil.ReadFile(name)
}

// WriteOutput writes data to the named file, or stdout when name is "-".
func WriteOutput(name string, data []byte) error {
	if name == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return ioutil.WriteFile(name, data, 0644)
}
