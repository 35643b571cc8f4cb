package main

import (
	"fmt"
	"math"

	"github.com/arloliu/sparsepix"
	"github.com/arloliu/sparsepix/container"
	"github.com/arloliu/sparsepix/sparse"
)

// source is a sparse file loaded from disk: either one matrix or the planes
// of a container archive.
type source struct {
	format  sparsepix.FileFormat
	matrix  sparse.Matrix
	archive *container.Archive
}

func loadSource(path string) (*source, error) {
	ff, err := sparsepix.DetectFileFormat(path)
	if err != nil {
		return nil, err
	}

	src := &source{format: ff}
	if ff == sparsepix.FileFormatContainer {
		src.archive, err = container.ReadFile(path)
	} else {
		src.matrix, err = sparsepix.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return src, nil
}

func (s *source) planes() []sparse.Matrix {
	if s.archive != nil {
		return s.archive.Channels
	}

	return []sparse.Matrix{s.matrix}
}

func (s *source) dense() (*sparse.Dense, error) {
	if s.archive != nil {
		return s.archive.ToDense()
	}

	return sparsepix.Decompress(s.matrix), nil
}

func ratio(original, compressed int64) float64 {
	if compressed == 0 {
		return math.Inf(1)
	}

	return float64(original) / float64(compressed)
}
