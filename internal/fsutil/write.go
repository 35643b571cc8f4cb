// Package fsutil provides scoped file acquisition for sparsepix writers.
package fsutil

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFile writes the output of fn to path without ever exposing a partial file.
//
// The data goes to a temporary file in the destination directory through a
// buffered writer. On success the file is flushed, synced, closed and renamed
// over path. On any failure, including a panic in fn, the temporary file is
// closed and removed and path is left untouched.
func WriteFile(path string, perm os.FileMode, fn func(w io.Writer) error) error {
	dir := filepath.Dir(path)

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpName := f.Name()

	done, closed := false, false
	defer func() {
		if done {
			return
		}
		if !closed {
			_ = f.Close()
		}
		_ = os.Remove(tmpName)
	}()

	bw := bufio.NewWriter(f)
	if err = fn(bw); err != nil {
		return err
	}

	if err = bw.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	if err = f.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", path, err)
	}

	if err = f.Chmod(perm); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}

	closed = true
	if err = f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	done = true

	return nil
}

// ErrNotRegular is returned by FileSize for directories and other non-regular files.
var ErrNotRegular = errors.New("not a regular file")

// FileSize returns the size of a regular file.
func FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}

	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}

	return info.Size(), nil
}
