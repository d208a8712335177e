package io

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/klothoplatform/lattice/pkg/closenicely"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// OutputTo writes `files` under `dest`, creating directories as needed and replacing existing files. Files are
// written concurrently; the first error is returned once all writes have finished.
func OutputTo(files []File, dest string) error {
	var g errgroup.Group
	for _, f := range files {
		f := f
		g.Go(func() error {
			return writeFile(f, dest)
		})
	}
	return g.Wait()
}

func writeFile(f File, dest string) error {
	path := filepath.Join(dest, f.Path())
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create directory for %s: %w", f.Path(), err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("could not open %s: %w", path, err)
	}
	defer closenicely.OrDebug(file)

	w := &CountingWriter{Delegate: file}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	zap.L().Debug("wrote file", zap.String("path", path), zap.Int64("bytes", w.BytesWritten))
	return file.Sync()
}
