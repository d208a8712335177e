package io

import (
	"io"
)

// File is an output file, written relative to an output directory.
type File interface {
	Path() string
	WriteTo(io.Writer) (int64, error)
}

// RawFile is a file whose content is already rendered, such as a template.
type RawFile struct {
	FPath   string
	Content []byte
}

func (r *RawFile) Path() string {
	return r.FPath
}

func (r *RawFile) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.Content)
	return int64(n), err
}
