// Package fsx abstracts where uploaded files are kept.
package fsx

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist is returned by readers when the path has no file
var ErrNotExist = errors.New("fsx: file does not exist")

// FileReader reads stored files
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
}

// FileWriter stores and removes files
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	WriteFileStream(ctx context.Context, path string, r io.Reader) error
	DeleteFile(ctx context.Context, path string) error
}

// FileSystem is a storage backend addressed by slash separated paths
type FileSystem interface {
	FileReader
	FileWriter
	Exists(ctx context.Context, path string) (bool, error)
	Join(elem ...string) string
}
