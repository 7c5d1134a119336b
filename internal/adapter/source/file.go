package source

import (
	"context"
	"fmt"
	"os"
)

// File reads a table from the local filesystem.
type File struct {
	path string
}

// NewFile creates a File source for path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Fetch reads the whole file.
func (f *File) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", f.path, err)
	}
	return string(data), nil
}
