package image

import (
	"io"
	"os"
	"path/filepath"
)

// CreateFS is a file system that supports creating files.
type CreateFS interface {
	// Create creates a new file for writing.
	Create(name string) (file io.WriteCloser, err error)
}

type dirFS string

// DirFS returns a CreateFS for the files of a directory.
func DirFS(dir string) CreateFS {
	return dirFS(dir)
}

func (dir dirFS) Create(name string) (file io.WriteCloser, err error) {
	return os.Create(filepath.Join(string(dir), name))
}
