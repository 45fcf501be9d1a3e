// Package filesystem exposes the operating-system backed directory access used
// to recognize repository checkouts.
package filesystem

import (
	"io/fs"
	"os"
)

// OSFileSystem implements directory inspection using the operating system primitives.
type OSFileSystem struct{}

// ReadDir lists the immediate entries of a directory.
func (OSFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}
