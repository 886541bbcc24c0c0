// Package core defines the filesystem contract that fstream sessions open
// handles through. Backends (billy, minio) implement FS and File.
package core

import (
	"io/fs"
	"os"
)

// File represents an open file handle supporting basic I/O operations.
// Implementations should behave consistently with the standard library.
type File interface {
	Close() error
	Name() string
	Read(p []byte) (n int, err error)
	ReadAt(p []byte, off int64) (n int, err error)
	Seek(offset int64, whence int) (int64, error)
	Stat() (fs.FileInfo, error)
	Write(p []byte) (n int, err error)
}

// FS is the minimal filesystem a session needs: open a name under os.O_*
// flags and probe its metadata.
//
// OpenFile must honor os.O_CREATE, os.O_EXCL, os.O_TRUNC and os.O_APPEND.
// Errors for missing or colliding paths must satisfy errors.Is with
// fs.ErrNotExist and fs.ErrExist respectively.
type FS interface {
	OpenFile(name string, flag int, perm os.FileMode) (File, error)
	Stat(name string) (fs.FileInfo, error)
}
