package billy

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/go-git/go-billy/v5"

	"github.com/input-output-hk/catalyst-forge-libs/fstream/core"
)

// File wraps a go-billy File and satisfies core.File.
type File struct {
	file billy.File
	fs   *FS
}

// wrap prefixes err with the backend, operation and file name. io.EOF is
// passed through untouched so readers can compare it directly.
func (f *File) wrap(op string, err error) error {
	if err == nil || errors.Is(err, io.EOF) {
		return err
	}
	return fmt.Errorf("billy: %s %q: %w", op, f.file.Name(), err)
}

// Close implements core.File.Close.
func (f *File) Close() error {
	return f.wrap("close", f.file.Close())
}

// Name implements core.File.Name.
func (f *File) Name() string {
	return f.file.Name()
}

// Read implements core.File.Read.
func (f *File) Read(p []byte) (int, error) {
	n, err := f.file.Read(p)
	return n, f.wrap("read", err)
}

// ReadAt implements core.File.ReadAt.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	n, err := f.file.ReadAt(p, off)
	return n, f.wrap(fmt.Sprintf("readat off=%d", off), err)
}

// Seek implements core.File.Seek.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	pos, err := f.file.Seek(offset, whence)
	return pos, f.wrap(fmt.Sprintf("seek off=%d whence=%d", offset, whence), err)
}

// Stat implements core.File.Stat. go-billy files carry no metadata, so the
// owning filesystem is asked by name.
func (f *File) Stat() (fs.FileInfo, error) {
	return f.fs.Stat(f.file.Name())
}

// Write implements core.File.Write.
func (f *File) Write(p []byte) (int, error) {
	n, err := f.file.Write(p)
	return n, f.wrap("write", err)
}

var _ core.File = (*File)(nil)
