// Package billy adapts go-billy filesystems to core.FS so fstream sessions
// can run against the native filesystem, a chrooted directory or memory.
package billy

import (
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/input-output-hk/catalyst-forge-libs/fstream/core"
)

// FS implements core.FS using go-billy.
type FS struct {
	fs billy.Filesystem
}

// OpenFile implements core.FS.OpenFile.
//
//nolint:ireturn // API returns the core.File interface by design for flexibility.
func (b *FS) OpenFile(name string, flag int, perm os.FileMode) (core.File, error) {
	f, err := b.fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, fmt.Errorf("billy: openfile %q: %w", name, err)
	}
	return &File{
		file: f,
		fs:   b,
	}, nil
}

// Remove deletes the named file.
func (b *FS) Remove(name string) error {
	if err := b.fs.Remove(name); err != nil {
		return fmt.Errorf("billy: remove %q: %w", name, err)
	}
	return nil
}

// Stat implements core.FS.Stat.
func (b *FS) Stat(name string) (os.FileInfo, error) {
	info, err := b.fs.Stat(name)
	if err != nil {
		return nil, fmt.Errorf("billy: stat %q: %w", name, err)
	}
	return info, nil
}

// NewFS creates a new FS using the given go-billy filesystem.
func NewFS(fsys billy.Filesystem) *FS {
	return &FS{
		fs: fsys,
	}
}

// NewInMemoryFS creates a new in-memory filesystem.
func NewInMemoryFS() *FS {
	return &FS{
		fs: memfs.New(),
	}
}

// NewOSFS creates a new OS filesystem rooted at path.
func NewOSFS(path string) *FS {
	return &FS{
		fs: osfs.New(path),
	}
}

var _ core.FS = (*FS)(nil)
