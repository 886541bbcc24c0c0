package fstest

import (
	"os"
	"sync/atomic"

	"github.com/input-output-hk/catalyst-forge-libs/fstream/core"
)

// TrackingFS wraps a core.FS and counts the handles it hands out, so tests
// can assert that every session released its handle.
type TrackingFS struct {
	core.FS

	open   atomic.Int64
	opened atomic.Int64
}

// Track wraps fsys.
func Track(fsys core.FS) *TrackingFS {
	return &TrackingFS{FS: fsys}
}

// OpenFile implements core.FS.OpenFile.
//
//nolint:ireturn // API returns the core.File interface by design for flexibility.
func (t *TrackingFS) OpenFile(name string, flag int, perm os.FileMode) (core.File, error) {
	f, err := t.FS.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	t.open.Add(1)
	t.opened.Add(1)
	return &trackedFile{File: f, owner: t}, nil
}

// OpenHandles returns the number of handles not yet closed.
func (t *TrackingFS) OpenHandles() int64 {
	return t.open.Load()
}

// TotalOpened returns the number of handles opened so far.
func (t *TrackingFS) TotalOpened() int64 {
	return t.opened.Load()
}

type trackedFile struct {
	core.File
	owner  *TrackingFS
	closed atomic.Bool
}

func (f *trackedFile) Close() error {
	if f.closed.CompareAndSwap(false, true) {
		f.owner.open.Add(-1)
	}
	return f.File.Close()
}
