package minio

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path"
	"time"

	"github.com/input-output-hk/catalyst-forge-libs/fstream/core"
)

// File is an in-memory copy of an object. Writes are uploaded on Sync or
// Close.
type File struct {
	fs   *MinioFS
	key  string // Full object key (including prefix)
	name string // Original name provided to OpenFile
	flag int    // Open flags (O_RDONLY, O_APPEND, etc.)

	data    []byte
	pos     int64
	modTime time.Time
	dirty   bool // Content differs from the stored object
	closed  bool // Prevent double-close
}

func (f *File) pathErr(op string, err error) error {
	return &fs.PathError{Op: op, Path: f.name, Err: err}
}

func (f *File) readable() error {
	if f.closed {
		return fs.ErrClosed
	}
	if f.flag&os.O_WRONLY != 0 {
		return fs.ErrInvalid
	}
	return nil
}

// Read reads up to len(p) bytes into p. At end of file, Read returns 0, io.EOF.
func (f *File) Read(p []byte) (int, error) {
	if err := f.readable(); err != nil {
		return 0, f.pathErr("read", err)
	}
	if f.pos >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[f.pos:])
	f.pos += int64(n)
	return n, nil
}

// ReadAt reads len(p) bytes starting at byte offset off without moving the
// file offset.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	if err := f.readable(); err != nil {
		return 0, f.pathErr("readat", err)
	}
	if off < 0 {
		return 0, f.pathErr("readat", fs.ErrInvalid)
	}
	if off >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Write writes p at the current offset, or at the end when opened with
// os.O_APPEND.
func (f *File) Write(p []byte) (int, error) {
	if f.closed {
		return 0, f.pathErr("write", fs.ErrClosed)
	}
	if !isWritable(f.flag) {
		return 0, f.pathErr("write", fs.ErrInvalid)
	}
	if f.flag&os.O_APPEND != 0 {
		f.pos = int64(len(f.data))
	}

	end := f.pos + int64(len(p))
	if end > int64(len(f.data)) {
		grown := make([]byte, end)
		copy(grown, f.data)
		f.data = grown
	}
	n := copy(f.data[f.pos:], p)
	f.pos += int64(n)
	f.dirty = true
	f.modTime = time.Now()
	return n, nil
}

// Seek sets the offset for the next Read or Write.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if f.closed {
		return 0, f.pathErr("seek", fs.ErrClosed)
	}

	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = f.pos + offset
	case io.SeekEnd:
		abs = int64(len(f.data)) + offset
	default:
		return 0, f.pathErr("seek", fs.ErrInvalid)
	}
	if abs < 0 {
		return 0, f.pathErr("seek", fs.ErrInvalid)
	}
	f.pos = abs
	return abs, nil
}

// Stat describes the buffered content, including unsynced writes.
func (f *File) Stat() (fs.FileInfo, error) {
	if f.closed {
		return nil, f.pathErr("stat", fs.ErrClosed)
	}
	return &fileInfo{
		name:    path.Base(f.name),
		size:    int64(len(f.data)),
		modTime: f.modTime,
		mode:    0o644,
	}, nil
}

// Close uploads pending writes and releases the buffer. It is idempotent.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	err := f.sync(context.Background())
	f.closed = true
	f.data = nil
	return err
}

// Sync commits the current contents of the file to the bucket. It is a no-op
// when nothing changed since the last sync.
func (f *File) Sync() error {
	if f.closed {
		return f.pathErr("sync", fs.ErrClosed)
	}
	return f.sync(context.Background())
}

func (f *File) sync(ctx context.Context) error {
	if !f.dirty {
		return nil
	}
	if err := f.fs.store.put(ctx, f.key, f.data); err != nil {
		return f.pathErr("sync", err)
	}
	f.dirty = false
	return nil
}

// Name returns the name of the file as provided to OpenFile.
func (f *File) Name() string {
	return f.name
}

// fileInfo implements fs.FileInfo for objects.
type fileInfo struct {
	name    string
	size    int64
	modTime time.Time
	mode    fs.FileMode
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return fi.size }
func (fi *fileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi *fileInfo) ModTime() time.Time { return fi.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.mode&fs.ModeDir != 0 }
func (fi *fileInfo) Sys() interface{}   { return nil }

// Compile-time interface checks.
var (
	_ core.File   = (*File)(nil)
	_ fs.File     = (*File)(nil)
	_ io.Seeker   = (*File)(nil)
	_ io.ReaderAt = (*File)(nil)
)
