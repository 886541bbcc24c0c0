// Package minio implements core.FS on top of an S3-compatible object store
// using minio-go. Each file is one object: opening loads the object into
// memory (unless the mode truncates or creates it) and closing uploads it
// again if it was created or written.
//
// Object stores have no atomic create-if-absent, so os.O_EXCL is checked with
// a stat before the open; two writers racing on the same key can both win.
package minio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/input-output-hk/catalyst-forge-libs/fstream/core"
)

// MinioFS maps file names to object keys in a single bucket.
type MinioFS struct {
	store  store
	prefix string
}

// Option configures a MinioFS.
type Option func(*MinioFS)

// WithPrefix stores every file under prefix, e.g. "tenants/a/".
func WithPrefix(prefix string) Option {
	return func(m *MinioFS) {
		m.prefix = strings.Trim(prefix, "/")
	}
}

// New returns a filesystem over bucket using client.
func New(client *minio.Client, bucket string, opts ...Option) *MinioFS {
	return newWithStore(&clientStore{client: client, bucket: bucket}, opts...)
}

// NewFromEndpoint connects to endpoint ("host:port") with static credentials.
func NewFromEndpoint(endpoint, accessKey, secretKey string, secure bool, bucket string, opts ...Option) (*MinioFS, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: connect %q: %w", endpoint, err)
	}
	return New(client, bucket, opts...), nil
}

func newWithStore(st store, opts ...Option) *MinioFS {
	m := &MinioFS{store: st}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// key maps a file name to its object key.
func (m *MinioFS) key(name string) string {
	k := strings.TrimPrefix(path.Clean("/"+name), "/")
	if m.prefix == "" {
		return k
	}
	return m.prefix + "/" + k
}

// OpenFile implements core.FS.OpenFile. perm is ignored.
//
//nolint:ireturn // API returns the core.File interface by design for flexibility.
func (m *MinioFS) OpenFile(name string, flag int, _ os.FileMode) (core.File, error) {
	ctx := context.Background()
	key := m.key(name)

	info, err := m.store.stat(ctx, key)
	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("minio: openfile %q: %w", name, err)
	}

	switch {
	case !exists && flag&os.O_CREATE == 0:
		return nil, fmt.Errorf("minio: openfile %q: %w", name, fs.ErrNotExist)
	case exists && flag&os.O_CREATE != 0 && flag&os.O_EXCL != 0:
		return nil, fmt.Errorf("minio: openfile %q: %w", name, fs.ErrExist)
	}

	f := &File{
		fs:      m,
		key:     key,
		name:    name,
		flag:    flag,
		modTime: time.Now(),
	}

	switch {
	case !exists:
		// Created files exist as soon as they are closed, even if empty.
		f.dirty = true
	case flag&os.O_TRUNC != 0 && isWritable(flag):
		f.dirty = true
	default:
		data, err := m.store.get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("minio: openfile %q: %w", name, err)
		}
		f.data = data
		f.modTime = info.modTime
	}

	return f, nil
}

// Stat implements core.FS.Stat.
func (m *MinioFS) Stat(name string) (fs.FileInfo, error) {
	info, err := m.store.stat(context.Background(), m.key(name))
	if err != nil {
		return nil, fmt.Errorf("minio: stat %q: %w", name, err)
	}
	return &fileInfo{
		name:    path.Base(name),
		size:    info.size,
		modTime: info.modTime,
		mode:    0o644,
	}, nil
}

// Remove deletes the object behind name.
func (m *MinioFS) Remove(name string) error {
	if err := m.store.remove(context.Background(), m.key(name)); err != nil {
		return fmt.Errorf("minio: remove %q: %w", name, err)
	}
	return nil
}

func isWritable(flag int) bool {
	return flag&(os.O_WRONLY|os.O_RDWR) != 0
}

var _ core.FS = (*MinioFS)(nil)
