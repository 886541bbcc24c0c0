package fstream

import (
	"io/fs"

	"github.com/input-output-hk/catalyst-forge-libs/fstream/core"
	ferrors "github.com/input-output-hk/catalyst-forge-libs/fstream/errors"
)

// Binding is a path validated against its creation policy. The check runs
// once, in Bind; later changes to the filesystem surface when a session
// fails to open.
type Binding struct {
	path    string
	create  bool
	created bool
	opts    *options
}

// Bind validates path. If the path does not exist, Bind fails with a
// NotFound error unless create is true, in which case it creates an empty
// file first. Failing to probe or create the path is an IOFailure.
//
// Missing parent directories are handled by the filesystem: the go-billy
// backends create them along with the file, so a create under a directory
// that does not exist yet succeeds there instead of failing.
func Bind(path string, create bool, opts ...Option) (*Binding, error) {
	o := defaultOptions()
	applyOptions(o, opts)

	b := &Binding{
		path:   path,
		create: create,
		opts:   o,
	}

	exists, err := core.Exists(o.fs, path)
	if err != nil {
		return nil, ferrors.IOFailure("bind", path, err)
	}
	if exists {
		return b, nil
	}
	if !create {
		return nil, ferrors.NotFound("bind", path, fs.ErrNotExist)
	}

	sess, err := openSession(o, path, CreateExclusiveReadWrite)
	if err != nil {
		return nil, err
	}
	if err := sess.Close(); err != nil {
		return nil, err
	}
	b.created = true

	if o.logger != nil {
		o.logger.Info("created file", "path", path)
	}
	return b, nil
}

// Path returns the bound path.
func (b *Binding) Path() string {
	return b.path
}

// CreateIfMissing reports the creation policy the binding was made with.
func (b *Binding) CreateIfMissing() bool {
	return b.create
}

// Created reports whether Bind created the file.
func (b *Binding) Created() bool {
	return b.created
}
