package fstream

import (
	"io/fs"
	"log/slog"

	"github.com/input-output-hk/catalyst-forge-libs/fstream/billy"
	"github.com/input-output-hk/catalyst-forge-libs/fstream/core"
)

const (
	defaultPerm       fs.FileMode = 0o644
	defaultBufferSize             = 4096
)

// options holds the configuration shared by a binding and the streams and
// sessions minted from it.
type options struct {
	fs         core.FS
	logger     *slog.Logger
	perm       fs.FileMode
	bufferSize int
}

// Option is a functional option for configuring a Binding.
type Option func(*options)

// WithFS selects the filesystem the path is resolved against.
// If fsys is nil, the native filesystem is used.
func WithFS(fsys core.FS) Option {
	return func(opts *options) {
		opts.fs = fsys
	}
}

// WithLogger configures structured logging of session lifecycle events.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// WithPerm sets the permission bits used when a mode creates the file.
func WithPerm(perm fs.FileMode) Option {
	return func(opts *options) {
		opts.perm = perm
	}
}

// WithBufferSize sets the read buffer size of lazy sequences.
// Values below 16 are raised to 16.
func WithBufferSize(size int) Option {
	return func(opts *options) {
		opts.bufferSize = size
	}
}

// defaultOptions returns the default configuration options.
func defaultOptions() *options {
	return &options{
		logger:     nil, // No default logger
		perm:       defaultPerm,
		bufferSize: defaultBufferSize,
	}
}

// applyOptions applies the given options and fills in what they left unset.
func applyOptions(opts *options, fns []Option) {
	for _, option := range fns {
		option(opts)
	}
	if opts.fs == nil {
		opts.fs = billy.NewBaseOSFS()
	}
}
