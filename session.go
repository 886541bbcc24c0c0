package fstream

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/input-output-hk/catalyst-forge-libs/fstream/core"
	ferrors "github.com/input-output-hk/catalyst-forge-libs/fstream/errors"
)

// Session owns one open handle on a path for the duration of one operation
// or one sequence traversal. A Session is open from the moment it is returned
// until Close; afterwards every call except Close fails with an
// InvalidOperation error.
//
// Sessions are not safe for concurrent use.
type Session struct {
	path   string
	mode   Mode
	file   core.File
	logger *slog.Logger

	// release frees the owning stream's session slot; nil when unowned.
	release func()
}

// openSession acquires a handle for (path, mode).
func openSession(o *options, path string, mode Mode) (*Session, error) {
	if !mode.Valid() {
		return nil, ferrors.InvalidOperation("open", path, fmt.Errorf("unknown mode %s", mode))
	}

	f, err := o.fs.OpenFile(path, mode.Flag(), o.perm)
	if err != nil {
		if o.logger != nil {
			o.logger.Error("failed to open session",
				"path", path,
				"mode", mode.String(),
				"error", err)
		}
		return nil, ferrors.IOFailure("open", path, err)
	}

	if o.logger != nil {
		o.logger.Debug("session opened",
			"path", path,
			"mode", mode.String())
	}

	return &Session{
		path:   path,
		mode:   mode,
		file:   f,
		logger: o.logger,
	}, nil
}

// Path returns the path the session was opened on.
func (s *Session) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Mode returns the access mode the handle was opened with.
func (s *Session) Mode() Mode {
	if s == nil {
		return -1
	}
	return s.mode
}

// IsOpen reports whether the session still holds its handle.
func (s *Session) IsOpen() bool {
	return s != nil && s.file != nil
}

// Close releases the handle. Closing a nil, never-opened or already closed
// session is a no-op.
func (s *Session) Close() error {
	if !s.IsOpen() {
		return nil
	}

	f := s.file
	s.file = nil
	if s.release != nil {
		s.release()
		s.release = nil
	}

	if err := f.Close(); err != nil {
		if s.logger != nil {
			s.logger.Error("failed to close session",
				"path", s.path,
				"mode", s.mode.String(),
				"error", err)
		}
		return ferrors.IOFailure("close", s.path, err)
	}

	if s.logger != nil {
		s.logger.Debug("session closed",
			"path", s.path,
			"mode", s.mode.String())
	}
	return nil
}

// check rejects use after close and operations the mode does not permit.
// permits is consulted only once the session is known to be open.
func (s *Session) check(op string, permits func(Mode) bool) error {
	if !s.IsOpen() {
		return ferrors.InvalidOperation(op, s.Path(), fs.ErrClosed)
	}
	if permits != nil && !permits(s.mode) {
		return ferrors.InvalidOperation(op, s.path, fmt.Errorf("mode %s does not permit %s", s.mode, op))
	}
	return nil
}

// Read implements io.Reader. io.EOF is returned unwrapped.
func (s *Session) Read(p []byte) (int, error) {
	if err := s.check("read", Mode.Readable); err != nil {
		return 0, err
	}

	n, err := s.file.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, ferrors.IOFailure("read", s.path, err)
	}
	return n, err
}

// Write implements io.Writer as a single underlying write call. A short
// write is reported as an IOFailure wrapping io.ErrShortWrite.
func (s *Session) Write(p []byte) (int, error) {
	if err := s.check("write", Mode.Writable); err != nil {
		return 0, err
	}

	n, err := s.file.Write(p)
	if err != nil {
		return n, ferrors.IOFailure("write", s.path, err)
	}
	if n != len(p) {
		return n, ferrors.IOFailure("write", s.path, io.ErrShortWrite)
	}
	return n, nil
}

// Seek implements io.Seeker.
func (s *Session) Seek(offset int64, whence int) (int64, error) {
	if err := s.check("seek", nil); err != nil {
		return 0, err
	}

	pos, err := s.file.Seek(offset, whence)
	if err != nil {
		return pos, ferrors.IOFailure("seek", s.path, err)
	}
	return pos, nil
}

// Size returns the current length of the file in bytes.
func (s *Session) Size() (int64, error) {
	if err := s.check("stat", nil); err != nil {
		return 0, err
	}

	info, err := s.file.Stat()
	if err != nil {
		return 0, ferrors.IOFailure("stat", s.path, err)
	}
	return info.Size(), nil
}

var (
	_ io.ReadWriteSeeker = (*Session)(nil)
	_ io.Closer          = (*Session)(nil)
)
