package fstream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sync"

	ferrors "github.com/input-output-hk/catalyst-forge-libs/fstream/errors"
)

var errSessionActive = errors.New("another session is still open on this stream")

// Stream performs content operations on a bound path. Every operation opens
// its own session with the mode it needs and closes it before returning;
// lazy sequences keep their session until they end or are closed.
//
// A Stream allows one open session at a time. Opening a second one while a
// sequence or a session from Open is still open fails with an
// InvalidOperation error.
type Stream struct {
	binding *Binding

	mu     sync.Mutex
	active *Session
}

// New binds path and returns a stream over it.
func New(path string, create bool, opts ...Option) (*Stream, error) {
	b, err := Bind(path, create, opts...)
	if err != nil {
		return nil, err
	}
	return NewStream(b), nil
}

// NewStream returns a stream over an existing binding.
func NewStream(b *Binding) *Stream {
	return &Stream{binding: b}
}

// Path returns the bound path.
func (s *Stream) Path() string {
	return s.binding.path
}

// Binding returns the binding the stream operates on.
func (s *Stream) Binding() *Binding {
	return s.binding
}

// open claims the stream's session slot and opens a session in mode.
func (s *Stream) open(op string, mode Mode) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		return nil, ferrors.InvalidOperation(op, s.binding.path,
			fmt.Errorf("%w (%s)", errSessionActive, s.active.mode))
	}

	sess, err := openSession(s.binding.opts, s.binding.path, mode)
	if err != nil {
		return nil, err
	}
	sess.release = func() { s.releaseSlot(sess) }
	s.active = sess
	return sess, nil
}

func (s *Stream) releaseSlot(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == sess {
		s.active = nil
	}
}

// closeSession closes sess and keeps the first error in *err.
func closeSession(sess *Session, err *error) {
	if cerr := sess.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}

// Open returns a session in mode for the caller to drive. The caller must
// Close it; until then the stream refuses to open another session.
func (s *Stream) Open(mode Mode) (*Session, error) {
	return s.open("open", mode)
}

// Do opens a session in mode, runs fn with it and closes it on every exit
// path, including a panic in fn.
func (s *Stream) Do(mode Mode, fn func(*Session) error) (err error) {
	sess, err := s.open("do", mode)
	if err != nil {
		return err
	}
	defer closeSession(sess, &err)

	return fn(sess)
}

// Write truncates the file and writes p in a single call.
func (s *Stream) Write(p []byte) error {
	return s.put("write", WriteTruncate, p)
}

// WriteString is Write for a string.
func (s *Stream) WriteString(content string) error {
	return s.Write([]byte(content))
}

// Append writes p at the end of the file in a single call.
func (s *Stream) Append(p []byte) error {
	return s.put("append", AppendOnly, p)
}

// AppendString is Append for a string.
func (s *Stream) AppendString(content string) error {
	return s.Append([]byte(content))
}

func (s *Stream) put(op string, mode Mode, p []byte) (err error) {
	sess, err := s.open(op, mode)
	if err != nil {
		return err
	}
	defer closeSession(sess, &err)

	_, err = sess.Write(p)
	return err
}

// Read returns the content of the file. The number of bytes read is the file
// size observed just before the read: data appended after the size probe is
// not returned, and a file that shrank yields the shorter content.
func (s *Stream) Read() (data []byte, err error) {
	sess, err := s.open("read", ReadOnly)
	if err != nil {
		return nil, err
	}
	defer closeSession(sess, &err)

	size, err := sess.Size()
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return []byte{}, nil
	}

	buf := make([]byte, size)
	n, err := io.ReadFull(sess, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:n], nil
}

// ReadAll returns every line of the file, each with its terminator. A final
// line without a terminator is returned as-is.
func (s *Stream) ReadAll() (lines []string, err error) {
	sess, err := s.open("readall", ReadOnly)
	if err != nil {
		return nil, err
	}
	defer closeSession(sess, &err)

	r := bufio.NewReaderSize(sess, s.binding.opts.bufferSize)
	lines = []string{}
	for {
		line, ok, rerr := readLine(r)
		if ok {
			lines = append(lines, line)
		}
		if errors.Is(rerr, io.EOF) {
			return lines, nil
		}
		if rerr != nil {
			return nil, rerr
		}
	}
}

// Lines returns a lazy sequence of the file's lines, each with its terminator.
// The stream stays busy until the sequence ends or is closed. A sequence that
// is dropped early frees the stream only after garbage collection, so Close
// it when stopping before the end.
func (s *Stream) Lines() (*Sequence[string], error) {
	sess, err := s.open("lines", ReadOnly)
	if err != nil {
		return nil, err
	}
	return newSequence[string](sess, s.binding.opts.bufferSize, readLine), nil
}

// StrippedLines is Lines with markup tags removed from every line. Tags are
// recognised within a single line only.
func (s *Stream) StrippedLines() (*Sequence[string], error) {
	sess, err := s.open("strippedlines", ReadOnly)
	if err != nil {
		return nil, err
	}
	return newSequence[string](sess, s.binding.opts.bufferSize, readStrippedLine), nil
}

// Chars returns a lazy sequence of the file's UTF-8 characters. Bytes that
// are not valid UTF-8 are produced as utf8.RuneError, one per byte.
func (s *Stream) Chars() (*Sequence[rune], error) {
	sess, err := s.open("chars", ReadOnly)
	if err != nil {
		return nil, err
	}
	return newSequence[rune](sess, s.binding.opts.bufferSize, readChar), nil
}
