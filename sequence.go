package fstream

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"runtime"
)

// stepFunc reads the next element. ok reports whether v is an element; err
// ends the sequence and may accompany a final element.
type stepFunc[T any] func(r *bufio.Reader) (v T, ok bool, err error)

// Sequence is a lazy, single-pass producer of elements read from a session
// it owns. The session is released as soon as end-of-file or a read error is
// reached, when Close is called, or when a range over All stops early. A
// sequence dropped without any of these releases its session once the
// garbage collector reclaims it; call Close to release it deterministically.
//
// Typical use:
//
//	lines, err := stream.Lines()
//	if err != nil {
//		return err
//	}
//	for line := range lines.All() {
//		...
//	}
//	return lines.Err()
type Sequence[T any] struct {
	session *Session
	reader  *bufio.Reader
	step    stepFunc[T]
	value   T
	err     error
	done    bool
	cleanup runtime.Cleanup
}

func newSequence[T any](sess *Session, size int, step stepFunc[T]) *Sequence[T] {
	q := &Sequence[T]{
		session: sess,
		reader:  bufio.NewReaderSize(sess, size),
		step:    step,
	}
	q.cleanup = runtime.AddCleanup(q, func(sess *Session) { _ = sess.Close() }, sess)
	return q
}

// Next advances to the next element and reports whether there is one.
func (q *Sequence[T]) Next() bool {
	if q.done {
		return false
	}

	v, ok, err := q.step(q.reader)
	if err != nil {
		q.finish(err)
	}
	if !ok {
		return false
	}
	q.value = v
	return true
}

// Value returns the element produced by the last successful call to Next.
func (q *Sequence[T]) Value() T {
	return q.value
}

// Err returns the first read or close error the sequence hit. Reaching
// end-of-file is not an error.
func (q *Sequence[T]) Err() error {
	return q.err
}

// Close abandons the sequence and releases its session. It is safe to call
// more than once and after the sequence is exhausted.
func (q *Sequence[T]) Close() error {
	q.done = true
	q.cleanup.Stop()
	err := q.session.Close()
	if err != nil && q.err == nil {
		q.err = err
	}
	return err
}

// All returns an iterator over the remaining elements. The session is
// released when the loop finishes, breaks or panics.
func (q *Sequence[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		defer func() { _ = q.Close() }()
		for q.Next() {
			if !yield(q.Value()) {
				return
			}
		}
	}
}

// finish records a terminal error and releases the session.
func (q *Sequence[T]) finish(err error) {
	if !errors.Is(err, io.EOF) {
		q.err = err
	}
	_ = q.Close()
}

func readLine(r *bufio.Reader) (string, bool, error) {
	line, err := r.ReadString('\n')
	return line, line != "", err
}

func readStrippedLine(r *bufio.Reader) (string, bool, error) {
	line, ok, err := readLine(r)
	if ok {
		line = stripTags(line)
	}
	return line, ok, err
}

func readChar(r *bufio.Reader) (rune, bool, error) {
	c, _, err := r.ReadRune()
	return c, err == nil, err
}
