package fstest

import (
	"errors"
	"io"
	"testing"

	"github.com/input-output-hk/catalyst-forge-libs/fstream"
	ferrors "github.com/input-output-hk/catalyst-forge-libs/fstream/errors"
)

// TestSessions tests the session lifecycle: idempotent close, mode checks and
// the one-open-session-per-stream rule.
func TestSessions(t *testing.T, fsys *TrackingFS, root string) {
	t.Run("CloseIsIdempotent", func(t *testing.T) {
		s := newStream(t, fsys, root, "sess-close.txt")
		sess, err := s.Open(fstream.ReadOnly)
		if err != nil {
			t.Fatalf("Open(ReadOnly): got error %v, want nil", err)
		}
		if !sess.IsOpen() {
			t.Errorf("IsOpen(): got false, want true")
		}
		for i := 0; i < 2; i++ {
			if err := sess.Close(); err != nil {
				t.Errorf("Close() #%d: got error %v, want nil", i+1, err)
			}
		}
		if sess.IsOpen() {
			t.Errorf("IsOpen() after Close(): got true, want false")
		}

		var never *fstream.Session
		if err := never.Close(); err != nil {
			t.Errorf("Close() on nil session: got error %v, want nil", err)
		}
	})

	t.Run("UseAfterClose", func(t *testing.T) {
		s := newStream(t, fsys, root, "sess-use-after-close.txt")
		sess, err := s.Open(fstream.ReadWrite)
		if err != nil {
			t.Fatalf("Open(ReadWrite): got error %v, want nil", err)
		}
		_ = sess.Close()

		if _, err := sess.Write([]byte("x")); !ferrors.IsInvalidOperation(err) {
			t.Errorf("Write() after Close(): got error %v, want InvalidOperation", err)
		}
		if _, err := sess.Read(make([]byte, 1)); !ferrors.IsInvalidOperation(err) {
			t.Errorf("Read() after Close(): got error %v, want InvalidOperation", err)
		}
	})

	t.Run("ModeChecks", func(t *testing.T) {
		s := newStream(t, fsys, root, "sess-mode.txt")
		mustWrite(t, s, "data")

		err := s.Do(fstream.ReadOnly, func(sess *fstream.Session) error {
			_, err := sess.Write([]byte("x"))
			return err
		})
		if !ferrors.IsInvalidOperation(err) {
			t.Errorf("Write() in ReadOnly: got error %v, want InvalidOperation", err)
		}

		err = s.Do(fstream.AppendOnly, func(sess *fstream.Session) error {
			_, err := sess.Read(make([]byte, 1))
			return err
		})
		if !ferrors.IsInvalidOperation(err) {
			t.Errorf("Read() in AppendOnly: got error %v, want InvalidOperation", err)
		}

		if got := mustRead(t, s); got != "data" {
			t.Errorf("Read(): got %q, want %q", got, "data")
		}
	})

	t.Run("OneSessionPerStream", func(t *testing.T) {
		s := newStream(t, fsys, root, "sess-single.txt")
		mustWrite(t, s, "a\nb\n")

		lines, err := s.Lines()
		if err != nil {
			t.Fatalf("Lines(): got error %v, want nil", err)
		}
		if !lines.Next() {
			t.Fatalf("Next(): got false, want true")
		}

		if err := s.WriteString("x"); !ferrors.IsInvalidOperation(err) {
			t.Errorf("WriteString() while a sequence is open: got error %v, want InvalidOperation", err)
		}
		if _, err := s.Read(); !ferrors.IsInvalidOperation(err) {
			t.Errorf("Read() while a sequence is open: got error %v, want InvalidOperation", err)
		}

		if err := lines.Close(); err != nil {
			t.Fatalf("Close(): got error %v, want nil", err)
		}
		if got := mustRead(t, s); got != "a\nb\n" {
			t.Errorf("Read() after Close(): got %q, want %q", got, "a\nb\n")
		}
	})

	t.Run("DoClosesOnError", func(t *testing.T) {
		s := newStream(t, fsys, root, "sess-do-error.txt")
		boom := errors.New("boom")
		before := fsys.OpenHandles()

		err := s.Do(fstream.ReadWrite, func(sess *fstream.Session) error {
			if _, err := io.WriteString(sess, "partial"); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Errorf("Do(): got error %v, want %v", err, boom)
		}
		if n := fsys.OpenHandles(); n != before {
			t.Errorf("OpenHandles() after Do(): got %d, want %d", n, before)
		}
		if got := mustRead(t, s); got != "partial" {
			t.Errorf("Read(): got %q, want %q", got, "partial")
		}
	})

	t.Run("DoClosesOnPanic", func(t *testing.T) {
		s := newStream(t, fsys, root, "sess-do-panic.txt")
		before := fsys.OpenHandles()

		func() {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("Do(): want panic to propagate")
				}
			}()
			_ = s.Do(fstream.ReadOnly, func(*fstream.Session) error {
				panic("boom")
			})
		}()

		if n := fsys.OpenHandles(); n != before {
			t.Errorf("OpenHandles() after panic: got %d, want %d", n, before)
		}
		if _, err := s.Read(); err != nil {
			t.Errorf("Read() after panic: got error %v, want nil", err)
		}
	})
}
