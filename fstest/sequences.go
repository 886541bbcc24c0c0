package fstest

import (
	"reflect"
	"testing"

	"github.com/input-output-hk/catalyst-forge-libs/fstream"
)

// collect drains seq and fails the test on a sequence error.
func collect[T any](t *testing.T, seq *fstream.Sequence[T]) []T {
	t.Helper()
	var out []T
	for v := range seq.All() {
		out = append(out, v)
	}
	if err := seq.Err(); err != nil {
		t.Fatalf("Err(): got %v, want nil", err)
	}
	return out
}

// TestSequences tests Lines, StrippedLines and Chars, including early
// abandonment.
func TestSequences(t *testing.T, fsys *TrackingFS, root string) {
	t.Run("Lines", func(t *testing.T) {
		s := newStream(t, fsys, root, "seq-lines.txt")
		mustWrite(t, s, "a\nb\nc\n")
		lines, err := s.Lines()
		if err != nil {
			t.Fatalf("Lines(): got error %v, want nil", err)
		}
		want := []string{"a\n", "b\n", "c\n"}
		if got := collect(t, lines); !reflect.DeepEqual(got, want) {
			t.Errorf("Lines(): got %q, want %q", got, want)
		}
	})

	t.Run("LinesEmpty", func(t *testing.T) {
		s := newStream(t, fsys, root, "seq-lines-empty.txt")
		lines, err := s.Lines()
		if err != nil {
			t.Fatalf("Lines(): got error %v, want nil", err)
		}
		if got := collect(t, lines); len(got) != 0 {
			t.Errorf("Lines(): got %q, want nothing", got)
		}
	})

	t.Run("StrippedLines", func(t *testing.T) {
		s := newStream(t, fsys, root, "seq-stripped.txt")
		mustWrite(t, s, "<p>Hello <b>world</b></p>\nplain\n<!-- note -->x < y\n")
		lines, err := s.StrippedLines()
		if err != nil {
			t.Fatalf("StrippedLines(): got error %v, want nil", err)
		}
		want := []string{"Hello world\n", "plain\n", "x < y\n"}
		if got := collect(t, lines); !reflect.DeepEqual(got, want) {
			t.Errorf("StrippedLines(): got %q, want %q", got, want)
		}
	})

	t.Run("Chars", func(t *testing.T) {
		s := newStream(t, fsys, root, "seq-chars.txt")
		mustWrite(t, s, "hi")
		chars, err := s.Chars()
		if err != nil {
			t.Fatalf("Chars(): got error %v, want nil", err)
		}
		want := []rune{'h', 'i'}
		if got := collect(t, chars); !reflect.DeepEqual(got, want) {
			t.Errorf("Chars(): got %q, want %q", got, want)
		}
	})

	t.Run("AbandonReleasesHandle", func(t *testing.T) {
		s := newStream(t, fsys, root, "seq-abandon.txt")
		mustWrite(t, s, "a\nb\nc\n")
		before := fsys.OpenHandles()

		lines, err := s.Lines()
		if err != nil {
			t.Fatalf("Lines(): got error %v, want nil", err)
		}
		for line := range lines.All() {
			if line != "a\n" {
				t.Errorf("first line: got %q, want %q", line, "a\n")
			}
			break
		}

		if n := fsys.OpenHandles(); n != before {
			t.Errorf("OpenHandles() after break: got %d, want %d", n, before)
		}
		mustWrite(t, s, "next")
		if got := mustRead(t, s); got != "next" {
			t.Errorf("Read(): got %q, want %q", got, "next")
		}
	})

	t.Run("CloseReleasesHandle", func(t *testing.T) {
		s := newStream(t, fsys, root, "seq-close.txt")
		mustWrite(t, s, "abc")
		before := fsys.OpenHandles()

		chars, err := s.Chars()
		if err != nil {
			t.Fatalf("Chars(): got error %v, want nil", err)
		}
		if !chars.Next() || chars.Value() != 'a' {
			t.Fatalf("Next(): want first char 'a'")
		}
		if err := chars.Close(); err != nil {
			t.Fatalf("Close(): got error %v, want nil", err)
		}
		if err := chars.Close(); err != nil {
			t.Errorf("second Close(): got error %v, want nil", err)
		}
		if chars.Next() {
			t.Errorf("Next() after Close(): got true, want false")
		}
		if n := fsys.OpenHandles(); n != before {
			t.Errorf("OpenHandles() after Close(): got %d, want %d", n, before)
		}
	})

	t.Run("ExhaustionReleasesHandle", func(t *testing.T) {
		s := newStream(t, fsys, root, "seq-exhaust.txt")
		mustWrite(t, s, "one\ntwo")
		before := fsys.OpenHandles()

		lines, err := s.Lines()
		if err != nil {
			t.Fatalf("Lines(): got error %v, want nil", err)
		}
		var got []string
		for lines.Next() {
			got = append(got, lines.Value())
		}
		want := []string{"one\n", "two"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Lines(): got %q, want %q", got, want)
		}
		if n := fsys.OpenHandles(); n != before {
			t.Errorf("OpenHandles() after exhaustion: got %d, want %d", n, before)
		}
	})
}
