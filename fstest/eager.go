package fstest

import (
	"reflect"
	"testing"
)

// TestEager tests Write, Append, Read and ReadAll.
func TestEager(t *testing.T, fsys *TrackingFS, root string) {
	t.Run("WriteRead", func(t *testing.T) {
		s := newStream(t, fsys, root, "eager-write.txt")
		mustWrite(t, s, "X")
		if got := mustRead(t, s); got != "X" {
			t.Errorf("Read(): got %q, want %q", got, "X")
		}
	})

	t.Run("WriteTruncates", func(t *testing.T) {
		s := newStream(t, fsys, root, "eager-truncate.txt")
		mustWrite(t, s, "a much longer first version")
		mustWrite(t, s, "short")
		if got := mustRead(t, s); got != "short" {
			t.Errorf("Read(): got %q, want %q", got, "short")
		}
	})

	t.Run("AppendAppends", func(t *testing.T) {
		s := newStream(t, fsys, root, "eager-append.txt")
		for _, part := range []string{"A", "B"} {
			if err := s.AppendString(part); err != nil {
				t.Fatalf("AppendString(%q): got error %v, want nil", part, err)
			}
		}
		if got := mustRead(t, s); got != "AB" {
			t.Errorf("Read(): got %q, want %q", got, "AB")
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		contents := []string{
			"",
			"\n",
			"a\nb\nc\n",
			"no trailing newline",
			"nul\x00inside\x00",
			"crlf\r\nlines\r\n",
			"ünïcödé ✓",
		}
		s := newStream(t, fsys, root, "eager-roundtrip.txt")
		for _, want := range contents {
			mustWrite(t, s, want)
			if got := mustRead(t, s); got != want {
				t.Errorf("Read() after WriteString(%q): got %q", want, got)
			}
		}
	})

	t.Run("ReadEmpty", func(t *testing.T) {
		s := newStream(t, fsys, root, "eager-empty.txt")
		data, err := s.Read()
		if err != nil {
			t.Fatalf("Read(): got error %v, want nil", err)
		}
		if data == nil || len(data) != 0 {
			t.Errorf("Read(): got %#v, want empty non-nil slice", data)
		}
	})

	t.Run("ReadAll", func(t *testing.T) {
		s := newStream(t, fsys, root, "eager-readall.txt")
		mustWrite(t, s, "a\nb\nc")
		lines, err := s.ReadAll()
		if err != nil {
			t.Fatalf("ReadAll(): got error %v, want nil", err)
		}
		want := []string{"a\n", "b\n", "c"}
		if !reflect.DeepEqual(lines, want) {
			t.Errorf("ReadAll(): got %q, want %q", lines, want)
		}
	})

	t.Run("ReadAllEmpty", func(t *testing.T) {
		s := newStream(t, fsys, root, "eager-readall-empty.txt")
		lines, err := s.ReadAll()
		if err != nil {
			t.Fatalf("ReadAll(): got error %v, want nil", err)
		}
		if len(lines) != 0 {
			t.Errorf("ReadAll(): got %q, want no lines", lines)
		}
	})
}
