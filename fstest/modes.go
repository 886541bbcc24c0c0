package fstest

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/input-output-hk/catalyst-forge-libs/fstream"
	ferrors "github.com/input-output-hk/catalyst-forge-libs/fstream/errors"
)

// modeCase describes how a mode treats an existing file holding "abcd" when
// "XY" is written right after opening.
type modeCase struct {
	mode fstream.Mode
	// wantExisting is the content after writing "XY"; empty when opening an
	// existing file must fail.
	wantExisting string
	// createsMissing reports whether opening a missing file creates it.
	createsMissing bool
}

var modeCases = []modeCase{
	{fstream.ReadOnly, "abcd", false},
	{fstream.ReadWrite, "XYcd", false},
	{fstream.WriteTruncate, "XY", true},
	{fstream.WriteTruncateRead, "XY", true},
	{fstream.AppendOnly, "abcdXY", true},
	{fstream.AppendRead, "abcdXY", true},
	{fstream.CreateExclusive, "", true},
	{fstream.CreateExclusiveReadWrite, "", true},
	{fstream.CreateNoTruncate, "XYcd", true},
	{fstream.CreateNoTruncateReadWrite, "XYcd", true},
}

// TestModes tests every access mode against an existing and a missing file.
func TestModes(t *testing.T, fsys *TrackingFS, root string) {
	for _, tc := range modeCases {
		t.Run(tc.mode.String()+"/Existing", func(t *testing.T) {
			testModeExisting(t, fsys, root, tc)
		})
		t.Run(tc.mode.String()+"/Missing", func(t *testing.T) {
			testModeMissing(t, fsys, root, tc)
		})
	}
}

// testModeExisting writes "XY" (when the mode is writable) to a file holding
// "abcd" and checks the resulting content.
func testModeExisting(t *testing.T, fsys *TrackingFS, root string, tc modeCase) {
	s := newStream(t, fsys, root, "mode-existing-"+tc.mode.String()+".txt")
	mustWrite(t, s, "abcd")

	sess, err := s.Open(tc.mode)
	if tc.wantExisting == "" {
		if !ferrors.IsIOFailure(err) {
			t.Errorf("Open(%s) on existing file: got error %v, want IOFailure", tc.mode, err)
		}
		if !errors.Is(err, fs.ErrExist) {
			t.Errorf("Open(%s) on existing file: got error %v, want fs.ErrExist", tc.mode, err)
		}
		_ = sess.Close()
		if got := mustRead(t, s); got != "abcd" {
			t.Errorf("Read() after failed Open(%s): got %q, want %q", tc.mode, got, "abcd")
		}
		return
	}
	if err != nil {
		t.Fatalf("Open(%s): got error %v, want nil", tc.mode, err)
	}

	if tc.mode.Writable() {
		if _, err := sess.Write([]byte("XY")); err != nil {
			_ = sess.Close()
			t.Fatalf("Write() in %s: got error %v, want nil", tc.mode, err)
		}
	}

	if tc.mode.Readable() {
		if _, err := sess.Seek(0, io.SeekStart); err != nil {
			_ = sess.Close()
			t.Fatalf("Seek() in %s: got error %v, want nil", tc.mode, err)
		}
		data, err := io.ReadAll(sess)
		if err != nil {
			_ = sess.Close()
			t.Fatalf("ReadAll() in %s: got error %v, want nil", tc.mode, err)
		}
		if string(data) != tc.wantExisting {
			t.Errorf("ReadAll() in %s: got %q, want %q", tc.mode, data, tc.wantExisting)
		}
	}

	if err := sess.Close(); err != nil {
		t.Fatalf("Close(): got error %v, want nil", err)
	}

	if got := mustRead(t, s); got != tc.wantExisting {
		t.Errorf("Read() after %s: got %q, want %q", tc.mode, got, tc.wantExisting)
	}
}

// testModeMissing opens a file that was removed behind the binding's back.
func testModeMissing(t *testing.T, fsys *TrackingFS, root string, tc modeCase) {
	p := filepath.Join(root, "mode-missing-"+tc.mode.String()+".txt")

	// Bind validates once; removing the file afterwards leaves the open to
	// observe the missing path.
	b, err := fstream.Bind(p, true, fstream.WithFS(fsys))
	if err != nil {
		t.Fatalf("Bind(%q, true): got error %v, want nil", p, err)
	}
	remover, ok := fsys.FS.(interface{ Remove(string) error })
	if !ok {
		t.Skip("filesystem cannot remove files")
	}
	if err := remover.Remove(p); err != nil {
		t.Fatalf("Remove(%q): got error %v, want nil", p, err)
	}

	s := fstream.NewStream(b)
	err = s.Do(tc.mode, func(*fstream.Session) error { return nil })
	if !tc.createsMissing {
		if !ferrors.IsIOFailure(err) {
			t.Errorf("Do(%s) on missing file: got error %v, want IOFailure", tc.mode, err)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Do(%s) on missing file: got error %v, want fs.ErrNotExist", tc.mode, err)
		}
		return
	}
	if err != nil {
		t.Fatalf("Do(%s) on missing file: got error %v, want nil", tc.mode, err)
	}
	if got := mustRead(t, s); got != "" {
		t.Errorf("Read() after %s created the file: got %q, want empty", tc.mode, got)
	}
}
