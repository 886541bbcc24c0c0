package billy_test

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/input-output-hk/catalyst-forge-libs/fstream/billy"
	"github.com/input-output-hk/catalyst-forge-libs/fstream/core"
	"github.com/input-output-hk/catalyst-forge-libs/fstream/fstest"
)

func TestInMemoryFS_Suite(t *testing.T) {
	fstest.TestSuite(t, func(t *testing.T) (core.FS, string) {
		return billy.NewInMemoryFS(), "/"
	})
}

func TestOSFS_Suite(t *testing.T) {
	fstest.TestSuite(t, func(t *testing.T) (core.FS, string) {
		return billy.NewOSFS(t.TempDir()), "/"
	})
}

func TestBaseOSFS_Suite(t *testing.T) {
	fstest.TestSuite(t, func(t *testing.T) (core.FS, string) {
		return billy.NewBaseOSFS(), t.TempDir()
	})
}

func testOpenFileErrors(t *testing.T, fsys *billy.FS, root string) {
	t.Helper()
	p := filepath.Join(root, "missing.txt")

	_, err := fsys.OpenFile(p, os.O_RDONLY, 0)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("OpenFile(%q): got error %v, want fs.ErrNotExist", p, err)
	}
	if err == nil || !strings.HasPrefix(err.Error(), "billy: openfile") {
		t.Errorf("OpenFile(%q): error %v is not prefixed with the backend", p, err)
	}

	f, err := fsys.OpenFile(p, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("OpenFile(%q, O_EXCL): got error %v, want nil", p, err)
	}
	_ = f.Close()

	_, err = fsys.OpenFile(p, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if !errors.Is(err, fs.ErrExist) {
		t.Errorf("OpenFile(%q, O_EXCL) twice: got error %v, want fs.ErrExist", p, err)
	}
}

func testFileStatAndRead(t *testing.T, fsys *billy.FS, root string) {
	t.Helper()
	p := filepath.Join(root, "stat.txt")

	f, err := fsys.OpenFile(p, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0o644)
	if err != nil {
		t.Fatalf("OpenFile(%q): got error %v, want nil", p, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write([]byte("hello")); err != nil {
		t.Fatalf("Write(): got error %v, want nil", err)
	}
	info, err := f.Stat()
	if err != nil {
		t.Fatalf("Stat(): got error %v, want nil", err)
	}
	if info.Size() != 5 {
		t.Errorf("Stat(): Size() = %d, want 5", info.Size())
	}

	buf := make([]byte, 3)
	n, err := f.ReadAt(buf, 1)
	if err != nil && !errors.Is(err, io.EOF) {
		t.Fatalf("ReadAt(): got error %v, want nil", err)
	}
	if string(buf[:n]) != "ell" {
		t.Errorf("ReadAt(): got %q, want %q", buf[:n], "ell")
	}

	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		t.Fatalf("Seek(): got error %v, want nil", err)
	}
	if _, err := f.Read(buf); !errors.Is(err, io.EOF) {
		t.Errorf("Read() at end: got error %v, want io.EOF", err)
	}
	if f.Name() == "" {
		t.Errorf("Name(): got empty name")
	}
}

func testRemove(t *testing.T, fsys *billy.FS, root string) {
	t.Helper()
	name := filepath.Join(root, "a/b/gone.txt")
	f, err := fsys.OpenFile(name, os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		t.Fatalf("OpenFile(%q): got error %v, want nil", name, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close(): got error %v, want nil", err)
	}
	if err := fsys.Remove(name); err != nil {
		t.Fatalf("Remove(%q): got error %v, want nil", name, err)
	}
	if _, err := fsys.Stat(name); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat(%q) after Remove: got error %v, want fs.ErrNotExist", name, err)
	}
	if err := fsys.Remove(name); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Remove(%q) twice: got error %v, want fs.ErrNotExist", name, err)
	}
}

// runAdapterSuite runs the adapter-level checks against one backend.
func runAdapterSuite(t *testing.T, fsys *billy.FS, root string) {
	t.Helper()
	testOpenFileErrors(t, fsys, root)
	testFileStatAndRead(t, fsys, root)
	testRemove(t, fsys, root)
}

func TestInMemoryFS_Adapter(t *testing.T) {
	runAdapterSuite(t, billy.NewInMemoryFS(), "/")
}

func TestBaseOSFS_Adapter(t *testing.T) {
	runAdapterSuite(t, billy.NewBaseOSFS(), t.TempDir())
}
