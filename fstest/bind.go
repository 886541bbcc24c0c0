package fstest

import (
	"path/filepath"
	"testing"

	"github.com/input-output-hk/catalyst-forge-libs/fstream"
	"github.com/input-output-hk/catalyst-forge-libs/fstream/core"
	ferrors "github.com/input-output-hk/catalyst-forge-libs/fstream/errors"
)

// TestBind tests the existence and creation policy of fstream.Bind.
func TestBind(t *testing.T, fsys *TrackingFS, root string) {
	t.Run("MissingWithoutCreate", func(t *testing.T) {
		p := filepath.Join(root, "bind-missing.txt")
		_, err := fstream.Bind(p, false, fstream.WithFS(fsys))
		if !ferrors.IsNotFound(err) {
			t.Errorf("Bind(%q, false): got error %v, want NotFound", p, err)
		}
		if ok, _ := core.Exists(fsys, p); ok {
			t.Errorf("Bind(%q, false): created the file", p)
		}
	})

	t.Run("MissingWithCreate", func(t *testing.T) {
		p := filepath.Join(root, "bind-create.txt")
		b, err := fstream.Bind(p, true, fstream.WithFS(fsys))
		if err != nil {
			t.Fatalf("Bind(%q, true): got error %v, want nil", p, err)
		}
		if !b.Created() {
			t.Errorf("Created(): got false, want true")
		}
		if b.Path() != p {
			t.Errorf("Path(): got %q, want %q", b.Path(), p)
		}
		info, err := fsys.Stat(p)
		if err != nil {
			t.Fatalf("Stat(%q): got error %v, want nil", p, err)
		}
		if info.Size() != 0 {
			t.Errorf("Stat(%q): Size() = %d, want 0", p, info.Size())
		}
	})

	t.Run("ExistingKeepsContent", func(t *testing.T) {
		s := newStream(t, fsys, root, "bind-existing.txt")
		mustWrite(t, s, "keep")

		b, err := fstream.Bind(s.Path(), true, fstream.WithFS(fsys))
		if err != nil {
			t.Fatalf("Bind(%q, true): got error %v, want nil", s.Path(), err)
		}
		if b.Created() {
			t.Errorf("Created(): got true, want false")
		}
		if got := mustRead(t, fstream.NewStream(b)); got != "keep" {
			t.Errorf("Read(): got %q, want %q", got, "keep")
		}
	})
}
