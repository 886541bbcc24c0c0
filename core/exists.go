package core

import (
	"errors"
	"fmt"
	"io/fs"
)

// Exists reports whether name exists on fsys. A missing path is not an error.
func Exists(fsys FS, name string) (bool, error) {
	_, err := fsys.Stat(name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("core: stat %q: %w", name, err)
	}
}
