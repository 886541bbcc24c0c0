package fstream

import (
	"fmt"
	"os"
	"strings"

	ferrors "github.com/input-output-hk/catalyst-forge-libs/fstream/errors"
)

// Mode is the access intent a session opens its handle with.
type Mode int

const (
	// ReadOnly opens an existing file for reading from the start.
	ReadOnly Mode = iota
	// ReadWrite opens an existing file for reading and writing from the start.
	ReadWrite
	// WriteTruncate opens for writing, creating the file or truncating it to zero length.
	WriteTruncate
	// WriteTruncateRead is WriteTruncate that also allows reading.
	WriteTruncateRead
	// AppendOnly opens for writing, creating the file if needed; every write lands at the end.
	AppendOnly
	// AppendRead is AppendOnly that also allows reading.
	AppendRead
	// CreateExclusive creates the file for writing and fails if it already exists.
	CreateExclusive
	// CreateExclusiveReadWrite is CreateExclusive that also allows reading.
	CreateExclusiveReadWrite
	// CreateNoTruncate opens for writing, creating the file if needed but never truncating it.
	CreateNoTruncate
	// CreateNoTruncateReadWrite is CreateNoTruncate that also allows reading.
	CreateNoTruncateReadWrite
)

type modeInfo struct {
	name  string
	fopen string
	flag  int
}

var modes = [...]modeInfo{
	ReadOnly:                  {"ReadOnly", "r", os.O_RDONLY},
	ReadWrite:                 {"ReadWrite", "r+", os.O_RDWR},
	WriteTruncate:             {"WriteTruncate", "w", os.O_WRONLY | os.O_CREATE | os.O_TRUNC},
	WriteTruncateRead:         {"WriteTruncateRead", "w+", os.O_RDWR | os.O_CREATE | os.O_TRUNC},
	AppendOnly:                {"AppendOnly", "a", os.O_WRONLY | os.O_CREATE | os.O_APPEND},
	AppendRead:                {"AppendRead", "a+", os.O_RDWR | os.O_CREATE | os.O_APPEND},
	CreateExclusive:           {"CreateExclusive", "x", os.O_WRONLY | os.O_CREATE | os.O_EXCL},
	CreateExclusiveReadWrite:  {"CreateExclusiveReadWrite", "x+", os.O_RDWR | os.O_CREATE | os.O_EXCL},
	CreateNoTruncate:          {"CreateNoTruncate", "c", os.O_WRONLY | os.O_CREATE},
	CreateNoTruncateReadWrite: {"CreateNoTruncateReadWrite", "c+", os.O_RDWR | os.O_CREATE},
}

// Modes returns every access mode in declaration order.
func Modes() []Mode {
	out := make([]Mode, len(modes))
	for i := range modes {
		out[i] = Mode(i)
	}
	return out
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	return m >= 0 && int(m) < len(modes)
}

// String returns the mode name, e.g. "AppendRead".
func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modes[m].name
}

// Flag returns the os.OpenFile flags the mode maps to.
func (m Mode) Flag() int {
	if !m.Valid() {
		return -1
	}
	return modes[m].flag
}

// Readable reports whether a handle opened in m can be read from.
func (m Mode) Readable() bool {
	return m.Valid() && m.Flag()&(os.O_WRONLY|os.O_RDWR) != os.O_WRONLY
}

// Writable reports whether a handle opened in m can be written to.
func (m Mode) Writable() bool {
	return m.Valid() && m.Flag()&(os.O_WRONLY|os.O_RDWR) != 0
}

// Creates reports whether opening in m creates a missing file.
func (m Mode) Creates() bool {
	return m.Valid() && m.Flag()&os.O_CREATE != 0
}

// ParseMode maps an fopen-style mode string ("r", "w+", "x", "c+", ...) to
// its Mode. A "b" marker and a trailing "e" (close-on-exec, which Go always
// sets) are accepted and ignored.
func ParseMode(s string) (Mode, error) {
	key := strings.ReplaceAll(strings.ToLower(s), "b", "")
	key = strings.TrimSuffix(key, "e")
	for i, info := range modes {
		if info.fopen == key {
			return Mode(i), nil
		}
	}
	return 0, ferrors.InvalidOperation("parsemode", "", fmt.Errorf("unknown mode %q", s))
}
