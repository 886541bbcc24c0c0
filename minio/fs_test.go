package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/fstream"
	"github.com/input-output-hk/catalyst-forge-libs/fstream/core"
	ferrors "github.com/input-output-hk/catalyst-forge-libs/fstream/errors"
	"github.com/input-output-hk/catalyst-forge-libs/fstream/fstest"
)

var errUnavailable = errors.New("store unavailable")

// memStore is an in-memory bucket.
type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    int
	putErr  error
	statErr error
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (s *memStore) stat(_ context.Context, key string) (objectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.statErr != nil {
		return objectInfo{}, s.statErr
	}
	data, ok := s.objects[key]
	if !ok {
		return objectInfo{}, fmt.Errorf("%w: %s", fs.ErrNotExist, key)
	}
	return objectInfo{size: int64(len(data)), modTime: time.Unix(0, 0)}, nil
}

func (s *memStore) get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", fs.ErrNotExist, key)
	}
	return append([]byte(nil), data...), nil
}

func (s *memStore) put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	s.puts++
	s.objects[key] = append([]byte(nil), data...)
	return nil
}

func (s *memStore) remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *memStore) keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestMinioFS_Suite(t *testing.T) {
	fstest.TestSuite(t, func(t *testing.T) (core.FS, string) {
		return newWithStore(newMemStore()), "/"
	})
}

func TestMinioFS_Prefix(t *testing.T) {
	st := newMemStore()
	mfs := newWithStore(st, WithPrefix("/tenants/a/"))

	s, err := fstream.New("/dir/../notes.txt", true, fstream.WithFS(mfs))
	require.NoError(t, err)
	require.NoError(t, s.WriteString("hello"))

	assert.Equal(t, []string{"tenants/a/notes.txt"}, st.keys())

	info, err := mfs.Stat("notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", info.Name())
	assert.Equal(t, int64(5), info.Size())
}

func TestMinioFS_OpenFile(t *testing.T) {
	st := newMemStore()
	st.objects["a.txt"] = []byte("abcd")
	mfs := newWithStore(st)

	t.Run("missing without create", func(t *testing.T) {
		_, err := mfs.OpenFile("/missing.txt", os.O_RDONLY, 0)
		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.Contains(t, err.Error(), `minio: openfile "/missing.txt"`)
	})

	t.Run("exclusive on existing", func(t *testing.T) {
		_, err := mfs.OpenFile("/a.txt", os.O_RDWR|os.O_CREATE|os.O_EXCL, 0)
		assert.ErrorIs(t, err, fs.ErrExist)
	})

	t.Run("stat failure", func(t *testing.T) {
		broken := newMemStore()
		broken.statErr = errUnavailable
		_, err := newWithStore(broken).OpenFile("/a.txt", os.O_RDONLY, 0)
		assert.ErrorIs(t, err, errUnavailable)
	})

	t.Run("read only never uploads", func(t *testing.T) {
		before := st.puts
		f, err := mfs.OpenFile("/a.txt", os.O_RDONLY, 0)
		require.NoError(t, err)
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "abcd", string(data))
		require.NoError(t, f.Close())
		assert.Equal(t, before, st.puts)
	})

	t.Run("create uploads empty object", func(t *testing.T) {
		f, err := mfs.OpenFile("/new.txt", os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0)
		require.NoError(t, err)
		require.NoError(t, f.Close())
		data, ok := st.objects["new.txt"]
		require.True(t, ok)
		assert.Empty(t, data)
	})
}

func TestFile_ReadWrite(t *testing.T) {
	st := newMemStore()
	st.objects["f.txt"] = []byte("0123456789")
	mfs := newWithStore(st)

	f, err := mfs.OpenFile("/f.txt", os.O_RDWR, 0)
	require.NoError(t, err)
	mf := f.(*File)

	buf := make([]byte, 4)
	n, err := f.ReadAt(buf, 8)
	assert.Equal(t, 2, n)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "89", string(buf[:n]))

	pos, err := f.Seek(-2, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(8), pos)

	_, err = f.Write([]byte("XYZ"))
	require.NoError(t, err)
	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(11), info.Size())

	_, err = f.Seek(-1, io.SeekStart)
	assert.ErrorIs(t, err, fs.ErrInvalid)

	require.NoError(t, mf.Sync())
	assert.Equal(t, "01234567XYZ", string(st.objects["f.txt"]))
	puts := st.puts
	require.NoError(t, f.Close())
	assert.Equal(t, puts, st.puts, "close after sync has nothing to upload")

	require.NoError(t, f.Close())
	_, err = f.Read(buf)
	assert.ErrorIs(t, err, fs.ErrClosed)
	_, err = f.Write(buf)
	assert.ErrorIs(t, err, fs.ErrClosed)
	assert.ErrorIs(t, mf.Sync(), fs.ErrClosed)
}

func TestFile_ModeChecks(t *testing.T) {
	st := newMemStore()
	st.objects["f.txt"] = []byte("abc")
	mfs := newWithStore(st)

	w, err := mfs.OpenFile("/f.txt", os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = w.Read(make([]byte, 1))
	assert.ErrorIs(t, err, fs.ErrInvalid)
	require.NoError(t, w.Close())

	r, err := mfs.OpenFile("/f.txt", os.O_RDONLY, 0)
	require.NoError(t, err)
	_, err = r.Write([]byte("x"))
	assert.ErrorIs(t, err, fs.ErrInvalid)
	require.NoError(t, r.Close())
}

func TestFile_UploadFailure(t *testing.T) {
	st := newMemStore()
	mfs := newWithStore(st)
	tracked := fstest.Track(mfs)

	s, err := fstream.New("/f.txt", true, fstream.WithFS(tracked))
	require.NoError(t, err)

	st.putErr = errUnavailable
	err = s.WriteString("lost")
	assert.True(t, ferrors.IsIOFailure(err), "got %v", err)
	assert.ErrorIs(t, err, errUnavailable)
	assert.Zero(t, tracked.OpenHandles())

	st.putErr = nil
	data, err := s.Read()
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"NoSuchKey", fs.ErrNotExist},
		{"NoSuchBucket", fs.ErrNotExist},
		{"AccessDenied", fs.ErrPermission},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := translateError(minio.ErrorResponse{Code: tt.code, Message: "boom"})
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "boom")
		})
	}

	assert.NoError(t, translateError(nil))
	assert.Equal(t, errUnavailable, translateError(errUnavailable))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/plain; charset=utf-8", contentType("notes", []byte("hello\n")))
	assert.Equal(t, "application/pdf", contentType("doc", []byte("%PDF-1.7\n")))
	assert.Equal(t, "application/json", contentType("empty.json", nil))
	assert.Equal(t, "application/octet-stream", contentType("empty", nil))
}
