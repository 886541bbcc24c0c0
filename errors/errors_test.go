package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "with path and cause",
			err:  IOFailure("open", "/tmp/a.txt", fs.ErrPermission),
			want: `fstream.open "/tmp/a.txt": [IO_FAILURE] permission denied`,
		},
		{
			name: "without path",
			err:  InvalidOperation("mode", "", errors.New(`unknown mode "q"`)),
			want: `fstream.mode: [INVALID_OPERATION] unknown mode "q"`,
		},
		{
			name: "without cause",
			err:  NotFound("bind", "missing", nil),
			want: `fstream.bind "missing": [NOT_FOUND]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_Is(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", IOFailure("write", "a", fs.ErrClosed))

	assert.True(t, errors.Is(err, ErrIOFailure))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidOperation))
	assert.True(t, errors.Is(err, fs.ErrClosed), "cause must stay reachable")

	assert.True(t, IsIOFailure(err))
	assert.False(t, IsNotFound(err))
	assert.False(t, IsInvalidOperation(err))
}

func TestError_As(t *testing.T) {
	err := fmt.Errorf("ctx: %w", NotFound("bind", "/nope", fs.ErrNotExist))

	var target *Error
	require.True(t, errors.As(err, &target))
	assert.Equal(t, CodeNotFound, target.Code)
	assert.Equal(t, "bind", target.Op)
	assert.Equal(t, "/nope", target.Path)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeInvalidOperation, CodeOf(InvalidOperation("read", "x", nil)))
	assert.Equal(t, CodeNotFound, CodeOf(fmt.Errorf("x: %w", ErrNotFound)))
	assert.Equal(t, CodeUnknown, CodeOf(errors.New("plain")))
	assert.Equal(t, CodeUnknown, CodeOf(nil))
}
