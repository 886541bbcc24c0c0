package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"path"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/minio/minio-go/v7"
)

// objectInfo is the metadata a MinioFS needs about an object.
type objectInfo struct {
	size    int64
	modTime time.Time
}

// store is the part of the object-store API a MinioFS uses. Missing objects
// must be reported with an error matching fs.ErrNotExist.
type store interface {
	stat(ctx context.Context, key string) (objectInfo, error)
	get(ctx context.Context, key string) ([]byte, error)
	put(ctx context.Context, key string, data []byte) error
	remove(ctx context.Context, key string) error
}

// clientStore is the store backed by a minio-go client.
type clientStore struct {
	client *minio.Client
	bucket string
}

func (c *clientStore) stat(ctx context.Context, key string) (objectInfo, error) {
	info, err := c.client.StatObject(ctx, c.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return objectInfo{}, translateError(err)
	}
	return objectInfo{size: info.Size, modTime: info.LastModified}, nil
}

func (c *clientStore) get(ctx context.Context, key string) ([]byte, error) {
	obj, err := c.client.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, translateError(err)
	}
	defer func() {
		_ = obj.Close()
	}()

	// Read the entire object into memory
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, translateError(err)
	}
	return data, nil
}

func (c *clientStore) put(ctx context.Context, key string, data []byte) error {
	_, err := c.client.PutObject(
		ctx,
		c.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType(key, data),
		},
	)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (c *clientStore) remove(ctx context.Context, key string) error {
	if err := c.client.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return translateError(err)
	}
	return nil
}

// contentType sniffs data, falling back to the key's extension for empty
// objects.
func contentType(key string, data []byte) string {
	if len(data) > 0 {
		return mimetype.Detect(data).String()
	}
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// translateError maps S3 error codes onto io/fs sentinels so callers can use
// errors.Is. The original error text is kept.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return fmt.Errorf("%w: %v", fs.ErrNotExist, err)
	case "AccessDenied":
		return fmt.Errorf("%w: %v", fs.ErrPermission, err)
	default:
		return err
	}
}
