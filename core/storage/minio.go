package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"object-storage/core/utils"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type minioClient struct {
	client    *minio.Client
	transport *http.Transport
	closed    atomic.Bool
}

func newMinioClient(cfg Config) (*minioClient, error) {
	// Minio expects endpoint without scheme
	secure := cfg.UseSSL || strings.HasPrefix(cfg.Endpoint, "https://")
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimSuffix(endpoint, "/")

	transport := newTransport(cfg)

	client, err := minio.New(endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       secure,
		Region:       cfg.Region,
		Transport:    transport,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &minioClient{client: client, transport: transport}, nil
}

func (c *minioClient) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	if c.closed.Load() {
		return false, ErrClosed
	}
	return c.client.BucketExists(ctx, bucketName)
}

func (c *minioClient) StatObject(ctx context.Context, bucketName, objectName string) (ObjectInfo, error) {
	if c.closed.Load() {
		return ObjectInfo{}, ErrClosed
	}
	info, err := c.client.StatObject(ctx, bucketName, objectName, minio.StatObjectOptions{})
	if err != nil {
		return ObjectInfo{}, translateMinioError(err)
	}
	return fromMinioInfo(info), nil
}

func (c *minioClient) ListPage(ctx context.Context, bucketName string, opts ListOptions) (ListPage, error) {
	if c.closed.Load() {
		return ListPage{}, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return ListPage{}, err
	}

	core := minio.Core{Client: c.client}
	res, err := core.ListObjectsV2(bucketName, opts.Prefix, "", opts.ContinuationToken, opts.Delimiter, opts.MaxKeys)
	if err != nil {
		return ListPage{}, translateMinioError(err)
	}

	page := ListPage{
		IsTruncated: res.IsTruncated,
		NextToken:   res.NextContinuationToken,
		Objects:     make([]ObjectInfo, 0, len(res.Contents)),
	}
	for _, obj := range res.Contents {
		page.Objects = append(page.Objects, fromMinioInfo(obj))
	}
	for _, p := range res.CommonPrefixes {
		page.CommonPrefixes = append(page.CommonPrefixes, p.Prefix)
	}
	return page, nil
}

func (c *minioClient) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts PutOptions) error {
	if c.closed.Load() {
		return ErrClosed
	}
	_, err := c.client.PutObject(ctx, bucketName, objectName, reader, objectSize, minio.PutObjectOptions{
		ContentType: opts.ContentType,
	})
	return translateMinioError(err)
}

func (c *minioClient) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	if c.closed.Load() {
		return ErrClosed
	}
	return translateMinioError(c.client.RemoveObject(ctx, bucketName, objectName, minio.RemoveObjectOptions{}))
}

func (c *minioClient) CopyObject(ctx context.Context, bucketName, srcObject, destObject string) error {
	if c.closed.Load() {
		return ErrClosed
	}
	_, err := c.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: bucketName, Object: destObject},
		minio.CopySrcOptions{Bucket: bucketName, Object: srcObject},
	)
	return translateMinioError(err)
}

func (c *minioClient) UploadFile(ctx context.Context, bucketName, objectName, filePath string, opts TransferOptions) error {
	if c.closed.Load() {
		return ErrClosed
	}
	putOpts := minio.PutObjectOptions{
		ContentType: DetectContentType(filePath),
	}
	if opts.PartSize > 0 {
		putOpts.PartSize = uint64(opts.PartSize)
	}
	if opts.Concurrency > 0 {
		putOpts.NumThreads = uint(opts.Concurrency)
	}
	if opts.Progress != nil {
		putOpts.Progress = progressReader{fn: opts.Progress}
	}

	_, err := c.client.FPutObject(ctx, bucketName, objectName, filePath, putOpts)
	return translateMinioError(err)
}

func (c *minioClient) DownloadFile(ctx context.Context, bucketName, objectName, filePath string, opts TransferOptions) error {
	if c.closed.Load() {
		return ErrClosed
	}
	obj, err := c.client.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return translateMinioError(err)
	}
	defer obj.Close()

	return writeFileAtomic(filePath, func(f *os.File) error {
		_, err := io.Copy(&countingWriter{w: f, fn: opts.Progress}, obj)
		return translateMinioError(err)
	})
}

func (c *minioClient) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.transport.CloseIdleConnections()
	return nil
}

func fromMinioInfo(info minio.ObjectInfo) ObjectInfo {
	return ObjectInfo{
		Key:          info.Key,
		Size:         info.Size,
		LastModified: info.LastModified,
		ETag:         info.ETag,
		IsDir:        utils.IsDirKey(info.Key),
	}
}

// translateMinioError maps minio error codes onto the package sentinels.
func translateMinioError(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey", "NotFound":
		return fmt.Errorf("%w: %s", ErrObjectNotFound, resp.Message)
	case "NoSuchBucket":
		return fmt.Errorf("%w: %s", ErrBucketNotFound, resp.Message)
	}
	return err
}

// writeFileAtomic writes into a temp file next to filePath and renames it
// into place once fill succeeds.
func writeFileAtomic(filePath string, fill func(f *os.File) error) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := fill(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, filePath); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to move download into place: %w", err)
	}
	return nil
}
