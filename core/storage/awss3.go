package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync/atomic"

	"object-storage/core/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/minio/minio-go/v7/pkg/s3utils"
)

type s3Client struct {
	client     *s3.Client
	uploader   *manager.Uploader
	downloader *manager.Downloader
	transport  *http.Transport
	closed     atomic.Bool
}

func newS3Client(cfg Config) (*s3Client, error) {
	endpoint := cfg.Endpoint
	if !strings.Contains(endpoint, "://") {
		scheme := "http://"
		if cfg.UseSSL {
			scheme = "https://"
		}
		endpoint = scheme + endpoint
	}

	transport := newTransport(cfg)

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""))),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
		// Set here rather than on the loaded config: the loader rejects a
		// plain *http.Client when a CA bundle is configured.
		o.HTTPClient = &http.Client{Transport: transport}
	})

	return &s3Client{
		client:     client,
		uploader:   manager.NewUploader(client),
		downloader: manager.NewDownloader(client),
		transport:  transport,
	}, nil
}

func (c *s3Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	if c.closed.Load() {
		return false, ErrClosed
	}
	_, err := c.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucketName)})
	if err != nil {
		err = translateS3Error(err)
		if errors.Is(err, ErrBucketNotFound) || errors.Is(err, ErrObjectNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *s3Client) StatObject(ctx context.Context, bucketName, objectName string) (ObjectInfo, error) {
	if c.closed.Load() {
		return ObjectInfo{}, ErrClosed
	}
	out, err := c.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(objectName),
	})
	if err != nil {
		return ObjectInfo{}, translateS3Error(err)
	}
	return ObjectInfo{
		Key:          objectName,
		Size:         aws.ToInt64(out.ContentLength),
		LastModified: aws.ToTime(out.LastModified),
		ETag:         aws.ToString(out.ETag),
		IsDir:        utils.IsDirKey(objectName),
	}, nil
}

func (c *s3Client) ListPage(ctx context.Context, bucketName string, opts ListOptions) (ListPage, error) {
	if c.closed.Load() {
		return ListPage{}, ErrClosed
	}
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucketName),
	}
	if opts.Prefix != "" {
		input.Prefix = aws.String(opts.Prefix)
	}
	if opts.Delimiter != "" {
		input.Delimiter = aws.String(opts.Delimiter)
	}
	if opts.ContinuationToken != "" {
		input.ContinuationToken = aws.String(opts.ContinuationToken)
	}
	if opts.MaxKeys > 0 {
		input.MaxKeys = aws.Int32(int32(opts.MaxKeys))
	}

	out, err := c.client.ListObjectsV2(ctx, input)
	if err != nil {
		return ListPage{}, translateS3Error(err)
	}

	page := ListPage{
		IsTruncated: aws.ToBool(out.IsTruncated),
		NextToken:   aws.ToString(out.NextContinuationToken),
		Objects:     make([]ObjectInfo, 0, len(out.Contents)),
	}
	for _, obj := range out.Contents {
		key := aws.ToString(obj.Key)
		page.Objects = append(page.Objects, ObjectInfo{
			Key:          key,
			Size:         aws.ToInt64(obj.Size),
			LastModified: aws.ToTime(obj.LastModified),
			ETag:         aws.ToString(obj.ETag),
			IsDir:        utils.IsDirKey(key),
		})
	}
	for _, p := range out.CommonPrefixes {
		page.CommonPrefixes = append(page.CommonPrefixes, aws.ToString(p.Prefix))
	}
	return page, nil
}

func (c *s3Client) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts PutOptions) error {
	if c.closed.Load() {
		return ErrClosed
	}
	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucketName),
		Key:           aws.String(objectName),
		Body:          reader,
		ContentLength: aws.Int64(objectSize),
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}
	_, err := c.client.PutObject(ctx, input)
	return translateS3Error(err)
}

func (c *s3Client) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	if c.closed.Load() {
		return ErrClosed
	}
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(objectName),
	})
	return translateS3Error(err)
}

func (c *s3Client) CopyObject(ctx context.Context, bucketName, srcObject, destObject string) error {
	if c.closed.Load() {
		return ErrClosed
	}
	_, err := c.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(bucketName),
		Key:        aws.String(destObject),
		CopySource: aws.String(s3utils.EncodePath(bucketName + "/" + srcObject)),
	})
	return translateS3Error(err)
}

func (c *s3Client) UploadFile(ctx context.Context, bucketName, objectName, filePath string, opts TransferOptions) error {
	if c.closed.Load() {
		return ErrClosed
	}
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("can't open local file: %w", err)
	}
	defer f.Close()

	var body io.Reader = f
	if opts.Progress != nil {
		body = &countingReader{r: f, fn: opts.Progress}
	}

	_, err = c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(objectName),
		Body:        body,
		ContentType: aws.String(DetectContentType(filePath)),
	}, func(u *manager.Uploader) {
		if opts.PartSize > 0 {
			u.PartSize = opts.PartSize
		}
		if opts.Concurrency > 0 {
			u.Concurrency = opts.Concurrency
		}
	})
	if err != nil {
		var multierr manager.MultiUploadFailure
		if errors.As(err, &multierr) {
			return fmt.Errorf("multipart upload %s failed: %w", multierr.UploadID(), translateS3Error(err))
		}
		return translateS3Error(err)
	}
	return nil
}

func (c *s3Client) DownloadFile(ctx context.Context, bucketName, objectName, filePath string, opts TransferOptions) error {
	if c.closed.Load() {
		return ErrClosed
	}
	return writeFileAtomic(filePath, func(f *os.File) error {
		var w io.WriterAt = f
		if opts.Progress != nil {
			w = &countingWriterAt{w: f, fn: opts.Progress}
		}
		_, err := c.downloader.Download(ctx, w, &s3.GetObjectInput{
			Bucket: aws.String(bucketName),
			Key:    aws.String(objectName),
		}, func(d *manager.Downloader) {
			if opts.PartSize > 0 {
				d.PartSize = opts.PartSize
			}
			if opts.Concurrency > 0 {
				d.Concurrency = opts.Concurrency
			}
		})
		return translateS3Error(err)
	})
}

func (c *s3Client) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.transport.CloseIdleConnections()
	return nil
}

// translateS3Error maps smithy API errors onto the package sentinels.
func translateS3Error(err error) error {
	if err == nil {
		return nil
	}

	var nsk *types.NoSuchKey
	var nf *types.NotFound
	var nsb *types.NoSuchBucket
	switch {
	case errors.As(err, &nsk), errors.As(err, &nf):
		return fmt.Errorf("%w: %v", ErrObjectNotFound, err)
	case errors.As(err, &nsb):
		return fmt.Errorf("%w: %v", ErrBucketNotFound, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %s", ErrObjectNotFound, apiErr.ErrorMessage())
		case "NoSuchBucket":
			return fmt.Errorf("%w: %s", ErrBucketNotFound, apiErr.ErrorMessage())
		}
	}
	return err
}
