package storage

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// Client defines the object storage operations the facade is built on.
type Client interface {
	// BucketExists checks if a bucket exists.
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	// StatObject returns metadata for a key, or ErrObjectNotFound.
	StatObject(ctx context.Context, bucketName, objectName string) (ObjectInfo, error)
	// ListPage returns one page of a listing. Pass NextToken back as
	// ContinuationToken to fetch the next page.
	ListPage(ctx context.Context, bucketName string, opts ListOptions) (ListPage, error)
	// PutObject uploads an object.
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts PutOptions) error
	// RemoveObject deletes an object from a bucket.
	RemoveObject(ctx context.Context, bucketName, objectName string) error
	// CopyObject copies an object server side within the bucket.
	CopyObject(ctx context.Context, bucketName, srcObject, destObject string) error
	// UploadFile streams a local file to a key. Chunking and part
	// parallelism are left to the SDK.
	UploadFile(ctx context.Context, bucketName, objectName, filePath string, opts TransferOptions) error
	// DownloadFile writes an object to a local file.
	DownloadFile(ctx context.Context, bucketName, objectName, filePath string, opts TransferOptions) error
	// Close releases idle connections held by the client.
	Close() error
}

// ObjectInfo describes a listing entry.
type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	ETag         string    `json:"etag,omitempty"`
	// IsDir is true for marker objects and common prefixes. It comes from
	// the trailing separator, never from the size.
	IsDir bool `json:"is_dir"`
}

// ListOptions controls a single ListPage call.
type ListOptions struct {
	Prefix            string
	Delimiter         string
	ContinuationToken string
	// MaxKeys caps the page size. Zero lets the service decide.
	MaxKeys int
}

// ListPage is one page of a listing.
type ListPage struct {
	Objects        []ObjectInfo
	CommonPrefixes []string
	IsTruncated    bool
	NextToken      string
}

// PutOptions holds optional object attributes for PutObject.
type PutOptions struct {
	ContentType string
}

// TransferOptions tunes UploadFile and DownloadFile.
type TransferOptions struct {
	// PartSize is the multipart chunk size in bytes. Zero keeps the SDK default.
	PartSize int64
	// Concurrency is the number of parts moved in parallel. Zero keeps the SDK default.
	Concurrency int
	// Progress is called with the number of bytes moved since the last call.
	Progress func(n int64)
}

// NewClient creates a storage client for the configured backend.
func NewClient(cfg Config) (Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%w: endpoint is required", ErrInvalidConfig)
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: bucket is required", ErrInvalidConfig)
	}
	region, err := ResolveRegion(cfg.Region)
	if err != nil {
		return nil, err
	}
	cfg.Region = region

	switch strings.ToLower(cfg.Backend) {
	case "", BackendMinio:
		return newMinioClient(cfg)
	case BackendS3:
		return newS3Client(cfg)
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, cfg.Backend)
	}
}

// newTransport builds the HTTP transport shared by both backends.
func newTransport(cfg Config) *http.Transport {
	// Ensure timeout defaults if not set
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}
}

// DetectContentType sniffs the MIME type of a local file.
func DetectContentType(filePath string) string {
	mt, err := mimetype.DetectFile(filePath)
	if err != nil {
		return "application/octet-stream"
	}
	return mt.String()
}

// dirInfo builds the entry for a common prefix.
func dirInfo(prefix string) ObjectInfo {
	return ObjectInfo{Key: prefix, IsDir: true}
}
