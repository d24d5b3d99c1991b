// Package storage provides the object storage boundary the facade is built on.
//
// The Client interface is the full capability set the rest of the module may
// use: existence checks, paged listings (flat or delimited), put, delete,
// server-side copy and SDK-managed file transfers. Nothing above this
// package speaks an SDK's types.
//
// # Backends
//
//   - minio (default): the MinIO Go client with path-style bucket lookup.
//   - s3: the AWS SDK for Go v2 with path-style addressing, using the
//     feature/s3/manager Uploader and Downloader for file transfers.
//
// Both backends share one http.Transport per client. Close releases its idle
// connections; calls made after Close return ErrClosed.
//
// # Errors
//
// Missing keys and buckets are reported as ErrObjectNotFound and
// ErrBucketNotFound (wrapped), so callers can use errors.Is regardless of the
// backend. A region that does not look like an AWS region name fails
// NewClient with ErrInvalidRegion; an empty region falls back to
// DefaultRegion.
//
// # Usage
//
//	client, err := storage.NewClient(cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//	info, err := client.StatObject(ctx, cfg.Bucket, "t1/a/")
package storage
