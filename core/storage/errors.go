package storage

import "errors"

var (
	// ErrObjectNotFound is returned when a key does not exist in the bucket.
	ErrObjectNotFound = errors.New("object not found")
	// ErrBucketNotFound is returned when the bucket does not exist.
	ErrBucketNotFound = errors.New("bucket not found")
	// ErrInvalidRegion is returned by NewClient for a malformed region name.
	ErrInvalidRegion = errors.New("invalid region name")
	// ErrInvalidConfig is returned by NewClient when a required field is missing.
	ErrInvalidConfig = errors.New("invalid storage configuration")
	// ErrClosed is returned by operations on a client after Close.
	ErrClosed = errors.New("storage client closed")
)
