package bucketfs

import (
	"errors"
	"fmt"

	"object-storage/core/storage"
)

var (
	// ErrDirectoryExists is returned by MakeDirectory when the marker is already present.
	ErrDirectoryExists = errors.New("directory already exists")
	// ErrObjectNotFound is returned by Remove when the key is absent.
	ErrObjectNotFound = storage.ErrObjectNotFound
	// ErrCopiedNotRemoved marks a move whose copy landed but whose source delete failed.
	ErrCopiedNotRemoved = errors.New("copied but source not removed")
	// ErrEmptyPath is returned by operations that refuse to act on the bucket root.
	ErrEmptyPath = errors.New("path must not be empty")
	// ErrSameKey is returned by Move when source and destination are the same key.
	ErrSameKey = errors.New("source and destination are the same key")
)

// MoveError reports a move that left both source and destination in place.
type MoveError struct {
	Src  string
	Dest string
	Err  error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move %s -> %s: %v: %v", e.Src, e.Dest, ErrCopiedNotRemoved, e.Err)
}

// Unwrap exposes both ErrCopiedNotRemoved and the delete failure to errors.Is.
func (e *MoveError) Unwrap() []error {
	return []error{ErrCopiedNotRemoved, e.Err}
}
