package bucketfs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"object-storage/core/metrics"
	"object-storage/core/storage"
	"object-storage/core/transfer"
	"object-storage/core/utils"

	"go.uber.org/zap"
)

// directoryContentType is stored on marker objects.
const directoryContentType = "application/x-directory"

// Store is the object store facade: filesystem verbs over one bucket.
type Store struct {
	client   storage.Client
	bucket   string
	logger   *zap.Logger
	transfer transfer.Config

	closeOnce sync.Once
	closeErr  error
}

// Option customizes a Store.
type Option func(*Store)

// WithTransferConfig sets the tuning used by upload and download calls.
func WithTransferConfig(cfg transfer.Config) Option {
	return func(s *Store) {
		s.transfer = cfg
	}
}

// Open connects to the configured service and returns a Store that owns the
// connection. Callers must Close it.
func Open(cfg storage.Config, logger *zap.Logger, opts ...Option) (*Store, error) {
	client, err := storage.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return New(client, cfg.Bucket, logger, opts...), nil
}

// New wraps an existing client. The Store takes ownership and closes it on Close.
func New(client storage.Client, bucket string, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		client: client,
		bucket: bucket,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bucket returns the bucket the store operates on.
func (s *Store) Bucket() string {
	return s.bucket
}

// Close releases the underlying connection. It is safe to call more than once.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.client.Close()
	})
	return s.closeErr
}

// BucketExists reports whether the store's bucket exists.
func (s *Store) BucketExists(ctx context.Context) (bool, error) {
	return s.client.BucketExists(ctx, s.bucket)
}

// DirectoryExists reports whether the marker for path exists.
func (s *Store) DirectoryExists(ctx context.Context, path string) (bool, error) {
	ok, err := s.exists(ctx, utils.DirKey(path))
	observe("directory_exists", err)
	return ok, err
}

// FileExists reports whether the exact key exists.
func (s *Store) FileExists(ctx context.Context, path string) (bool, error) {
	ok, err := s.exists(ctx, path)
	observe("file_exists", err)
	return ok, err
}

func (s *Store) exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, storage.ErrObjectNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", key, err)
}

// List returns every object under prefix, following continuation tokens.
// An empty prefix lists the whole bucket.
func (s *Store) List(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	var out []storage.ObjectInfo
	err := s.walk(ctx, storage.ListOptions{Prefix: prefix}, func(page storage.ListPage) error {
		out = append(out, page.Objects...)
		return nil
	})
	observe("list", err)
	return out, err
}

// ListOneLevel lists the direct children of the directory path, like ls.
// Subdirectories come first, then files. The directory's own marker is not
// part of the result. An empty path lists the bucket root.
func (s *Store) ListOneLevel(ctx context.Context, path string) ([]storage.ObjectInfo, error) {
	prefix := ""
	if path != "" && path != utils.Separator {
		prefix = utils.DirKey(path)
	}

	var dirs, files []storage.ObjectInfo
	err := s.walk(ctx, storage.ListOptions{Prefix: prefix, Delimiter: utils.Separator}, func(page storage.ListPage) error {
		for _, p := range page.CommonPrefixes {
			dirs = append(dirs, storage.ObjectInfo{Key: p, IsDir: true})
		}
		for _, obj := range page.Objects {
			switch {
			case obj.Key == prefix:
			case obj.IsDir:
				dirs = append(dirs, obj)
			default:
				files = append(files, obj)
			}
		}
		return nil
	})
	observe("list_one_level", err)
	if err != nil {
		return nil, err
	}
	return append(dirs, files...), nil
}

// Usage returns the raw listing under prefix. Reduce it with Summarize.
func (s *Store) Usage(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	return s.List(ctx, prefix)
}

// walk feeds every page of a listing to fn.
func (s *Store) walk(ctx context.Context, opts storage.ListOptions, fn func(storage.ListPage) error) error {
	for {
		page, err := s.client.ListPage(ctx, s.bucket, opts)
		if err != nil {
			return fmt.Errorf("failed to list %q: %w", opts.Prefix, err)
		}
		if err := fn(page); err != nil {
			return err
		}
		if !page.IsTruncated || page.NextToken == "" {
			return nil
		}
		opts.ContinuationToken = page.NextToken
	}
}

// MakeDirectory creates the zero-byte marker for path. It returns
// ErrDirectoryExists, without writing, when the marker is already there.
func (s *Store) MakeDirectory(ctx context.Context, path string) error {
	err := s.makeDirectory(ctx, path)
	observe("make_directory", err)
	return err
}

func (s *Store) makeDirectory(ctx context.Context, path string) error {
	key := utils.DirKey(path)
	ok, err := s.exists(ctx, key)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("%w: %s", ErrDirectoryExists, key)
	}
	if err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(nil), 0, storage.PutOptions{ContentType: directoryContentType}); err != nil {
		return fmt.Errorf("failed to create %s: %w", key, err)
	}
	return nil
}

// MakeDirectories creates each directory independently.
func (s *Store) MakeDirectories(ctx context.Context, paths []string) []Result {
	results := make([]Result, 0, len(paths))
	for _, p := range paths {
		results = append(results, newResult(p, "", s.MakeDirectory(ctx, p)))
	}
	return results
}

// RemoveDirectory deletes every object whose key starts with path, page by
// page, and returns how many were deleted. The path is used as given, so
// "logs" also matches "logs-2024/". Deletion is not atomic: on error the
// objects removed so far stay removed.
func (s *Store) RemoveDirectory(ctx context.Context, path string) (int, error) {
	n, err := s.removeDirectory(ctx, path)
	observe("remove_directory", err)
	return n, err
}

func (s *Store) removeDirectory(ctx context.Context, path string) (int, error) {
	if path == "" {
		return 0, ErrEmptyPath
	}

	deleted := 0
	err := s.walk(ctx, storage.ListOptions{Prefix: path}, func(page storage.ListPage) error {
		for _, obj := range page.Objects {
			if err := s.client.RemoveObject(ctx, s.bucket, obj.Key); err != nil {
				return fmt.Errorf("failed to remove %s: %w", obj.Key, err)
			}
			deleted++
			metrics.ObjectsDeleted.Inc()
		}
		return nil
	})
	if err != nil {
		return deleted, err
	}
	s.logger.Debug("Directory removed", zap.String("prefix", path), zap.Int("deleted", deleted))
	return deleted, nil
}

// RemoveDirectories removes each directory independently.
func (s *Store) RemoveDirectories(ctx context.Context, paths []string) []Result {
	results := make([]Result, 0, len(paths))
	for _, p := range paths {
		n, err := s.RemoveDirectory(ctx, p)
		r := newResult(p, "", err)
		r.Deleted = n
		results = append(results, r)
	}
	return results
}

// Remove deletes the exact key. It returns ErrObjectNotFound, without
// issuing a delete, when the key is absent.
func (s *Store) Remove(ctx context.Context, path string) error {
	err := s.remove(ctx, path)
	observe("remove", err)
	return err
}

func (s *Store) remove(ctx context.Context, path string) error {
	ok, err := s.exists(ctx, path)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, path)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

// RemoveAll removes each key independently.
func (s *Store) RemoveAll(ctx context.Context, paths []string) []Result {
	results := make([]Result, 0, len(paths))
	for _, p := range paths {
		results = append(results, newResult(p, "", s.Remove(ctx, p)))
	}
	return results
}

// Copy copies src to dest server side. The source is left in place.
func (s *Store) Copy(ctx context.Context, src, dest string) error {
	err := s.copy(ctx, src, dest)
	observe("copy", err)
	return err
}

func (s *Store) copy(ctx context.Context, src, dest string) error {
	if err := s.client.CopyObject(ctx, s.bucket, src, dest); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dest, err)
	}
	return nil
}

// CopyInto copies every source into the directory destDir, keeping base names.
func (s *Store) CopyInto(ctx context.Context, srcs []string, destDir string) []Result {
	results := make([]Result, 0, len(srcs))
	for _, src := range srcs {
		dest := utils.JoinKey(destDir, utils.BaseName(src))
		results = append(results, newResult(src, dest, s.Copy(ctx, src, dest)))
	}
	return results
}

// Move copies src to dest, confirms dest exists, then deletes src. If the
// delete fails both keys remain and the error is a *MoveError matching
// ErrCopiedNotRemoved. Moving a key onto itself returns ErrSameKey and
// touches nothing.
func (s *Store) Move(ctx context.Context, src, dest string) error {
	err := s.move(ctx, src, dest)
	observe("move", err)
	return err
}

func (s *Store) move(ctx context.Context, src, dest string) error {
	if src == dest {
		return fmt.Errorf("%w: %s", ErrSameKey, src)
	}
	if err := s.copy(ctx, src, dest); err != nil {
		return err
	}
	if _, err := s.client.StatObject(ctx, s.bucket, dest); err != nil {
		return fmt.Errorf("copy of %s to %s not confirmed: %w", src, dest, err)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, src); err != nil {
		s.logger.Warn("Move left source in place", zap.String("src", src), zap.String("dest", dest), zap.Error(err))
		return &MoveError{Src: src, Dest: dest, Err: err}
	}
	return nil
}

// MoveAll applies each move in order, independently.
func (s *Store) MoveAll(ctx context.Context, moves []Move) []Result {
	results := make([]Result, 0, len(moves))
	for _, m := range moves {
		results = append(results, newResult(m.Src, m.Dest, s.Move(ctx, m.Src, m.Dest)))
	}
	return results
}

func observe(op string, err error) {
	metrics.Operations.WithLabelValues(op, string(statusOf(err))).Inc()
}
