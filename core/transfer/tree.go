package transfer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"object-storage/core/storage"
	"object-storage/core/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrUnsafeKey is returned for keys that would be written outside the
// download directory.
var ErrUnsafeKey = errors.New("object key escapes destination directory")

type fileJob struct {
	key  string
	path string
}

// UploadDirectory starts uploading every regular file under dir. Keys are
// prefix + the slash-separated path relative to dir. Without recursive only
// the top level of dir is sent.
func (m *Manager) UploadDirectory(ctx context.Context, prefix, dir string, recursive bool) (*Transfer, error) {
	if m.isClosed() {
		return nil, ErrManagerClosed
	}
	if prefix != "" {
		prefix = utils.DirKey(prefix)
	}

	var jobs []fileJob
	var total int64
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		jobs = append(jobs, fileJob{key: prefix + filepath.ToSlash(rel), path: p})
		total += info.Size()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}

	t := newTransfer(KindUploadDirectory, prefix, dir, total)
	t.Files = len(jobs)
	err = m.runTree(ctx, t, jobs, func(ctx context.Context, job fileJob) error {
		return m.client.UploadFile(ctx, m.bucket, job.key, job.path, m.options(t))
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// DownloadDirectory starts downloading every object under prefix into
// dir/<key>. Marker objects become local directories.
func (m *Manager) DownloadDirectory(ctx context.Context, prefix, dir string) (*Transfer, error) {
	if m.isClosed() {
		return nil, ErrManagerClosed
	}

	var jobs []fileJob
	var total int64
	token := ""
	for {
		page, err := m.client.ListPage(ctx, m.bucket, storage.ListOptions{
			Prefix:            prefix,
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, err)
		}
		for _, obj := range page.Objects {
			local, err := localPath(dir, obj.Key)
			if err != nil {
				return nil, err
			}
			if obj.IsDir {
				if err := os.MkdirAll(local, 0o755); err != nil {
					return nil, err
				}
				continue
			}
			jobs = append(jobs, fileJob{key: obj.Key, path: local})
			total += obj.Size
		}
		if !page.IsTruncated || page.NextToken == "" {
			break
		}
		token = page.NextToken
	}

	t := newTransfer(KindDownloadDirectory, prefix, dir, total)
	t.Files = len(jobs)
	err := m.runTree(ctx, t, jobs, func(ctx context.Context, job fileJob) error {
		return m.client.DownloadFile(ctx, m.bucket, job.key, job.path, m.options(t))
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// runTree moves every job with bounded parallelism. A failed file does not
// stop the others; all failures are joined into the transfer's error.
func (m *Manager) runTree(ctx context.Context, t *Transfer, jobs []fileJob, fn func(ctx context.Context, job fileJob) error) error {
	return m.run(ctx, t, func(ctx context.Context) error {
		var mu sync.Mutex
		var errs []error

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(m.cfg.concurrency())
		for _, job := range jobs {
			g.Go(func() error {
				if err := fn(gctx, job); err != nil {
					m.logger.Warn("File transfer failed", zap.String("key", job.key), zap.String("path", job.path), zap.Error(err))
					mu.Lock()
					errs = append(errs, fmt.Errorf("%s: %w", job.key, err))
					mu.Unlock()
				}
				return nil
			})
		}
		_ = g.Wait()
		return errors.Join(errs...)
	})
}

// localPath maps key under dir and refuses keys that climb out of it.
func localPath(dir, key string) (string, error) {
	rel := filepath.FromSlash(strings.TrimLeft(key, utils.Separator))
	if rel == "" {
		return dir, nil
	}
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %s", ErrUnsafeKey, key)
	}
	return filepath.Join(dir, rel), nil
}
