package bucketfs

import (
	"context"
	"fmt"
	"path/filepath"

	"object-storage/core/transfer"
	"object-storage/core/utils"

	"go.uber.org/zap"
)

// UploadFile uploads file to prefix/<base name of file> and blocks until the
// transfer finishes. Failures are logged and returned.
func (s *Store) UploadFile(ctx context.Context, prefix, file string) error {
	mgr := s.newManager()
	defer mgr.Close()

	return s.upload(ctx, mgr, prefix, file)
}

// UploadFiles uploads each file under prefix, one after another, through one
// shared transfer manager.
func (s *Store) UploadFiles(ctx context.Context, prefix string, files []string) []Result {
	mgr := s.newManager()
	defer mgr.Close()

	results := make([]Result, 0, len(files))
	for _, f := range files {
		err := s.upload(ctx, mgr, prefix, f)
		results = append(results, newResult(f, UploadKey(prefix, f), err))
	}
	return results
}

// UploadDirectory uploads the tree under dir to prefix. Without recursive
// only the files directly in dir are sent.
func (s *Store) UploadDirectory(ctx context.Context, prefix, dir string, recursive bool) error {
	mgr := s.newManager()
	defer mgr.Close()

	t, err := mgr.UploadDirectory(ctx, prefix, dir, recursive)
	if err == nil {
		err = transfer.Await(ctx, t, s.transfer.PollInterval(), s.logger)
	}
	if err != nil {
		s.logger.Error("Directory upload failed", zap.String("prefix", prefix), zap.String("dir", dir), zap.Error(err))
	}
	observe("upload_directory", err)
	return err
}

// DownloadFile downloads key into destDir, naming the file after the last
// segment of the key.
func (s *Store) DownloadFile(ctx context.Context, key, destDir string) error {
	mgr := s.newManager()
	defer mgr.Close()

	return s.download(ctx, mgr, key, destDir)
}

// DownloadFiles downloads each key into destDir through one shared transfer manager.
func (s *Store) DownloadFiles(ctx context.Context, keys []string, destDir string) []Result {
	mgr := s.newManager()
	defer mgr.Close()

	results := make([]Result, 0, len(keys))
	for _, key := range keys {
		err := s.download(ctx, mgr, key, destDir)
		results = append(results, newResult(key, filepath.Join(destDir, utils.BaseName(key)), err))
	}
	return results
}

// DownloadDirectory downloads every object under prefix to destDir/<key>.
func (s *Store) DownloadDirectory(ctx context.Context, prefix, destDir string) error {
	mgr := s.newManager()
	defer mgr.Close()

	t, err := mgr.DownloadDirectory(ctx, prefix, destDir)
	if err == nil {
		err = transfer.Await(ctx, t, s.transfer.PollInterval(), s.logger)
	}
	if err != nil {
		s.logger.Error("Directory download failed", zap.String("prefix", prefix), zap.String("dir", destDir), zap.Error(err))
	}
	observe("download_directory", err)
	return err
}

// UploadKey returns the key UploadFile stores file under.
func UploadKey(prefix, file string) string {
	name := filepath.Base(file)
	if prefix == "" {
		return name
	}
	return utils.JoinKey(prefix, name)
}

func (s *Store) newManager() *transfer.Manager {
	return transfer.NewManager(s.client, s.bucket, s.transfer, s.logger)
}

func (s *Store) upload(ctx context.Context, mgr *transfer.Manager, prefix, file string) error {
	key := UploadKey(prefix, file)
	t, err := mgr.Upload(ctx, key, file)
	if err == nil {
		err = transfer.Await(ctx, t, s.transfer.PollInterval(), s.logger)
	}
	if err != nil {
		s.logger.Error("Upload failed", zap.String("key", key), zap.String("file", file), zap.Error(err))
	}
	observe("upload_file", err)
	return err
}

func (s *Store) download(ctx context.Context, mgr *transfer.Manager, key, destDir string) error {
	err := func() error {
		name := utils.BaseName(key)
		if name == "" || utils.IsDirKey(key) {
			return fmt.Errorf("%s does not name a file", key)
		}
		t, err := mgr.Download(ctx, key, filepath.Join(destDir, name))
		if err != nil {
			return err
		}
		return transfer.Await(ctx, t, s.transfer.PollInterval(), s.logger)
	}()
	if err != nil {
		s.logger.Error("Download failed", zap.String("key", key), zap.String("dir", destDir), zap.Error(err))
	}
	observe("download_file", err)
	return err
}
