package transfer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"object-storage/core/storage"

	"go.uber.org/zap"
)

// ErrManagerClosed is returned when a transfer is started on a closed manager.
var ErrManagerClosed = errors.New("transfer manager closed")

// Manager coordinates uploads and downloads against one bucket. It is meant
// to be acquired for a call (or a batch of calls) and released with Close.
// Its methods are safe for concurrent use, including Close.
type Manager struct {
	client storage.Client
	bucket string
	cfg    Config
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewManager acquires a transfer manager.
func NewManager(client storage.Client, bucket string, cfg Config, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		client: client,
		bucket: bucket,
		cfg:    cfg,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Close cancels whatever is still running and waits for it to stop.
// It is safe to call more than once.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	m.cancel()
	m.wg.Wait()
	return nil
}

// Upload starts sending a local file to key.
func (m *Manager) Upload(ctx context.Context, key, localPath string) (*Transfer, error) {
	if m.isClosed() {
		return nil, ErrManagerClosed
	}
	info, err := os.Stat(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", localPath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", localPath)
	}

	t := newTransfer(KindUpload, key, localPath, info.Size())
	err = m.run(ctx, t, func(ctx context.Context) error {
		return m.client.UploadFile(ctx, m.bucket, key, localPath, m.options(t))
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Download starts fetching key into a local file.
func (m *Manager) Download(ctx context.Context, key, localPath string) (*Transfer, error) {
	if m.isClosed() {
		return nil, ErrManagerClosed
	}
	info, err := m.client.StatObject(ctx, m.bucket, key)
	if err != nil {
		return nil, err
	}

	t := newTransfer(KindDownload, key, localPath, info.Size)
	err = m.run(ctx, t, func(ctx context.Context) error {
		return m.client.DownloadFile(ctx, m.bucket, key, localPath, m.options(t))
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// options builds per-file SDK options that feed progress into t.
func (m *Manager) options(t *Transfer) storage.TransferOptions {
	return storage.TransferOptions{
		PartSize:    m.cfg.partSize(),
		Concurrency: m.cfg.concurrency(),
		Progress:    t.add,
	}
}

func (m *Manager) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// run executes fn in the background under a context that is cancelled by
// either the caller's ctx or Close. The closed check and the WaitGroup
// registration happen under one lock so Close never waits on a half-started
// transfer.
func (m *Manager) run(ctx context.Context, t *Transfer, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrManagerClosed
	}
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()

		tctx, cancel := context.WithCancel(ctx)
		stop := context.AfterFunc(m.ctx, cancel)
		defer func() {
			stop()
			cancel()
		}()

		err := fn(tctx)
		if err != nil {
			m.logger.Debug("Transfer failed", append(t.fields(), zap.Error(err))...)
		} else {
			m.logger.Debug("Transfer completed", append(t.fields(), zap.Duration("elapsed", t.Elapsed()))...)
		}
		t.finish(err)
	}()
	return nil
}

// Await polls t every interval, logging its progress, and then blocks until
// it completes. If ctx is cancelled first Await returns ctx.Err(). The
// transfer itself stops only when the ctx it was started with is cancelled
// or the Manager is closed.
func Await(ctx context.Context, t *Transfer, interval time.Duration, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for !t.IsDone() {
		select {
		case <-t.Done():
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			logger.Debug("Transfer in progress", t.fields()...)
		}
	}
	return t.Wait()
}
