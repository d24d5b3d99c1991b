package transfer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"object-storage/core/storage"
	"object-storage/core/storage/mocks"
	"object-storage/core/storage/storagetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestUploadAndDownload(t *testing.T) {
	ctx := context.Background()
	mem := storagetest.NewMemory("oss")
	mgr := NewManager(mem, "oss", Config{}, zap.NewNop())
	defer mgr.Close()

	src := filepath.Join(t.TempDir(), "README.txt")
	writeFile(t, src, "hello transfer")

	up, err := mgr.Upload(ctx, "t1/a/README.txt", src)
	require.NoError(t, err)
	require.NoError(t, Await(ctx, up, time.Millisecond, zap.NewNop()))

	done, total := up.Progress()
	assert.Equal(t, int64(len("hello transfer")), total)
	assert.Equal(t, total, done)
	assert.Equal(t, float64(100), up.Percent())
	assert.True(t, up.IsDone())

	dest := filepath.Join(t.TempDir(), "README.txt")
	down, err := mgr.Download(ctx, "t1/a/README.txt", dest)
	require.NoError(t, err)
	require.NoError(t, down.Wait())

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "hello transfer", string(got))
}

func TestUploadRejectsDirectory(t *testing.T) {
	mgr := NewManager(storagetest.NewMemory("oss"), "oss", Config{}, nil)
	defer mgr.Close()

	_, err := mgr.Upload(context.Background(), "k", t.TempDir())
	assert.Error(t, err)
}

func TestDownloadMissingObject(t *testing.T) {
	mgr := NewManager(storagetest.NewMemory("oss"), "oss", Config{}, nil)
	defer mgr.Close()

	_, err := mgr.Download(context.Background(), "missing", filepath.Join(t.TempDir(), "x"))
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
}

func TestTransferFailureIsReported(t *testing.T) {
	mem := storagetest.NewMemory("oss")
	boom := errors.New("service unavailable")
	mem.Fail("UploadFile", "k", boom)

	mgr := NewManager(mem, "oss", Config{}, nil)
	defer mgr.Close()

	src := filepath.Join(t.TempDir(), "f")
	writeFile(t, src, "x")

	tr, err := mgr.Upload(context.Background(), "k", src)
	require.NoError(t, err)
	assert.ErrorIs(t, tr.Wait(), boom)
}

func TestCloseCancelsInFlight(t *testing.T) {
	client := new(mocks.Client)
	started := make(chan struct{})
	client.On("UploadFile", mock.Anything, "oss", "slow", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			close(started)
			<-ctx.Done()
		}).
		Return(context.Canceled)

	mgr := NewManager(client, "oss", Config{}, nil)

	src := filepath.Join(t.TempDir(), "f")
	writeFile(t, src, "x")

	tr, err := mgr.Upload(context.Background(), "slow", src)
	require.NoError(t, err)
	<-started

	require.NoError(t, mgr.Close())
	assert.True(t, tr.IsDone())
	assert.ErrorIs(t, tr.Wait(), context.Canceled)

	_, err = mgr.Upload(context.Background(), "slow", src)
	assert.ErrorIs(t, err, ErrManagerClosed)
	assert.NoError(t, mgr.Close())
}

func TestAwaitStopsOnContext(t *testing.T) {
	tr := newTransfer(KindUpload, "k", "p", 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Await(ctx, tr, time.Millisecond, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, tr.IsDone())
}

func TestAwaitCancelLeavesTransferRunning(t *testing.T) {
	client := new(mocks.Client)
	release := make(chan struct{})
	client.On("UploadFile", mock.Anything, "oss", "k", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { <-release }).
		Return(nil)

	mgr := NewManager(client, "oss", Config{}, nil)
	defer mgr.Close()

	src := filepath.Join(t.TempDir(), "f")
	writeFile(t, src, "x")

	tr, err := mgr.Upload(context.Background(), "k", src)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Await(ctx, tr, time.Millisecond, nil), context.Canceled)
	assert.False(t, tr.IsDone())

	close(release)
	assert.NoError(t, tr.Wait())
}

func TestCloseConcurrentWithUploads(t *testing.T) {
	mem := storagetest.NewMemory("oss")
	mgr := NewManager(mem, "oss", Config{}, nil)

	src := filepath.Join(t.TempDir(), "f")
	writeFile(t, src, "x")

	var wg sync.WaitGroup
	transfers := make(chan *Transfer, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr, err := mgr.Upload(context.Background(), fmt.Sprintf("k%02d", i), src)
			if err != nil {
				assert.ErrorIs(t, err, ErrManagerClosed)
				return
			}
			transfers <- tr
		}()
	}
	require.NoError(t, mgr.Close())
	wg.Wait()
	close(transfers)

	for tr := range transfers {
		<-tr.Done()
	}
}

func TestPercent(t *testing.T) {
	tr := newTransfer(KindDownload, "k", "p", 200)
	tr.add(50)
	assert.Equal(t, float64(25), tr.Percent())
	tr.add(500)
	assert.Equal(t, float64(100), tr.Percent())

	empty := newTransfer(KindDownload, "k", "p", 0)
	assert.Equal(t, float64(0), empty.Percent())
	empty.finish(nil)
	assert.Equal(t, float64(100), empty.Percent())
}
