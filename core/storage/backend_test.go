package storage

import (
	"bytes"
	"context"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var backends = []string{BackendMinio, BackendS3}

func TestBackendStatObject(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			client, stub := newStubClient(t, backend)
			stub.put("dir/", nil)
			stub.put("dir/f.txt", []byte("hello"))

			info, err := client.StatObject(ctx, "oss", "dir/f.txt")
			require.NoError(t, err)
			assert.Equal(t, "dir/f.txt", info.Key)
			assert.Equal(t, int64(5), info.Size)
			assert.False(t, info.IsDir)
			assert.True(t, stub.modTime.Equal(info.LastModified), info.LastModified)

			info, err = client.StatObject(ctx, "oss", "dir/")
			require.NoError(t, err)
			assert.True(t, info.IsDir)

			_, err = client.StatObject(ctx, "oss", "dir/missing")
			assert.ErrorIs(t, err, ErrObjectNotFound)
		})
	}
}

func TestBackendBucketExists(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			client, _ := newStubClient(t, backend)

			ok, err := client.BucketExists(ctx, "oss")
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = client.BucketExists(ctx, "other")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestBackendListPage(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			client, stub := newStubClient(t, backend)
			stub.setPageSize(2)
			stub.put("a/", nil)
			stub.put("a/1", []byte("1"))
			stub.put("a/2", []byte("22"))
			stub.put("a/b/3", []byte("333"))
			stub.put("a/c/", nil)
			stub.put("z", []byte("z"))

			var objects []ObjectInfo
			var prefixes []string
			opts := ListOptions{Prefix: "a/", Delimiter: "/"}
			pages := 0
			for {
				page, err := client.ListPage(ctx, "oss", opts)
				require.NoError(t, err)
				pages++
				objects = append(objects, page.Objects...)
				prefixes = append(prefixes, page.CommonPrefixes...)
				if !page.IsTruncated {
					assert.Empty(t, page.NextToken)
					break
				}
				require.NotEmpty(t, page.NextToken)
				opts.ContinuationToken = page.NextToken
			}

			assert.Equal(t, 3, pages)
			require.Len(t, objects, 3)
			assert.Equal(t, "a/", objects[0].Key)
			assert.True(t, objects[0].IsDir)
			assert.Equal(t, "a/1", objects[1].Key)
			assert.Equal(t, "a/2", objects[2].Key)
			assert.Equal(t, int64(2), objects[2].Size)
			assert.False(t, objects[2].IsDir)
			assert.True(t, stub.modTime.Equal(objects[2].LastModified))
			assert.Equal(t, []string{"a/b/", "a/c/"}, prefixes)
		})
	}
}

func TestBackendListPageFlat(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			client, stub := newStubClient(t, backend)
			stub.put("a/c/", nil)
			stub.put("a/c/x", []byte("x"))

			page, err := client.ListPage(context.Background(), "oss", ListOptions{})
			require.NoError(t, err)
			assert.False(t, page.IsTruncated)
			assert.Empty(t, page.CommonPrefixes)
			require.Len(t, page.Objects, 2)
			assert.True(t, page.Objects[0].IsDir)
			assert.False(t, page.Objects[1].IsDir)
		})
	}
}

func TestBackendPutAndRemove(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			client, stub := newStubClient(t, backend)

			err := client.PutObject(ctx, "oss", "d/", bytes.NewReader(nil), 0, PutOptions{ContentType: "application/x-directory"})
			require.NoError(t, err)
			_, ok := stub.get("d/")
			require.True(t, ok)
			assert.Equal(t, "application/x-directory", stub.contentType("d/"))

			require.NoError(t, client.RemoveObject(ctx, "oss", "d/"))
			_, ok = stub.get("d/")
			assert.False(t, ok)
		})
	}
}

func TestBackendCopyEncodesSource(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			client, stub := newStubClient(t, backend)
			stub.put("dir/a b+c.txt", []byte("plus"))
			stub.put("dir/a b c.txt", []byte("spaces"))

			require.NoError(t, client.CopyObject(ctx, "oss", "dir/a b+c.txt", "out.txt"))

			sources := stub.copied()
			require.Len(t, sources, 1)
			assert.Equal(t, "oss/dir/a%20b%2Bc.txt", sources[0])
			data, ok := stub.get("out.txt")
			require.True(t, ok)
			assert.Equal(t, "plus", string(data))

			err := client.CopyObject(ctx, "oss", "missing", "out2.txt")
			assert.ErrorIs(t, err, ErrObjectNotFound)
		})
	}
}

func TestBackendDownloadFile(t *testing.T) {
	payload := bytes.Repeat([]byte("0123456789"), 4096)

	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			client, stub := newStubClient(t, backend)
			stub.put("big.bin", payload)

			dir := t.TempDir()
			dest := filepath.Join(dir, "nested", "big.bin")
			var moved atomic.Int64
			err := client.DownloadFile(ctx, "oss", "big.bin", dest, TransferOptions{
				Progress: func(n int64) { moved.Add(n) },
			})
			require.NoError(t, err)

			got, err := os.ReadFile(dest)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
			assert.Equal(t, int64(len(payload)), moved.Load())
		})
	}
}

func TestBackendDownloadMissingLeavesNothing(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			client, _ := newStubClient(t, backend)
			dir := t.TempDir()

			err := client.DownloadFile(context.Background(), "oss", "missing", filepath.Join(dir, "missing"), TransferOptions{})
			assert.ErrorIs(t, err, ErrObjectNotFound)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestS3ClientWithCABundle(t *testing.T) {
	tlsSrv := httptest.NewTLSServer(http.NotFoundHandler())
	defer tlsSrv.Close()

	bundle := filepath.Join(t.TempDir(), "ca.pem")
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: tlsSrv.Certificate().Raw})
	require.NoError(t, os.WriteFile(bundle, pemBytes, 0o644))
	t.Setenv("AWS_CA_BUNDLE", bundle)

	client, stub := newStubClient(t, BackendS3)
	stub.put("k", []byte("v"))

	info, err := client.StatObject(context.Background(), "oss", "k")
	require.NoError(t, err)
	assert.Equal(t, int64(1), info.Size)
}

func TestWriteFileAtomic(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		dir := t.TempDir()
		dest := filepath.Join(dir, "sub", "f")

		err := writeFileAtomic(dest, func(f *os.File) error {
			_, err := f.WriteString("done")
			return err
		})
		require.NoError(t, err)

		got, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "done", string(got))

		entries, err := os.ReadDir(filepath.Join(dir, "sub"))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("FillFails", func(t *testing.T) {
		dir := t.TempDir()
		dest := filepath.Join(dir, "f")
		require.NoError(t, os.WriteFile(dest, []byte("old"), 0o644))

		err := writeFileAtomic(dest, func(f *os.File) error {
			_, _ = f.WriteString("partial")
			return assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)

		got, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "old", string(got))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}

func TestTranslateS3Error(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"NoSuchKey", &types.NoSuchKey{}, ErrObjectNotFound},
		{"NotFound", &types.NotFound{}, ErrObjectNotFound},
		{"NoSuchBucket", &types.NoSuchBucket{}, ErrBucketNotFound},
		{"GenericNoSuchKey", &smithy.GenericAPIError{Code: "NoSuchKey"}, ErrObjectNotFound},
		{"GenericNoSuchBucket", &smithy.GenericAPIError{Code: "NoSuchBucket"}, ErrBucketNotFound},
		{"Other", &smithy.GenericAPIError{Code: "AccessDenied"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateS3Error(tt.err)
			if tt.want == nil {
				assert.Equal(t, tt.err, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
	assert.NoError(t, translateS3Error(nil))
}

func TestTranslateMinioError(t *testing.T) {
	assert.ErrorIs(t, translateMinioError(minio.ErrorResponse{Code: "NoSuchKey"}), ErrObjectNotFound)
	assert.ErrorIs(t, translateMinioError(minio.ErrorResponse{Code: "NotFound"}), ErrObjectNotFound)
	assert.ErrorIs(t, translateMinioError(minio.ErrorResponse{Code: "NoSuchBucket"}), ErrBucketNotFound)

	denied := minio.ErrorResponse{Code: "AccessDenied"}
	got := translateMinioError(denied)
	assert.False(t, errors.Is(got, ErrObjectNotFound))
	assert.Equal(t, error(denied), got)
	assert.NoError(t, translateMinioError(nil))
}

func TestProgressCounters(t *testing.T) {
	var total int64
	add := func(n int64) { total += n }

	r := &countingReader{r: bytes.NewReader([]byte("abcdef")), fn: add}
	buf := make([]byte, 4)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, int64(4), total)

	n, err = progressReader{fn: add}.Read(make([]byte, 10))
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, int64(14), total)

	var out bytes.Buffer
	_, err = (&countingWriter{w: &out}).Write([]byte("no hook"))
	require.NoError(t, err)
	assert.Equal(t, "no hook", out.String())
}
