// Package storagetest provides an in-memory storage.Client for tests.
package storagetest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"object-storage/core/storage"
	"object-storage/core/utils"
)

type object struct {
	data    []byte
	modTime time.Time
}

// Memory is a single-bucket, thread-safe object store. Listings are paged
// by PageSize so pagination paths get exercised.
type Memory struct {
	Bucket   string
	PageSize int

	mu      sync.Mutex
	objects map[string]object
	faults  map[string]error
	calls   map[string]int
	closed  bool
}

// NewMemory returns an empty store for bucket with the S3 default page size.
func NewMemory(bucket string) *Memory {
	return &Memory{
		Bucket:   bucket,
		PageSize: 1000,
		objects:  make(map[string]object),
		faults:   make(map[string]error),
		calls:    make(map[string]int),
	}
}

// Fail makes the next and every later call of op on key return err.
// op is one of the Client method names.
func (m *Memory) Fail(op, key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults[op+":"+key] = err
}

// Calls returns how many times op was invoked.
func (m *Memory) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// Put seeds an object directly.
func (m *Memory) Put(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = object{data: append([]byte(nil), data...), modTime: time.Now()}
}

// Get returns the content of key.
func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[key]
	return obj.data, ok
}

// Keys returns every key in lexical order.
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedKeys()
}

// Closed reports whether Close was called.
func (m *Memory) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *Memory) enter(op, bucket, key string) error {
	m.calls[op]++
	if m.closed {
		return storage.ErrClosed
	}
	if bucket != m.Bucket {
		return fmt.Errorf("%w: %s", storage.ErrBucketNotFound, bucket)
	}
	return m.faults[op+":"+key]
}

func (m *Memory) sortedKeys() []string {
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *Memory) info(key string) storage.ObjectInfo {
	obj := m.objects[key]
	return storage.ObjectInfo{
		Key:          key,
		Size:         int64(len(obj.data)),
		LastModified: obj.modTime,
		IsDir:        utils.IsDirKey(key),
	}
}

func (m *Memory) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["BucketExists"]++
	return bucketName == m.Bucket, nil
}

func (m *Memory) StatObject(ctx context.Context, bucketName, objectName string) (storage.ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("StatObject", bucketName, objectName); err != nil {
		return storage.ObjectInfo{}, err
	}
	if _, ok := m.objects[objectName]; !ok {
		return storage.ObjectInfo{}, fmt.Errorf("%w: %s", storage.ErrObjectNotFound, objectName)
	}
	return m.info(objectName), nil
}

func (m *Memory) ListPage(ctx context.Context, bucketName string, opts storage.ListOptions) (storage.ListPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("ListPage", bucketName, opts.Prefix); err != nil {
		return storage.ListPage{}, err
	}

	type entry struct {
		name   string
		prefix bool
	}
	var entries []entry
	seen := make(map[string]bool)
	for _, key := range m.sortedKeys() {
		if !strings.HasPrefix(key, opts.Prefix) {
			continue
		}
		rest := key[len(opts.Prefix):]
		if opts.Delimiter != "" {
			if idx := strings.Index(rest, opts.Delimiter); idx >= 0 {
				cp := opts.Prefix + rest[:idx+len(opts.Delimiter)]
				if !seen[cp] {
					seen[cp] = true
					entries = append(entries, entry{name: cp, prefix: true})
				}
				continue
			}
		}
		entries = append(entries, entry{name: key})
	}

	limit := m.PageSize
	if opts.MaxKeys > 0 && opts.MaxKeys < limit {
		limit = opts.MaxKeys
	}
	if limit <= 0 {
		limit = 1000
	}

	var page storage.ListPage
	count := 0
	for _, e := range entries {
		if opts.ContinuationToken != "" && e.name <= opts.ContinuationToken {
			continue
		}
		if count == limit {
			page.IsTruncated = true
			break
		}
		if e.prefix {
			page.CommonPrefixes = append(page.CommonPrefixes, e.name)
		} else {
			page.Objects = append(page.Objects, m.info(e.name))
		}
		page.NextToken = e.name
		count++
	}
	if !page.IsTruncated {
		page.NextToken = ""
	}
	return page, nil
}

func (m *Memory) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts storage.PutOptions) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("PutObject", bucketName, objectName); err != nil {
		return err
	}
	m.objects[objectName] = object{data: data, modTime: time.Now()}
	return nil
}

func (m *Memory) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("RemoveObject", bucketName, objectName); err != nil {
		return err
	}
	delete(m.objects, objectName)
	return nil
}

func (m *Memory) CopyObject(ctx context.Context, bucketName, srcObject, destObject string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("CopyObject", bucketName, srcObject); err != nil {
		return err
	}
	obj, ok := m.objects[srcObject]
	if !ok {
		return fmt.Errorf("%w: %s", storage.ErrObjectNotFound, srcObject)
	}
	m.objects[destObject] = object{data: append([]byte(nil), obj.data...), modTime: time.Now()}
	return nil
}

func (m *Memory) UploadFile(ctx context.Context, bucketName, objectName, filePath string, opts storage.TransferOptions) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	m.mu.Lock()
	if err := m.enter("UploadFile", bucketName, objectName); err != nil {
		m.mu.Unlock()
		return err
	}
	m.objects[objectName] = object{data: data, modTime: time.Now()}
	m.mu.Unlock()

	if opts.Progress != nil {
		opts.Progress(int64(len(data)))
	}
	return ctx.Err()
}

func (m *Memory) DownloadFile(ctx context.Context, bucketName, objectName, filePath string, opts storage.TransferOptions) error {
	m.mu.Lock()
	if err := m.enter("DownloadFile", bucketName, objectName); err != nil {
		m.mu.Unlock()
		return err
	}
	obj, ok := m.objects[objectName]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", storage.ErrObjectNotFound, objectName)
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filePath, bytes.Clone(obj.data), 0o644); err != nil {
		return err
	}
	if opts.Progress != nil {
		opts.Progress(int64(len(obj.data)))
	}
	return ctx.Err()
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

var _ storage.Client = (*Memory)(nil)
