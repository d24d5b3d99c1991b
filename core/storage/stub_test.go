package storage

import (
	"bytes"
	"encoding/xml"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// stubS3 is a path-style S3 endpoint serving one bucket from memory. It
// decodes X-Amz-Copy-Source the way MinIO does, so a raw '+' reads as a space.
type stubS3 struct {
	bucket   string
	modTime  time.Time
	pageSize int

	mu           sync.Mutex
	objects      map[string][]byte
	contentTypes map[string]string
	copySources  []string
}

func newStubS3(bucket string) *stubS3 {
	return &stubS3{
		bucket:       bucket,
		modTime:      time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		pageSize:     1000,
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

// newStubClient starts a stub server and connects a backend client to it.
func newStubClient(t *testing.T, backend string) (Client, *stubS3) {
	t.Helper()
	stub := newStubS3("oss")
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		Backend:   backend,
		Endpoint:  srv.URL,
		AccessKey: "admin",
		SecretKey: "admin",
		Bucket:    "oss",
	})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client, stub
}

func (s *stubS3) put(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
}

func (s *stubS3) get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	return data, ok
}

func (s *stubS3) setPageSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pageSize = n
}

func (s *stubS3) contentType(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contentTypes[key]
}

func (s *stubS3) copied() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.copySources...)
}

func (s *stubS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	bucket, key, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	if bucket != s.bucket {
		s.writeError(w, r, http.StatusNotFound, "NoSuchBucket")
		return
	}

	switch {
	case key == "" && r.Method == http.MethodHead:
		w.WriteHeader(http.StatusOK)
	case key == "" && r.Method == http.MethodGet:
		s.list(w, r)
	case r.Method == http.MethodHead, r.Method == http.MethodGet:
		s.serveObject(w, r, key)
	case r.Method == http.MethodPut && r.Header.Get("X-Amz-Copy-Source") != "":
		s.copyObject(w, r, key)
	case r.Method == http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.objects[key] = body
		s.contentTypes[key] = r.Header.Get("Content-Type")
		s.mu.Unlock()
		w.Header().Set("ETag", `"stub"`)
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodDelete:
		s.mu.Lock()
		delete(s.objects, key)
		s.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *stubS3) serveObject(w http.ResponseWriter, r *http.Request, key string) {
	data, ok := s.get(key)
	if !ok {
		s.writeError(w, r, http.StatusNotFound, "NoSuchKey")
		return
	}
	w.Header().Set("ETag", `"stub"`)
	w.Header().Set("Content-Type", "application/octet-stream")
	http.ServeContent(w, r, key, s.modTime, bytes.NewReader(data))
}

func (s *stubS3) copyObject(w http.ResponseWriter, r *http.Request, key string) {
	raw := r.Header.Get("X-Amz-Copy-Source")
	s.mu.Lock()
	s.copySources = append(s.copySources, raw)
	s.mu.Unlock()

	decoded, err := url.QueryUnescape(strings.TrimPrefix(raw, "/"))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "InvalidArgument")
		return
	}
	_, src, _ := strings.Cut(decoded, "/")
	data, ok := s.get(src)
	if !ok {
		s.writeError(w, r, http.StatusNotFound, "NoSuchKey")
		return
	}
	s.put(key, data)

	w.Header().Set("Content-Type", "application/xml")
	_ = xml.NewEncoder(w).Encode(struct {
		XMLName      xml.Name `xml:"CopyObjectResult"`
		ETag         string   `xml:"ETag"`
		LastModified string   `xml:"LastModified"`
	}{ETag: `"stub"`, LastModified: s.modTime.Format("2006-01-02T15:04:05.000Z")})
}

type stubContent struct {
	Key          string `xml:"Key"`
	LastModified string `xml:"LastModified"`
	ETag         string `xml:"ETag"`
	Size         int64  `xml:"Size"`
	StorageClass string `xml:"StorageClass"`
}

type stubPrefix struct {
	Prefix string `xml:"Prefix"`
}

type stubListResult struct {
	XMLName               xml.Name      `xml:"http://s3.amazonaws.com/doc/2006-03-01/ ListBucketResult"`
	Name                  string        `xml:"Name"`
	Prefix                string        `xml:"Prefix"`
	KeyCount              int           `xml:"KeyCount"`
	MaxKeys               int           `xml:"MaxKeys"`
	Delimiter             string        `xml:"Delimiter,omitempty"`
	IsTruncated           bool          `xml:"IsTruncated"`
	ContinuationToken     string        `xml:"ContinuationToken,omitempty"`
	NextContinuationToken string        `xml:"NextContinuationToken,omitempty"`
	Contents              []stubContent `xml:"Contents"`
	CommonPrefixes        []stubPrefix  `xml:"CommonPrefixes"`
}

// list answers ListObjectsV2. The continuation token is the last entry of
// the previous page.
func (s *stubS3) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	prefix := q.Get("prefix")
	delimiter := q.Get("delimiter")
	token := q.Get("continuation-token")

	s.mu.Lock()
	pageSize := s.pageSize
	if n, err := strconv.Atoi(q.Get("max-keys")); err == nil && n > 0 && n < pageSize {
		pageSize = n
	}

	rolledUp := make(map[string]bool)
	var entries []string
	for key := range s.objects {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		entry, isPrefix := key, false
		if delimiter != "" {
			if i := strings.Index(key[len(prefix):], delimiter); i >= 0 {
				entry, isPrefix = key[:len(prefix)+i+len(delimiter)], true
			}
		}
		if _, ok := rolledUp[entry]; !ok {
			entries = append(entries, entry)
		}
		rolledUp[entry] = rolledUp[entry] || isPrefix
	}
	sort.Strings(entries)

	res := stubListResult{
		Name:              s.bucket,
		Prefix:            prefix,
		MaxKeys:           pageSize,
		Delimiter:         delimiter,
		ContinuationToken: token,
	}
	for _, entry := range entries {
		if token != "" && entry <= token {
			continue
		}
		if res.KeyCount == pageSize {
			res.IsTruncated = true
			break
		}
		res.KeyCount++
		res.NextContinuationToken = entry
		if rolledUp[entry] {
			res.CommonPrefixes = append(res.CommonPrefixes, stubPrefix{Prefix: entry})
			continue
		}
		data := s.objects[entry]
		res.Contents = append(res.Contents, stubContent{
			Key:          entry,
			LastModified: s.modTime.Format("2006-01-02T15:04:05.000Z"),
			ETag:         `"stub"`,
			Size:         int64(len(data)),
			StorageClass: "STANDARD",
		})
	}
	s.mu.Unlock()

	if !res.IsTruncated {
		res.NextContinuationToken = ""
	}
	w.Header().Set("Content-Type", "application/xml")
	_ = xml.NewEncoder(w).Encode(res)
}

func (s *stubS3) writeError(w http.ResponseWriter, r *http.Request, status int, code string) {
	if r.Method == http.MethodHead {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	_ = xml.NewEncoder(w).Encode(struct {
		XMLName   xml.Name `xml:"Error"`
		Code      string   `xml:"Code"`
		Message   string   `xml:"Message"`
		Resource  string   `xml:"Resource"`
		RequestID string   `xml:"RequestId"`
	}{Code: code, Message: code, Resource: r.URL.Path, RequestID: "stub"})
}
