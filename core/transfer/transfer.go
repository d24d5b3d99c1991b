package transfer

import (
	"sync"
	"sync/atomic"
	"time"

	"object-storage/core/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kind identifies the direction and shape of a transfer.
type Kind string

const (
	KindUpload            Kind = "upload"
	KindDownload          Kind = "download"
	KindUploadDirectory   Kind = "upload_directory"
	KindDownloadDirectory Kind = "download_directory"
)

func (k Kind) direction() string {
	switch k {
	case KindUpload, KindUploadDirectory:
		return "upload"
	default:
		return "download"
	}
}

// Transfer is an in-flight upload or download. It is observed by polling
// Progress or by blocking in Wait.
type Transfer struct {
	ID    string
	Kind  Kind
	Key   string
	Path  string
	Files int

	total   int64
	done    atomic.Int64
	started time.Time

	finished chan struct{}
	once     sync.Once
	err      error
}

func newTransfer(kind Kind, key, path string, total int64) *Transfer {
	return &Transfer{
		ID:       uuid.NewString(),
		Kind:     kind,
		Key:      key,
		Path:     path,
		Files:    1,
		total:    total,
		started:  time.Now(),
		finished: make(chan struct{}),
	}
}

// Progress returns the bytes moved so far and the expected total.
func (t *Transfer) Progress() (done, total int64) {
	return t.done.Load(), t.total
}

// Percent returns completion in the range [0, 100].
func (t *Transfer) Percent() float64 {
	done, total := t.Progress()
	if total <= 0 {
		if t.IsDone() {
			return 100
		}
		return 0
	}
	pct := float64(done) / float64(total) * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}

// IsDone reports whether the transfer has finished, successfully or not.
func (t *Transfer) IsDone() bool {
	select {
	case <-t.finished:
		return true
	default:
		return false
	}
}

// Done is closed when the transfer finishes.
func (t *Transfer) Done() <-chan struct{} {
	return t.finished
}

// Wait blocks until the transfer finishes and returns its error.
func (t *Transfer) Wait() error {
	<-t.finished
	return t.err
}

// Elapsed returns the time since the transfer started.
func (t *Transfer) Elapsed() time.Duration {
	return time.Since(t.started)
}

func (t *Transfer) add(n int64) {
	t.done.Add(n)
	metrics.TransferBytes.WithLabelValues(t.Kind.direction()).Add(float64(n))
}

func (t *Transfer) finish(err error) {
	t.once.Do(func() {
		t.err = err
		close(t.finished)
	})
}

func (t *Transfer) fields() []zap.Field {
	done, total := t.Progress()
	return []zap.Field{
		zap.String("transfer_id", t.ID),
		zap.String("kind", string(t.Kind)),
		zap.String("key", t.Key),
		zap.Int64("bytes", done),
		zap.Int64("total", total),
		zap.Float64("percent", t.Percent()),
	}
}
