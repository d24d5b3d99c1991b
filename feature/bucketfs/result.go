package bucketfs

import (
	"errors"

	"object-storage/core/storage"
)

// Status is the outcome of one item of a batch call.
type Status string

const (
	StatusOK               Status = "ok"
	StatusAlreadyExists    Status = "already_exists"
	StatusNotFound         Status = "not_found"
	StatusCopiedNotRemoved Status = "copied_not_removed"
	StatusFailed           Status = "failed"
)

// Result is the per-item outcome of a batch call. Items are reported in input order.
type Result struct {
	Path   string `json:"path"`
	Target string `json:"target,omitempty"`
	Status Status `json:"status"`
	// Deleted is the number of objects removed by RemoveDirectories.
	Deleted int    `json:"deleted,omitempty"`
	Error   string `json:"error,omitempty"`
	Err     error  `json:"-"`
}

// OK reports whether the item succeeded.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// Move is one source/destination pair for MoveAll.
type Move struct {
	Src  string `json:"src"`
	Dest string `json:"dest"`
}

// Usage is the reduction of a listing.
type Usage struct {
	Objects     int   `json:"objects"`
	Directories int   `json:"directories"`
	Bytes       int64 `json:"bytes"`
}

// Summarize counts data objects and markers in entries and sums their sizes.
func Summarize(entries []storage.ObjectInfo) Usage {
	var u Usage
	for _, e := range entries {
		if e.IsDir {
			u.Directories++
		} else {
			u.Objects++
		}
		u.Bytes += e.Size
	}
	return u
}

// Failed returns the results that did not succeed.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}

func newResult(path, target string, err error) Result {
	r := Result{Path: path, Target: target, Status: statusOf(err), Err: err}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

func statusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrDirectoryExists):
		return StatusAlreadyExists
	case errors.Is(err, ErrCopiedNotRemoved):
		return StatusCopiedNotRemoved
	case errors.Is(err, ErrObjectNotFound):
		return StatusNotFound
	default:
		return StatusFailed
	}
}
