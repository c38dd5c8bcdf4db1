package storage

import (
	"bytes"
	"context"
	"io"
	"sync/atomic"
)

// ProgressFunc receives the bytes sent so far and the total.
type ProgressFunc func(sent, total int64)

type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body []byte, progress ProgressFunc) (string, error)
}

// progressReader reports reads against a known total.
type progressReader struct {
	r        *bytes.Reader
	total    int64
	sent     atomic.Int64
	progress ProgressFunc
}

func newProgressReader(body []byte, progress ProgressFunc) *progressReader {
	return &progressReader{
		r:        bytes.NewReader(body),
		total:    int64(len(body)),
		progress: progress,
	}
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		sent := r.sent.Add(int64(n))
		if r.progress != nil {
			r.progress(sent, r.total)
		}
	}
	return n, err
}

// Seek lets the SDK rewind for retries and checksum passes.
func (r *progressReader) Seek(offset int64, whence int) (int64, error) {
	pos, err := r.r.Seek(offset, whence)
	if err == nil {
		r.sent.Store(pos)
	}
	return pos, err
}

// Len is the number of unread bytes.
func (r *progressReader) Len() int {
	return r.r.Len()
}

var _ io.ReadSeeker = (*progressReader)(nil)

// Percent turns a progress pair into a whole percentage.
func Percent(sent, total int64) int {
	if total <= 0 {
		return 100
	}
	if sent >= total {
		return 100
	}
	return int(sent * 100 / total)
}
