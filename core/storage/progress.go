package storage

import "io"

// progressReader is handed to SDKs that report progress by reading from an
// io.Reader: every Read of len(p) bytes means len(p) bytes were sent.
type progressReader struct {
	fn func(n int64)
}

func (p progressReader) Read(b []byte) (int, error) {
	if p.fn != nil {
		p.fn(int64(len(b)))
	}
	return len(b), nil
}

// countingReader wraps a body and reports bytes as they are consumed.
type countingReader struct {
	r  io.Reader
	fn func(n int64)
}

func (c *countingReader) Read(b []byte) (int, error) {
	n, err := c.r.Read(b)
	if n > 0 && c.fn != nil {
		c.fn(int64(n))
	}
	return n, err
}

// countingWriter reports bytes written to w.
type countingWriter struct {
	w  io.Writer
	fn func(n int64)
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	if n > 0 && c.fn != nil {
		c.fn(int64(n))
	}
	return n, err
}

// countingWriterAt reports bytes written through WriteAt. Parallel part
// downloads call it concurrently, so fn must be safe for concurrent use.
type countingWriterAt struct {
	w  io.WriterAt
	fn func(n int64)
}

func (c *countingWriterAt) WriteAt(b []byte, off int64) (int, error) {
	n, err := c.w.WriteAt(b, off)
	if n > 0 && c.fn != nil {
		c.fn(int64(n))
	}
	return n, err
}
