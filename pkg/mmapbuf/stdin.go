package mmapbuf

import (
	"fmt"
	"io"
)

// ReadAll drains r (typically os.Stdin) into a single grown-on-demand
// buffer. Stdin has no file descriptor mmap can back, so spec.md's
// "byte-buffer provider" degrades to a plain read-to-end here; callers
// that need file-backed scanning should use Open instead.
func ReadAll(r io.Reader) ([]byte, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("mmapbuf: read stdin: %w", err)
	}
	return buf, nil
}
