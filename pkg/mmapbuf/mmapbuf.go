// Package mmapbuf is the byte-buffer provider spec.md §1 names as
// out-of-core-scope plumbing ("platform mmap/madvise plumbing — specified
// only as the byte-buffer provider"): it turns a file on disk into the
// read-only []byte the driver (C8) scans, backed by a real memory map
// rather than a full read into the heap. golang.org/x/sys/unix is the
// same module coregx-coregex depends on for platform primitives
// (x/sys/cpu elsewhere in that repo); here it is exercised for its
// Mmap/Madvise calls directly.
package mmapbuf

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// File is a memory-mapped, read-only view of a file's contents.
type File struct {
	data []byte
	f    *os.File
}

// Open mmaps filename read-only and advises the kernel the access pattern
// will be sequential (spec.md's driver reads each chunk once, start to
// end) and that the whole mapping will be needed soon.
func Open(filename string) (*File, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("mmapbuf: open %q: %w", filename, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmapbuf: stat %q: %w", filename, err)
	}

	size := info.Size()
	if size == 0 {
		// mmap of a zero-length file is undefined on most platforms;
		// spec.md's "len == 0" path is handled by the caller, so an empty
		// slice with the file kept open for Close's symmetry is enough.
		return &File{f: f}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmapbuf: mmap %q: %w", filename, err)
	}

	if err := unix.Madvise(data, unix.MADV_SEQUENTIAL); err != nil {
		// Advisory only; a failure here doesn't make the mapping unusable.
		_ = err
	}
	if err := unix.Madvise(data, unix.MADV_WILLNEED); err != nil {
		_ = err
	}

	return &File{data: data, f: f}, nil
}

// Bytes returns the mapped contents. The returned slice is read-only for
// the caller's purposes: writing to it corrupts the backing file.
func (m *File) Bytes() []byte { return m.data }

// Close unmaps the memory region (if any was mapped) and closes the
// underlying file descriptor. Safe to call once; spec.md §5's resource
// discipline requires maps be released on all exit paths.
func (m *File) Close() error {
	var err error
	if m.data != nil {
		err = unix.Munmap(m.data)
		m.data = nil
	}
	if cerr := m.f.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
