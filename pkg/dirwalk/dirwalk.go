// Package dirwalk implements the external "filter" collaborator spec.md §6
// names for search_directory (hidden/VCS dirs, binary-looking files,
// extension blacklist, all supplied to the caller) plus a two-phase
// directory enumerator: a fast sequential filepath.Walk collect pass,
// then a bounded-concurrency parallel read pass. Grounded directly on
// praetorian-inc-titus/pkg/enum/filesystem.go's FilesystemEnumerator.Enumerate.
package dirwalk

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	gitignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"
)

// vcsDirs and buildDirs are skipped outright regardless of Filter.IncludeHidden,
// matching spec.md §6's "hidden/VCS dirs" wording as two distinct classes.
var vcsDirs = map[string]bool{".git": true, ".hg": true, ".svn": true}
var buildDirs = map[string]bool{"node_modules": true, "vendor": true, "dist": true, "build": true}

// Filter decides, per directory-walk entry, whether to skip it. It is the
// collaborator spec.md §6's search_directory takes as a parameter.
type Filter struct {
	IncludeHidden    bool
	FollowSymlinks   bool
	MaxFileSize      int64    // 0 means unlimited
	ExtensionDenylist []string // e.g. {".png", ".exe"}; matched case-insensitively
	gitignore        *gitignore.GitIgnore
}

// NewFilter builds a Filter, loading root/.gitignore if present (grounded
// on filesystem.go's gitignore.CompileIgnoreFile use).
func NewFilter(root string, includeHidden, followSymlinks bool, maxFileSize int64, denylist []string) *Filter {
	f := &Filter{
		IncludeHidden:     includeHidden,
		FollowSymlinks:    followSymlinks,
		MaxFileSize:       maxFileSize,
		ExtensionDenylist: denylist,
	}
	gitignorePath := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(gitignorePath); err == nil {
		f.gitignore, _ = gitignore.CompileIgnoreFile(gitignorePath)
	}
	return f
}

// SkipDir reports whether a directory entry (by base name) should be
// pruned entirely (filepath.SkipDir semantics).
func (f *Filter) SkipDir(name string) bool {
	if vcsDirs[name] || buildDirs[name] {
		return true
	}
	return !f.IncludeHidden && isHidden(name)
}

// SkipFile reports whether a regular file should be excluded from the
// search, given its path and os.FileInfo.
func (f *Filter) SkipFile(root, path string, info os.FileInfo) bool {
	if info.Mode()&os.ModeSymlink != 0 && !f.FollowSymlinks {
		return true
	}
	if !f.IncludeHidden && isHidden(info.Name()) {
		return true
	}
	if f.MaxFileSize > 0 && info.Size() > f.MaxFileSize {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, d := range f.ExtensionDenylist {
		if strings.ToLower(d) == ext {
			return true
		}
	}
	if f.gitignore != nil {
		if rel, err := filepath.Rel(root, path); err == nil && f.gitignore.MatchesPath(rel) {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}

// LooksBinary detects binary content by scanning up to the first 8KB for
// a NUL byte, the same heuristic filesystem.go's isBinary uses.
func LooksBinary(content []byte) bool {
	n := len(content)
	if n > 8192 {
		n = 8192
	}
	return bytes.IndexByte(content[:n], 0) != -1
}

// Visit is called once per non-skipped, non-binary file discovered by Walk.
type Visit func(path string, content []byte) error

// Walk implements spec.md §6's search_directory traversal in two phases:
// a sequential filepath.Walk collecting eligible paths (cheap, no I/O
// beyond stat), then a bounded-concurrency parallel read+visit pass.
func Walk(ctx context.Context, root string, f *Filter, visit Visit) (skipped int, err error) {
	var skippedCount int64
	var paths []string
	walkErr := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if info.IsDir() {
			if path != root && f.SkipDir(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if f.SkipFile(root, path, info) {
			skippedCount++
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if walkErr != nil {
		return int(skippedCount), fmt.Errorf("dirwalk: walk %q: %w", root, walkErr)
	}

	numReaders := runtime.NumCPU()
	if numReaders < 1 {
		numReaders = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	pathsCh := make(chan string, numReaders*2)

	g.Go(func() error {
		defer close(pathsCh)
		for _, p := range paths {
			select {
			case pathsCh <- p:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < numReaders; i++ {
		g.Go(func() error {
			for p := range pathsCh {
				content, rerr := os.ReadFile(p)
				if rerr != nil {
					return fmt.Errorf("dirwalk: read %q: %w", p, rerr)
				}
				if LooksBinary(content) {
					atomic.AddInt64(&skippedCount, 1)
					continue
				}
				if verr := visit(p, content); verr != nil {
					return verr
				}
			}
			return nil
		})
	}

	if gerr := g.Wait(); gerr != nil {
		return int(skippedCount), gerr
	}
	return int(skippedCount), nil
}
