// Package fsutil provides the filesystem operations pipeline plugins need:
// recursive copy, idempotent recursive removal and directory listing.
// Operations go through go-billy so tests can run against an in-memory
// filesystem.
package fsutil

import (
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// FS is the filesystem contract used by plugins.
type FS interface {
	// CopyDir copies the contents of src into dst, creating dst if needed and
	// overwriting files that already exist there.
	CopyDir(src, dst string) error

	// RemoveAll removes path and everything below it. A missing path is not
	// an error.
	RemoveAll(path string) error

	// ReadDirNames lists the immediate children of dir, names only.
	ReadDirNames(dir string) ([]string, error)

	// Exists reports whether path exists.
	Exists(path string) (bool, error)
}

// CopyObserver is notified with the destination path of every copied file.
type CopyObserver func(dst string)

// BillyFS implements FS on top of a billy.Filesystem.
type BillyFS struct {
	fs       billy.Filesystem
	observer CopyObserver
}

// Option configures a BillyFS.
type Option func(*BillyFS)

// WithCopyObserver registers a callback invoked after each copied file.
func WithCopyObserver(fn CopyObserver) Option {
	return func(b *BillyFS) {
		b.observer = fn
	}
}

// New wraps an existing billy filesystem.
func New(fs billy.Filesystem, opts ...Option) *BillyFS {
	b := &BillyFS{fs: fs}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewOS returns a BillyFS rooted at "/". Callers pass absolute paths.
func NewOS(opts ...Option) *BillyFS {
	return New(osfs.New("/"), opts...)
}

// NewMemory returns a BillyFS backed by an in-memory filesystem.
func NewMemory(opts ...Option) *BillyFS {
	return New(memfs.New(), opts...)
}

// Billy exposes the underlying filesystem.
func (b *BillyFS) Billy() billy.Filesystem {
	return b.fs
}

// maxLinkDepth bounds directory nesting while following symlinks, which
// stops a link pointing at one of its ancestors.
const maxLinkDepth = 64

// CopyDir implements FS. Symlinks are followed: a linked directory is copied
// as a directory, a linked file as a regular file.
func (b *BillyFS) CopyDir(src, dst string) error {
	info, err := b.fs.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("copy source %s is not a directory", src)
	}

	return b.copyTree(src, dst, info.Mode().Perm(), 0)
}

func (b *BillyFS) copyTree(src, dst string, perm os.FileMode, depth int) error {
	if depth > maxLinkDepth {
		return fmt.Errorf("failed to copy %s: too many levels of nesting", src)
	}

	if err := b.fs.MkdirAll(dst, perm|0o700); err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	entries, err := b.fs.ReadDir(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}

	for _, entry := range entries {
		path := b.fs.Join(src, entry.Name())
		target := b.fs.Join(dst, entry.Name())

		// ReadDir reports links themselves; Stat resolves them
		info, err := b.fs.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}

		if info.IsDir() {
			if err := b.copyTree(path, target, info.Mode().Perm(), depth+1); err != nil {
				return err
			}
			continue
		}

		if err := b.copyFile(path, target, info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to copy %s: %w", path, err)
		}
		if b.observer != nil {
			b.observer(target)
		}
	}

	return nil
}

func (b *BillyFS) copyFile(src, dst string, perm os.FileMode) error {
	in, err := b.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := b.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// RemoveAll implements FS.
func (b *BillyFS) RemoveAll(path string) error {
	if path == "" {
		return nil
	}
	if err := util.RemoveAll(b.fs, path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

// ReadDirNames implements FS.
func (b *BillyFS) ReadDirNames(dir string) ([]string, error) {
	entries, err := b.fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

// Exists implements FS.
func (b *BillyFS) Exists(path string) (bool, error) {
	_, err := b.fs.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
}
