package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosanma1/forge-deploy/internal/fsutil"
)

func writeMem(t *testing.T, fs *fsutil.BillyFS, path, content string) {
	t.Helper()
	require.NoError(t, util.WriteFile(fs.Billy(), path, []byte(content), 0o644))
}

func readMem(t *testing.T, fs *fsutil.BillyFS, path string) string {
	t.Helper()
	data, err := util.ReadFile(fs.Billy(), path)
	require.NoError(t, err)
	return string(data)
}

func TestCopyDirCopiesNestedTree(t *testing.T) {
	fs := fsutil.NewMemory()
	writeMem(t, fs, "/dist/index.html", "<html>")
	writeMem(t, fs, "/dist/assets/app.js", "app")
	writeMem(t, fs, "/dist/assets/img/logo.svg", "svg")

	require.NoError(t, fs.CopyDir("/dist", "/native/www"))

	assert.Equal(t, "<html>", readMem(t, fs, "/native/www/index.html"))
	assert.Equal(t, "app", readMem(t, fs, "/native/www/assets/app.js"))
	assert.Equal(t, "svg", readMem(t, fs, "/native/www/assets/img/logo.svg"))
}

func TestCopyDirOverwritesExistingFiles(t *testing.T) {
	fs := fsutil.NewMemory()
	writeMem(t, fs, "/dist/index.html", "new")
	writeMem(t, fs, "/native/www/index.html", "old and longer")
	writeMem(t, fs, "/native/www/stale.js", "stale")

	require.NoError(t, fs.CopyDir("/dist", "/native/www"))

	assert.Equal(t, "new", readMem(t, fs, "/native/www/index.html"))
	assert.Equal(t, "stale", readMem(t, fs, "/native/www/stale.js"))
}

func TestCopyDirMissingSource(t *testing.T) {
	fs := fsutil.NewMemory()
	err := fs.CopyDir("/missing", "/native/www")
	require.Error(t, err)
}

func TestCopyDirNotifiesObserver(t *testing.T) {
	var copied []string
	fs := fsutil.NewMemory(fsutil.WithCopyObserver(func(dst string) {
		copied = append(copied, dst)
	}))
	writeMem(t, fs, "/dist/a.js", "a")
	writeMem(t, fs, "/dist/b.js", "b")

	require.NoError(t, fs.CopyDir("/dist", "/out"))
	assert.ElementsMatch(t, []string{"/out/a.js", "/out/b.js"}, copied)
}

func TestRemoveAllIsIdempotent(t *testing.T) {
	fs := fsutil.NewMemory()
	writeMem(t, fs, "/apk/app-debug.apk", "apk")
	writeMem(t, fs, "/apk/nested/x.apk", "apk")

	require.NoError(t, fs.RemoveAll("/apk"))
	exists, err := fs.Exists("/apk")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, fs.RemoveAll("/apk"))
	require.NoError(t, fs.RemoveAll(""))
}

func TestReadDirNamesListsImmediateChildren(t *testing.T) {
	fs := fsutil.NewMemory()
	writeMem(t, fs, "/apk/foo.apk", "1")
	writeMem(t, fs, "/apk/bar.apk", "2")
	writeMem(t, fs, "/apk/debug/output.json", "{}")

	names, err := fs.ReadDirNames("/apk")
	require.NoError(t, err)
	assert.Equal(t, []string{"bar.apk", "debug", "foo.apk"}, names)
}

func TestReadDirNamesMissingDir(t *testing.T) {
	fs := fsutil.NewMemory()
	_, err := fs.ReadDirNames("/nope")
	require.Error(t, err)
}

func TestOSCopyDir(t *testing.T) {
	src := filepath.Join(t.TempDir(), "dist")
	dst := filepath.Join(t.TempDir(), "www")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "index.html"), []byte("root"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "nested", "a.txt"), []byte("alpha"), 0o600))

	fs := fsutil.NewOS()
	require.NoError(t, fs.CopyDir(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "nested", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(data))

	names, err := fs.ReadDirNames(dst)
	require.NoError(t, err)
	assert.Equal(t, []string{"index.html", "nested"}, names)
}

func TestOSCopyDirFollowsSymlinks(t *testing.T) {
	root := t.TempDir()
	shared := filepath.Join(root, "shared")
	src := filepath.Join(root, "dist")
	dst := filepath.Join(t.TempDir(), "www")
	require.NoError(t, os.MkdirAll(filepath.Join(shared, "fonts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(shared, "fonts", "icons.woff"), []byte("font"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(shared, "robots.txt"), []byte("allow"), 0o644))
	require.NoError(t, os.MkdirAll(src, 0o755))

	if err := os.Symlink(filepath.Join(shared, "fonts"), filepath.Join(src, "fonts")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(shared, "robots.txt"), filepath.Join(src, "robots.txt")))

	var copied []string
	fs := fsutil.NewOS(fsutil.WithCopyObserver(func(dst string) {
		copied = append(copied, dst)
	}))
	require.NoError(t, fs.CopyDir(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "fonts", "icons.woff"))
	require.NoError(t, err)
	assert.Equal(t, "font", string(data))

	info, err := os.Lstat(filepath.Join(dst, "fonts"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	info, err = os.Lstat(filepath.Join(dst, "robots.txt"))
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())

	assert.ElementsMatch(t, []string{
		filepath.Join(dst, "fonts", "icons.woff"),
		filepath.Join(dst, "robots.txt"),
	}, copied)
}

func TestOSCopyDirRejectsSymlinkCycle(t *testing.T) {
	src := filepath.Join(t.TempDir(), "dist")
	require.NoError(t, os.MkdirAll(src, 0o755))
	if err := os.Symlink(src, filepath.Join(src, "loop")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	err := fsutil.NewOS().CopyDir(src, filepath.Join(t.TempDir(), "www"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many levels")
}
