package filesystem

import (
	"os"
	"path/filepath"
	"syscall"

	"github.com/cockroachdb/errors"
	cp "github.com/otiai10/copy"

	log "github.com/cloverkit/cloverkit/pkg/logger"
)

// Move renames src to dst. When the two live on different devices it falls
// back to a recursive copy followed by removal of src.
func Move(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}

	log.Debug("Rename crosses devices, copying instead", "src", src, "dst", dst)
	if err := cp.Copy(src, dst, cp.Options{PreserveTimes: true}); err != nil {
		return errors.Wrapf(err, "copy %s to %s", src, dst)
	}
	return os.RemoveAll(src)
}

// ClearDir deletes everything below dir, including empty subdirectories,
// and leaves dir itself in place. A missing dir is not an error.
func ClearDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path is an existing directory.
func IsDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
