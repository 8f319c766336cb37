package filesystem

import (
	"os"
	"path/filepath"

	"github.com/google/renameio/v2/maybe"
)

// WriteFileAtomic replaces filename with data, creating the parent directory
// when needed. Readers see the old or the new content, never a partial
// file, on every platform renameio supports atomically.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}
	return maybe.WriteFile(filename, data, perm)
}
