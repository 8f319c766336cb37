package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofrs/flock"

	errUtils "github.com/cloverkit/cloverkit/errors"
	log "github.com/cloverkit/cloverkit/pkg/logger"
)

const lockRetryDelay = 200 * time.Millisecond

// Lock takes an advisory lock on path, waiting until ctx is done.
// The returned function releases it.
func Lock(ctx context.Context, path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errUtils.Wrap(err, errUtils.ErrLockBuildDir, errUtils.ErrLockBuildDir.Error()).Err()
	}

	fl := flock.New(path)
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err == nil && !locked {
		err = errors.New("lock is held by another process")
	}
	if err != nil {
		return nil, errUtils.Wrap(err, errUtils.ErrLockBuildDir, errUtils.ErrLockBuildDir.Error()).
			WithHint("Another cloverkit run may be using this build directory").
			WithContext("lock_file", path).
			Err()
	}

	log.Trace("Acquired build dir lock", "lock_file", path)
	return func() {
		if err := fl.Unlock(); err != nil {
			log.Warn("Failed to release build dir lock", "lock_file", path, "error", err)
		}
	}, nil
}
