package filesystem

import (
	"os"

	"github.com/cockroachdb/errors"

	log "github.com/cloverkit/cloverkit/pkg/logger"
)

// stashSuffix names the directory holding instrumented classes while a restore is in flight.
const stashSuffix = ".instrumented"

// Backup moves classesDir to backupDir and recreates an empty classesDir.
// A missing classesDir yields an empty backup so a later Restore is symmetric.
func Backup(classesDir, backupDir string) error {
	if !Exists(classesDir) {
		log.Debug("Classes dir does not exist, creating an empty backup", "classes_dir", classesDir)
		if err := os.MkdirAll(backupDir, 0o755); err != nil {
			return err
		}
		return os.MkdirAll(classesDir, 0o755)
	}
	if err := Move(classesDir, backupDir); err != nil {
		return err
	}
	return os.MkdirAll(classesDir, 0o755)
}

// Restore puts backupDir back at classesDir and reports whether anything was
// restored. Without a backupDir it is a no-op.
//
// The instrumented classes are first renamed aside, then the backup is moved
// in, then the stash is removed. If the move fails the stash is renamed back,
// so classesDir never ends up empty while the backup is still pending.
func Restore(classesDir, backupDir string) (bool, error) {
	if !IsDir(backupDir) {
		return false, nil
	}

	stash := classesDir + stashSuffix
	if err := os.RemoveAll(stash); err != nil {
		return false, err
	}

	stashed := false
	if Exists(classesDir) {
		if err := os.Rename(classesDir, stash); err != nil {
			return false, errors.Wrapf(err, "stash instrumented classes %s", classesDir)
		}
		stashed = true
	}

	if err := Move(backupDir, classesDir); err != nil {
		if stashed {
			if rbErr := os.Rename(stash, classesDir); rbErr != nil {
				log.Error("Failed to put instrumented classes back", "classes_dir", classesDir, "error", rbErr)
			}
		}
		return false, errors.Wrapf(err, "move %s to %s", backupDir, classesDir)
	}

	if stashed {
		if err := os.RemoveAll(stash); err != nil {
			return true, errors.Wrapf(err, "remove instrumented classes %s", stash)
		}
	}
	return true, nil
}
