package report

import (
	errUtils "github.com/cloverkit/cloverkit/errors"
	"github.com/cloverkit/cloverkit/pkg/filesystem"
	log "github.com/cloverkit/cloverkit/pkg/logger"
	"github.com/cloverkit/cloverkit/pkg/sourceset"
)

// Restore moves every descriptor's backup dir back onto its classes dir and
// returns how many were restored. Descriptors without a backup are skipped.
func Restore(descriptors []sourceset.Descriptor) (int, error) {
	restored := 0
	for _, d := range descriptors {
		ok, err := filesystem.Restore(d.ClassesDir, d.BackupDir)
		if err != nil {
			return restored, errUtils.Wrapf(err, errUtils.ErrRestoreClasses, "restore %s", d.Name).
				WithTitle("Restore failed").
				WithHintf("The original classes are still in %s", d.BackupDir).
				WithContext("classes_dir", d.ClassesDir).
				WithContext("backup_dir", d.BackupDir).
				Err()
		}
		if ok {
			log.Debug("Restored original classes", "source_set", d.Name, "classes_dir", d.ClassesDir)
			restored++
		}
	}
	return restored, nil
}
