package mks

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const ownerWrite fs.FileMode = 0o200

// ClearReadOnly makes every file and directory under root writable by its owner.
// si resync --restoreTimestamp leaves working files read-only. A symlinked
// root is followed; symlinks below it are not.
func ClearReadOnly(root string) (int, error) {
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return 0, fmt.Errorf("clear read-only attributes under %s: %w", root, err)
	}
	cleared := 0
	err = filepath.WalkDir(resolved, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		mode := info.Mode().Perm()
		if mode&ownerWrite != 0 {
			return nil
		}
		if err := os.Chmod(path, mode|ownerWrite); err != nil {
			return err
		}
		cleared++
		return nil
	})
	if err != nil {
		return cleared, fmt.Errorf("clear read-only attributes under %s: %w", root, err)
	}
	return cleared, nil
}
