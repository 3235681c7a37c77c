package heal

import (
	"fmt"
	"os"
)

// WriteBackup writes path's current content to a ".backup" sibling file,
// but only if that sibling doesn't already exist, so the backup always
// holds the component's pre-healing original rather than an intermediate
// healing attempt. Grounded on ast_self_healing.py's heal_single_component,
// which guards its backup write with `if not backup_file.exists()`.
func WriteBackup(path, content string) error {
	backupPath := path + ".backup"
	if _, err := os.Stat(backupPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("heal: stat backup: %w", err)
	}
	if err := os.WriteFile(backupPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("heal: write backup: %w", err)
	}
	return nil
}
