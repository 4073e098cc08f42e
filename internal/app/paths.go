package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName    = "lapse"
	dbFileName    = "lapse.db"
	photosDirName = "photos"
)

func DefaultDBPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, dbFileName), nil
}

// DefaultPhotoRoot is a sibling of the database file so a --db override
// relocates photo bytes along with the records.
func DefaultPhotoRoot(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), photosDirName)
}

func EnsureDBDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}
