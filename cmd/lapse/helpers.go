package lapse

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lapsekit/lapse-cli/internal/app"
	"github.com/lapsekit/lapse-cli/internal/db"
	"github.com/lapsekit/lapse-cli/internal/service"
	"github.com/lapsekit/lapse-cli/internal/storage"
)

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

// withStore resolves the photo byte store alongside the database.
// Precedence for the root: --photo-root flag, stored config, then the
// photos directory next to the database file.
func withStore(run func(*sql.DB, *storage.FileStore) error) error {
	return withDB(func(sqldb *sql.DB) error {
		root := photoRootFlag
		if root == "" {
			stored, ok, err := service.GetConfig(sqldb, service.ConfigPhotoRoot)
			if err != nil {
				return err
			}
			if ok {
				root = stored
			}
		}
		if root == "" {
			path, err := resolveDBPath()
			if err != nil {
				return err
			}
			root = app.DefaultPhotoRoot(path)
		}
		return run(sqldb, storage.NewFileStore(root))
	})
}

func parseDayOrNow(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
	}
	return t, nil
}

// Float flags use a negative sentinel to mean "not set"; percentages
// and confidences are never negative.
func optionalFloat(v float64) *float64 {
	if v < 0 {
		return nil
	}
	return &v
}

func formatOptionalPct(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}
