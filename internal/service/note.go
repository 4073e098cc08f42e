package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lapsekit/lapse-cli/internal/model"
)

// SetNote creates or updates the note for a day. Updates keep the
// existing id and refresh last_modified_at.
func SetNote(sqldb *sql.DB, date time.Time, content string) (model.DailyNote, error) {
	if date.IsZero() {
		date = time.Now()
	}
	day := dayKey(date)
	now := time.Now()

	existing, found, err := GetNote(sqldb, date)
	if err != nil {
		return model.DailyNote{}, err
	}
	if found {
		if _, err := sqldb.Exec(`
UPDATE daily_notes SET content = ?, last_modified_at = ? WHERE id = ?
`, content, now.Format(time.RFC3339), existing.ID); err != nil {
			return model.DailyNote{}, fmt.Errorf("update note for %s: %w", day, err)
		}
		note, _, err := GetNote(sqldb, date)
		return note, err
	}

	note := model.DailyNote{
		ID:             uuid.New().String(),
		Day:            day,
		Content:        content,
		CreatedAt:      now,
		LastModifiedAt: now,
	}
	if _, err := sqldb.Exec(`
INSERT INTO daily_notes(id, day, content, created_at, last_modified_at)
VALUES(?, ?, ?, ?, ?)
`, note.ID, note.Day, note.Content, note.CreatedAt.Format(time.RFC3339), note.LastModifiedAt.Format(time.RFC3339)); err != nil {
		return model.DailyNote{}, fmt.Errorf("add note for %s: %w", day, err)
	}
	return note, nil
}

func GetNote(sqldb *sql.DB, date time.Time) (model.DailyNote, bool, error) {
	row := sqldb.QueryRow(`
SELECT id, day, content, created_at, last_modified_at FROM daily_notes WHERE day = ?
`, dayKey(date))
	var note model.DailyNote
	var createdRaw, modifiedRaw string
	err := row.Scan(&note.ID, &note.Day, &note.Content, &createdRaw, &modifiedRaw)
	if err == sql.ErrNoRows {
		return model.DailyNote{}, false, nil
	}
	if err != nil {
		return model.DailyNote{}, false, fmt.Errorf("scan note: %w", err)
	}
	if note.CreatedAt, err = time.Parse(time.RFC3339, createdRaw); err != nil {
		return model.DailyNote{}, false, fmt.Errorf("note created_at: %w", ErrDecodeFailure)
	}
	if note.LastModifiedAt, err = time.Parse(time.RFC3339, modifiedRaw); err != nil {
		return model.DailyNote{}, false, fmt.Errorf("note last_modified_at: %w", ErrDecodeFailure)
	}
	return note, true, nil
}

func DeleteNote(sqldb *sql.DB, date time.Time) error {
	res, err := sqldb.Exec(`DELETE FROM daily_notes WHERE day = ?`, dayKey(date))
	if err != nil {
		return fmt.Errorf("delete note for %s: %w", dayKey(date), err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no note for %s", dayKey(date))
	}
	return nil
}

// NoteIsEmpty derives emptiness from trimmed content; there is no
// separate flag on the record.
func NoteIsEmpty(note model.DailyNote) bool {
	return strings.TrimSpace(note.Content) == ""
}
