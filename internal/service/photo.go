package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lapsekit/lapse-cli/internal/model"
	"github.com/lapsekit/lapse-cli/internal/storage"
)

type PhotoInput struct {
	Content        []byte
	Ext            string // file extension including dot; defaults to .jpg
	CategoryID     string
	CapturedAt     time.Time // zero means now
	IsFaceBlurred  bool
	BodyConfidence *float64
}

// HasPhoto reports whether a photo exists for the local calendar day of
// date in the given category.
func HasPhoto(sqldb *sql.DB, date time.Time, categoryID string) (bool, error) {
	var exists int
	err := sqldb.QueryRow(`SELECT 1 FROM photos WHERE day = ? AND category_id = ?`, dayKey(date), categoryID).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check photo for %s/%s: %w", dayKey(date), categoryID, err)
	}
	return true, nil
}

// SavePhoto stores image bytes and the photo record. A day that
// already has a photo in the category fails with ErrDuplicateForDay;
// overwriting goes through ReplacePhoto only.
func SavePhoto(sqldb *sql.DB, store *storage.FileStore, in PhotoInput) (model.Photo, error) {
	if err := validatePhotoInput(&in); err != nil {
		return model.Photo{}, err
	}
	if _, err := CategoryByID(sqldb, in.CategoryID); err != nil {
		return model.Photo{}, err
	}

	day := dayKey(in.CapturedAt)
	exists, err := HasPhoto(sqldb, in.CapturedAt, in.CategoryID)
	if err != nil {
		return model.Photo{}, err
	}
	if exists {
		return model.Photo{}, fmt.Errorf("save photo for %s/%s: %w", day, in.CategoryID, ErrDuplicateForDay)
	}
	return insertPhoto(sqldb, store, day, in)
}

// ReplacePhoto is the only sanctioned path to overwrite a day's
// capture: it deletes the previous bytes and record, then creates a
// fresh photo with a new id.
func ReplacePhoto(sqldb *sql.DB, store *storage.FileStore, date time.Time, in PhotoInput) (model.Photo, error) {
	if in.CapturedAt.IsZero() {
		in.CapturedAt = date
	}
	if err := validatePhotoInput(&in); err != nil {
		return model.Photo{}, err
	}
	if _, err := CategoryByID(sqldb, in.CategoryID); err != nil {
		return model.Photo{}, err
	}

	day := dayKey(date)
	old, found, err := PhotoForDay(sqldb, date, in.CategoryID)
	if err != nil {
		return model.Photo{}, err
	}
	if found {
		if err := store.Delete(old.CategoryID, old.FileName); err != nil {
			return model.Photo{}, err
		}
		if _, err := sqldb.Exec(`DELETE FROM photos WHERE id = ?`, old.ID); err != nil {
			return model.Photo{}, fmt.Errorf("delete replaced photo %s: %w", old.ID, err)
		}
	}
	return insertPhoto(sqldb, store, day, in)
}

func insertPhoto(sqldb *sql.DB, store *storage.FileStore, day string, in PhotoInput) (model.Photo, error) {
	p := model.Photo{
		ID:             uuid.New().String(),
		Day:            day,
		CapturedAt:     in.CapturedAt,
		FileName:       uuid.New().String() + in.Ext,
		CategoryID:     in.CategoryID,
		IsFaceBlurred:  in.IsFaceBlurred,
		BodyConfidence: in.BodyConfidence,
	}
	if err := store.Save(p.CategoryID, p.FileName, in.Content); err != nil {
		return model.Photo{}, err
	}
	if _, err := sqldb.Exec(`
INSERT INTO photos(id, day, captured_at, file_name, category_id, is_face_blurred, body_confidence)
VALUES(?, ?, ?, ?, ?, ?, ?)
`, p.ID, p.Day, p.CapturedAt.Format(time.RFC3339), p.FileName, p.CategoryID, boolToInt(p.IsFaceBlurred), p.BodyConfidence); err != nil {
		_ = store.Delete(p.CategoryID, p.FileName)
		return model.Photo{}, fmt.Errorf("insert photo for %s/%s: %w", p.Day, p.CategoryID, err)
	}
	return p, nil
}

// AttachMeasurement updates the denormalized weight cache on a photo.
// It never creates a weight entry; callers orchestrate both writes when
// they want a linked entry.
func AttachMeasurement(sqldb *sql.DB, photoID string, weightKg, bodyFatPct *float64) error {
	if weightKg == nil && bodyFatPct == nil {
		return fmt.Errorf("nothing to attach: provide weight and/or body-fat")
	}
	if weightKg != nil && *weightKg <= 0 {
		return fmt.Errorf("weight must be > 0")
	}
	if err := validateBodyFat(bodyFatPct); err != nil {
		return err
	}

	sets := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if weightKg != nil {
		sets = append(sets, "weight_kg = ?")
		args = append(args, *weightKg)
	}
	if bodyFatPct != nil {
		sets = append(sets, "body_fat_pct = ?")
		args = append(args, *bodyFatPct)
	}
	args = append(args, photoID)

	res, err := sqldb.Exec(`UPDATE photos SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("attach measurement to photo %s: %w", photoID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("photo %s not found", photoID)
	}
	return nil
}

// PhotoForDay looks up the single photo for (day, category). Lookups
// are always scoped by category plus date, never bare id.
func PhotoForDay(sqldb *sql.DB, date time.Time, categoryID string) (model.Photo, bool, error) {
	row := sqldb.QueryRow(`
SELECT id, day, captured_at, file_name, category_id, is_face_blurred, body_confidence, weight_kg, body_fat_pct
FROM photos WHERE day = ? AND category_id = ?
`, dayKey(date), categoryID)
	p, err := scanPhoto(row)
	if err == sql.ErrNoRows {
		return model.Photo{}, false, nil
	}
	if err != nil {
		return model.Photo{}, false, err
	}
	return p, true, nil
}

// ListPhotos returns a category's photos, newest day first. limit <= 0
// means no limit.
func ListPhotos(sqldb *sql.DB, categoryID string, limit int) ([]model.Photo, error) {
	if limit <= 0 {
		limit = -1 // sqlite treats a negative LIMIT as unbounded
	}
	rows, err := sqldb.Query(`
SELECT id, day, captured_at, file_name, category_id, is_face_blurred, body_confidence, weight_kg, body_fat_pct
FROM photos WHERE category_id = ? ORDER BY day DESC LIMIT ?
`, categoryID, limit)
	if err != nil {
		return nil, fmt.Errorf("list photos for %s: %w", categoryID, err)
	}
	defer rows.Close()

	photos := make([]model.Photo, 0)
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate photos: %w", err)
	}
	return photos, nil
}

func DeletePhoto(sqldb *sql.DB, store *storage.FileStore, date time.Time, categoryID string) error {
	p, found, err := PhotoForDay(sqldb, date, categoryID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no photo for %s/%s", dayKey(date), categoryID)
	}
	if err := store.Delete(p.CategoryID, p.FileName); err != nil {
		return err
	}
	if _, err := sqldb.Exec(`DELETE FROM photos WHERE id = ?`, p.ID); err != nil {
		return fmt.Errorf("delete photo %s: %w", p.ID, err)
	}
	return nil
}

// LoadImage reads a photo's bytes back. Missing or unreadable bytes
// surface as ErrDecodeFailure; callers substitute a placeholder.
func LoadImage(store *storage.FileStore, p model.Photo) ([]byte, error) {
	content, err := store.Load(p.CategoryID, p.FileName)
	if err != nil {
		return nil, fmt.Errorf("photo %s: %w", p.ID, ErrDecodeFailure)
	}
	return content, nil
}

func validatePhotoInput(in *PhotoInput) error {
	if len(in.Content) == 0 {
		return fmt.Errorf("photo content is required")
	}
	if strings.TrimSpace(in.CategoryID) == "" {
		return fmt.Errorf("category id is required")
	}
	if in.Ext == "" {
		in.Ext = ".jpg"
	}
	if in.CapturedAt.IsZero() {
		in.CapturedAt = time.Now()
	}
	if in.BodyConfidence != nil && (*in.BodyConfidence < 0 || *in.BodyConfidence > 1) {
		return fmt.Errorf("body detection confidence must be between 0 and 1")
	}
	return nil
}

func scanPhoto(row rowScanner) (model.Photo, error) {
	var p model.Photo
	var capturedRaw string
	var faceBlurred int
	var confidence, weight, bodyFat sql.NullFloat64
	if err := row.Scan(&p.ID, &p.Day, &capturedRaw, &p.FileName, &p.CategoryID, &faceBlurred, &confidence, &weight, &bodyFat); err != nil {
		if err == sql.ErrNoRows {
			return model.Photo{}, err
		}
		return model.Photo{}, fmt.Errorf("scan photo: %w", err)
	}
	captured, err := time.Parse(time.RFC3339, capturedRaw)
	if err != nil {
		return model.Photo{}, fmt.Errorf("photo captured_at: %w", ErrDecodeFailure)
	}
	p.CapturedAt = captured
	p.IsFaceBlurred = faceBlurred == 1
	if confidence.Valid {
		v := confidence.Float64
		p.BodyConfidence = &v
	}
	if weight.Valid {
		v := weight.Float64
		p.WeightKg = &v
	}
	if bodyFat.Valid {
		v := bodyFat.Float64
		p.BodyFatPct = &v
	}
	return p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
