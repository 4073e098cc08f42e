package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lapsekit/lapse-cli/internal/model"
)

type MeasurementInput struct {
	WeightKg      float64
	BodyFatPct    *float64
	Date          time.Time // zero means now
	LinkedPhotoID *string
}

// AddMeasurement logs a weight for a day. A day that already has an
// entry is updated in place, keeping its id, so at most one entry ever
// exists per calendar day. An absent photo link leaves any existing
// link untouched.
func AddMeasurement(sqldb *sql.DB, in MeasurementInput) (model.WeightEntry, error) {
	if in.WeightKg <= 0 {
		return model.WeightEntry{}, fmt.Errorf("weight must be > 0")
	}
	if err := validateBodyFat(in.BodyFatPct); err != nil {
		return model.WeightEntry{}, err
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}
	day := dayKey(in.Date)

	existing, found, err := GetEntry(sqldb, in.Date)
	if err != nil {
		return model.WeightEntry{}, err
	}
	if found {
		if _, err := sqldb.Exec(`
UPDATE weight_entries
SET weight_kg = ?, body_fat_pct = ?, linked_photo_id = COALESCE(?, linked_photo_id)
WHERE id = ?
`, in.WeightKg, in.BodyFatPct, in.LinkedPhotoID, existing.ID); err != nil {
			return model.WeightEntry{}, fmt.Errorf("update weight entry for %s: %w", day, err)
		}
		entry, _, err := GetEntry(sqldb, in.Date)
		return entry, err
	}

	entry := model.WeightEntry{
		ID:            uuid.New().String(),
		Day:           day,
		WeightKg:      in.WeightKg,
		BodyFatPct:    in.BodyFatPct,
		LinkedPhotoID: in.LinkedPhotoID,
		CreatedAt:     time.Now(),
	}
	if _, err := sqldb.Exec(`
INSERT INTO weight_entries(id, day, weight_kg, body_fat_pct, linked_photo_id, created_at)
VALUES(?, ?, ?, ?, ?, ?)
`, entry.ID, entry.Day, entry.WeightKg, entry.BodyFatPct, entry.LinkedPhotoID, entry.CreatedAt.Format(time.RFC3339)); err != nil {
		return model.WeightEntry{}, fmt.Errorf("add weight entry for %s: %w", day, err)
	}
	return entry, nil
}

// GetEntry returns the single entry for the local calendar day of date.
func GetEntry(sqldb *sql.DB, date time.Time) (model.WeightEntry, bool, error) {
	row := sqldb.QueryRow(`
SELECT id, day, weight_kg, body_fat_pct, linked_photo_id, created_at
FROM weight_entries WHERE day = ?
`, dayKey(date))
	entry, err := scanWeightEntry(row)
	if err == sql.ErrNoRows {
		return model.WeightEntry{}, false, nil
	}
	if err != nil {
		return model.WeightEntry{}, false, err
	}
	return entry, true, nil
}

// FilteredEntries returns entries from the last windowDays calendar
// days (inclusive of today), ascending by date. windowDays <= 0 means
// the whole series.
func FilteredEntries(sqldb *sql.DB, windowDays int) ([]model.WeightEntry, error) {
	query := `SELECT id, day, weight_kg, body_fat_pct, linked_photo_id, created_at FROM weight_entries`
	args := make([]any, 0, 1)
	if windowDays > 0 {
		cutoff := beginningOfDay(time.Now()).AddDate(0, 0, -(windowDays - 1))
		query += ` WHERE day >= ?`
		args = append(args, dayKey(cutoff))
	}
	query += ` ORDER BY day ASC`

	rows, err := sqldb.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list weight entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.WeightEntry, 0)
	for rows.Next() {
		entry, err := scanWeightEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weight entries: %w", err)
	}
	return entries, nil
}

func scanWeightEntry(row rowScanner) (model.WeightEntry, error) {
	var entry model.WeightEntry
	var bodyFat sql.NullFloat64
	var linked sql.NullString
	var createdRaw string
	if err := row.Scan(&entry.ID, &entry.Day, &entry.WeightKg, &bodyFat, &linked, &createdRaw); err != nil {
		if err == sql.ErrNoRows {
			return model.WeightEntry{}, err
		}
		return model.WeightEntry{}, fmt.Errorf("scan weight entry: %w", err)
	}
	if bodyFat.Valid {
		v := bodyFat.Float64
		entry.BodyFatPct = &v
	}
	if linked.Valid {
		v := linked.String
		entry.LinkedPhotoID = &v
	}
	created, err := time.Parse(time.RFC3339, createdRaw)
	if err != nil {
		// created_at predating the RFC3339 format falls back to the
		// sqlite DATETIME default; tolerate it instead of failing reads.
		created, err = time.ParseInLocation("2006-01-02 15:04:05", createdRaw, time.UTC)
		if err != nil {
			return model.WeightEntry{}, fmt.Errorf("weight entry created_at: %w", ErrDecodeFailure)
		}
	}
	entry.CreatedAt = created
	return entry, nil
}
