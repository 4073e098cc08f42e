package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lapsekit/lapse-cli/internal/geometry"
)

// Export documents use the persisted field names. Optional fields have
// documented defaults applied when absent on import: a photo without a
// category lands in the default category, a guideline without
// isFrontCamera reads as false.
type ExportCategory struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Order     int    `json:"order"`
	IsDefault bool   `json:"isDefault"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdDate,omitempty"`
}

type ExportPhoto struct {
	ID             string   `json:"id"`
	Day            string   `json:"day"`
	CaptureDate    string   `json:"captureDate"`
	FileName       string   `json:"fileName"`
	CategoryID     string   `json:"categoryId,omitempty"`
	IsFaceBlurred  bool     `json:"isFaceBlurred,omitempty"`
	BodyConfidence *float64 `json:"bodyDetectionConfidence,omitempty"`
	WeightKg       *float64 `json:"weight,omitempty"`
	BodyFatPct     *float64 `json:"bodyFatPercentage,omitempty"`
}

type ExportWeightEntry struct {
	ID            string   `json:"id"`
	Day           string   `json:"date"`
	WeightKg      float64  `json:"weight"`
	BodyFatPct    *float64 `json:"bodyFatPercentage,omitempty"`
	LinkedPhotoID *string  `json:"linkedPhotoID,omitempty"`
	CreatedAt     string   `json:"createdAt,omitempty"`
}

type ExportNote struct {
	ID           string `json:"id"`
	Day          string `json:"date"`
	Content      string `json:"content"`
	CreatedAt    string `json:"createdDate,omitempty"`
	LastModified string `json:"lastModifiedDate,omitempty"`
}

type ExportGuideline struct {
	CategoryID    string           `json:"categoryId,omitempty"`
	Points        []geometry.Point `json:"points"`
	ImageSize     geometry.Size    `json:"imageSize"`
	IsFrontCamera bool             `json:"isFrontCamera,omitempty"`
	CreatedAt     string           `json:"createdDate,omitempty"`
}

type ExportData struct {
	Categories    []ExportCategory    `json:"categories"`
	Photos        []ExportPhoto       `json:"photos"`
	WeightEntries []ExportWeightEntry `json:"weightEntries"`
	Notes         []ExportNote        `json:"notes"`
	Guidelines    []ExportGuideline   `json:"guidelines"`
	Config        map[string]string   `json:"config,omitempty"`
}

type ImportMode string

const (
	// ImportModeMerge upserts by natural key (category id, photo
	// day+category, entry/note day) and keeps everything else.
	ImportModeMerge ImportMode = "merge"
	// ImportModeReplace wipes records before importing. Photo bytes on
	// disk are untouched; only metadata is replaced.
	ImportModeReplace ImportMode = "replace"
)

type ImportSummary struct {
	Categories    int
	Photos        int
	WeightEntries int
	Notes         int
	Guidelines    int
}

func Export(sqldb *sql.DB) (*ExportData, error) {
	data := &ExportData{
		Categories:    make([]ExportCategory, 0),
		Photos:        make([]ExportPhoto, 0),
		WeightEntries: make([]ExportWeightEntry, 0),
		Notes:         make([]ExportNote, 0),
		Guidelines:    make([]ExportGuideline, 0),
	}

	rows, err := sqldb.Query(`SELECT id, name, ord, is_default, is_active, created_at FROM categories ORDER BY ord ASC`)
	if err != nil {
		return nil, fmt.Errorf("export categories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		data.Categories = append(data.Categories, ExportCategory{
			ID:        c.ID,
			Name:      c.Name,
			Order:     c.Order,
			IsDefault: c.IsDefault,
			IsActive:  c.IsActive,
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exported categories: %w", err)
	}

	for _, c := range data.Categories {
		photos, err := ListPhotos(sqldb, c.ID, 0)
		if err != nil {
			return nil, err
		}
		for _, p := range photos {
			data.Photos = append(data.Photos, ExportPhoto{
				ID:             p.ID,
				Day:            p.Day,
				CaptureDate:    p.CapturedAt.Format(time.RFC3339),
				FileName:       p.FileName,
				CategoryID:     p.CategoryID,
				IsFaceBlurred:  p.IsFaceBlurred,
				BodyConfidence: p.BodyConfidence,
				WeightKg:       p.WeightKg,
				BodyFatPct:     p.BodyFatPct,
			})
		}

		g, found, err := GetGuideline(sqldb, c.ID)
		if err != nil {
			return nil, err
		}
		if found {
			data.Guidelines = append(data.Guidelines, ExportGuideline{
				CategoryID:    g.CategoryID,
				Points:        g.Points,
				ImageSize:     g.ImageSize,
				IsFrontCamera: g.IsFrontCamera,
				CreatedAt:     g.CreatedAt.Format(time.RFC3339),
			})
		}
	}

	entries, err := FilteredEntries(sqldb, 0)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		data.WeightEntries = append(data.WeightEntries, ExportWeightEntry{
			ID:            entry.ID,
			Day:           entry.Day,
			WeightKg:      entry.WeightKg,
			BodyFatPct:    entry.BodyFatPct,
			LinkedPhotoID: entry.LinkedPhotoID,
			CreatedAt:     entry.CreatedAt.Format(time.RFC3339),
		})
	}

	noteRows, err := sqldb.Query(`SELECT id, day, content, created_at, last_modified_at FROM daily_notes ORDER BY day ASC`)
	if err != nil {
		return nil, fmt.Errorf("export notes: %w", err)
	}
	defer noteRows.Close()
	for noteRows.Next() {
		var n ExportNote
		if err := noteRows.Scan(&n.ID, &n.Day, &n.Content, &n.CreatedAt, &n.LastModified); err != nil {
			return nil, fmt.Errorf("scan exported note: %w", err)
		}
		data.Notes = append(data.Notes, n)
	}
	if err := noteRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exported notes: %w", err)
	}

	config, err := ListConfig(sqldb)
	if err != nil {
		return nil, err
	}
	if len(config) > 0 {
		data.Config = config
	}
	return data, nil
}

func Import(sqldb *sql.DB, data *ExportData, mode ImportMode) (ImportSummary, error) {
	var summary ImportSummary
	if data == nil {
		return summary, fmt.Errorf("import data is required")
	}
	if mode != ImportModeMerge && mode != ImportModeReplace {
		return summary, fmt.Errorf("invalid import mode %q (use merge or replace)", mode)
	}

	tx, err := sqldb.Begin()
	if err != nil {
		return summary, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if mode == ImportModeReplace {
		for _, table := range []string{"body_guidelines", "photos", "weight_entries", "daily_notes"} {
			if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
				return summary, fmt.Errorf("clear %s: %w", table, err)
			}
		}
		if _, err := tx.Exec(`DELETE FROM categories WHERE is_default = 0`); err != nil {
			return summary, fmt.Errorf("clear custom categories: %w", err)
		}
	}

	for _, c := range data.Categories {
		if c.ID == "" || c.ID == DefaultCategoryID {
			continue
		}
		if _, err := tx.Exec(`
INSERT INTO categories(id, name, ord, is_default, is_active)
VALUES(?, ?, ?, 0, ?)
ON CONFLICT(id) DO UPDATE SET name=excluded.name, ord=excluded.ord, is_active=excluded.is_active
`, c.ID, c.Name, c.Order, boolToInt(c.IsActive)); err != nil {
			return summary, fmt.Errorf("import category %q: %w", c.ID, err)
		}
		summary.Categories++
	}

	for _, p := range data.Photos {
		categoryID := p.CategoryID
		if categoryID == "" {
			categoryID = DefaultCategoryID
		}
		id := p.ID
		if id == "" {
			id = uuid.New().String()
		}
		day := p.Day
		captured := strings.TrimSpace(p.CaptureDate)
		if captured == "" {
			captured = time.Now().Format(time.RFC3339)
		}
		if day == "" {
			t, err := time.Parse(time.RFC3339, captured)
			if err != nil {
				return summary, fmt.Errorf("import photo %q: %w", id, ErrDecodeFailure)
			}
			day = dayKey(t)
		}
		if _, err := tx.Exec(`
INSERT INTO photos(id, day, captured_at, file_name, category_id, is_face_blurred, body_confidence, weight_kg, body_fat_pct)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(day, category_id) DO UPDATE SET
  captured_at=excluded.captured_at, file_name=excluded.file_name,
  is_face_blurred=excluded.is_face_blurred, body_confidence=excluded.body_confidence,
  weight_kg=excluded.weight_kg, body_fat_pct=excluded.body_fat_pct
`, id, day, captured, p.FileName, categoryID, boolToInt(p.IsFaceBlurred), p.BodyConfidence, p.WeightKg, p.BodyFatPct); err != nil {
			return summary, fmt.Errorf("import photo for %s/%s: %w", day, categoryID, err)
		}
		summary.Photos++
	}

	for _, entry := range data.WeightEntries {
		id := entry.ID
		if id == "" {
			id = uuid.New().String()
		}
		created := strings.TrimSpace(entry.CreatedAt)
		if created == "" {
			created = time.Now().Format(time.RFC3339)
		}
		if _, err := tx.Exec(`
INSERT INTO weight_entries(id, day, weight_kg, body_fat_pct, linked_photo_id, created_at)
VALUES(?, ?, ?, ?, ?, ?)
ON CONFLICT(day) DO UPDATE SET
  weight_kg=excluded.weight_kg, body_fat_pct=excluded.body_fat_pct,
  linked_photo_id=COALESCE(excluded.linked_photo_id, weight_entries.linked_photo_id)
`, id, entry.Day, entry.WeightKg, entry.BodyFatPct, entry.LinkedPhotoID, created); err != nil {
			return summary, fmt.Errorf("import weight entry for %s: %w", entry.Day, err)
		}
		summary.WeightEntries++
	}

	for _, n := range data.Notes {
		id := n.ID
		if id == "" {
			id = uuid.New().String()
		}
		now := time.Now().Format(time.RFC3339)
		created := n.CreatedAt
		if created == "" {
			created = now
		}
		modified := n.LastModified
		if modified == "" {
			modified = now
		}
		if _, err := tx.Exec(`
INSERT INTO daily_notes(id, day, content, created_at, last_modified_at)
VALUES(?, ?, ?, ?, ?)
ON CONFLICT(day) DO UPDATE SET content=excluded.content, last_modified_at=excluded.last_modified_at
`, id, n.Day, n.Content, created, modified); err != nil {
			return summary, fmt.Errorf("import note for %s: %w", n.Day, err)
		}
		summary.Notes++
	}

	for _, g := range data.Guidelines {
		categoryID := g.CategoryID
		if categoryID == "" {
			categoryID = DefaultCategoryID
		}
		doc, err := encodeGuideline(g.Points, g.IsFrontCamera)
		if err != nil {
			return summary, err
		}
		created := g.CreatedAt
		if created == "" {
			created = time.Now().Format(time.RFC3339)
		}
		if _, err := tx.Exec(`
INSERT INTO body_guidelines(category_id, points_json, image_w, image_h, is_front_camera, created_at)
VALUES(?, ?, ?, ?, ?, ?)
ON CONFLICT(category_id) DO UPDATE SET
  points_json=excluded.points_json, image_w=excluded.image_w, image_h=excluded.image_h,
  is_front_camera=excluded.is_front_camera, created_at=excluded.created_at
`, categoryID, doc, g.ImageSize.Width, g.ImageSize.Height, boolToInt(g.IsFrontCamera), created); err != nil {
			return summary, fmt.Errorf("import guideline for %s: %w", categoryID, err)
		}
		summary.Guidelines++
	}

	for key, value := range data.Config {
		if _, err := tx.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value); err != nil {
			return summary, fmt.Errorf("import config %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("commit import tx: %w", err)
	}
	return summary, nil
}
