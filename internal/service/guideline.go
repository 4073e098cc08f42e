package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lapsekit/lapse-cli/internal/geometry"
	"github.com/lapsekit/lapse-cli/internal/model"
)

// storedGuideline is the JSON document kept in points_json. Decoding
// tolerates absent optional fields: a missing isFrontCamera reads as
// false on older records.
type storedGuideline struct {
	Points        []geometry.Point `json:"points"`
	IsFrontCamera bool             `json:"isFrontCamera,omitempty"`
}

func encodeGuideline(points []geometry.Point, isFrontCamera bool) (string, error) {
	doc, err := json.Marshal(storedGuideline{Points: points, IsFrontCamera: isFrontCamera})
	if err != nil {
		return "", fmt.Errorf("encode guideline points: %w", err)
	}
	return string(doc), nil
}

// SetGuideline stores the alignment contour for a category, replacing
// any previous one wholesale. Points stay in the pixel space of the
// reference image; normalization happens at render time.
func SetGuideline(sqldb *sql.DB, categoryID string, points []geometry.Point, imageSize geometry.Size, isFrontCamera bool) (model.BodyGuideline, error) {
	if imageSize.Width <= 0 || imageSize.Height <= 0 {
		return model.BodyGuideline{}, fmt.Errorf("set guideline for %s: %w", categoryID, geometry.ErrInvalidGeometry)
	}
	if _, err := CategoryByID(sqldb, categoryID); err != nil {
		return model.BodyGuideline{}, err
	}

	doc, err := encodeGuideline(points, isFrontCamera)
	if err != nil {
		return model.BodyGuideline{}, err
	}
	now := time.Now()
	if _, err := sqldb.Exec(`
INSERT INTO body_guidelines(category_id, points_json, image_w, image_h, is_front_camera, created_at)
VALUES(?, ?, ?, ?, ?, ?)
ON CONFLICT(category_id) DO UPDATE SET
  points_json=excluded.points_json, image_w=excluded.image_w, image_h=excluded.image_h,
  is_front_camera=excluded.is_front_camera, created_at=excluded.created_at
`, categoryID, doc, imageSize.Width, imageSize.Height, boolToInt(isFrontCamera), now.Format(time.RFC3339)); err != nil {
		return model.BodyGuideline{}, fmt.Errorf("store guideline for %s: %w", categoryID, err)
	}

	return model.BodyGuideline{
		CategoryID:    categoryID,
		Points:        points,
		ImageSize:     imageSize,
		IsFrontCamera: isFrontCamera,
		CreatedAt:     now,
	}, nil
}

func GetGuideline(sqldb *sql.DB, categoryID string) (model.BodyGuideline, bool, error) {
	row := sqldb.QueryRow(`
SELECT category_id, points_json, image_w, image_h, is_front_camera, created_at
FROM body_guidelines WHERE category_id = ?
`, categoryID)

	var g model.BodyGuideline
	var doc string
	var isFront int
	var createdRaw string
	err := row.Scan(&g.CategoryID, &doc, &g.ImageSize.Width, &g.ImageSize.Height, &isFront, &createdRaw)
	if err == sql.ErrNoRows {
		return model.BodyGuideline{}, false, nil
	}
	if err != nil {
		return model.BodyGuideline{}, false, fmt.Errorf("scan guideline: %w", err)
	}

	var stored storedGuideline
	if err := json.Unmarshal([]byte(doc), &stored); err != nil {
		return model.BodyGuideline{}, false, fmt.Errorf("guideline for %s: %w", categoryID, ErrDecodeFailure)
	}
	g.Points = stored.Points
	g.IsFrontCamera = isFront == 1 || stored.IsFrontCamera
	if g.CreatedAt, err = time.Parse(time.RFC3339, createdRaw); err != nil {
		return model.BodyGuideline{}, false, fmt.Errorf("guideline created_at: %w", ErrDecodeFailure)
	}
	return g, true, nil
}

func ClearGuideline(sqldb *sql.DB, categoryID string) error {
	res, err := sqldb.Exec(`DELETE FROM body_guidelines WHERE category_id = ?`, categoryID)
	if err != nil {
		return fmt.Errorf("clear guideline for %s: %w", categoryID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no guideline for %s", categoryID)
	}
	return nil
}

// OverlayPoints projects a guideline onto a viewport for the camera
// overlay. Degenerate contours and viewports render nothing.
func OverlayPoints(g model.BodyGuideline, viewSize geometry.Size) []geometry.Point {
	if !geometry.Renderable(g.Points) {
		return nil
	}
	points, err := geometry.ScaleToFit(g.Points, g.ImageSize, viewSize)
	if err != nil {
		return nil
	}
	return points
}
