package service_test

import (
	"errors"
	"testing"

	"github.com/lapsekit/lapse-cli/internal/geometry"
	"github.com/lapsekit/lapse-cli/internal/model"
	"github.com/lapsekit/lapse-cli/internal/service"
)

func portraitContour() []geometry.Point {
	return []geometry.Point{
		{X: 540, Y: 200},
		{X: 300, Y: 900},
		{X: 780, Y: 900},
		{X: 540, Y: 1700},
	}
}

func TestGuidelineRoundTrip(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	imageSize := geometry.Size{Width: 1080, Height: 1920}
	if _, err := service.SetGuideline(db, service.DefaultCategoryID, portraitContour(), imageSize, true); err != nil {
		t.Fatalf("set guideline: %v", err)
	}

	g, found, err := service.GetGuideline(db, service.DefaultCategoryID)
	if err != nil || !found {
		t.Fatalf("get guideline: found=%v err=%v", found, err)
	}
	if len(g.Points) != 4 {
		t.Fatalf("expected 4 points back, got %d", len(g.Points))
	}
	if g.Points[0].X != 540 || g.Points[0].Y != 200 {
		t.Fatalf("first point drifted: %v", g.Points[0])
	}
	if !g.IsFrontCamera {
		t.Fatalf("expected front camera flag to persist")
	}
	if g.ImageSize != imageSize {
		t.Fatalf("expected image size %v, got %v", imageSize, g.ImageSize)
	}
}

func TestSetGuidelineReplacesWholesale(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	imageSize := geometry.Size{Width: 1080, Height: 1920}
	if _, err := service.SetGuideline(db, service.DefaultCategoryID, portraitContour(), imageSize, false); err != nil {
		t.Fatalf("first set: %v", err)
	}

	replacement := []geometry.Point{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}
	if _, err := service.SetGuideline(db, service.DefaultCategoryID, replacement, imageSize, false); err != nil {
		t.Fatalf("second set: %v", err)
	}

	g, _, err := service.GetGuideline(db, service.DefaultCategoryID)
	if err != nil {
		t.Fatalf("get guideline: %v", err)
	}
	if len(g.Points) != 3 || g.Points[0].X != 1 {
		t.Fatalf("expected wholesale replacement, got %v", g.Points)
	}
}

func TestSetGuidelineRejectsDegenerateImage(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	_, err := service.SetGuideline(db, service.DefaultCategoryID, portraitContour(), geometry.Size{Width: 0, Height: 1920}, false)
	if !errors.Is(err, geometry.ErrInvalidGeometry) {
		t.Fatalf("expected ErrInvalidGeometry, got %v", err)
	}
}

func TestClearGuideline(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.SetGuideline(db, service.DefaultCategoryID, portraitContour(), geometry.Size{Width: 1080, Height: 1920}, false); err != nil {
		t.Fatalf("set guideline: %v", err)
	}
	if err := service.ClearGuideline(db, service.DefaultCategoryID); err != nil {
		t.Fatalf("clear guideline: %v", err)
	}
	if _, found, err := service.GetGuideline(db, service.DefaultCategoryID); err != nil || found {
		t.Fatalf("expected guideline to be gone: found=%v err=%v", found, err)
	}
	if err := service.ClearGuideline(db, service.DefaultCategoryID); err == nil {
		t.Fatalf("expected clearing an absent guideline to fail")
	}
}

func TestGuidelineDecodeToleratesMissingCameraFlag(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	// Older records stored the bare points array without isFrontCamera.
	if _, err := db.Exec(`
INSERT INTO body_guidelines(category_id, points_json, image_w, image_h, is_front_camera, created_at)
VALUES(?, ?, 1080, 1920, 0, '2026-01-01T00:00:00Z')
`, service.DefaultCategoryID, `{"points":[{"x":1,"y":2},{"x":3,"y":4},{"x":5,"y":6}]}`); err != nil {
		t.Fatalf("seed legacy row: %v", err)
	}

	g, found, err := service.GetGuideline(db, service.DefaultCategoryID)
	if err != nil || !found {
		t.Fatalf("get legacy guideline: found=%v err=%v", found, err)
	}
	if g.IsFrontCamera {
		t.Fatalf("absent camera flag should read as false")
	}
	if len(g.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(g.Points))
	}
}

func TestGuidelineDecodeFailureOnCorruptJSON(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := db.Exec(`
INSERT INTO body_guidelines(category_id, points_json, image_w, image_h, is_front_camera, created_at)
VALUES(?, 'not json', 1080, 1920, 0, '2026-01-01T00:00:00Z')
`, service.DefaultCategoryID); err != nil {
		t.Fatalf("seed corrupt row: %v", err)
	}

	_, _, err := service.GetGuideline(db, service.DefaultCategoryID)
	if !errors.Is(err, service.ErrDecodeFailure) {
		t.Fatalf("expected ErrDecodeFailure, got %v", err)
	}
}

func TestOverlayPointsScalesIntoViewport(t *testing.T) {
	t.Parallel()

	g := model.BodyGuideline{
		Points:    portraitContour(),
		ImageSize: geometry.Size{Width: 1080, Height: 1920},
	}
	points := service.OverlayPoints(g, geometry.Size{Width: 540, Height: 960})
	if len(points) != 4 {
		t.Fatalf("expected 4 overlay points, got %d", len(points))
	}
	// Half-size viewport of the same aspect ratio halves every coordinate.
	if points[0].X != 270 || points[0].Y != 100 {
		t.Fatalf("expected first point (270,100), got %v", points[0])
	}
}

func TestOverlayPointsNilForDegenerateContour(t *testing.T) {
	t.Parallel()

	g := model.BodyGuideline{
		Points:    []geometry.Point{{X: 1, Y: 1}, {X: 2, Y: 2}},
		ImageSize: geometry.Size{Width: 1080, Height: 1920},
	}
	if points := service.OverlayPoints(g, geometry.Size{Width: 540, Height: 960}); points != nil {
		t.Fatalf("two points are not renderable, got %v", points)
	}

	g.Points = portraitContour()
	if points := service.OverlayPoints(g, geometry.Size{Width: 0, Height: 960}); points != nil {
		t.Fatalf("degenerate viewport should render nothing, got %v", points)
	}
}
