package tests

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDayInTheLifeFlow(t *testing.T) {
	binPath := buildLapseBinary(t)
	dbPath := filepath.Join(t.TempDir(), "lapse.db")

	_, stderr, exit := runLapse(t, binPath, dbPath, "init")
	if exit != 0 {
		t.Fatalf("init failed: exit=%d stderr=%s", exit, stderr)
	}

	_, stderr, exit = runLapse(t, binPath, dbPath,
		"config", "set",
		"--premium", "true",
		"--unit", "lbs",
	)
	if exit != 0 {
		t.Fatalf("config set failed: exit=%d stderr=%s", exit, stderr)
	}

	_, stderr, exit = runLapse(t, binPath, dbPath, "category", "add", "Side")
	if exit != 0 {
		t.Fatalf("category add failed: exit=%d stderr=%s", exit, stderr)
	}
	stdout, stderr, exit := runLapse(t, binPath, dbPath, "category", "list")
	if exit != 0 {
		t.Fatalf("category list failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "Side") || !strings.Contains(stdout, "front") {
		t.Fatalf("expected both categories in listing, got: %s", stdout)
	}

	img := writeTempImage(t, "morning.jpg")
	_, stderr, exit = runLapse(t, binPath, dbPath,
		"photo", "add", img,
		"--date", "2026-02-20",
		"--face-blurred",
	)
	if exit != 0 {
		t.Fatalf("photo add failed: exit=%d stderr=%s", exit, stderr)
	}

	retake := writeTempImage(t, "retake.jpg")
	stdout, stderr, exit = runLapse(t, binPath, dbPath,
		"photo", "replace", retake,
		"--date", "2026-02-20",
	)
	if exit != 0 {
		t.Fatalf("photo replace failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "Replaced photo for 2026-02-20/front") {
		t.Fatalf("unexpected replace output: %s", stdout)
	}

	_, stderr, exit = runLapse(t, binPath, dbPath,
		"weight", "add",
		"--weight", "70.5",
		"--unit", "kg",
		"--body-fat", "19",
		"--date", "2026-02-20",
		"--link-category", "front",
	)
	if exit != 0 {
		t.Fatalf("weight add failed: exit=%d stderr=%s", exit, stderr)
	}
	_, stderr, exit = runLapse(t, binPath, dbPath,
		"weight", "add",
		"--weight", "70.1",
		"--date", "2026-02-21",
	)
	if exit != 0 {
		t.Fatalf("second weight add failed: exit=%d stderr=%s", exit, stderr)
	}

	stdout, stderr, exit = runLapse(t, binPath, dbPath,
		"weight", "show",
		"--date", "2026-02-20",
		"--unit", "lbs",
	)
	if exit != 0 {
		t.Fatalf("weight show failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "155.43 lbs") {
		t.Fatalf("expected lbs conversion in output, got: %s", stdout)
	}

	stdout, stderr, exit = runLapse(t, binPath, dbPath,
		"weight", "list",
		"--window", "0",
		"--unit", "kg",
	)
	if exit != 0 {
		t.Fatalf("weight list failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "2026-02-20") || !strings.Contains(stdout, "2026-02-21") {
		t.Fatalf("expected both entries in listing, got: %s", stdout)
	}

	_, stderr, exit = runLapse(t, binPath, dbPath,
		"note", "set", "felt", "strong", "today",
		"--date", "2026-02-20",
	)
	if exit != 0 {
		t.Fatalf("note set failed: exit=%d stderr=%s", exit, stderr)
	}
	stdout, stderr, exit = runLapse(t, binPath, dbPath, "note", "show", "--date", "2026-02-20")
	if exit != 0 {
		t.Fatalf("note show failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "felt strong today") {
		t.Fatalf("expected note content in output, got: %s", stdout)
	}

	_, stderr, exit = runLapse(t, binPath, dbPath,
		"guideline", "set",
		"--points", "540,200;300,900;780,900;540,1700",
		"--width", "1080",
		"--height", "1920",
		"--front-camera",
	)
	if exit != 0 {
		t.Fatalf("guideline set failed: exit=%d stderr=%s", exit, stderr)
	}
	stdout, stderr, exit = runLapse(t, binPath, dbPath,
		"guideline", "show",
		"--view-width", "540",
		"--view-height", "960",
	)
	if exit != 0 {
		t.Fatalf("guideline show failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "Camera: front") {
		t.Fatalf("expected front camera flag in output, got: %s", stdout)
	}
	if !strings.Contains(stdout, "270.00,100.00") {
		t.Fatalf("expected contour fitted to half-size viewport, got: %s", stdout)
	}

	stdout, stderr, exit = runLapse(t, binPath, dbPath, "chart", "trend", "--window", "0", "--unit", "kg")
	if exit != 0 {
		t.Fatalf("chart trend failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "Entries: 2 (2026-02-20 to 2026-02-21)") {
		t.Fatalf("unexpected trend header: %s", stdout)
	}

	stdout, stderr, exit = runLapse(t, binPath, dbPath,
		"chart", "select",
		"--fraction", "0",
		"--window", "0",
		"--unit", "kg",
	)
	if exit != 0 {
		t.Fatalf("chart select failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "2026-02-20") || !strings.Contains(stdout, "70.50") {
		t.Fatalf("expected snap to the first entry, got: %s", stdout)
	}

	stdout, stderr, exit = runLapse(t, binPath, dbPath,
		"chart", "page",
		"--date", "2026-02-20",
		"--forward",
		"--window", "0",
	)
	if exit != 0 {
		t.Fatalf("chart page failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "2026-02-21") {
		t.Fatalf("expected page forward to next day, got: %s", stdout)
	}

	exportPath := filepath.Join(t.TempDir(), "export.json")
	_, stderr, exit = runLapse(t, binPath, dbPath, "export", "--out", exportPath)
	if exit != 0 {
		t.Fatalf("export failed: exit=%d stderr=%s", exit, stderr)
	}

	freshDB := filepath.Join(t.TempDir(), "fresh.db")
	initDB(t, binPath, freshDB)
	stdout, stderr, exit = runLapse(t, binPath, freshDB, "import", exportPath, "--mode", "merge")
	if exit != 0 {
		t.Fatalf("import failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "2 entries") {
		t.Fatalf("unexpected import summary: %s", stdout)
	}

	stdout, stderr, exit = runLapse(t, binPath, freshDB, "category", "list")
	if exit != 0 {
		t.Fatalf("category list on fresh db failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "Side") {
		t.Fatalf("expected imported category in fresh db, got: %s", stdout)
	}
}
