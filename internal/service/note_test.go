package service_test

import (
	"testing"
	"time"

	"github.com/lapsekit/lapse-cli/internal/model"
	"github.com/lapsekit/lapse-cli/internal/service"
)

func TestSetNoteUpsertsByDay(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	day := time.Date(2026, 5, 1, 7, 0, 0, 0, time.Local)
	first, err := service.SetNote(db, day, "felt strong today")
	if err != nil {
		t.Fatalf("set note: %v", err)
	}

	second, err := service.SetNote(db, day.Add(12*time.Hour), "legs were sore")
	if err != nil {
		t.Fatalf("update note: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected note update to keep id")
	}
	if second.Content != "legs were sore" {
		t.Fatalf("expected updated content, got %q", second.Content)
	}

	got, found, err := service.GetNote(db, day)
	if err != nil || !found {
		t.Fatalf("get note: found=%v err=%v", found, err)
	}
	if got.Content != "legs were sore" {
		t.Fatalf("expected latest content, got %q", got.Content)
	}
}

func TestDeleteNote(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	day := time.Date(2026, 5, 2, 7, 0, 0, 0, time.Local)
	if _, err := service.SetNote(db, day, "note"); err != nil {
		t.Fatalf("set note: %v", err)
	}
	if err := service.DeleteNote(db, day); err != nil {
		t.Fatalf("delete note: %v", err)
	}
	if _, found, err := service.GetNote(db, day); err != nil || found {
		t.Fatalf("expected note to be gone: found=%v err=%v", found, err)
	}
	if err := service.DeleteNote(db, day); err == nil {
		t.Fatalf("expected deleting an absent note to fail")
	}
}

func TestNoteIsEmpty(t *testing.T) {
	t.Parallel()

	if !service.NoteIsEmpty(model.DailyNote{Content: "   \n\t"}) {
		t.Fatalf("whitespace-only note should count as empty")
	}
	if service.NoteIsEmpty(model.DailyNote{Content: "x"}) {
		t.Fatalf("non-empty note reported empty")
	}
}
