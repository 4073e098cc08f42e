package storage_test

import (
	"errors"
	"testing"

	"github.com/lapsekit/lapse-cli/internal/storage"
)

func TestFileStoreSaveLoadDelete(t *testing.T) {
	t.Parallel()

	store := storage.NewFileStore(t.TempDir())
	content := []byte("jpeg bytes")

	if err := store.Save("front", "a.jpg", content); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := store.Load("front", "a.jpg")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(loaded) != string(content) {
		t.Fatalf("loaded bytes mismatch: got %q", loaded)
	}

	if err := store.Delete("front", "a.jpg"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Load("front", "a.jpg"); !errors.Is(err, storage.ErrMissing) {
		t.Fatalf("expected ErrMissing after delete, got %v", err)
	}

	// Deleting an absent key stays idempotent.
	if err := store.Delete("front", "a.jpg"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestFileStoreNamespacesByCategory(t *testing.T) {
	t.Parallel()

	store := storage.NewFileStore(t.TempDir())
	if err := store.Save("front", "x.jpg", []byte("front")); err != nil {
		t.Fatalf("save front: %v", err)
	}
	if err := store.Save("side", "x.jpg", []byte("side")); err != nil {
		t.Fatalf("save side: %v", err)
	}

	front, err := store.Load("front", "x.jpg")
	if err != nil {
		t.Fatalf("load front: %v", err)
	}
	side, err := store.Load("side", "x.jpg")
	if err != nil {
		t.Fatalf("load side: %v", err)
	}
	if string(front) == string(side) {
		t.Fatalf("expected category-scoped storage, got identical bytes")
	}
}

func TestCaptureTimeMissesOnNonImageBytes(t *testing.T) {
	t.Parallel()

	if _, ok := storage.CaptureTime([]byte("not an image")); ok {
		t.Fatalf("expected no capture time for junk bytes")
	}
}
