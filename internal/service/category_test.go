package service_test

import (
	"errors"
	"testing"

	"github.com/lapsekit/lapse-cli/internal/service"
)

func TestCreateCustomCategoryQuota(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	for _, name := range []string{"Side", "Back", "Flex"} {
		if _, err := service.CreateCustomCategory(db, name); err != nil {
			t.Fatalf("create category %q: %v", name, err)
		}
	}

	_, err := service.CreateCustomCategory(db, "One Too Many")
	if !errors.Is(err, service.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded on 4th custom category, got %v", err)
	}

	categories, err := service.ActiveCategories(db, true)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 4 {
		t.Fatalf("expected default + 3 customs, got %d", len(categories))
	}
}

func TestCategoryOrderingIsSequential(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	a, err := service.CreateCustomCategory(db, "Side")
	if err != nil {
		t.Fatalf("create side: %v", err)
	}
	b, err := service.CreateCustomCategory(db, "Back")
	if err != nil {
		t.Fatalf("create back: %v", err)
	}
	if b.Order != a.Order+1 {
		t.Fatalf("expected order %d after %d, got %d", a.Order+1, a.Order, b.Order)
	}

	categories, err := service.ActiveCategories(db, true)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	for i := 1; i < len(categories); i++ {
		if categories[i-1].Order >= categories[i].Order {
			t.Fatalf("categories not sorted by order: %v before %v", categories[i-1], categories[i])
		}
	}
}

func TestDefaultCategoryIsProtected(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.RenameCategory(db, service.DefaultCategoryID, "Main"); !errors.Is(err, service.ErrNotRenamable) {
		t.Fatalf("expected ErrNotRenamable for default category, got %v", err)
	}
	if err := service.DeactivateCategory(db, service.DefaultCategoryID); !errors.Is(err, service.ErrNotDeletable) {
		t.Fatalf("expected ErrNotDeletable for default category, got %v", err)
	}
}

func TestRenameAndDeactivateCustomCategory(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	c, err := service.CreateCustomCategory(db, "Side")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if err := service.RenameCategory(db, c.ID, "Left Side"); err != nil {
		t.Fatalf("rename category: %v", err)
	}
	renamed, err := service.CategoryByID(db, c.ID)
	if err != nil {
		t.Fatalf("reload category: %v", err)
	}
	if renamed.Name != "Left Side" {
		t.Fatalf("expected renamed category, got %q", renamed.Name)
	}

	if err := service.DeactivateCategory(db, c.ID); err != nil {
		t.Fatalf("deactivate category: %v", err)
	}
	categories, err := service.ActiveCategories(db, true)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	for _, got := range categories {
		if got.ID == c.ID {
			t.Fatalf("deactivated category still listed as active")
		}
	}
}

func TestNonPremiumSeesOnlyDefaultCategory(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.CreateCustomCategory(db, "Side"); err != nil {
		t.Fatalf("create category: %v", err)
	}

	free, err := service.ActiveCategories(db, false)
	if err != nil {
		t.Fatalf("list categories (free): %v", err)
	}
	if len(free) != 1 || !free[0].IsDefault {
		t.Fatalf("expected only default category for non-premium, got %v", free)
	}

	// Entitlement restored: the custom category is still there.
	premium, err := service.ActiveCategories(db, true)
	if err != nil {
		t.Fatalf("list categories (premium): %v", err)
	}
	if len(premium) != 2 {
		t.Fatalf("expected custom category to be recoverable, got %d categories", len(premium))
	}
}

func TestCategorySlugNeverReusesDefaultID(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	c, err := service.CreateCustomCategory(db, "Front")
	if err != nil {
		t.Fatalf("create category named like default: %v", err)
	}
	if c.ID == service.DefaultCategoryID {
		t.Fatalf("custom category must not take the reserved id %q", service.DefaultCategoryID)
	}
}
