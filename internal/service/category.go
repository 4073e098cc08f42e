package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lapsekit/lapse-cli/internal/db"
	"github.com/lapsekit/lapse-cli/internal/model"
)

// DefaultCategoryID re-exports the reserved id of the seeded category.
const DefaultCategoryID = db.DefaultCategoryID

// CreateCustomCategory adds a category while under the active-custom
// quota. The new category takes order max(order)+1 and a slug id; the
// default id is reserved and never reused.
func CreateCustomCategory(sqldb *sql.DB, name string) (model.Category, error) {
	name = normalizeName(name)
	if name == "" {
		return model.Category{}, fmt.Errorf("category name is required")
	}

	var active int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM categories WHERE is_default = 0 AND is_active = 1`).Scan(&active); err != nil {
		return model.Category{}, fmt.Errorf("count active custom categories: %w", err)
	}
	if active >= MaxCustomCategories {
		return model.Category{}, fmt.Errorf("create category %q: %w", name, ErrQuotaExceeded)
	}

	var maxOrder int
	if err := sqldb.QueryRow(`SELECT IFNULL(MAX(ord), 0) FROM categories WHERE is_active = 1`).Scan(&maxOrder); err != nil {
		return model.Category{}, fmt.Errorf("resolve max category order: %w", err)
	}

	id, err := uniqueCategoryID(sqldb, name)
	if err != nil {
		return model.Category{}, err
	}

	if _, err := sqldb.Exec(`
INSERT INTO categories(id, name, ord, is_default, is_active) VALUES(?, ?, ?, 0, 1)
`, id, name, maxOrder+1); err != nil {
		return model.Category{}, fmt.Errorf("add category %q: %w", name, err)
	}
	return CategoryByID(sqldb, id)
}

func RenameCategory(sqldb *sql.DB, id, newName string) error {
	newName = normalizeName(newName)
	if newName == "" {
		return fmt.Errorf("new category name is required")
	}
	c, err := CategoryByID(sqldb, id)
	if err != nil {
		return err
	}
	if c.IsDefault {
		return fmt.Errorf("rename category %q: %w", id, ErrNotRenamable)
	}
	if _, err := sqldb.Exec(`UPDATE categories SET name = ? WHERE id = ?`, newName, id); err != nil {
		return fmt.Errorf("rename category %q: %w", id, err)
	}
	return nil
}

// DeactivateCategory soft-deletes a category. Stored photos keep their
// category id and remain queryable; nothing cascades.
func DeactivateCategory(sqldb *sql.DB, id string) error {
	c, err := CategoryByID(sqldb, id)
	if err != nil {
		return err
	}
	if c.IsDefault {
		return fmt.Errorf("deactivate category %q: %w", id, ErrNotDeletable)
	}
	if _, err := sqldb.Exec(`UPDATE categories SET is_active = 0 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deactivate category %q: %w", id, err)
	}
	return nil
}

// ActiveCategories returns categories in display order. Gating is
// applied at read time: without the premium entitlement only the
// default category is visible, so customs created under a lapsed
// subscription stay recoverable.
func ActiveCategories(sqldb *sql.DB, premiumEntitled bool) ([]model.Category, error) {
	query := `SELECT id, name, ord, is_default, is_active, created_at FROM categories WHERE is_active = 1`
	if !premiumEntitled {
		query += ` AND is_default = 1`
	}
	query += ` ORDER BY ord ASC`

	rows, err := sqldb.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]model.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

func CategoryByID(sqldb *sql.DB, id string) (model.Category, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Category{}, fmt.Errorf("category id is required")
	}
	row := sqldb.QueryRow(`SELECT id, name, ord, is_default, is_active, created_at FROM categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return model.Category{}, fmt.Errorf("category %q not found", id)
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (model.Category, error) {
	var c model.Category
	var isDefault, isActive int
	if err := row.Scan(&c.ID, &c.Name, &c.Order, &isDefault, &isActive, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return model.Category{}, err
		}
		return model.Category{}, fmt.Errorf("scan category: %w", err)
	}
	c.IsDefault = isDefault == 1
	c.IsActive = isActive == 1
	return c, nil
}

func uniqueCategoryID(sqldb *sql.DB, name string) (string, error) {
	id := slugify(name)
	if id == "" || id == DefaultCategoryID {
		id = fmt.Sprintf("%s-%s", id, shortID())
		id = strings.Trim(id, "-")
	}
	var exists int
	err := sqldb.QueryRow(`SELECT 1 FROM categories WHERE id = ?`, id).Scan(&exists)
	if err == sql.ErrNoRows {
		return id, nil
	}
	if err != nil {
		return "", fmt.Errorf("check category id %q: %w", id, err)
	}
	return fmt.Sprintf("%s-%s", id, shortID()), nil
}

func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

func shortID() string {
	return uuid.New().String()[:8]
}
