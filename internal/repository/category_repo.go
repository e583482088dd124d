package repository

import (
	"context"
	"fmt"

	"auctionary/internal/auctionerrors"
	model "auctionary/internal/models"
)

// ListCategories returns every category sorted by name
func (r *SQLRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	return r.listCategories(ctx, `
		SELECT category_id, name, description
		FROM categories
		ORDER BY name ASC`)
}

// GetCategoriesForItem returns the item's categories sorted by name
func (r *SQLRepo) GetCategoriesForItem(ctx context.Context, itemID int64) ([]model.Category, error) {
	return r.listCategories(ctx, `
		SELECT c.category_id, c.name, c.description
		FROM categories c
		JOIN item_categories ic ON ic.category_id = c.category_id
		WHERE ic.item_id = ?
		ORDER BY c.name ASC`, itemID)
}

// ReplaceItemCategories swaps the item's category set for categoryIDs in one transaction
func (r *SQLRepo) ReplaceItemCategories(ctx context.Context, itemID int64, categoryIDs []int64) error {
	err := r.db.WithTx(ctx, func(c conn) error {
		if _, err := c.exec(ctx, `DELETE FROM item_categories WHERE item_id = ?`, itemID); err != nil {
			return err
		}

		seen := make(map[int64]struct{}, len(categoryIDs))
		for _, id := range categoryIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}

			_, err := c.exec(ctx, `INSERT INTO item_categories (item_id, category_id) VALUES (?, ?)`, itemID, id)
			if err != nil {
				if isForeignKeyViolation(err) {
					return fmt.Errorf("category %d: %w", id, auctionerrors.ErrInvalidCategory)
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace categories for item %d: %w", itemID, err)
	}
	return nil
}

func (r *SQLRepo) listCategories(ctx context.Context, query string, args ...any) ([]model.Category, error) {
	rows, err := r.db.conn().query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.CategoryID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}
