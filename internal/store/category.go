// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"campusboard/internal/apperrors"
	"campusboard/internal/models"
)

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, parent_id, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(&c.ID, &c.Name, &c.ParentID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories in insertion order.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+categoryColumns+` FROM categories ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by id. Returns nil if not found.
func (s *CategoryStore) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it.
func (s *CategoryStore) Create(ctx context.Context, name string, parentID *int64) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, parent_id)
		VALUES ($1, $2)
		RETURNING `+categoryColumns,
		name, parentID,
	)
	c, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// Update modifies an existing category and returns the stored row.
func (s *CategoryStore) Update(ctx context.Context, c *models.Category) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE categories SET name = $1, parent_id = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+categoryColumns,
		c.Name, c.ParentID, c.ID,
	)
	out, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.New(apperrors.CodeNotFound, "category not found")
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return out, nil
}

// Delete removes a category by id. Children are re-parented to the root
// level by the ON DELETE SET NULL constraint.
func (s *CategoryStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.New(apperrors.CodeNotFound, "category not found")
	}
	return nil
}

// Tree loads the category snapshot and returns it as a forest.
func (s *CategoryStore) Tree(ctx context.Context) ([]models.CategoryNode, error) {
	flat, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return BuildCategoryTree(flat), nil
}

// Path loads the category snapshot and returns the root-to-target path.
func (s *CategoryStore) Path(ctx context.Context, id int64) ([]models.Category, error) {
	flat, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return BuildCategoryPath(flat, id)
}

// BuildCategoryTree groups a flat category snapshot into a forest.
// Children keep the snapshot's encounter order. A category whose parent id
// does not resolve within the snapshot is treated as a root, so a broken
// parent reference never hides a subtree.
func BuildCategoryTree(flat []models.Category) []models.CategoryNode {
	ids := make(map[int64]bool, len(flat))
	for _, c := range flat {
		ids[c.ID] = true
	}

	var recur func(c models.Category) models.CategoryNode
	recur = func(c models.Category) models.CategoryNode {
		node := models.CategoryNode{Category: c, Children: []models.CategoryNode{}}
		for _, child := range flat {
			if child.ParentID != nil && *child.ParentID == c.ID {
				node.Children = append(node.Children, recur(child))
			}
		}
		return node
	}

	roots := []models.CategoryNode{}
	for _, c := range flat {
		if c.ParentID == nil || !ids[*c.ParentID] {
			roots = append(roots, recur(c))
		}
	}
	return roots
}

// BuildCategoryPath walks parent references from the target category up to
// its root and returns the chain in root-to-target order. Fails with
// NotFound when the id is absent from the snapshot and with CycleDetected
// when the parent chain does not terminate within len(flat) steps.
func BuildCategoryPath(flat []models.Category, id int64) ([]models.Category, error) {
	byID := make(map[int64]models.Category, len(flat))
	for _, c := range flat {
		byID[c.ID] = c
	}

	current, ok := byID[id]
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotFound, "category not found")
	}

	path := []models.Category{current}
	for steps := 0; current.ParentID != nil; steps++ {
		if steps >= len(flat) {
			return nil, apperrors.New(apperrors.CodeCycleDetected, "category parent chain does not terminate")
		}
		parent, ok := byID[*current.ParentID]
		if !ok {
			// Unresolvable parent terminates the path, same as a root.
			break
		}
		path = append([]models.Category{parent}, path...)
		current = parent
	}
	return path, nil
}
