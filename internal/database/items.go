package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/models"
)

func (db *DB) CreateItem(ctx context.Context, item *models.Item) error {
	query := `INSERT INTO items (owner_id, name, description, available, request_id, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, query,
		item.OwnerID,
		item.Name,
		item.Description,
		item.Available,
		item.RequestID,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	item.ID = id
	item.CreatedAt = now
	item.UpdatedAt = now

	return nil
}

func (db *DB) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	var item models.Item
	query := `SELECT id, owner_id, name, description, available, request_id, created_at, updated_at
              FROM items WHERE id = ?`
	err := db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.OwnerID, &item.Name, &item.Description,
		&item.Available, &item.RequestID, &item.CreatedAt, &item.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &item, nil
}

func (db *DB) UpdateItem(ctx context.Context, item *models.Item) error {
	query := `UPDATE items SET name = ?, description = ?, available = ?, updated_at = ? WHERE id = ?`
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, query, item.Name, item.Description, item.Available, now, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("item %d: %w", item.ID, ErrNotFound)
	}
	item.UpdatedAt = now
	return nil
}

func (db *DB) GetItemsByOwner(ctx context.Context, ownerID int64, from, size int) ([]*models.Item, error) {
	query := `SELECT id, owner_id, name, description, available, request_id, created_at, updated_at
              FROM items WHERE owner_id = ? ORDER BY id LIMIT ? OFFSET ?`
	rows, err := db.QueryContext(ctx, query, ownerID, size, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get owner items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// SearchAvailableItems ищет подстроку в имени или описании без учёта регистра
// среди доступных вещей.
func (db *DB) SearchAvailableItems(ctx context.Context, text string, from, size int) ([]*models.Item, error) {
	pattern := "%" + text + "%"
	query := `SELECT id, owner_id, name, description, available, request_id, created_at, updated_at
              FROM items
              WHERE available = 1 AND (name LIKE ? COLLATE NOCASE OR description LIKE ? COLLATE NOCASE)
              ORDER BY id LIMIT ? OFFSET ?`
	rows, err := db.QueryContext(ctx, query, pattern, pattern, size, from)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func (db *DB) GetItemsForRequests(ctx context.Context, requestIDs []int64) (map[int64][]*models.Item, error) {
	result := make(map[int64][]*models.Item)
	if len(requestIDs) == 0 {
		return result, nil
	}

	query := `SELECT id, owner_id, name, description, available, request_id, created_at, updated_at
              FROM items WHERE request_id IN (` + placeholders(len(requestIDs)) + `) ORDER BY id`
	args := make([]interface{}, 0, len(requestIDs))
	for _, id := range requestIDs {
		args = append(args, id)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get items for requests: %w", err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.RequestID == nil {
			continue
		}
		result[*item.RequestID] = append(result[*item.RequestID], item)
	}
	return result, nil
}

func scanItems(rows *sql.Rows) ([]*models.Item, error) {
	var items []*models.Item
	for rows.Next() {
		item := &models.Item{}
		err := rows.Scan(
			&item.ID, &item.OwnerID, &item.Name, &item.Description,
			&item.Available, &item.RequestID, &item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
