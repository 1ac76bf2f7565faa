package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shareit/internal/models"
)

func (db *DB) CreateItemRequest(ctx context.Context, request *models.ItemRequest) error {
	query := `INSERT INTO item_requests (requester_id, description, created) VALUES (?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		request.RequesterID,
		request.Description,
		request.Created.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create item request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	request.ID = id

	return nil
}

func (db *DB) GetItemRequestByID(ctx context.Context, id int64) (*models.ItemRequest, error) {
	var request models.ItemRequest
	query := `SELECT id, requester_id, description, created FROM item_requests WHERE id = ?`
	err := db.QueryRowContext(ctx, query, id).Scan(
		&request.ID, &request.RequesterID, &request.Description, &request.Created,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item request %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item request: %w", err)
	}
	return &request, nil
}

func (db *DB) GetItemRequestsByUser(ctx context.Context, userID int64) ([]*models.ItemRequest, error) {
	query := `SELECT id, requester_id, description, created
              FROM item_requests WHERE requester_id = ? ORDER BY created DESC`
	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user requests: %w", err)
	}
	defer rows.Close()

	return scanItemRequests(rows)
}

// GetOtherUsersItemRequests возвращает чужие заявки, свежие первыми.
func (db *DB) GetOtherUsersItemRequests(ctx context.Context, userID int64, from, size int) ([]*models.ItemRequest, error) {
	query := `SELECT id, requester_id, description, created
              FROM item_requests WHERE requester_id != ?
              ORDER BY created DESC LIMIT ? OFFSET ?`
	rows, err := db.QueryContext(ctx, query, userID, size, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get other users requests: %w", err)
	}
	defer rows.Close()

	return scanItemRequests(rows)
}

func scanItemRequests(rows *sql.Rows) ([]*models.ItemRequest, error) {
	var requests []*models.ItemRequest
	for rows.Next() {
		r := &models.ItemRequest{}
		if err := rows.Scan(&r.ID, &r.RequesterID, &r.Description, &r.Created); err != nil {
			return nil, fmt.Errorf("failed to scan item request: %w", err)
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}
