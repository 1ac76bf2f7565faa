package database

import (
	"context"
	"database/sql"
	"fmt"

	"shareit/internal/models"
)

func (db *DB) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `INSERT INTO comments (item_id, author_id, text, created) VALUES (?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		comment.ItemID,
		comment.AuthorID,
		comment.Text,
		comment.Created.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	comment.ID = id

	return nil
}

func (db *DB) GetCommentsForItem(ctx context.Context, itemID int64) ([]*models.Comment, error) {
	query := `SELECT c.id, c.item_id, c.author_id, u.name, c.text, c.created
              FROM comments c
              JOIN users u ON u.id = c.author_id
              WHERE c.item_id = ? ORDER BY c.created`
	rows, err := db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item comments: %w", err)
	}
	defer rows.Close()

	return scanComments(rows)
}

func (db *DB) GetCommentsForItems(ctx context.Context, itemIDs []int64) (map[int64][]*models.Comment, error) {
	result := make(map[int64][]*models.Comment)
	if len(itemIDs) == 0 {
		return result, nil
	}

	query := `SELECT c.id, c.item_id, c.author_id, u.name, c.text, c.created
              FROM comments c
              JOIN users u ON u.id = c.author_id
              WHERE c.item_id IN (` + placeholders(len(itemIDs)) + `) ORDER BY c.created`
	args := make([]interface{}, 0, len(itemIDs))
	for _, id := range itemIDs {
		args = append(args, id)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments for items: %w", err)
	}
	defer rows.Close()

	comments, err := scanComments(rows)
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		result[c.ItemID] = append(result[c.ItemID], c)
	}
	return result, nil
}

func scanComments(rows *sql.Rows) ([]*models.Comment, error) {
	var comments []*models.Comment
	for rows.Next() {
		c := &models.Comment{}
		if err := rows.Scan(&c.ID, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Text, &c.Created); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
