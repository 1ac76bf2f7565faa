package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/models"

	"github.com/mattn/go-sqlite3"
)

func (db *DB) CreateUser(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (name, email, created_at, updated_at) VALUES (?, ?, ?, ?)`
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, query, user.Name, user.Email, now, now)
	if err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("user with email %s: %w", user.Email, ErrDuplicateEmail)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now

	return nil
}

func (db *DB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	query := `SELECT id, name, email, created_at, updated_at FROM users WHERE id = ?`
	err := db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (db *DB) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	query := `SELECT id, name, email, created_at, updated_at FROM users ORDER BY id`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (db *DB) UpdateUser(ctx context.Context, user *models.User) error {
	query := `UPDATE users SET name = ?, email = ?, updated_at = ? WHERE id = ?`
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, query, user.Name, user.Email, now, user.ID)
	if err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("user with email %s: %w", user.Email, ErrDuplicateEmail)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("user %d: %w", user.ID, ErrNotFound)
	}
	user.UpdatedAt = now
	return nil
}

// DeleteUser удаляет пользователя; вещи и бронирования уходят каскадом.
func (db *DB) DeleteUser(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return nil
}

func isConstraintErr(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}
