package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/models"
)

const bookingColumns = `b.id, b.item_id, i.name, i.owner_id, b.booker_id, u.name,
                 b.start_date, b.end_date, b.status, b.created_at, b.updated_at, b.version`

const bookingJoins = `FROM bookings b
              JOIN items i ON i.id = b.item_id
              JOIN users u ON u.id = b.booker_id`

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (item_id, booker_id, start_date, end_date, status, created_at, updated_at, version)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, query,
		booking.ItemID,
		booking.BookerID,
		booking.Start.UTC(),
		booking.End.UTC(),
		booking.Status,
		now,
		now,
		1,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now
	booking.Version = 1

	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` ` + bookingJoins + ` WHERE b.id = ?`
	b := &models.Booking{}
	err := db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.ItemID, &b.ItemName, &b.ItemOwnerID, &b.BookerID, &b.BookerName,
		&b.Start, &b.End, &b.Status, &b.CreatedAt, &b.UpdatedAt, &b.Version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("booking %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return b, nil
}

// UpdateBookingStatusWithVersion переводит статус через optimistic-проверку
// версии; при конкурентном изменении возвращает ErrConcurrentModification.
func (db *DB) UpdateBookingStatusWithVersion(ctx context.Context, id, version int64, status string) error {
	query := `UPDATE bookings SET status = ?, version = version + 1, updated_at = ? WHERE id = ? AND version = ?`
	result, err := db.ExecContext(ctx, query, status, time.Now().UTC(), id, version)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrConcurrentModification
	}
	return nil
}

func (db *DB) ListBookingsForBooker(ctx context.Context, bookerID int64, state string, now time.Time, from, size int) ([]*models.Booking, error) {
	cond, condArgs := stateCondition(state, now)
	query := `SELECT ` + bookingColumns + ` ` + bookingJoins + `
              WHERE b.booker_id = ? AND ` + cond + `
              ORDER BY b.end_date DESC, b.id DESC LIMIT ? OFFSET ?`

	args := append([]interface{}{bookerID}, condArgs...)
	args = append(args, size, from)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list booker bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (db *DB) ListBookingsForOwner(ctx context.Context, ownerID int64, state string, now time.Time, from, size int) ([]*models.Booking, error) {
	cond, condArgs := stateCondition(state, now)
	query := `SELECT ` + bookingColumns + ` ` + bookingJoins + `
              WHERE i.owner_id = ? AND ` + cond + `
              ORDER BY b.end_date DESC, b.id DESC LIMIT ? OFFSET ?`

	args := append([]interface{}{ownerID}, condArgs...)
	args = append(args, size, from)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list owner bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// stateCondition возвращает SQL-условие классификации бронирований.
// Валидация состояния выполняется сервисом до обращения к хранилищу.
func stateCondition(state string, now time.Time) (string, []interface{}) {
	nowUTC := now.UTC()
	switch state {
	case models.SearchStatePast:
		return `b.end_date < ?`, []interface{}{nowUTC}
	case models.SearchStateFuture:
		return `b.start_date > ?`, []interface{}{nowUTC}
	case models.SearchStateCurrent:
		return `b.start_date <= ? AND b.end_date >= ?`, []interface{}{nowUTC, nowUTC}
	case models.SearchStateWaiting, models.SearchStateRejected:
		return `b.status = ?`, []interface{}{state}
	default: // ALL
		return `1 = 1`, nil
	}
}

func (db *DB) GetBookingsForItem(ctx context.Context, itemID int64) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` ` + bookingJoins + `
              WHERE b.item_id = ? ORDER BY b.start_date`
	rows, err := db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (db *DB) GetBookingsForItems(ctx context.Context, itemIDs []int64) (map[int64][]*models.Booking, error) {
	result := make(map[int64][]*models.Booking)
	if len(itemIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + bookingColumns + ` ` + bookingJoins + `
              WHERE b.item_id IN (` + placeholders(len(itemIDs)) + `) ORDER BY b.start_date`
	args := make([]interface{}, 0, len(itemIDs))
	for _, id := range itemIDs {
		args = append(args, id)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings for items: %w", err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		result[b.ItemID] = append(result[b.ItemID], b)
	}
	return result, nil
}

// HasQualifyingBooking проверяет наличие завершённого APPROVED-бронирования
// автора на вещь; это условие допуска к комментированию.
func (db *DB) HasQualifyingBooking(ctx context.Context, authorID, itemID int64, now time.Time) (bool, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE booker_id = ? AND item_id = ? AND status = ? AND end_date < ?`
	var count int
	err := db.QueryRowContext(ctx, query, authorID, itemID, models.StatusApproved, now.UTC()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check qualifying booking: %w", err)
	}
	return count > 0, nil
}

func (db *DB) GetBookingsByDateRange(ctx context.Context, start, end time.Time) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` ` + bookingJoins + `
              WHERE b.start_date >= ? AND b.start_date <= ? ORDER BY b.start_date`
	rows, err := db.QueryContext(ctx, query, start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings by date range: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func scanBookings(rows *sql.Rows) ([]*models.Booking, error) {
	var bookings []*models.Booking
	for rows.Next() {
		b := &models.Booking{}
		err := rows.Scan(
			&b.ID, &b.ItemID, &b.ItemName, &b.ItemOwnerID, &b.BookerID, &b.BookerName,
			&b.Start, &b.End, &b.Status, &b.CreatedAt, &b.UpdatedAt, &b.Version,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
