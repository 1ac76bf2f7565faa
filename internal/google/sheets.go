package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"shareit/internal/models"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ErrRowNotFound возвращается, когда строка бронирования не найдена в таблице.
var ErrRowNotFound = errors.New("booking row not found")

// SheetsService зеркалирует бронирования в Google-таблицу.
type SheetsService struct {
	service         *sheets.Service
	bookingsSheetID string
	rowCache        map[int64]int
	cacheMu         sync.RWMutex
}

func NewSheetsService(credentialsFile, bookingsSheetID string) (*SheetsService, error) {
	ctx := context.Background()

	// Читаем файл учетных данных сервисного аккаунта
	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %v", err)
	}

	config, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %v", err)
	}

	client := config.Client(ctx)

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %v", err)
	}

	service := &SheetsService{
		service:         srv,
		bookingsSheetID: bookingsSheetID,
		rowCache:        make(map[int64]int),
	}

	// Прогреваем кэш строк в фоне
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		service.WarmUpCache(ctx)
	}()

	return service, nil
}

// TestConnection проверяет доступность таблицы
func (s *SheetsService) TestConnection(ctx context.Context) error {
	_, err := s.service.Spreadsheets.Values.Get(s.bookingsSheetID, "Bookings!A1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("connection test failed: %v", err)
	}
	return nil
}

// GetServiceAccountEmail возвращает email сервисного аккаунта
func GetServiceAccountEmail(credentialsFile string) (string, error) {
	file, err := os.ReadFile(credentialsFile)
	if err != nil {
		return "", err
	}

	var creds struct {
		ClientEmail string `json:"client_email"`
	}

	if err := json.Unmarshal(file, &creds); err != nil {
		return "", err
	}

	return creds.ClientEmail, nil
}

// WarmUpCache populates the row index cache by reading the entire ID column.
func (s *SheetsService) WarmUpCache(ctx context.Context) error {
	resp, err := s.service.Spreadsheets.Values.Get(s.bookingsSheetID, "Bookings!A:A").Context(ctx).Do()
	if err != nil {
		return err
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.rowCache = make(map[int64]int)

	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		var id int64
		switch v := row[0].(type) {
		case float64:
			id = int64(v)
		case string:
			fmt.Sscanf(v, "%d", &id)
		}
		if id > 0 {
			s.rowCache[id] = i + 1
		}
	}
	return nil
}

// AppendBooking добавляет строку бронирования в конец листа.
func (s *SheetsService) AppendBooking(ctx context.Context, booking *models.Booking) error {
	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{bookingRowValues(booking)},
	}

	_, err := s.service.Spreadsheets.Values.Append(s.bookingsSheetID, "Bookings!A:A", valueRange).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()

	return err
}

// UpsertBooking updates an existing booking row or appends a new one if not found.
func (s *SheetsService) UpsertBooking(ctx context.Context, booking *models.Booking) error {
	if booking == nil {
		return fmt.Errorf("booking is nil")
	}

	rowIdx, err := s.FindBookingRow(ctx, booking.ID)
	if err != nil {
		if errors.Is(err, ErrRowNotFound) {
			return s.AppendBooking(ctx, booking)
		}
		return err
	}

	rangeData := fmt.Sprintf("Bookings!A%d:J%d", rowIdx, rowIdx)
	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{bookingRowValues(booking)},
	}

	_, err = s.service.Spreadsheets.Values.Update(s.bookingsSheetID, rangeData, valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

// DeleteBookingRow removes the row that corresponds to bookingID.
func (s *SheetsService) DeleteBookingRow(ctx context.Context, bookingID int64) error {
	rowIdx, err := s.FindBookingRow(ctx, bookingID)
	if err != nil {
		return err
	}

	rangeData := fmt.Sprintf("Bookings!A%d:J%d", rowIdx, rowIdx)
	_, err = s.service.Spreadsheets.Values.Clear(s.bookingsSheetID, rangeData, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err == nil {
		s.deleteCacheRow(bookingID)
	}
	return err
}

// UpdateBookingStatus updates status (and UpdatedAt) for a booking row.
func (s *SheetsService) UpdateBookingStatus(ctx context.Context, bookingID int64, status string) error {
	rowIdx, err := s.FindBookingRow(ctx, bookingID)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format("2006-01-02 15:04:05")

	statusRange := fmt.Sprintf("Bookings!G%d:G%d", rowIdx, rowIdx)
	_, err = s.service.Spreadsheets.Values.Update(s.bookingsSheetID, statusRange, &sheets.ValueRange{
		Values: [][]interface{}{{status}},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return err
	}

	updatedRange := fmt.Sprintf("Bookings!J%d:J%d", rowIdx, rowIdx)
	_, err = s.service.Spreadsheets.Values.Update(s.bookingsSheetID, updatedRange, &sheets.ValueRange{
		Values: [][]interface{}{{now}},
	}).ValueInputOption("RAW").Context(ctx).Do()
	return err
}

// FindBookingRow locates row index (1-based) for booking_id in column A with cache.
func (s *SheetsService) FindBookingRow(ctx context.Context, bookingID int64) (int, error) {
	if bookingID == 0 {
		return 0, fmt.Errorf("booking id is required")
	}

	if row, ok := s.getCachedRow(bookingID); ok {
		return row, nil
	}

	resp, err := s.service.Spreadsheets.Values.Get(s.bookingsSheetID, "Bookings!A:A").Context(ctx).Do()
	if err != nil {
		return 0, err
	}

	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		switch v := row[0].(type) {
		case float64:
			if int64(v) == bookingID {
				rowIdx := i + 1 // Values are zero-based; sheet rows are 1-based
				s.setCachedRow(bookingID, rowIdx)
				return rowIdx, nil
			}
		case string:
			if v == fmt.Sprintf("%d", bookingID) {
				rowIdx := i + 1
				s.setCachedRow(bookingID, rowIdx)
				return rowIdx, nil
			}
		}
	}

	return 0, ErrRowNotFound
}

func (s *SheetsService) getCachedRow(id int64) (int, bool) {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	row, ok := s.rowCache[id]
	return row, ok
}

func (s *SheetsService) setCachedRow(id int64, row int) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.rowCache[id] = row
}

func (s *SheetsService) deleteCacheRow(id int64) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	delete(s.rowCache, id)
}

// ClearCache clears the row index cache.
func (s *SheetsService) ClearCache() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.rowCache = make(map[int64]int)
}

// Колонки: A id, B item_id, C item_name, D booker_id, E booker_name,
// F даты аренды, G статус, H owner_id, I created, J updated.
func bookingRowValues(booking *models.Booking) []interface{} {
	return []interface{}{
		booking.ID,
		booking.ItemID,
		booking.ItemName,
		booking.BookerID,
		booking.BookerName,
		fmt.Sprintf("%s - %s", booking.Start.Format("2006-01-02 15:04"), booking.End.Format("2006-01-02 15:04")),
		booking.Status,
		booking.ItemOwnerID,
		booking.CreatedAt.Format("2006-01-02 15:04:05"),
		booking.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
