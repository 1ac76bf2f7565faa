package export

import (
	"io"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestExporter(t *testing.T) *Exporter {
	t.Helper()
	logger := zerolog.New(io.Discard)
	return NewExporter(t.TempDir(), &logger)
}

func TestExportBookings(t *testing.T) {
	exporter := newTestExporter(t)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	bookings := []*models.Booking{
		{
			ID:          1,
			ItemID:      10,
			ItemName:    "Drill",
			ItemOwnerID: 2,
			BookerID:    3,
			BookerName:  "Ivan",
			Start:       time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC),
			End:         time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC),
			Status:      models.StatusApproved,
			CreatedAt:   time.Date(2025, 6, 5, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:          2,
			ItemID:      11,
			ItemName:    "Hammer",
			ItemOwnerID: 2,
			BookerID:    4,
			BookerName:  "Petr",
			Start:       time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC),
			End:         time.Date(2025, 6, 21, 10, 0, 0, 0, time.UTC),
			Status:      models.StatusWaiting,
			CreatedAt:   time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC),
		},
	}

	path, err := exporter.ExportBookings(bookings, start, end)
	require.NoError(t, err)
	require.FileExists(t, path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(bookingsSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Период: 01.06.2025 - 30.06.2025", title)

	name, err := f.GetCellValue(bookingsSheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "Drill", name)

	status, err := f.GetCellValue(bookingsSheet, "F4")
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaiting, status)
}

func TestExportBookingsEmpty(t *testing.T) {
	exporter := newTestExporter(t)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	path, err := exporter.ExportBookings(nil, start, end)
	require.NoError(t, err)
	require.FileExists(t, path)
}

func TestExportUsers(t *testing.T) {
	exporter := newTestExporter(t)

	users := []*models.User{
		{ID: 1, Name: "Ivan", Email: "ivan@example.com", CreatedAt: time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)},
		{ID: 2, Name: "Petr", Email: "petr@example.com", CreatedAt: time.Date(2025, 2, 11, 12, 0, 0, 0, time.UTC)},
	}

	path, err := exporter.ExportUsers(users)
	require.NoError(t, err)
	require.FileExists(t, path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	email, err := f.GetCellValue("Пользователи", "C2")
	require.NoError(t, err)
	assert.Equal(t, "ivan@example.com", email)
}
