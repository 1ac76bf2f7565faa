package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const bookingsSheet = "Бронирования"

// Exporter складывает административные выгрузки в Excel-файлы.
type Exporter struct {
	exportsPath string
	logger      *zerolog.Logger
}

func NewExporter(exportsPath string, logger *zerolog.Logger) *Exporter {
	return &Exporter{exportsPath: exportsPath, logger: logger}
}

// ExportBookings создает Excel файл с бронированиями за период и возвращает путь к нему.
func (e *Exporter) ExportBookings(bookings []*models.Booking, start, end time.Time) (string, error) {
	if err := os.MkdirAll(e.exportsPath, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(bookingsSheet)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	// Заголовок периода
	_ = f.SetCellValue(bookingsSheet, "A1", fmt.Sprintf("Период: %s - %s",
		start.Format("02.01.2006"), end.Format("02.01.2006")))
	_ = f.MergeCell(bookingsSheet, "A1", "H1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(bookingsSheet, "A1", "A1", titleStyle)

	e.writeHeaders(f)

	for i, booking := range bookings {
		row := i + 3
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("A%d", row), booking.ID)
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("B%d", row), booking.ItemName)
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("C%d", row), booking.BookerName)
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("D%d", row), booking.Start.Format("02.01.2006 15:04"))
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("E%d", row), booking.End.Format("02.01.2006 15:04"))
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("F%d", row), booking.Status)
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("G%d", row), booking.ItemOwnerID)
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("H%d", row), booking.CreatedAt.Format("02.01.2006 15:04"))

		if styleID, err := e.statusStyle(f, booking.Status); err == nil {
			cell := fmt.Sprintf("F%d", row)
			_ = f.SetCellStyle(bookingsSheet, cell, cell, styleID)
		}
	}

	_ = f.SetColWidth(bookingsSheet, "A", "A", 8)
	_ = f.SetColWidth(bookingsSheet, "B", "C", 25)
	_ = f.SetColWidth(bookingsSheet, "D", "E", 18)
	_ = f.SetColWidth(bookingsSheet, "F", "F", 12)
	_ = f.SetColWidth(bookingsSheet, "G", "G", 12)
	_ = f.SetColWidth(bookingsSheet, "H", "H", 18)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_%s_to_%s.xlsx",
		start.Format("2006-01-02"),
		end.Format("2006-01-02"))
	filePath := filepath.Join(e.exportsPath, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	e.logger.Info().Str("file_path", filePath).Int("bookings", len(bookings)).Msg("Excel file created")
	return filePath, nil
}

func (e *Exporter) writeHeaders(f *excelize.File) {
	headers := []string{"ID", "Вещь", "Арендатор", "Начало", "Конец", "Статус", "Владелец", "Создано"}

	style, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(bookingsSheet, cell, header)
		_ = f.SetCellStyle(bookingsSheet, cell, cell, style)
	}
}

// statusStyle подбирает заливку ячейки статуса: ожидание — желтая,
// подтверждено — зеленая, отклонено — красная.
func (e *Exporter) statusStyle(f *excelize.File, status string) (int, error) {
	var color string
	switch status {
	case models.StatusApproved:
		color = "#C6EFCE"
	case models.StatusWaiting:
		color = "#FFEB9C"
	case models.StatusRejected:
		color = "#FFC7CE"
	default:
		color = "#FFFFFF"
	}

	return f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
}

// ExportUsers создает Excel файл со списком пользователей.
func (e *Exporter) ExportUsers(users []*models.User) (string, error) {
	if err := os.MkdirAll(e.exportsPath, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Пользователи"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"ID", "Имя", "Email", "Дата регистрации"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, header)
	}

	for i, user := range users {
		row := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), user.ID)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), user.Name)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), user.Email)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), user.CreatedAt.Format("02.01.2006 15:04"))
	}

	_ = f.SetColWidth(sheet, "A", "A", 8)
	_ = f.SetColWidth(sheet, "B", "B", 20)
	_ = f.SetColWidth(sheet, "C", "C", 30)
	_ = f.SetColWidth(sheet, "D", "D", 20)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("users_export_%s.xlsx", time.Now().Format("2006-01-02_15-04-05"))
	filePath := filepath.Join(e.exportsPath, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	e.logger.Info().Str("file_path", filePath).Int("users", len(users)).Msg("Users Excel file created")
	return filePath, nil
}
