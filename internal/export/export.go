package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"labbot/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Bookings"

// Exporter renders the bookings document as an Excel workbook.
type Exporter struct {
	path   string
	logger *zerolog.Logger
}

func New(path string, logger *zerolog.Logger) *Exporter {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Exporter{path: path, logger: logger}
}

// BuildWorkbook renders bookings into a new workbook. The caller owns the
// returned file and must Close it.
func BuildWorkbook(bookings []models.Booking) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"#", "ID", "Customer", "Date", "Time", "Lab Type", "Status", "Booked At"}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, booking := range bookings {
		row := i + 2
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), booking.ID)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), booking.CustomerName)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), booking.Date)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), booking.Time)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), booking.LabType)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), booking.Status)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), booking.BookingTime.Format("02.01.2006 15:04"))
	}

	_ = f.SetColWidth(sheetName, "A", "A", 5)
	_ = f.SetColWidth(sheetName, "B", "B", 12)
	_ = f.SetColWidth(sheetName, "C", "C", 25)
	_ = f.SetColWidth(sheetName, "D", "E", 12)
	_ = f.SetColWidth(sheetName, "F", "F", 18)
	_ = f.SetColWidth(sheetName, "G", "G", 12)
	_ = f.SetColWidth(sheetName, "H", "H", 20)

	_ = f.DeleteSheet("Sheet1")

	return f, nil
}

// SaveToFile writes the bookings workbook under the exporter's directory and
// returns the full path of the created file.
func (e *Exporter) SaveToFile(bookings []models.Booking, now time.Time) (string, error) {
	if err := os.MkdirAll(e.path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	f, err := BuildWorkbook(bookings)
	if err != nil {
		return "", err
	}
	defer f.Close()

	fileName := fmt.Sprintf("lab_bookings_%s.xlsx", now.Format("2006-01-02_15-04-05"))
	filePath := filepath.Join(e.path, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	e.logger.Info().Str("file_path", filePath).Int("bookings", len(bookings)).Msg("Excel file created")
	return filePath, nil
}
