package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"hotel-desk/models"

	"github.com/xuri/excelize/v2"
)

var bookingReportColumns = []string{
	"ID", "Guest", "Phone", "Room", "Category", "Check-in", "Check-out", "Nights", "Status", "Total",
}

// sheetWriter appends rows to the active sheet of an excelize file.
type sheetWriter struct {
	file  *excelize.File
	sheet string
	row   int
}

func newSheetWriter(sheet string) (*sheetWriter, error) {
	f := excelize.NewFile()
	if len(sheet) > 31 {
		sheet = sheet[:31]
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &sheetWriter{file: f, sheet: sheet, row: 1}, nil
}

func (w *sheetWriter) header(columns []string) error {
	if err := w.values(columnsAsRow(columns)); err != nil {
		return err
	}
	style, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	start, err := excelize.CoordinatesToCellName(1, w.row-1)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(len(columns), w.row-1)
	if err != nil {
		return err
	}
	return w.file.SetCellStyle(w.sheet, start, end, style)
}

func (w *sheetWriter) values(row []any) error {
	for i, v := range row {
		cell, err := excelize.CoordinatesToCellName(i+1, w.row)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.sheet, cell, v); err != nil {
			return err
		}
	}
	w.row++
	return nil
}

func columnsAsRow(columns []string) []any {
	row := make([]any, len(columns))
	for i, c := range columns {
		row[i] = c
	}
	return row
}

type ReportService struct {
	Bookings *BookingService
}

func NewReportService(bookings *BookingService) *ReportService {
	return &ReportService{Bookings: bookings}
}

// WriteBookings writes an .xlsx listing bookings overlapping [from, to), or all bookings
// when both are zero.
func (s *ReportService) WriteBookings(ctx context.Context, w io.Writer, from, to time.Time) error {
	var (
		bookings []models.Booking
		err      error
	)
	if from.IsZero() && to.IsZero() {
		bookings, err = s.Bookings.List(ctx)
	} else {
		bookings, err = s.Bookings.ListForDateRange(ctx, from, to)
	}
	if err != nil {
		return err
	}

	sw, err := newSheetWriter("Bookings")
	if err != nil {
		return fmt.Errorf("create workbook: %w", err)
	}
	defer sw.file.Close()

	if err := sw.header(bookingReportColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	var revenue float64
	for _, b := range bookings {
		if err := sw.values([]any{
			b.ID,
			b.Guest.FullName(),
			b.Guest.PhoneNumber,
			b.Room.RoomNumber,
			b.Room.RoomCategory.Name,
			b.CheckInDate.Format("2006-01-02"),
			b.CheckOutDate.Format("2006-01-02"),
			Nights(b.CheckInDate, b.CheckOutDate),
			string(b.Status),
			b.TotalPrice,
		}); err != nil {
			return fmt.Errorf("write booking %d: %w", b.ID, err)
		}
		if b.Status != models.BookingCancelled {
			revenue += b.TotalPrice
		}
	}
	if err := sw.values([]any{"", "", "", "", "", "", "", "", "Total", revenue}); err != nil {
		return err
	}
	return sw.file.Write(w)
}
