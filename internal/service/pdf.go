package service

import (
	"bytes"
	"fmt"

	"hrm/backend/internal/repository/postgres/attendance"
	"hrm/backend/internal/worktime"

	"github.com/jung-kurt/gofpdf/v2"
)

// DailyReportPDF renders one day's attendance totals as a printable sheet.
func DailyReportPDF(day string, rows []attendance.ReportRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Attendance report - %s", day))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	widths := []float64{60, 60, 20, 25, 25}
	headers := []string{"Full Name", "Email", "Sessions", "Worked", "Overtime"}
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, entry := range rows {
		pdf.CellFormat(widths[0], 8, entry.FullName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, entry.Email, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 8, fmt.Sprintf("%d", entry.Sessions), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 8, worktime.FormatClock(entry.WorkedMinutes), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 8, worktime.FormatClock(entry.OvertimeMinutes), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
