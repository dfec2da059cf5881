package service

import (
	"bytes"
	"fmt"

	"hrm/backend/internal/repository/postgres/attendance"
	"hrm/backend/internal/worktime"

	"github.com/xuri/excelize/v2"
)

// MonthlyReportExcel renders per-user daily worked/overtime totals into an
// xlsx workbook and returns its bytes.
func MonthlyReportExcel(rows []attendance.ReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Sheet1"

	headers := []string{"Work Day", "User ID", "Full Name", "Email", "Sessions", "Total Work Time", "Overtime"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	rowNum := 2
	for _, entry := range rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), entry.WorkDay)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), entry.UserID)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), entry.FullName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), entry.Email)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), entry.Sessions)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", rowNum), worktime.FormatClock(entry.WorkedMinutes))
		f.SetCellValue(sheet, fmt.Sprintf("G%d", rowNum), worktime.FormatClock(entry.OvertimeMinutes))
		rowNum++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
