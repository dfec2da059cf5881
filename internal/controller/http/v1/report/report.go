package report

import (
	"fmt"
	"net/http"
	"time"

	"hrm/backend/foundation/web"
	"hrm/backend/internal/service"

	"github.com/pkg/errors"
)

type Controller struct {
	attendance Attendance
}

func NewController(attendance Attendance) *Controller {
	return &Controller{attendance}
}

// ExportExcel serves the month's per-user daily totals as an xlsx download.
func (uc Controller) ExportExcel(c *web.Context) error {
	monthStr := c.Query("month")
	if monthStr == "" {
		return c.RespondError(web.NewRequestError(errors.New("month parameter is required"), http.StatusBadRequest))
	}

	month, err := time.Parse("2006-01", monthStr)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.New("month must be formatted YYYY-MM"), http.StatusBadRequest))
	}

	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0)

	rows, err := uc.attendance.Report(c.Ctx, from, to)
	if err != nil {
		return c.RespondError(err)
	}

	content, err := service.MonthlyReportExcel(rows)
	if err != nil {
		return c.RespondError(errors.Wrap(err, "rendering excel report"))
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="attendance-%s.xlsx"`, monthStr))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
	return nil
}

// ExportPDF serves one day's totals as a printable PDF.
func (uc Controller) ExportPDF(c *web.Context) error {
	dayStr := c.Query("date")
	if dayStr == "" {
		dayStr = time.Now().Format("2006-01-02")
	}

	day, err := time.Parse("2006-01-02", dayStr)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.New("date must be formatted YYYY-MM-DD"), http.StatusBadRequest))
	}

	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 0, 1)

	rows, err := uc.attendance.Report(c.Ctx, from, to)
	if err != nil {
		return c.RespondError(err)
	}

	content, err := service.DailyReportPDF(dayStr, rows)
	if err != nil {
		return c.RespondError(errors.Wrap(err, "rendering pdf report"))
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="attendance-%s.pdf"`, dayStr))
	c.Data(http.StatusOK, "application/pdf", content)
	return nil
}
