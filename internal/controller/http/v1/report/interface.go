package report

import (
	"context"
	"time"

	"hrm/backend/internal/repository/postgres/attendance"
)

type Attendance interface {
	Report(ctx context.Context, from, to time.Time) ([]attendance.ReportRow, error)
}
