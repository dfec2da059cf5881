package attendance

import (
	"context"

	"hrm/backend/internal/repository/postgres/attendance"
)

type Attendance interface {
	CheckIn(ctx context.Context) (attendance.CheckInResponse, error)
	CheckOut(ctx context.Context) (attendance.CheckOutResponse, error)
	DailySummary(ctx context.Context) (attendance.DailySummaryResponse, error)
	GetList(ctx context.Context, filter attendance.Filter) ([]attendance.GetListResponse, int, error)
	GetHistory(ctx context.Context, filter attendance.Filter) ([]attendance.HistoryResponse, error)
	GetDetailById(ctx context.Context, id int) (attendance.GetDetailByIdResponse, error)
	Delete(ctx context.Context, id int) error
}
