package attendance

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/uptrace/bun"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Date   *string
	UserID *int
}

type CheckInResponse struct {
	bun.BaseModel `bun:"table:attendance"`

	ID        int       `json:"id" bun:"-"`
	UserID    int       `json:"user_id" bun:"user_id"`
	CheckIn   time.Time `json:"check_in" bun:"check_in"`
	CreatedAt time.Time `json:"-" bun:"created_at"`
	CreatedBy int       `json:"-" bun:"created_by"`
}

type CheckOutResponse struct {
	ID            int    `json:"id"`
	TotalWorkTime string `json:"total_work_time"`
	Overtime      string `json:"overtime"`
}

type DailySummaryResponse struct {
	TotalWorkTime string `json:"total_work_time"`
	TotalOvertime string `json:"total_overtime"`
}

type GetListResponse struct {
	ID            int        `json:"id"`
	UserID        *int       `json:"user_id"`
	FullName      *string    `json:"full_name"`
	Email         *string    `json:"email"`
	WorkDay       *date.Date `json:"work_day"`
	CheckIn       *time.Time `json:"check_in"`
	CheckOut      *time.Time `json:"check_out,omitempty"`
	TotalWorkTime *string    `json:"total_work_time"`
	Overtime      *string    `json:"overtime"`
}

type GetDetailByIdResponse struct {
	ID            int        `json:"id"`
	UserID        *int       `json:"user_id"`
	FullName      *string    `json:"full_name"`
	Email         *string    `json:"email"`
	WorkDay       *date.Date `json:"work_day"`
	CheckIn       *time.Time `json:"check_in"`
	CheckOut      *time.Time `json:"check_out,omitempty"`
	TotalWorkTime *string    `json:"total_work_time"`
	Overtime      *string    `json:"overtime"`
}

type HistoryResponse struct {
	ID            int        `json:"id"`
	WorkDay       *date.Date `json:"work_day"`
	CheckIn       *time.Time `json:"check_in"`
	CheckOut      *time.Time `json:"check_out,omitempty"`
	TotalWorkTime *string    `json:"total_work_time"`
	Overtime      *string    `json:"overtime"`
}

// ReportRow is one user's totals for one work day, used by the report
// exports.
type ReportRow struct {
	UserID          int
	FullName        string
	Email           string
	WorkDay         string
	WorkedMinutes   int
	OvertimeMinutes int
	Sessions        int
}
