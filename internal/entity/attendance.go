package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Attendance is one work session. CheckOut is null while the session is
// open. TotalWorkTime holds the closed session's own duration; Overtime
// holds the day-cumulative overtime as of the close. Both are H:MM:00.
type Attendance struct {
	bun.BaseModel `bun:"table:attendance"`

	BasicEntity
	UserID        *int       `json:"user_id" bun:"user_id"`
	CheckIn       *time.Time `json:"check_in" bun:"check_in"`
	CheckOut      *time.Time `json:"check_out" bun:"check_out"`
	TotalWorkTime *string    `json:"total_work_time" bun:"total_work_time"`
	Overtime      *string    `json:"overtime" bun:"overtime"`
}
