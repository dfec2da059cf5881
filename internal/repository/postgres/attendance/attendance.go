package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hrm/backend/foundation/web"
	"hrm/backend/internal/auth"
	"hrm/backend/internal/pkg/repository/postgresql"
	"hrm/backend/internal/repository/postgres"
	"hrm/backend/internal/worktime"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
)

const summaryCacheTTL = 30 * time.Second

type Repository struct {
	*postgresql.Database
	redisDB          *redis.Client
	thresholdMinutes int
}

func NewRepository(database *postgresql.Database, redisDB *redis.Client, thresholdMinutes int) *Repository {
	return &Repository{
		Database:         database,
		redisDB:          redisDB,
		thresholdMinutes: thresholdMinutes,
	}
}

// CheckIn opens a new work session for the authenticated user. The insert
// is guarded against an existing open session in the same statement; the
// partial unique index on (user_id) WHERE check_out IS NULL backs it up.
func (r Repository) CheckIn(ctx context.Context) (CheckInResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CheckInResponse{}, err
	}

	ctx, cancel := r.RequestContext(ctx)
	defer cancel()

	now := time.Now()

	result, err := r.ExecContext(ctx, `
		INSERT INTO attendance (user_id, check_in, created_at, created_by)
		SELECT ?, ?, ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM attendance
			WHERE user_id = ? AND check_out IS NULL AND deleted_at IS NULL
		)
	`, claims.UserId, now, now, claims.UserId, claims.UserId)
	if err != nil {
		return CheckInResponse{}, web.NewRequestError(errors.Wrap(err, "creating attendance"), http.StatusInternalServerError)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return CheckInResponse{}, web.NewRequestError(errors.Wrap(err, "checking affected rows"), http.StatusInternalServerError)
	}
	if rows == 0 {
		return CheckInResponse{}, web.NewRequestError(postgres.ErrAlreadyOpen, http.StatusBadRequest)
	}

	r.dropSummaryCache(ctx, claims.UserId, now)

	return CheckInResponse{
		UserID:    claims.UserId,
		CheckIn:   now,
		CreatedAt: now,
		CreatedBy: claims.UserId,
	}, nil
}

// CheckOut closes the user's most recent open session and recomputes the
// day's totals. The locate-aggregate-update sequence runs in one
// transaction with the open row locked, so two concurrent check-outs
// serialize and the loser sees no open session.
func (r Repository) CheckOut(ctx context.Context) (CheckOutResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CheckOutResponse{}, err
	}

	ctx, cancel := r.RequestContext(ctx)
	defer cancel()

	var response CheckOutResponse
	now := time.Now()

	err = r.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var (
			id      int
			checkIn time.Time
		)
		err := tx.QueryRowContext(ctx, `
			SELECT id, check_in FROM attendance
			WHERE user_id = ? AND check_out IS NULL AND deleted_at IS NULL
			ORDER BY id DESC LIMIT 1
			FOR UPDATE
		`, claims.UserId).Scan(&id, &checkIn)
		if errors.Is(err, sql.ErrNoRows) {
			return web.NewRequestError(postgres.ErrNoActiveSession, http.StatusBadRequest)
		}
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "selecting open attendance"), http.StatusInternalServerError)
		}

		sessionMinutes := worktime.SessionMinutes(checkIn, now)

		dayStart, dayEnd := worktime.DayBounds(now)

		// Prior minutes are recomputed from session timestamps, never from
		// the stored running totals.
		var priorMinutes int
		err = tx.QueryRowContext(ctx, `
			SELECT COALESCE(SUM(FLOOR(EXTRACT(EPOCH FROM (check_out - check_in)) / 60)), 0)::bigint
			FROM attendance
			WHERE user_id = ? AND check_out IS NOT NULL AND deleted_at IS NULL
			AND check_in >= ? AND check_in < ?
			AND id != ?
		`, claims.UserId, dayStart, dayEnd, id).Scan(&priorMinutes)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "summing worked minutes"), http.StatusInternalServerError)
		}

		cumulative := priorMinutes + sessionMinutes
		overtimeMinutes := worktime.Overtime(cumulative, r.thresholdMinutes)

		response = CheckOutResponse{
			ID:            id,
			TotalWorkTime: worktime.FormatSession(sessionMinutes),
			Overtime:      worktime.FormatSession(overtimeMinutes),
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE attendance
			SET check_out = ?, total_work_time = ?, overtime = ?, updated_at = ?, updated_by = ?
			WHERE id = ?
		`, now, response.TotalWorkTime, response.Overtime, now, claims.UserId, id)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "updating attendance"), http.StatusInternalServerError)
		}

		return nil
	})
	if err != nil {
		return CheckOutResponse{}, err
	}

	r.dropSummaryCache(ctx, claims.UserId, now)

	return response, nil
}

// DailySummary returns today's worked and overtime totals for the
// authenticated user, both HH:MM:SS, defaulting to 00:00:00. A fresh value
// is served from redis when available.
func (r Repository) DailySummary(ctx context.Context) (DailySummaryResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return DailySummaryResponse{}, err
	}

	ctx, cancel := r.RequestContext(ctx)
	defer cancel()

	now := time.Now()

	if cached, ok := r.getSummaryCache(ctx, claims.UserId, now); ok {
		return cached, nil
	}

	dayStart, dayEnd := worktime.DayBounds(now)

	var totalMinutes int
	err = r.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(FLOOR(EXTRACT(EPOCH FROM (check_out - check_in)) / 60)), 0)::bigint
		FROM attendance
		WHERE user_id = ? AND check_out IS NOT NULL AND deleted_at IS NULL
		AND check_in >= ? AND check_in < ?
	`, claims.UserId, dayStart, dayEnd).Scan(&totalMinutes)
	if err != nil {
		return DailySummaryResponse{}, web.NewRequestError(errors.Wrap(err, "summing daily work time"), http.StatusInternalServerError)
	}

	response := DailySummaryResponse{
		TotalWorkTime: worktime.FormatClock(totalMinutes),
		TotalOvertime: worktime.FormatClock(worktime.Overtime(totalMinutes, r.thresholdMinutes)),
	}

	r.setSummaryCache(ctx, claims.UserId, now, response)

	return response, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleManager)
	if err != nil {
		return nil, 0, err
	}

	ctx, cancel := r.RequestContext(ctx)
	defer cancel()

	whereQuery := `
		WHERE
			a.deleted_at IS NULL
	`

	if filter.Date != nil {
		day, err := time.Parse("2006-01-02", *filter.Date)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "date parse"), http.StatusBadRequest)
		}
		whereQuery += fmt.Sprintf(" AND a.check_in::date = '%s'", day.Format("2006-01-02"))
	} else {
		whereQuery += fmt.Sprintf(" AND a.check_in::date = '%s'", time.Now().Format("2006-01-02"))
	}
	if filter.UserID != nil {
		whereQuery += fmt.Sprintf(" AND a.user_id = %d", *filter.UserID)
	}

	orderQuery := "ORDER BY a.id desc"

	var limitQuery, offsetQuery string

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}
	if filter.Limit != nil {
		limitQuery = fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}
	if filter.Offset != nil {
		offsetQuery = fmt.Sprintf(" OFFSET %d", *filter.Offset)
	}

	query := fmt.Sprintf(`
		SELECT
			a.id,
			a.user_id,
			u.full_name,
			u.email,
			a.check_in::date,
			a.check_in,
			a.check_out,
			a.total_work_time,
			a.overtime
		FROM attendance a
		LEFT JOIN users u ON u.id = a.user_id
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting attendance"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		var workDayString string

		if err = rows.Scan(
			&detail.ID,
			&detail.UserID,
			&detail.FullName,
			&detail.Email,
			&workDayString,
			&detail.CheckIn,
			&detail.CheckOut,
			&detail.TotalWorkTime,
			&detail.Overtime); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning attendance list"), http.StatusInternalServerError)
		}

		workDay, err := date.ParseDate(workDayString)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "converting work_day to date.Date"), http.StatusInternalServerError)
		}
		detail.WorkDay = &workDay

		list = append(list, detail)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "reading attendance rows"), http.StatusInternalServerError)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(a.id)
		FROM attendance a
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting attendance"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// GetHistory lists the authenticated user's own recent sessions.
func (r Repository) GetHistory(ctx context.Context, filter Filter) ([]HistoryResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.RequestContext(ctx)
	defer cancel()

	limit := 30
	if filter.Limit != nil {
		limit = *filter.Limit
	}

	rows, err := r.QueryContext(ctx, `
		SELECT
			a.id,
			a.check_in::date,
			a.check_in,
			a.check_out,
			a.total_work_time,
			a.overtime
		FROM attendance a
		WHERE a.user_id = ? AND a.deleted_at IS NULL
		ORDER BY a.id desc
		LIMIT ?
	`, claims.UserId, limit)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting attendance history"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []HistoryResponse

	for rows.Next() {
		var detail HistoryResponse
		var workDayString string

		if err = rows.Scan(
			&detail.ID,
			&workDayString,
			&detail.CheckIn,
			&detail.CheckOut,
			&detail.TotalWorkTime,
			&detail.Overtime); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning attendance history"), http.StatusInternalServerError)
		}

		workDay, err := date.ParseDate(workDayString)
		if err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "converting work_day to date.Date"), http.StatusInternalServerError)
		}
		detail.WorkDay = &workDay

		list = append(list, detail)
	}
	if err = rows.Err(); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "reading attendance history rows"), http.StatusInternalServerError)
	}

	return list, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	ctx, cancel := r.RequestContext(ctx)
	defer cancel()

	var detail GetDetailByIdResponse
	var workDayString string

	err = r.QueryRowContext(ctx, `
		SELECT
			a.id,
			a.user_id,
			u.full_name,
			u.email,
			a.check_in::date,
			a.check_in,
			a.check_out,
			a.total_work_time,
			a.overtime
		FROM attendance a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.deleted_at IS NULL AND a.id = ?
	`, id).Scan(
		&detail.ID,
		&detail.UserID,
		&detail.FullName,
		&detail.Email,
		&workDayString,
		&detail.CheckIn,
		&detail.CheckOut,
		&detail.TotalWorkTime,
		&detail.Overtime,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting attendance detail"), http.StatusInternalServerError)
	}

	workDay, err := date.ParseDate(workDayString)
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "converting work_day to date.Date"), http.StatusInternalServerError)
	}
	detail.WorkDay = &workDay

	return detail, nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	return r.DeleteRow(ctx, "attendance", id, claims.UserId)
}

// Report aggregates per-user daily totals inside [from, to) for the excel
// and PDF exports.
func (r Repository) Report(ctx context.Context, from, to time.Time) ([]ReportRow, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.RequestContext(ctx)
	defer cancel()

	rows, err := r.QueryContext(ctx, `
		SELECT
			u.id,
			u.full_name,
			u.email,
			a.check_in::date AS work_day,
			COALESCE(SUM(FLOOR(EXTRACT(EPOCH FROM (a.check_out - a.check_in)) / 60)), 0)::bigint AS worked_minutes,
			count(a.id) AS sessions
		FROM attendance a
		JOIN users u ON u.id = a.user_id
		WHERE a.deleted_at IS NULL AND a.check_out IS NOT NULL
		AND a.check_in >= ? AND a.check_in < ?
		GROUP BY u.id, u.full_name, u.email, a.check_in::date
		ORDER BY work_day, u.id
	`, from, to)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting attendance report"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []ReportRow

	for rows.Next() {
		var row ReportRow
		if err = rows.Scan(
			&row.UserID,
			&row.FullName,
			&row.Email,
			&row.WorkDay,
			&row.WorkedMinutes,
			&row.Sessions); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning attendance report"), http.StatusInternalServerError)
		}
		row.OvertimeMinutes = worktime.Overtime(row.WorkedMinutes, r.thresholdMinutes)
		list = append(list, row)
	}
	if err = rows.Err(); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "reading attendance report rows"), http.StatusInternalServerError)
	}

	return list, nil
}

func summaryCacheKey(userID int, day time.Time) string {
	return fmt.Sprintf("attendance:summary:%d:%s", userID, day.Format("2006-01-02"))
}

func (r Repository) getSummaryCache(ctx context.Context, userID int, day time.Time) (DailySummaryResponse, bool) {
	if r.redisDB == nil {
		return DailySummaryResponse{}, false
	}

	raw, err := r.redisDB.Get(ctx, summaryCacheKey(userID, day)).Bytes()
	if err != nil {
		return DailySummaryResponse{}, false
	}

	var cached DailySummaryResponse
	if err = json.Unmarshal(raw, &cached); err != nil {
		return DailySummaryResponse{}, false
	}

	return cached, true
}

func (r Repository) setSummaryCache(ctx context.Context, userID int, day time.Time, response DailySummaryResponse) {
	if r.redisDB == nil {
		return
	}

	raw, err := json.Marshal(response)
	if err != nil {
		return
	}

	// Cache errors are not the caller's problem.
	r.redisDB.Set(ctx, summaryCacheKey(userID, day), raw, summaryCacheTTL)
}

func (r Repository) dropSummaryCache(ctx context.Context, userID int, day time.Time) {
	if r.redisDB == nil {
		return
	}
	r.redisDB.Del(ctx, summaryCacheKey(userID, day))
}
