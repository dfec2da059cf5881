package user

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hrm/backend/foundation/web"
	"hrm/backend/internal/auth"
	"hrm/backend/internal/entity"
	"hrm/backend/internal/pkg/repository/postgresql"
	"hrm/backend/internal/repository/postgres"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// Create registers a new user. The email must be unique; the role defaults
// to EMPLOYEE and must be one of the closed role set.
func (r Repository) Create(ctx context.Context, request SignUpRequest) (CreateResponse, error) {
	ctx, cancel := r.RequestContext(ctx)
	defer cancel()

	role := auth.RoleEmployee
	if request.Role != nil {
		role = strings.ToUpper(*request.Role)
	}
	switch role {
	case auth.RoleAdmin, auth.RoleManager, auth.RoleEmployee:
	default:
		return CreateResponse{}, web.NewRequestError(errors.Errorf("unknown role: %s", role), http.StatusBadRequest)
	}

	exists := false
	err := r.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = ? AND deleted_at IS NULL)
	`, request.Email).Scan(&exists)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "checking email uniqueness"), http.StatusInternalServerError)
	}
	if exists {
		return CreateResponse{}, web.NewRequestError(errors.New("email already registered"), http.StatusBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
	}

	hashStr := string(hash)
	response := CreateResponse{
		FullName:  &request.FullName,
		Email:     &request.Email,
		Password:  &hashStr,
		Role:      &role,
		CreatedAt: time.Now(),
	}

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating user"), http.StatusInternalServerError)
	}

	return response, nil
}

func (r Repository) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	ctx, cancel := r.RequestContext(ctx)
	defer cancel()

	var detail entity.User

	err := r.NewSelect().Model(&detail).
		Where("email = ? AND deleted_at IS NULL", email).
		Scan(ctx)
	if err != nil {
		return entity.User{}, &web.Error{
			Err:    errors.New("user not found"),
			Status: http.StatusUnauthorized,
		}
	}

	return detail, nil
}

func (r Repository) GetById(ctx context.Context, id int) (entity.User, error) {
	ctx, cancel := r.RequestContext(ctx)
	defer cancel()

	var detail entity.User

	err := r.NewSelect().Model(&detail).
		Where("id = ? AND deleted_at IS NULL", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.User{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.User{}, web.NewRequestError(errors.Wrap(err, "selecting user"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	ctx, cancel := r.RequestContext(ctx)
	defer cancel()

	whereQuery := `
		WHERE
			u.deleted_at IS NULL
	`

	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND (u.full_name ilike '%s' OR u.email ilike '%s')`,
			"%"+search+"%", "%"+search+"%")
	}

	orderQuery := "ORDER BY u.created_at desc"

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
			u.id,
			u.full_name,
			u.email,
			u.role
		FROM users u
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting users"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.FullName,
			&detail.Email,
			&detail.Role); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning user list"), http.StatusInternalServerError)
		}
		list = append(list, detail)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "reading user rows"), http.StatusInternalServerError)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(u.id)
		FROM users u
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting users"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	ctx, cancel := r.RequestContext(ctx)
	defer cancel()

	var detail GetDetailByIdResponse

	err = r.QueryRowContext(ctx, `
		SELECT
			u.id,
			u.full_name,
			u.email,
			u.role
		FROM users u
		WHERE u.deleted_at IS NULL AND u.id = ?
	`, id).Scan(
		&detail.ID,
		&detail.FullName,
		&detail.Email,
		&detail.Role,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting user detail"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	return r.DeleteRow(ctx, "users", id, claims.UserId)
}
