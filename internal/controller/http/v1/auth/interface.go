package auth

import (
	"context"

	"hrm/backend/internal/entity"
	"hrm/backend/internal/repository/postgres/user"
)

type User interface {
	Create(ctx context.Context, request user.SignUpRequest) (user.CreateResponse, error)
	GetByEmail(ctx context.Context, email string) (entity.User, error)
	GetById(ctx context.Context, id int) (entity.User, error)
}
