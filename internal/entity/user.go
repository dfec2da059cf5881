package entity

import (
	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	BasicEntity
	FullName *string `json:"full_name" bun:"full_name"`
	Email    *string `json:"email"     bun:"email"`
	Password *string `json:"-"         bun:"password"`
	Role     *string `json:"role"      bun:"role"`
}
