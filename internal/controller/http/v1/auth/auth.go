package auth

import (
	"net/http"

	"hrm/backend/foundation/web"
	authpkg "hrm/backend/internal/auth"
	"hrm/backend/internal/repository/postgres/user"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type Controller struct {
	user User
	auth *authpkg.Auth
}

func NewController(user User, auth *authpkg.Auth) *Controller {
	return &Controller{user: user, auth: auth}
}

func (uc Controller) SignUp(c *web.Context) error {
	var data user.SignUpRequest

	if err := c.BindFunc(&data); err != nil {
		return c.RespondError(err)
	}

	if _, err := uc.user.Create(c.Ctx, data); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"message": "User registered successfully",
		"status":  true,
	}, http.StatusCreated)
}

func (uc Controller) SignIn(c *web.Context) error {
	var data user.SignInRequest

	if err := c.BindFunc(&data); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.user.GetByEmail(c.Ctx, data.Email)
	if err != nil {
		return c.RespondError(err)
	}

	if detail.Password == nil || detail.Role == nil {
		return c.RespondError(&web.Error{
			Err:    errors.New("user not found"),
			Status: http.StatusUnauthorized,
		})
	}

	if err = bcrypt.CompareHashAndPassword([]byte(*detail.Password), []byte(data.Password)); err != nil {
		return c.RespondError(web.NewRequestError(errors.New("incorrect password"), http.StatusBadRequest))
	}

	accessToken, refreshToken, err := uc.auth.GenTokens(detail.ID, *detail.Role)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data": map[string]string{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		},
	}, http.StatusOK)
}

func (uc Controller) RefreshToken(c *web.Context) error {
	var data user.RefreshTokenRequest

	if err := c.BindFunc(&data); err != nil {
		return c.RespondError(err)
	}

	claims, err := uc.auth.ValidateRefreshToken(data.RefreshToken)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
	}

	// The user may have been deleted or had their role changed since the
	// refresh token was issued.
	detail, err := uc.user.GetById(c.Ctx, claims.UserId)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.New("user no longer exists"), http.StatusUnauthorized))
	}
	if detail.Role == nil {
		return c.RespondError(web.NewRequestError(errors.New("user has no role"), http.StatusUnauthorized))
	}

	accessToken, refreshToken, err := uc.auth.GenTokens(detail.ID, *detail.Role)
	if err != nil {
		return c.RespondError(errors.Wrap(err, "generating new tokens"))
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data": map[string]string{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		},
	}, http.StatusOK)
}
