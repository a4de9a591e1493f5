package controllers

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"walter/src/schemas"
	"walter/src/utils"
)

const tokenLifetime = time.Hour

// AuthUser verifies the user's password and issues a bearer token.
func (c *Controller) AuthUser(ctx context.Context, req *schemas.TokenRequest) (*schemas.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := c.Users.GetUser(ctx, email)
	if err != nil {
		// Do not leak whether the account exists.
		return nil, utils.Unauthorized("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, utils.Unauthorized("invalid email or password")
	}

	now := time.Now().UTC()
	_, tokenString, err := c.TokenAuth.Encode(map[string]interface{}{
		"sub": user.Email,
		"iat": now.Unix(),
		"exp": now.Add(tokenLifetime).Unix(),
	})
	if err != nil {
		return nil, err
	}

	return &schemas.TokenResponse{
		AccessToken: tokenString,
		TokenType:   "Bearer",
		ExpiresIn:   int(tokenLifetime.Seconds()),
	}, nil
}
