package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"walter/src/models"
	"walter/src/schemas"
	"walter/src/utils"
	aws_handler "walter/src/utils/aws"
)

// CreateUser registers a new subscriber with a bcrypt-hashed password.
func (c *Controller) CreateUser(ctx context.Context, req *schemas.CreateUserRequest) (*schemas.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, utils.BadRequest("a valid email is required")
	}
	if req.Username == "" {
		return nil, utils.BadRequest("a username is required")
	}
	if len(req.Password) < 8 {
		return nil, utils.BadRequest("password must be at least 8 characters")
	}

	_, err := c.Users.GetUser(ctx, email)
	if err == nil {
		return nil, utils.Conflict("a user with this email already exists")
	}
	if !errors.Is(err, aws_handler.ErrItemNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Username:     req.Username,
		PasswordHash: string(hash),
		Subscribed:   true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := c.Users.PutUser(ctx, user); err != nil {
		return nil, err
	}

	return &schemas.UserResponse{
		Email:      user.Email,
		Username:   user.Username,
		Subscribed: user.Subscribed,
	}, nil
}
