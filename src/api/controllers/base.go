package controllers

import (
	"context"

	"github.com/go-chi/jwtauth"

	"walter/src/clients/polygon"
	"walter/src/config"
	"walter/src/models"
	"walter/src/repositories"
	"walter/src/schemas"
)

type IController interface {
	CreateUser(ctx context.Context, req *schemas.CreateUserRequest) (*schemas.UserResponse, error)
	AuthUser(ctx context.Context, req *schemas.TokenRequest) (*schemas.TokenResponse, error)
	AddStock(ctx context.Context, email string, req *schemas.AddStockRequest) error
	GetStocksForUser(ctx context.Context, email string) ([]models.UserStock, error)
}

type Controller struct {
	Users     repositories.UserRepository
	Stocks    repositories.StockRepository
	Holdings  repositories.HoldingRepository
	Polygon   polygon.PolygonServiceClientI
	TokenAuth *jwtauth.JWTAuth
	Config    *config.Config
}

func NewController(
	users repositories.UserRepository,
	stocks repositories.StockRepository,
	holdings repositories.HoldingRepository,
	polygonClient polygon.PolygonServiceClientI,
	tokenAuth *jwtauth.JWTAuth,
	cfg *config.Config,
) *Controller {
	return &Controller{
		Users:     users,
		Stocks:    stocks,
		Holdings:  holdings,
		Polygon:   polygonClient,
		TokenAuth: tokenAuth,
		Config:    cfg,
	}
}
