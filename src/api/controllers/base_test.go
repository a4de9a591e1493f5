package controllers_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"walter/src/api/controllers"
	"walter/src/config"
	"walter/src/models"
	"walter/src/schemas"
	"walter/src/utils"
	aws_handler "walter/src/utils/aws"
)

type fakeUserRepo struct {
	users map[string]models.User
}

func (f *fakeUserRepo) GetUser(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, fmt.Errorf("%w: table Users-UNITTEST", aws_handler.ErrItemNotFound)
	}
	return &user, nil
}

func (f *fakeUserRepo) GetUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	for _, user := range f.users {
		users = append(users, user)
	}
	return users, nil
}

func (f *fakeUserRepo) PutUser(ctx context.Context, user *models.User) error {
	f.users[user.Email] = *user
	return nil
}

type fakeStockRepo struct {
	stocks []models.Stock
}

func (f *fakeStockRepo) ListStocks(ctx context.Context) ([]models.Stock, error) {
	return f.stocks, nil
}

func (f *fakeStockRepo) PutStock(ctx context.Context, stock *models.Stock) error {
	f.stocks = append(f.stocks, *stock)
	return nil
}

type fakeHoldingRepo struct {
	holdings map[string][]models.UserStock
}

func (f *fakeHoldingRepo) GetStocksForUser(ctx context.Context, email string) ([]models.UserStock, error) {
	return f.holdings[email], nil
}

func (f *fakeHoldingRepo) PutUserStock(ctx context.Context, holding *models.UserStock) error {
	f.holdings[holding.UserEmail] = append(f.holdings[holding.UserEmail], *holding)
	return nil
}

type fakePolygonClient struct {
	known map[string]bool
}

func (f *fakePolygonClient) GetPrices(ctx context.Context, symbol string, start, end time.Time) ([]models.PriceObservation, error) {
	if !f.known[symbol] {
		return nil, nil
	}
	return []models.PriceObservation{{Symbol: symbol, Timestamp: start, Price: 100.0}}, nil
}

type controllerFixture struct {
	users      *fakeUserRepo
	stocks     *fakeStockRepo
	holdings   *fakeHoldingRepo
	controller *controllers.Controller
}

func newControllerFixture() *controllerFixture {
	cfg := &config.Config{
		Newsletter: config.NewsletterConfig{LookbackDays: 7},
	}
	f := &controllerFixture{
		users:    &fakeUserRepo{users: map[string]models.User{}},
		stocks:   &fakeStockRepo{},
		holdings: &fakeHoldingRepo{holdings: map[string][]models.UserStock{}},
	}
	f.controller = controllers.NewController(
		f.users, f.stocks, f.holdings,
		&fakePolygonClient{known: map[string]bool{"ABNB": true}},
		jwtauth.New("HS256", []byte("unit-test-secret"), nil),
		cfg,
	)
	return f
}

func TestCreateUser(t *testing.T) {
	f := newControllerFixture()

	user, err := f.controller.CreateUser(context.Background(), &schemas.CreateUserRequest{
		Email:    "Walter@Gmail.com",
		Username: "walter",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, "walter@gmail.com", user.Email)
	assert.True(t, user.Subscribed)

	stored := f.users.users["walter@gmail.com"]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter2hunter2")))
}

func TestCreateUserValidation(t *testing.T) {
	f := newControllerFixture()

	cases := []struct {
		name string
		req  schemas.CreateUserRequest
	}{
		{"missing email", schemas.CreateUserRequest{Username: "w", Password: "hunter2hunter2"}},
		{"invalid email", schemas.CreateUserRequest{Email: "not-an-email", Username: "w", Password: "hunter2hunter2"}},
		{"missing username", schemas.CreateUserRequest{Email: "w@gmail.com", Password: "hunter2hunter2"}},
		{"short password", schemas.CreateUserRequest{Email: "w@gmail.com", Username: "w", Password: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.controller.CreateUser(context.Background(), &tc.req)
			require.Error(t, err)
			httpErr, ok := err.(*utils.HTTPError)
			require.True(t, ok)
			assert.Equal(t, 400, httpErr.Code)
		})
	}
}

func TestCreateUserConflict(t *testing.T) {
	f := newControllerFixture()
	f.users.users["walter@gmail.com"] = models.User{Email: "walter@gmail.com"}

	_, err := f.controller.CreateUser(context.Background(), &schemas.CreateUserRequest{
		Email:    "walter@gmail.com",
		Username: "walter",
		Password: "hunter2hunter2",
	})
	require.Error(t, err)
	httpErr, ok := err.(*utils.HTTPError)
	require.True(t, ok)
	assert.Equal(t, 409, httpErr.Code)
}

func TestAuthUser(t *testing.T) {
	f := newControllerFixture()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.DefaultCost)
	require.NoError(t, err)
	f.users.users["walter@gmail.com"] = models.User{
		Email:        "walter@gmail.com",
		PasswordHash: string(hash),
	}

	t.Run("valid credentials", func(t *testing.T) {
		token, err := f.controller.AuthUser(context.Background(), &schemas.TokenRequest{
			Email:    "walter@gmail.com",
			Password: "hunter2hunter2",
		})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", token.TokenType)
		assert.NotEmpty(t, token.AccessToken)
		assert.Equal(t, 3600, token.ExpiresIn)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.controller.AuthUser(context.Background(), &schemas.TokenRequest{
			Email:    "walter@gmail.com",
			Password: "wrong",
		})
		require.Error(t, err)
		httpErr, ok := err.(*utils.HTTPError)
		require.True(t, ok)
		assert.Equal(t, 401, httpErr.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.controller.AuthUser(context.Background(), &schemas.TokenRequest{
			Email:    "nobody@gmail.com",
			Password: "hunter2hunter2",
		})
		require.Error(t, err)
		httpErr, ok := err.(*utils.HTTPError)
		require.True(t, ok)
		assert.Equal(t, 401, httpErr.Code)
	})
}

func TestAddStock(t *testing.T) {
	f := newControllerFixture()

	err := f.controller.AddStock(context.Background(), "walter@gmail.com", &schemas.AddStockRequest{
		Symbol:   "abnb",
		Quantity: 5,
	})
	require.NoError(t, err)

	require.Len(t, f.stocks.stocks, 1)
	assert.Equal(t, "ABNB", f.stocks.stocks[0].Symbol)

	holdings, err := f.controller.GetStocksForUser(context.Background(), "walter@gmail.com")
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, models.UserStock{UserEmail: "walter@gmail.com", Symbol: "ABNB", Quantity: 5}, holdings[0])
}

func TestAddStockUnknownSymbol(t *testing.T) {
	f := newControllerFixture()

	err := f.controller.AddStock(context.Background(), "walter@gmail.com", &schemas.AddStockRequest{
		Symbol:   "NOPE",
		Quantity: 1,
	})
	require.Error(t, err)
	httpErr, ok := err.(*utils.HTTPError)
	require.True(t, ok)
	assert.Equal(t, 404, httpErr.Code)
	assert.Empty(t, f.stocks.stocks)
}

func TestAddStockNegativeQuantity(t *testing.T) {
	f := newControllerFixture()

	err := f.controller.AddStock(context.Background(), "walter@gmail.com", &schemas.AddStockRequest{
		Symbol:   "ABNB",
		Quantity: -1,
	})
	require.Error(t, err)
	httpErr, ok := err.(*utils.HTTPError)
	require.True(t, ok)
	assert.Equal(t, 400, httpErr.Code)
}
