package controllers

import (
	"context"
	"strings"
	"time"

	"walter/src/models"
	"walter/src/schemas"
	"walter/src/utils"
)

// AddStock records a holding for the user and registers the symbol as a
// tracked stock. The symbol is validated against the market data provider
// before anything is written.
func (c *Controller) AddStock(ctx context.Context, email string, req *schemas.AddStockRequest) error {
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		return utils.BadRequest("a stock symbol is required")
	}
	if req.Quantity < 0 {
		return utils.BadRequest("quantity cannot be negative")
	}

	start, end, err := utils.TrailingWindow(time.Now(), c.Config.Newsletter.LookbackDays)
	if err != nil {
		return err
	}
	observations, err := c.Polygon.GetPrices(ctx, symbol, start, end)
	if err != nil {
		return err
	}
	if len(observations) == 0 {
		return utils.NotFound("unknown stock symbol " + symbol)
	}

	if err := c.Stocks.PutStock(ctx, &models.Stock{Symbol: symbol}); err != nil {
		return err
	}
	return c.Holdings.PutUserStock(ctx, &models.UserStock{
		UserEmail: email,
		Symbol:    symbol,
		Quantity:  req.Quantity,
	})
}

// GetStocksForUser returns the user's holdings.
func (c *Controller) GetStocksForUser(ctx context.Context, email string) ([]models.UserStock, error) {
	return c.Holdings.GetStocksForUser(ctx, email)
}
