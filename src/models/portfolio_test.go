package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walter/src/models"
)

func series(symbol string, prices ...float64) models.PriceSeries {
	base := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	var s models.PriceSeries
	for i, price := range prices {
		s.Prices = append(s.Prices, models.PriceObservation{
			Symbol:    symbol,
			Timestamp: base.AddDate(0, 0, i),
			Price:     price,
		})
	}
	return s
}

func TestPortfolioEquity(t *testing.T) {
	portfolio := models.NewPortfolio(
		map[string]models.UserStock{
			"AMZN": {UserEmail: "walter@gmail.com", Symbol: "AMZN", Quantity: 10},
		},
		map[string]models.PriceSeries{
			"AMZN": series("AMZN", 95.0, 100.0),
		},
	)

	price, err := portfolio.GetLatestPrice("AMZN")
	require.NoError(t, err)
	assert.Equal(t, 100.0, price)

	equity, err := portfolio.GetEquity("AMZN")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, equity)

	total, err := portfolio.GetTotalEquity()
	require.NoError(t, err)
	assert.Equal(t, 1000.0, total)
}

func TestPortfolioMissingPriceData(t *testing.T) {
	t.Run("no series for held symbol", func(t *testing.T) {
		portfolio := models.NewPortfolio(
			map[string]models.UserStock{
				"NVDA": {Symbol: "NVDA", Quantity: 2},
			},
			map[string]models.PriceSeries{},
		)

		_, err := portfolio.GetEquity("NVDA")
		assert.ErrorIs(t, err, models.ErrMissingPriceData)

		_, err = portfolio.GetTotalEquity()
		assert.ErrorIs(t, err, models.ErrMissingPriceData)
	})

	t.Run("empty series for held symbol", func(t *testing.T) {
		portfolio := models.NewPortfolio(
			map[string]models.UserStock{
				"NVDA": {Symbol: "NVDA", Quantity: 2},
			},
			map[string]models.PriceSeries{
				"NVDA": {},
			},
		)

		_, err := portfolio.GetLatestPrice("NVDA")
		assert.ErrorIs(t, err, models.ErrMissingPriceData)
	})
}

func TestPortfolioUnknownHolding(t *testing.T) {
	portfolio := models.NewPortfolio(
		map[string]models.UserStock{},
		map[string]models.PriceSeries{
			"AAPL": series("AAPL", 230.0),
		},
	)

	_, err := portfolio.GetNumberOfShares("AAPL")
	assert.ErrorIs(t, err, models.ErrUnknownHolding)
}

func TestPortfolioTotalEquityIsOrderIndependent(t *testing.T) {
	stocks := map[string]models.UserStock{
		"AAPL": {Symbol: "AAPL", Quantity: 3.5},
		"AMZN": {Symbol: "AMZN", Quantity: 10},
		"MSFT": {Symbol: "MSFT", Quantity: 0.25},
	}
	prices := map[string]models.PriceSeries{
		"AAPL": series("AAPL", 229.13),
		"AMZN": series("AMZN", 100.0),
		"MSFT": series("MSFT", 417.77),
	}

	// Maps iterate in random order; repeated totals over fresh maps must
	// still be bit-identical.
	reference, err := models.NewPortfolio(stocks, prices).GetTotalEquity()
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		total, err := models.NewPortfolio(stocks, prices).GetTotalEquity()
		require.NoError(t, err)
		assert.Equal(t, reference, total)
	}
}
