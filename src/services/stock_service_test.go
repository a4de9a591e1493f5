package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walter/src/clients/polygon"
	"walter/src/models"
	"walter/src/services"
)

type fakePolygonClient struct {
	prices  map[string][]models.PriceObservation
	failFor map[string]bool
	calls   []string
}

func (f *fakePolygonClient) GetPrices(ctx context.Context, symbol string, start, end time.Time) ([]models.PriceObservation, error) {
	f.calls = append(f.calls, symbol)
	if f.failFor[symbol] {
		return nil, fmt.Errorf("%w: %s: connection refused", polygon.ErrPriceSource, symbol)
	}
	return f.prices[symbol], nil
}

func observation(symbol string, day int, price float64) models.PriceObservation {
	return models.PriceObservation{
		Symbol:    symbol,
		Timestamp: time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC),
		Price:     price,
	}
}

func TestCollectPrices(t *testing.T) {
	client := &fakePolygonClient{
		prices: map[string][]models.PriceObservation{
			"ABNB": {observation("ABNB", 6, 99.0), observation("ABNB", 7, 100.0)},
			"AMZN": {observation("AMZN", 6, 210.0)},
		},
	}
	service := services.NewStockService(client)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)

	series, err := service.CollectPrices(context.Background(), []string{"ABNB", "AMZN"}, start, end)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, []models.PriceObservation{observation("ABNB", 6, 99.0), observation("ABNB", 7, 100.0)}, series["ABNB"].Prices)
	assert.Equal(t, []models.PriceObservation{observation("AMZN", 6, 210.0)}, series["AMZN"].Prices)
}

func TestCollectPricesFailFast(t *testing.T) {
	client := &fakePolygonClient{
		prices: map[string][]models.PriceObservation{
			"ABNB": {observation("ABNB", 6, 99.0)},
			"MSFT": {observation("MSFT", 6, 420.0)},
		},
		failFor: map[string]bool{"AMZN": true},
	}
	service := services.NewStockService(client)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)

	series, err := service.CollectPrices(context.Background(), []string{"ABNB", "AMZN", "MSFT"}, start, end)
	assert.ErrorIs(t, err, polygon.ErrPriceSource)
	// No partial snapshot: the whole collection fails.
	assert.Nil(t, series)
}

func TestCollectPricesRejectsEmptyWindow(t *testing.T) {
	service := services.NewStockService(&fakePolygonClient{})

	at := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)
	_, err := service.CollectPrices(context.Background(), []string{"ABNB"}, at, at)
	assert.Error(t, err)
}
