package services

import (
	"context"
	"fmt"
	"time"

	"walter/src/clients/polygon"
	"walter/src/models"
	"walter/src/utils"
)

type StockServiceI interface {
	CollectPrices(ctx context.Context, symbols []string, start, end time.Time) (map[string]models.PriceSeries, error)
}

// StockService aggregates price observations for the tracked stocks over a
// fixed trailing window.
type StockService struct {
	polygonClient polygon.PolygonServiceClientI
}

func NewStockService(polygonClient polygon.PolygonServiceClientI) *StockService {
	return &StockService{polygonClient: polygonClient}
}

// CollectPrices fetches one series per symbol over [start, end). Observations
// are kept in the order the provider returns them; no deduplication or
// gap-filling happens here. A failed fetch for any symbol fails the whole
// collection — a run never works from a partial snapshot.
func (s *StockService) CollectPrices(ctx context.Context, symbols []string, start, end time.Time) (map[string]models.PriceSeries, error) {
	if !start.Before(end) {
		return nil, fmt.Errorf("invalid price window: start %s is not before end %s",
			start.Format(utils.ShortDashDateLayout), end.Format(utils.ShortDashDateLayout))
	}

	logger := utils.LoggerFromContext(ctx)

	series := make(map[string]models.PriceSeries, len(symbols))
	for _, symbol := range symbols {
		observations, err := s.polygonClient.GetPrices(ctx, symbol, start, end)
		if err != nil {
			return nil, err
		}
		entry := series[symbol]
		entry.Prices = append(entry.Prices, observations...)
		series[symbol] = entry
		logger.Debugf("Collected %d price observations for %s", len(observations), symbol)
	}
	return series, nil
}
