package polygon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"walter/src/config"
	"walter/src/models"
	"walter/src/utils/requests"
)

// ErrPriceSource wraps failures of the market data provider.
var ErrPriceSource = errors.New("price source error")

type PolygonServiceClientI interface {
	GetPrices(ctx context.Context, symbol string, start, end time.Time) ([]models.PriceObservation, error)
}

type PolygonServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
	apiKey  string
}

// NewClient creates a new instance of PolygonServiceClient. The API key is
// resolved once at startup and handed in as a plain value.
func NewClient(cfg *config.Config, apiKey string) (*PolygonServiceClient, error) {
	api := requests.NewExternalAPIService(10 * time.Second)
	return &PolygonServiceClient{
		API:     api,
		BaseURL: cfg.ExternalClients.Polygon.BaseURL,
		apiKey:  apiKey,
	}, nil
}

// GetPrices fetches the daily close prices for a symbol over [start, end).
// Observations are returned in the order the provider sends them, oldest
// first.
func (c *PolygonServiceClient) GetPrices(ctx context.Context, symbol string, start, end time.Time) ([]models.PriceObservation, error) {
	endpoint := fmt.Sprintf("%s/v2/aggs/ticker/%s/range/1/day/%s/%s",
		c.BaseURL, symbol, start.Format("2006-01-02"), end.Format("2006-01-02"))

	params := url.Values{}
	params.Add("adjusted", "true")
	params.Add("sort", "asc")

	resp, err := c.API.Get(ctx, endpoint, c.apiKey, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPriceSource, symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: unexpected status %s", ErrPriceSource, symbol, resp.Status)
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPriceSource, symbol, err)
	}

	var aggregatesResponse GetAggregatesResponse
	err = json.Unmarshal(responseBody, &aggregatesResponse)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPriceSource, symbol, err)
	}

	observations := make([]models.PriceObservation, 0, len(aggregatesResponse.Results))
	for _, bar := range aggregatesResponse.Results {
		observations = append(observations, models.PriceObservation{
			Symbol:    symbol,
			Timestamp: time.UnixMilli(bar.Timestamp).UTC(),
			Price:     bar.Close,
		})
	}
	return observations, nil
}
