package polygon_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walter/src/clients/polygon"
	"walter/src/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *polygon.PolygonServiceClient {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.ExternalClients.Polygon.BaseURL = server.URL

	client, err := polygon.NewClient(cfg, "test-api-key")
	require.NoError(t, err)
	return client
}

func TestGetPrices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/aggs/ticker/ABNB/range/1/day/2025-01-01/2025-01-08", r.URL.Path)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
		assert.Equal(t, "asc", r.URL.Query().Get("sort"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"ticker": "ABNB",
			"queryCount": 2,
			"resultsCount": 2,
			"status": "OK",
			"results": [
				{"t": 1736121600000, "o": 131.0, "c": 132.5, "h": 133.0, "l": 130.1, "v": 100, "n": 10},
				{"t": 1736208000000, "o": 132.5, "c": 134.0, "h": 135.0, "l": 132.0, "v": 120, "n": 12}
			]
		}`))
	})

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)

	observations, err := client.GetPrices(context.Background(), "ABNB", start, end)
	require.NoError(t, err)
	require.Len(t, observations, 2)

	assert.Equal(t, "ABNB", observations[0].Symbol)
	assert.Equal(t, 132.5, observations[0].Price)
	assert.Equal(t, time.UnixMilli(1736121600000).UTC(), observations[0].Timestamp)
	// Provider order is preserved, oldest first.
	assert.True(t, observations[0].Timestamp.Before(observations[1].Timestamp))
}

func TestGetPricesUnexpectedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	})

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)

	_, err := client.GetPrices(context.Background(), "ABNB", start, end)
	assert.ErrorIs(t, err, polygon.ErrPriceSource)
}

func TestGetPricesMalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)

	_, err := client.GetPrices(context.Background(), "ABNB", start, end)
	assert.ErrorIs(t, err, polygon.ErrPriceSource)
}
