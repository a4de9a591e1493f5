package polygon

// GetAggregatesResponse is the payload of Polygon's aggregates (bars)
// endpoint for one ticker.
type GetAggregatesResponse struct {
	Ticker       string      `json:"ticker"`
	QueryCount   int         `json:"queryCount"`
	ResultsCount int         `json:"resultsCount"`
	Status       string      `json:"status"`
	Results      []Aggregate `json:"results"`
}

// Aggregate is a single daily bar. Timestamps are Unix milliseconds at the
// start of the aggregate window.
type Aggregate struct {
	Timestamp    int64   `json:"t"`
	Open         float64 `json:"o"`
	Close        float64 `json:"c"`
	High         float64 `json:"h"`
	Low          float64 `json:"l"`
	Volume       float64 `json:"v"`
	Transactions int64   `json:"n"`
}
