package models

import "time"

// PriceObservation is a single price point for a stock, as returned by the
// market data provider. Observations within a series are ordered by timestamp
// ascending.
type PriceObservation struct {
	Symbol    string    `json:"symbol"`
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
}

// PriceSeries holds the price observations for a single stock over the
// trailing window of a newsletter run.
type PriceSeries struct {
	Prices []PriceObservation `json:"prices"`
}

// Latest returns the most recent observation of the series.
func (s PriceSeries) Latest() (PriceObservation, bool) {
	if len(s.Prices) == 0 {
		return PriceObservation{}, false
	}
	return s.Prices[len(s.Prices)-1], true
}
