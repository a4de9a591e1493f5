package models

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrMissingPriceData is returned when a holding references a stock for
	// which no price series was collected, or the collected series is empty.
	ErrMissingPriceData = errors.New("missing price data")

	// ErrUnknownHolding is returned when a quantity is requested for a stock
	// the user does not hold.
	ErrUnknownHolding = errors.New("unknown holding")
)

// Portfolio joins a user's holdings with the price series collected for the
// current newsletter run. Equity figures are always derived on demand, never
// cached, so the view cannot hold stale state.
type Portfolio struct {
	Stocks map[string]UserStock
	Prices map[string]PriceSeries
}

// NewPortfolio builds the valuation view for one user. Every holding is
// expected to have a matching price series; the invariant is checked on
// access, not at construction.
func NewPortfolio(stocks map[string]UserStock, prices map[string]PriceSeries) *Portfolio {
	return &Portfolio{Stocks: stocks, Prices: prices}
}

// GetStocks returns the held symbols in lexical order. Sorting keeps
// aggregate results independent of map iteration order.
func (p *Portfolio) GetStocks() []string {
	symbols := make([]string, 0, len(p.Stocks))
	for symbol := range p.Stocks {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// GetLatestPrice returns the last observation of the symbol's series.
func (p *Portfolio) GetLatestPrice(symbol string) (float64, error) {
	series, ok := p.Prices[symbol]
	if !ok {
		return 0, fmt.Errorf("%w: no series for %q", ErrMissingPriceData, symbol)
	}
	latest, ok := series.Latest()
	if !ok {
		return 0, fmt.Errorf("%w: empty series for %q", ErrMissingPriceData, symbol)
	}
	return latest.Price, nil
}

// GetNumberOfShares returns the quantity held for the symbol.
func (p *Portfolio) GetNumberOfShares(symbol string) (float64, error) {
	stock, ok := p.Stocks[symbol]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownHolding, symbol)
	}
	return stock.Quantity, nil
}

// GetEquity returns latest price times quantity for the symbol.
func (p *Portfolio) GetEquity(symbol string) (float64, error) {
	price, err := p.GetLatestPrice(symbol)
	if err != nil {
		return 0, err
	}
	shares, err := p.GetNumberOfShares(symbol)
	if err != nil {
		return 0, err
	}
	return price * shares, nil
}

// GetTotalEquity sums the equity over all held symbols. There are no partial
// totals: the first failing symbol aborts the computation.
func (p *Portfolio) GetTotalEquity() (float64, error) {
	var total float64
	for _, symbol := range p.GetStocks() {
		equity, err := p.GetEquity(symbol)
		if err != nil {
			return 0, err
		}
		total += equity
	}
	return total, nil
}
