package domain

import (
	"github.com/shopspring/decimal"
)

// MarketTick is one symbol's entry in a market overview snapshot. One tick
// per symbol per fetch cycle.
type MarketTick struct {
	Symbol        string
	CurrentPrice  decimal.Decimal
	ChangePercent float64
	Volume        int64
	MarketCap     decimal.Decimal
}

type MarketSnapshot struct {
	Ticks []MarketTick
}

func (s MarketSnapshot) PriceMap() map[string]decimal.Decimal {
	prices := map[string]decimal.Decimal{}
	for _, tick := range s.Ticks {
		prices[tick.Symbol] = tick.CurrentPrice
	}
	return prices
}

// MarketSummary is derived from a MarketSnapshot - counts of advancing and
// declining symbols plus the mean and cross-sectional stdev of the change
// percents.
type MarketSummary struct {
	Advancers         int
	Decliners         int
	MeanChangePercent float64
	ChangeVolatility  float64
}
