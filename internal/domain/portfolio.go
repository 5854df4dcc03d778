package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Holding is one position in the user's portfolio. Quantity and
// PurchasePrice are positive for any holding that passed normalization.
type Holding struct {
	Symbol        string
	Quantity      int64
	PurchasePrice decimal.Decimal
}

// PortfolioSnapshot keeps holdings in upstream order. Symbols are unique
// within one snapshot.
type PortfolioSnapshot struct {
	Holdings   []Holding
	TotalValue decimal.Decimal
}

func (p PortfolioSnapshot) Symbols() []string {
	symbols := []string{}
	for _, holding := range p.Holdings {
		symbols = append(symbols, holding.Symbol)
	}
	return symbols
}

// ValueFrom prices the holdings against the given price map. Upstream may
// send its own total; this recomputes one client-side when current prices
// are available.
func (p PortfolioSnapshot) ValueFrom(priceMap map[string]decimal.Decimal) (decimal.Decimal, error) {
	totalValue := decimal.Zero
	for _, holding := range p.Holdings {
		price, ok := priceMap[holding.Symbol]
		if !ok {
			return decimal.Zero, fmt.Errorf("cannot compute portfolio total value: price map missing %s", holding.Symbol)
		}
		totalValue = totalValue.Add(price.Mul(decimal.NewFromInt(holding.Quantity)))
	}

	return totalValue, nil
}

// AnalyzedPosition is one row of an upstream portfolio analysis.
type AnalyzedPosition struct {
	Symbol        string
	CurrentPrice  decimal.Decimal
	Quantity      float64
	Value         decimal.Decimal
	ChangePercent float64
	// Weight is the position's share of total value, 0-100.
	Weight float64
}

// PortfolioAnalysis carries the upstream-computed aggregates. RiskScore and
// DiversificationScore are 0-10 scalars computed server-side and passed
// through untouched.
type PortfolioAnalysis struct {
	Positions            []AnalyzedPosition
	TotalValue           decimal.Decimal
	OverallChange        float64
	RiskScore            float64
	DiversificationScore float64
}

// HoldingMetrics is the client-derived view of one holding. PnlUndefined is
// set instead of propagating a division by a zero purchase price.
type HoldingMetrics struct {
	Symbol       string
	CurrentPrice decimal.Decimal
	Value        decimal.Decimal
	Weight       decimal.Decimal
	PnlPercent   decimal.Decimal
	PnlUndefined bool
}

type DerivedPortfolioMetrics struct {
	Holdings             []HoldingMetrics
	TotalValue           decimal.Decimal
	RiskScore            float64
	DiversificationScore float64
}
