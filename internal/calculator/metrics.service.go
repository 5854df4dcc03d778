package calculator

import (
	"fmt"
	"math"

	"intelvest/internal/domain"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// PositionWeights computes each holding's share of total portfolio value as
// a percentage. If every position is zero-valued the denominator would be
// zero; all weights are defined as 0 in that case.
func PositionWeights(holdings []domain.Holding, priceMap map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	totalValue := decimal.Zero
	values := map[string]decimal.Decimal{}
	for _, holding := range holdings {
		price, ok := priceMap[holding.Symbol]
		if !ok {
			return nil, fmt.Errorf("cannot compute weights: price map missing %s", holding.Symbol)
		}
		value := price.Mul(decimal.NewFromInt(holding.Quantity))
		values[holding.Symbol] = value
		totalValue = totalValue.Add(value)
	}

	weights := map[string]decimal.Decimal{}
	for symbol, value := range values {
		if totalValue.IsZero() {
			weights[symbol] = decimal.Zero
			continue
		}
		weights[symbol] = value.Div(totalValue).Mul(oneHundred)
	}

	return weights, nil
}

// PnlPercent computes (current - purchase) / purchase * 100. A zero
// purchase price is a defined error, never a NaN handed to the view.
func PnlPercent(currentPrice, purchasePrice decimal.Decimal) (decimal.Decimal, error) {
	if purchasePrice.IsZero() {
		return decimal.Zero, fmt.Errorf("cannot compute p&l percent with zero purchase price")
	}
	return currentPrice.Sub(purchasePrice).Div(purchasePrice).Mul(oneHundred), nil
}

// DeriveHoldingMetrics joins holdings with current prices and produces the
// full client-side derived view: per-holding value, weight and p&l percent,
// plus portfolio-level concentration scores. Holdings keep upstream order.
func DeriveHoldingMetrics(snapshot domain.PortfolioSnapshot, priceMap map[string]decimal.Decimal) (*domain.DerivedPortfolioMetrics, error) {
	weights, err := PositionWeights(snapshot.Holdings, priceMap)
	if err != nil {
		return nil, err
	}

	totalValue := decimal.Zero
	holdingMetrics := []domain.HoldingMetrics{}
	for _, holding := range snapshot.Holdings {
		price := priceMap[holding.Symbol]
		value := price.Mul(decimal.NewFromInt(holding.Quantity))
		totalValue = totalValue.Add(value)

		metrics := domain.HoldingMetrics{
			Symbol:       holding.Symbol,
			CurrentPrice: price,
			Value:        value,
			Weight:       weights[holding.Symbol],
		}
		pnl, err := PnlPercent(price, holding.PurchasePrice)
		if err != nil {
			metrics.PnlUndefined = true
		} else {
			metrics.PnlPercent = pnl
		}
		holdingMetrics = append(holdingMetrics, metrics)
	}

	risk, diversification := ConcentrationScores(weights)

	return &domain.DerivedPortfolioMetrics{
		Holdings:             holdingMetrics,
		TotalValue:           totalValue,
		RiskScore:            risk,
		DiversificationScore: diversification,
	}, nil
}

// ConcentrationScores maps portfolio concentration onto the 0-10 risk and
// diversification scales. The backend computes its own versions of these;
// this client-side formula is used when only raw holdings are available.
//
// The formula is the normalized Herfindahl-Hirschman index over weight
// fractions: hhi = sum(w_i^2) with w_i in [0, 1], rescaled from its
// floor of 1/n (equal weights) so that
//
//	risk            = 10 * (hhi - 1/n) / (1 - 1/n)
//	diversification = 10 - risk
//
// A single-position portfolio scores risk 10. Higher single-position weight
// always raises hhi, so risk is monotonic with concentration.
func ConcentrationScores(weights map[string]decimal.Decimal) (float64, float64) {
	n := len(weights)
	if n == 0 {
		return 0, 0
	}
	if n == 1 {
		return 10, 0
	}

	hhi := 0.0
	for _, weight := range weights {
		fraction := weight.InexactFloat64() / 100
		hhi += fraction * fraction
	}

	floor := 1.0 / float64(n)
	normalized := (hhi - floor) / (1 - floor)
	risk := 10 * math.Max(0, math.Min(1, normalized))

	return risk, 10 - risk
}

// ClampScore forces a sentiment score into [-1, 1].
func ClampScore(score float64) float64 {
	return math.Max(-1, math.Min(1, score))
}

// SentimentBucketFor classifies a score. The boundary is inclusive to
// positive: score >= 0 is positive, score < 0 negative.
func SentimentBucketFor(score float64) domain.SentimentBucket {
	if ClampScore(score) >= 0 {
		return domain.SentimentBucket_Positive
	}
	return domain.SentimentBucket_Negative
}

// SentimentMix splits a score into positive/neutral/negative mass for the
// three-way display. Neutral mass is 1 - |score|, clamped to >= 0; the
// three masses sum to 1.
func SentimentMix(score float64) (positive, neutral, negative float64) {
	clamped := ClampScore(score)
	positive = math.Max(clamped, 0)
	negative = math.Max(-clamped, 0)
	neutral = math.Max(1-math.Abs(clamped), 0)
	return positive, neutral, negative
}

// SummarizeMarket derives the dashboard's market stat line from one
// overview snapshot.
func SummarizeMarket(snapshot domain.MarketSnapshot) domain.MarketSummary {
	summary := domain.MarketSummary{}
	if len(snapshot.Ticks) == 0 {
		return summary
	}

	changes := []float64{}
	for _, tick := range snapshot.Ticks {
		if tick.ChangePercent >= 0 {
			summary.Advancers++
		} else {
			summary.Decliners++
		}
		changes = append(changes, tick.ChangePercent)
	}

	mean, err := stats.Mean(changes)
	if err == nil {
		summary.MeanChangePercent = mean
	}

	if len(changes) >= 2 {
		stdev, err := stats.StandardDeviationSample(changes)
		if err == nil {
			summary.ChangeVolatility = stdev
		}
	}

	return summary
}
