package normalize

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"intelvest/internal/domain"
	"intelvest/pkg/intelvestor"

	"github.com/shopspring/decimal"
)

// Report collects sub-record normalization failures. A failed sub-record is
// dropped or defaulted and noted here; it never aborts the whole snapshot.
// A non-empty report surfaces as a partial-data condition on the view.
type Report struct {
	Problems []string
}

func (r *Report) addf(format string, args ...interface{}) {
	r.Problems = append(r.Problems, fmt.Sprintf(format, args...))
}

func (r *Report) merge(other Report) {
	r.Problems = append(r.Problems, other.Problems...)
}

func (r Report) Partial() bool {
	return len(r.Problems) > 0
}

const dateLayout = "2006-01-02"

// Prediction maps a raw predict payload onto the canonical snapshot. Points
// that fail coercion are dropped and reported; the surviving sequence is
// sorted by ascending date.
func Prediction(in *intelvestor.PredictResponse, symbol string, horizonDays int) (domain.PredictionSnapshot, Report) {
	report := Report{}

	rawPoints := in.Prediction
	if len(rawPoints) == 0 {
		rawPoints = in.Predictions
	}

	points := []domain.PredictionPoint{}
	for i, rawPoint := range rawPoints {
		date, err := time.Parse(dateLayout, rawPoint.Date)
		if err != nil {
			report.addf("prediction[%d]: unparseable date %q", i, rawPoint.Date)
			continue
		}
		pred, ok := coerceDecimal(rawPoint.Pred)
		if !ok {
			report.addf("prediction[%d]: unparseable pred %v", i, rawPoint.Pred)
			continue
		}
		conf, ok := coerceFloat(rawPoint.Conf)
		if !ok {
			report.addf("prediction[%d]: unparseable conf %v", i, rawPoint.Conf)
			continue
		}
		points = append(points, domain.PredictionPoint{
			Date: date,
			Pred: pred,
			Conf: clamp(conf, 0, 1),
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	rawShap := in.Shap
	if len(rawShap) == 0 {
		rawShap = in.ShapValues
	}

	// upstream rank is display-significant, keep the order
	shap := []domain.ShapFeature{}
	for i, rawFeature := range rawShap {
		value, ok := coerceFloat(rawFeature.Value)
		if !ok {
			report.addf("shap[%d]: unparseable value for %q", i, rawFeature.Feature)
			continue
		}
		shap = append(shap, domain.ShapFeature{
			Feature: rawFeature.Feature,
			Value:   value,
		})
	}

	sentiment, sentimentReport := Sentiment(in.Sentiment)
	report.merge(sentimentReport)

	normalizedSymbol := in.Symbol
	if normalizedSymbol == "" {
		normalizedSymbol = symbol
	}

	return domain.PredictionSnapshot{
		Symbol:      normalizedSymbol,
		Horizon:     horizonDays,
		Points:      points,
		Shap:        shap,
		Sentiment:   sentiment,
		Explanation: in.Explanation,
	}, report
}

// Sentiment applies the fallback precedence for post text: posts if present
// and non-empty, else headlines, else an empty list. Scores outside [-1, 1]
// are clamped and reported.
func Sentiment(in intelvestor.RawSentiment) (domain.SentimentSnapshot, Report) {
	report := Report{}

	score := 0.0
	if in.Score != nil {
		coerced, ok := coerceFloat(in.Score)
		if !ok {
			report.addf("sentiment: unparseable score %v", in.Score)
		} else {
			if coerced < -1 || coerced > 1 {
				report.addf("sentiment: score %v outside [-1, 1], clamped", coerced)
			}
			score = clamp(coerced, -1, 1)
		}
	}

	posts := []string{}
	if len(in.Posts) > 0 {
		posts = append(posts, in.Posts...)
	} else if len(in.Headlines) > 0 {
		posts = append(posts, in.Headlines...)
	}

	return domain.SentimentSnapshot{
		Score: score,
		Posts: posts,
	}, report
}

// Social maps the social-insights payload. Trends default to an empty list,
// never nil.
func Social(in *intelvestor.SocialResponse) (domain.SocialSnapshot, Report) {
	report := Report{}

	trends := []domain.Trend{}
	for i, rawTrend := range in.Sentiment.Trends {
		frequency, ok := coerceInt(rawTrend.Frequency)
		if !ok {
			report.addf("trends[%d]: unparseable frequency for %q", i, rawTrend.Term)
			continue
		}
		if frequency < 0 {
			report.addf("trends[%d]: negative frequency for %q", i, rawTrend.Term)
			continue
		}
		trends = append(trends, domain.Trend{
			Term:      rawTrend.Term,
			Frequency: frequency,
		})
	}

	sentiment, sentimentReport := Sentiment(in.Sentiment)
	report.merge(sentimentReport)

	return domain.SocialSnapshot{
		Trends:    trends,
		Sentiment: sentiment,
	}, report
}

// Portfolio validates each holding - positive quantity, positive purchase
// price, unique symbol. Invalid rows are dropped and reported.
func Portfolio(in *intelvestor.PortfolioResponse) (domain.PortfolioSnapshot, Report) {
	report := Report{}

	seen := map[string]bool{}
	holdings := []domain.Holding{}
	for i, rawHolding := range in.Holdings {
		if rawHolding.Symbol == "" {
			report.addf("holdings[%d]: missing symbol", i)
			continue
		}
		if seen[rawHolding.Symbol] {
			report.addf("holdings[%d]: duplicate symbol %s", i, rawHolding.Symbol)
			continue
		}
		quantity, ok := coerceInt(rawHolding.Quantity)
		if !ok || quantity <= 0 {
			report.addf("holdings[%d]: invalid quantity %v for %s", i, rawHolding.Quantity, rawHolding.Symbol)
			continue
		}
		purchasePrice, ok := coerceDecimal(rawHolding.PurchasePrice)
		if !ok || !purchasePrice.IsPositive() {
			report.addf("holdings[%d]: invalid purchase price %v for %s", i, rawHolding.PurchasePrice, rawHolding.Symbol)
			continue
		}
		seen[rawHolding.Symbol] = true
		holdings = append(holdings, domain.Holding{
			Symbol:        rawHolding.Symbol,
			Quantity:      quantity,
			PurchasePrice: purchasePrice,
		})
	}

	totalValue := decimal.Zero
	if in.TotalValue != nil {
		coerced, ok := coerceDecimal(in.TotalValue)
		if !ok {
			report.addf("portfolio: unparseable total value %v", in.TotalValue)
		} else {
			totalValue = coerced
		}
	}

	return domain.PortfolioSnapshot{
		Holdings:   holdings,
		TotalValue: totalValue,
	}, report
}

// MarketOverview drops ticks that violate the non-negative invariants on
// price, volume and market cap.
func MarketOverview(in *intelvestor.MarketOverviewResponse) (domain.MarketSnapshot, Report) {
	report := Report{}

	ticks := []domain.MarketTick{}
	seen := map[string]bool{}
	for i, rawTick := range in.MarketData {
		if rawTick.Symbol == "" {
			report.addf("market_data[%d]: missing symbol", i)
			continue
		}
		if seen[rawTick.Symbol] {
			report.addf("market_data[%d]: duplicate symbol %s", i, rawTick.Symbol)
			continue
		}
		currentPrice, ok := coerceDecimal(rawTick.CurrentPrice)
		if !ok || currentPrice.IsNegative() {
			report.addf("market_data[%d]: invalid current price %v for %s", i, rawTick.CurrentPrice, rawTick.Symbol)
			continue
		}
		changePercent, ok := coerceFloat(rawTick.ChangePercent)
		if !ok {
			report.addf("market_data[%d]: invalid change percent %v for %s", i, rawTick.ChangePercent, rawTick.Symbol)
			continue
		}
		volume, ok := coerceInt(rawTick.Volume)
		if !ok || volume < 0 {
			report.addf("market_data[%d]: invalid volume %v for %s", i, rawTick.Volume, rawTick.Symbol)
			continue
		}
		marketCap, ok := coerceDecimal(rawTick.MarketCap)
		if !ok || marketCap.IsNegative() {
			report.addf("market_data[%d]: invalid market cap %v for %s", i, rawTick.MarketCap, rawTick.Symbol)
			continue
		}
		seen[rawTick.Symbol] = true
		ticks = append(ticks, domain.MarketTick{
			Symbol:        rawTick.Symbol,
			CurrentPrice:  currentPrice,
			ChangePercent: changePercent,
			Volume:        volume,
			MarketCap:     marketCap,
		})
	}

	return domain.MarketSnapshot{Ticks: ticks}, report
}

// Analysis maps the upstream portfolio analysis. Risk and diversification
// scores are passed through, clamped to their documented 0-10 range.
func Analysis(in *intelvestor.AnalyzeResponse) (domain.PortfolioAnalysis, Report) {
	report := Report{}

	positions := []domain.AnalyzedPosition{}
	for i, rawPosition := range in.Portfolio {
		if rawPosition.Symbol == "" {
			report.addf("portfolio[%d]: missing symbol", i)
			continue
		}
		currentPrice, ok := coerceDecimal(rawPosition.CurrentPrice)
		if !ok {
			report.addf("portfolio[%d]: invalid current price %v for %s", i, rawPosition.CurrentPrice, rawPosition.Symbol)
			continue
		}
		quantity, ok := coerceFloat(rawPosition.Quantity)
		if !ok {
			report.addf("portfolio[%d]: invalid quantity %v for %s", i, rawPosition.Quantity, rawPosition.Symbol)
			continue
		}
		value, ok := coerceDecimal(rawPosition.Value)
		if !ok {
			report.addf("portfolio[%d]: invalid value %v for %s", i, rawPosition.Value, rawPosition.Symbol)
			continue
		}
		changePercent, ok := coerceFloat(rawPosition.ChangePercent)
		if !ok {
			report.addf("portfolio[%d]: invalid change percent %v for %s", i, rawPosition.ChangePercent, rawPosition.Symbol)
			continue
		}
		weight, ok := coerceFloat(rawPosition.Weight)
		if !ok {
			report.addf("portfolio[%d]: invalid weight %v for %s", i, rawPosition.Weight, rawPosition.Symbol)
			continue
		}
		positions = append(positions, domain.AnalyzedPosition{
			Symbol:        rawPosition.Symbol,
			CurrentPrice:  currentPrice,
			Quantity:      quantity,
			Value:         value,
			ChangePercent: changePercent,
			Weight:        weight,
		})
	}

	totalValue := decimal.Zero
	if in.TotalValue != nil {
		if coerced, ok := coerceDecimal(in.TotalValue); ok {
			totalValue = coerced
		} else {
			report.addf("analysis: unparseable total value %v", in.TotalValue)
		}
	}

	overallChange := coerceFloatOrReport(in.OverallChange, "overall change", &report)
	riskScore := clamp(coerceFloatOrReport(in.RiskScore, "risk score", &report), 0, 10)
	diversificationScore := clamp(coerceFloatOrReport(in.DiversificationScore, "diversification score", &report), 0, 10)

	return domain.PortfolioAnalysis{
		Positions:            positions,
		TotalValue:           totalValue,
		OverallChange:        overallChange,
		RiskScore:            riskScore,
		DiversificationScore: diversificationScore,
	}, report
}

func coerceFloatOrReport(v interface{}, name string, report *Report) float64 {
	if v == nil {
		return 0
	}
	coerced, ok := coerceFloat(v)
	if !ok {
		report.addf("analysis: unparseable %s %v", name, v)
		return 0
	}
	return coerced
}

func coerceFloat(v interface{}) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	case json.Number:
		parsed, err := value.Float64()
		return parsed, err == nil
	case string:
		parsed, err := strconv.ParseFloat(value, 64)
		return parsed, err == nil
	}
	return 0, false
}

func coerceInt(v interface{}) (int64, bool) {
	parsed, ok := coerceFloat(v)
	if !ok {
		return 0, false
	}
	return int64(parsed), true
}

func coerceDecimal(v interface{}) (decimal.Decimal, bool) {
	switch value := v.(type) {
	case string:
		parsed, err := decimal.NewFromString(value)
		return parsed, err == nil
	case json.Number:
		parsed, err := decimal.NewFromString(value.String())
		return parsed, err == nil
	}
	parsed, ok := coerceFloat(v)
	if !ok {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(parsed), true
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
