package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PredictionPoint is one forecast step. Points within a snapshot are ordered
// by ascending date.
type PredictionPoint struct {
	Date time.Time
	Pred decimal.Decimal
	// Conf is the model's confidence in [0, 1].
	Conf float64
}

// ShapFeature preserves upstream rank - the slice order is
// display-significant and must not be re-sorted.
type ShapFeature struct {
	Feature string
	Value   float64
}

type PredictionSnapshot struct {
	Symbol      string
	Horizon     int
	Points      []PredictionPoint
	Shap        []ShapFeature
	Sentiment   SentimentSnapshot
	Explanation string
}
