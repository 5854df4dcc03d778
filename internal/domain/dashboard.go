package domain

// DashboardSnapshot is the composite view's data: market overview, the
// analyzed default basket, and the selected symbol's prediction. Market and
// Prediction are degradable - a transport failure on either leaves the zero
// value / nil and the cycle still reaches Ready flagged as partial.
type DashboardSnapshot struct {
	Market     MarketSnapshot
	Summary    MarketSummary
	Portfolio  PortfolioAnalysis
	Prediction *PredictionSnapshot
}
