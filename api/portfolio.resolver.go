package api

import (
	"intelvest/internal/domain"
	"intelvest/internal/viewstate"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type HoldingMetricsResponse struct {
	Symbol       string          `json:"symbol"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
	Value        decimal.Decimal `json:"value"`
	Weight       decimal.Decimal `json:"weight"`
	PnlPercent   decimal.Decimal `json:"pnlPercent"`
	PnlUndefined bool            `json:"pnlUndefined,omitempty"`
}

type PortfolioResponse struct {
	Holdings             []HoldingMetricsResponse `json:"holdings"`
	TotalValue           decimal.Decimal          `json:"totalValue"`
	RiskScore            float64                  `json:"riskScore"`
	DiversificationScore float64                  `json:"diversificationScore"`
}

func portfolioResponseFrom(metrics domain.DerivedPortfolioMetrics) PortfolioResponse {
	holdings := []HoldingMetricsResponse{}
	for _, holding := range metrics.Holdings {
		holdings = append(holdings, HoldingMetricsResponse{
			Symbol:       holding.Symbol,
			CurrentPrice: holding.CurrentPrice,
			Value:        holding.Value,
			Weight:       holding.Weight,
			PnlPercent:   holding.PnlPercent,
			PnlUndefined: holding.PnlUndefined,
		})
	}
	return PortfolioResponse{
		Holdings:             holdings,
		TotalValue:           metrics.TotalValue,
		RiskScore:            metrics.RiskScore,
		DiversificationScore: metrics.DiversificationScore,
	}
}

func (m ApiHandler) portfolio(c *gin.Context) {
	state := viewstate.New[domain.DerivedPortfolioMetrics]()
	if err := m.Orchestrator.FetchPortfolio(c.Request.Context(), state); err != nil {
		returnErrorJson(err, c)
		return
	}

	view := state.Current()
	c.JSON(200, toViewResponse(view, portfolioResponseFrom(view.Data)))
}
