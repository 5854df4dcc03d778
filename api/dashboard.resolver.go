package api

import (
	"strings"

	"intelvest/internal/domain"
	"intelvest/internal/viewstate"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// DefaultDashboardSymbol is the symbol whose prediction the composite view
// shows when the user has not picked one.
const DefaultDashboardSymbol = "RELIANCE"

type AnalyzedPositionResponse struct {
	Symbol        string          `json:"symbol"`
	CurrentPrice  decimal.Decimal `json:"currentPrice"`
	Quantity      float64         `json:"quantity"`
	Value         decimal.Decimal `json:"value"`
	ChangePercent float64         `json:"changePercent"`
	Weight        float64         `json:"weight"`
}

type PortfolioAnalysisResponse struct {
	Positions            []AnalyzedPositionResponse `json:"positions"`
	TotalValue           decimal.Decimal            `json:"totalValue"`
	OverallChange        float64                    `json:"overallChange"`
	RiskScore            float64                    `json:"riskScore"`
	DiversificationScore float64                    `json:"diversificationScore"`
}

type DashboardResponse struct {
	Market     MarketResponse            `json:"market"`
	Portfolio  PortfolioAnalysisResponse `json:"portfolio"`
	Prediction *PredictionResponse       `json:"prediction,omitempty"`
}

func analysisResponseFrom(analysis domain.PortfolioAnalysis) PortfolioAnalysisResponse {
	positions := []AnalyzedPositionResponse{}
	for _, position := range analysis.Positions {
		positions = append(positions, AnalyzedPositionResponse{
			Symbol:        position.Symbol,
			CurrentPrice:  position.CurrentPrice,
			Quantity:      position.Quantity,
			Value:         position.Value,
			ChangePercent: position.ChangePercent,
			Weight:        position.Weight,
		})
	}
	return PortfolioAnalysisResponse{
		Positions:            positions,
		TotalValue:           analysis.TotalValue,
		OverallChange:        analysis.OverallChange,
		RiskScore:            analysis.RiskScore,
		DiversificationScore: analysis.DiversificationScore,
	}
}

func (m ApiHandler) dashboard(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		symbol = DefaultDashboardSymbol
	}

	basket := []string{}
	if symbolsParam := c.Query("symbols"); symbolsParam != "" {
		basket = strings.Split(symbolsParam, ",")
	}

	state := viewstate.New[domain.DashboardSnapshot]()
	if err := m.Orchestrator.FetchDashboard(c.Request.Context(), state, symbol, basket); err != nil {
		returnErrorJson(err, c)
		return
	}

	view := state.Current()
	response := DashboardResponse{
		Market:    marketResponseFrom(view.Data.Market, view.Data.Summary),
		Portfolio: analysisResponseFrom(view.Data.Portfolio),
	}
	if view.Data.Prediction != nil {
		prediction := predictionResponseFrom(*view.Data.Prediction)
		response.Prediction = &prediction
	}
	c.JSON(200, toViewResponse(view, response))
}
