package api

import (
	"intelvest/internal/calculator"
	"intelvest/internal/domain"
	"intelvest/internal/viewstate"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type MarketTickResponse struct {
	Symbol        string          `json:"symbol"`
	CurrentPrice  decimal.Decimal `json:"currentPrice"`
	ChangePercent float64         `json:"changePercent"`
	Volume        int64           `json:"volume"`
	MarketCap     decimal.Decimal `json:"marketCap"`
}

type MarketSummaryResponse struct {
	Advancers         int     `json:"advancers"`
	Decliners         int     `json:"decliners"`
	MeanChangePercent float64 `json:"meanChangePercent"`
	ChangeVolatility  float64 `json:"changeVolatility"`
}

type MarketResponse struct {
	Ticks   []MarketTickResponse  `json:"ticks"`
	Summary MarketSummaryResponse `json:"summary"`
}

func marketResponseFrom(snapshot domain.MarketSnapshot, summary domain.MarketSummary) MarketResponse {
	ticks := []MarketTickResponse{}
	for _, tick := range snapshot.Ticks {
		ticks = append(ticks, MarketTickResponse{
			Symbol:        tick.Symbol,
			CurrentPrice:  tick.CurrentPrice,
			ChangePercent: tick.ChangePercent,
			Volume:        tick.Volume,
			MarketCap:     tick.MarketCap,
		})
	}
	return MarketResponse{
		Ticks: ticks,
		Summary: MarketSummaryResponse{
			Advancers:         summary.Advancers,
			Decliners:         summary.Decliners,
			MeanChangePercent: summary.MeanChangePercent,
			ChangeVolatility:  summary.ChangeVolatility,
		},
	}
}

func (m ApiHandler) market(c *gin.Context) {
	state := viewstate.New[domain.MarketSnapshot]()
	if err := m.Orchestrator.FetchMarket(c.Request.Context(), state); err != nil {
		returnErrorJson(err, c)
		return
	}

	view := state.Current()
	c.JSON(200, toViewResponse(view, marketResponseFrom(view.Data, calculator.SummarizeMarket(view.Data))))
}
