package api

import (
	"intelvest/internal/app"
	"intelvest/internal/calculator"
	"intelvest/internal/domain"
	"intelvest/internal/viewstate"

	"github.com/gin-gonic/gin"
)

type SentimentResponse struct {
	Symbol   string   `json:"symbol"`
	Score    float64  `json:"score"`
	Bucket   string   `json:"bucket"`
	Positive float64  `json:"positive"`
	Neutral  float64  `json:"neutral"`
	Negative float64  `json:"negative"`
	Posts    []string `json:"posts"`
}

// sentiment renders a different slice of the prediction cycle's snapshot:
// the news score, its bucket and three-way mix, and the source texts.
func (m ApiHandler) sentiment(c *gin.Context) {
	symbol := c.Param("symbol")

	state := viewstate.New[domain.PredictionSnapshot]()
	if err := m.Orchestrator.FetchPrediction(c.Request.Context(), state, symbol, app.DefaultHorizonDays); err != nil {
		returnErrorJson(err, c)
		return
	}

	view := state.Current()
	positive, neutral, negative := calculator.SentimentMix(view.Data.Sentiment.Score)
	response := SentimentResponse{
		Symbol:   view.Data.Symbol,
		Score:    view.Data.Sentiment.Score,
		Bucket:   string(calculator.SentimentBucketFor(view.Data.Sentiment.Score)),
		Positive: positive,
		Neutral:  neutral,
		Negative: negative,
		Posts:    view.Data.Sentiment.Posts,
	}
	c.JSON(200, toViewResponse(view, response))
}
