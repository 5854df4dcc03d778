package api

import (
	"intelvest/internal/calculator"
	"intelvest/internal/domain"
	"intelvest/internal/viewstate"

	"github.com/gin-gonic/gin"
)

type TrendResponse struct {
	Term      string `json:"term"`
	Frequency int64  `json:"frequency"`
}

type SocialResponse struct {
	Symbol          string          `json:"symbol"`
	Trends          []TrendResponse `json:"trends"`
	SentimentScore  float64         `json:"sentimentScore"`
	SentimentBucket string          `json:"sentimentBucket"`
	Posts           []string        `json:"posts"`
}

func (m ApiHandler) social(c *gin.Context) {
	symbol := c.Param("symbol")

	state := viewstate.New[domain.SocialSnapshot]()
	if err := m.Orchestrator.FetchSocial(c.Request.Context(), state, symbol); err != nil {
		returnErrorJson(err, c)
		return
	}

	view := state.Current()
	trends := []TrendResponse{}
	for _, trend := range view.Data.Trends {
		trends = append(trends, TrendResponse{Term: trend.Term, Frequency: trend.Frequency})
	}
	response := SocialResponse{
		Symbol:          symbol,
		Trends:          trends,
		SentimentScore:  view.Data.Sentiment.Score,
		SentimentBucket: string(calculator.SentimentBucketFor(view.Data.Sentiment.Score)),
		Posts:           view.Data.Sentiment.Posts,
	}
	c.JSON(200, toViewResponse(view, response))
}
