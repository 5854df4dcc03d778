package api

import (
	"fmt"
	"strconv"
	"time"

	"intelvest/internal/app"
	"intelvest/internal/apperrors"
	"intelvest/internal/domain"
	"intelvest/internal/viewstate"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PredictionPointResponse struct {
	Date       string          `json:"date"`
	Prediction decimal.Decimal `json:"prediction"`
	Confidence float64         `json:"confidence"`
}

type ShapFeatureResponse struct {
	Feature string  `json:"feature"`
	Value   float64 `json:"value"`
}

type PredictionResponse struct {
	Symbol         string                    `json:"symbol"`
	HorizonDays    int                       `json:"horizonDays"`
	Points         []PredictionPointResponse `json:"points"`
	Shap           []ShapFeatureResponse     `json:"shap"`
	SentimentScore float64                   `json:"sentimentScore"`
	Explanation    string                    `json:"explanation"`
}

func predictionResponseFrom(snapshot domain.PredictionSnapshot) PredictionResponse {
	points := []PredictionPointResponse{}
	for _, point := range snapshot.Points {
		points = append(points, PredictionPointResponse{
			Date:       point.Date.Format(time.DateOnly),
			Prediction: point.Pred,
			Confidence: point.Conf,
		})
	}
	shap := []ShapFeatureResponse{}
	for _, feature := range snapshot.Shap {
		shap = append(shap, ShapFeatureResponse{
			Feature: feature.Feature,
			Value:   feature.Value,
		})
	}

	return PredictionResponse{
		Symbol:         snapshot.Symbol,
		HorizonDays:    snapshot.Horizon,
		Points:         points,
		Shap:           shap,
		SentimentScore: snapshot.Sentiment.Score,
		Explanation:    snapshot.Explanation,
	}
}

func horizonFromQuery(c *gin.Context) (int, error) {
	horizonStr := c.Query("horizon")
	if horizonStr == "" {
		return app.DefaultHorizonDays, nil
	}
	horizon, err := strconv.Atoi(horizonStr)
	if err != nil || horizon <= 0 {
		return 0, apperrors.New(apperrors.KindInvalidInput, fmt.Sprintf("%q is not a valid horizon.", horizonStr))
	}
	return horizon, nil
}

func (m ApiHandler) prediction(c *gin.Context) {
	symbol := c.Param("symbol")
	horizon, err := horizonFromQuery(c)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	state := viewstate.New[domain.PredictionSnapshot]()
	if err := m.Orchestrator.FetchPrediction(c.Request.Context(), state, symbol, horizon); err != nil {
		returnErrorJson(err, c)
		return
	}

	view := state.Current()
	c.JSON(200, toViewResponse(view, predictionResponseFrom(view.Data)))
}
