package intelvestor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"intelvest/internal/logger"
)

// Client talks to the intelvestor backend REST surface. Every call requires
// a bearer token; the caller owns acquisition and refresh.
type Client struct {
	HttpClient *http.Client
	BaseUrl    string
}

// Response shapes are deliberately loose - numeric fields arrive as
// interface{} and get coerced downstream by the normalizer, because the
// upstream services disagree on types and field names between versions.

type RawPredictionPoint struct {
	Date string      `json:"date"`
	Pred interface{} `json:"pred"`
	Conf interface{} `json:"conf"`
}

type RawShapFeature struct {
	Feature string      `json:"feature"`
	Value   interface{} `json:"value"`
}

type RawTrend struct {
	Term      string      `json:"term"`
	Frequency interface{} `json:"frequency"`
}

type RawSentiment struct {
	Score     interface{} `json:"score"`
	Posts     []string    `json:"posts"`
	Headlines []string    `json:"headlines"`
	Trends    []RawTrend  `json:"trends"`
}

type PredictResponse struct {
	Symbol string `json:"symbol"`
	// the java gateway calls this "prediction", the ml service "predictions"
	Prediction  []RawPredictionPoint `json:"prediction"`
	Predictions []RawPredictionPoint `json:"predictions"`
	Sentiment   RawSentiment         `json:"sentiment"`
	Shap        []RawShapFeature     `json:"shap"`
	ShapValues  []RawShapFeature     `json:"shap_values"`
	Explanation string               `json:"explanation"`
}

type SocialResponse struct {
	Sentiment RawSentiment `json:"sentiment"`
}

type RawHolding struct {
	Symbol        string      `json:"symbol"`
	Quantity      interface{} `json:"quantity"`
	PurchasePrice interface{} `json:"purchasePrice"`
}

type PortfolioResponse struct {
	Holdings   []RawHolding `json:"holdings"`
	TotalValue interface{}  `json:"totalValue"`
}

type RawMarketTick struct {
	Symbol        string      `json:"symbol"`
	CurrentPrice  interface{} `json:"current_price"`
	ChangePercent interface{} `json:"change_percent"`
	Volume        interface{} `json:"volume"`
	MarketCap     interface{} `json:"market_cap"`
}

type MarketOverviewResponse struct {
	MarketData []RawMarketTick `json:"market_data"`
}

type RawAnalyzedPosition struct {
	Symbol        string      `json:"symbol"`
	CurrentPrice  interface{} `json:"current_price"`
	Quantity      interface{} `json:"quantity"`
	Value         interface{} `json:"value"`
	ChangePercent interface{} `json:"change_percent"`
	Weight        interface{} `json:"weight"`
}

type AnalyzeResponse struct {
	Portfolio            []RawAnalyzedPosition `json:"portfolio"`
	TotalValue           interface{}           `json:"total_value"`
	OverallChange        interface{}           `json:"overall_change"`
	RiskScore            interface{}           `json:"risk_score"`
	DiversificationScore interface{}           `json:"diversification_score"`
}

func (c Client) Predict(ctx context.Context, token, symbol string, horizonDays int) (*PredictResponse, error) {
	requestUrl := fmt.Sprintf("%s/api/stocks/%s/predict?horizon=%d", c.BaseUrl, url.PathEscape(symbol), horizonDays)
	out := PredictResponse{}
	if err := c.doGet(ctx, requestUrl, token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c Client) SocialInsights(ctx context.Context, token, symbol string) (*SocialResponse, error) {
	requestUrl := fmt.Sprintf("%s/api/stocks/%s/social", c.BaseUrl, url.PathEscape(symbol))
	out := SocialResponse{}
	if err := c.doGet(ctx, requestUrl, token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c Client) GetPortfolio(ctx context.Context, token string) (*PortfolioResponse, error) {
	out := PortfolioResponse{}
	if err := c.doGet(ctx, c.BaseUrl+"/api/portfolio", token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c Client) GetMarketOverview(ctx context.Context, token string) (*MarketOverviewResponse, error) {
	out := MarketOverviewResponse{}
	if err := c.doGet(ctx, c.BaseUrl+"/api/market/overview", token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzePortfolio serializes symbols in the order given, comma-joined. The
// caller is responsible for passing a stable order so identical baskets
// produce identical request URLs.
func (c Client) AnalyzePortfolio(ctx context.Context, token string, symbols []string) (*AnalyzeResponse, error) {
	requestUrl := fmt.Sprintf(
		"%s/api/portfolio/analyze?symbols=%s",
		c.BaseUrl,
		url.QueryEscape(strings.Join(symbols, ",")),
	)
	out := AnalyzeResponse{}
	if err := c.doGet(ctx, requestUrl, token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c Client) doGet(ctx context.Context, requestUrl, token string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestUrl, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}

	if response.StatusCode != 200 {
		logger.Debug("request to %s failed with status %d", requestUrl, response.StatusCode)
		type errResponse struct {
			Error string `json:"error"`
		}
		errJson := errResponse{}
		err = json.Unmarshal(responseBytes, &errJson)
		if err != nil || errJson.Error == "" {
			return fmt.Errorf("failed with status code %d", response.StatusCode)
		}
		return fmt.Errorf("failed with status code %d: %s", response.StatusCode, errJson.Error)
	}

	err = json.Unmarshal(responseBytes, out)
	if err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", requestUrl, err)
	}

	return nil
}
