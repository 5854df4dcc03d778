package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"intelvest/internal/apperrors"
	"intelvest/internal/calculator"
	"intelvest/internal/domain"
	"intelvest/internal/logger"
	"intelvest/internal/normalize"
	"intelvest/internal/repository"
	"intelvest/internal/viewstate"
	"intelvest/pkg/intelvestor"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// TokenSource is the narrow contract on the identity provider. Tokens are
// short-lived and acquired fresh at the start of every fetch cycle.
type TokenSource interface {
	AcquireToken(ctx context.Context) (string, error)
}

// InsightClient is the backend REST surface the orchestrator consumes.
type InsightClient interface {
	Predict(ctx context.Context, token, symbol string, horizonDays int) (*intelvestor.PredictResponse, error)
	SocialInsights(ctx context.Context, token, symbol string) (*intelvestor.SocialResponse, error)
	GetPortfolio(ctx context.Context, token string) (*intelvestor.PortfolioResponse, error)
	GetMarketOverview(ctx context.Context, token string) (*intelvestor.MarketOverviewResponse, error)
	AnalyzePortfolio(ctx context.Context, token string, symbols []string) (*intelvestor.AnalyzeResponse, error)
}

const (
	DefaultHorizonDays  = 30
	DefaultCycleTimeout = 15 * time.Second
)

// DefaultDashboardSymbols is the basket the composite dashboard analyzes
// when the user has not picked one.
var DefaultDashboardSymbols = []string{"RELIANCE", "TCS", "HDFCBANK", "INFY", "AXISBANK"}

// Orchestrator runs one fetch cycle per view trigger: acquire a token,
// issue the view's remote calls, normalize, derive, publish exactly one
// ViewState transition. Explanations is optional - leave nil to use the
// deterministic local summary when upstream sends a blank explanation.
type Orchestrator struct {
	Tokens       TokenSource
	Client       InsightClient
	Explanations repository.ExplanationRepository
	CycleTimeout time.Duration
}

func (h Orchestrator) timeout() time.Duration {
	if h.CycleTimeout > 0 {
		return h.CycleTimeout
	}
	return DefaultCycleTimeout
}

// symbolDelimiters are characters that could be misinterpreted as path or
// query delimiters if they reached URL construction. Inputs containing any
// of them are rejected before a single network call is made.
const symbolDelimiters = "{}/\\?#&=% "

func ValidateSymbol(symbol string) error {
	if strings.TrimSpace(symbol) == "" {
		return apperrors.New(apperrors.KindInvalidInput, "Please enter a stock symbol.")
	}
	if strings.ContainsAny(symbol, symbolDelimiters) {
		return apperrors.New(apperrors.KindInvalidInput, fmt.Sprintf("%q is not a valid stock symbol.", symbol))
	}
	return nil
}

func ValidateSymbols(symbols []string) error {
	if len(symbols) == 0 {
		return apperrors.New(apperrors.KindInvalidInput, "Please select at least one stock symbol.")
	}
	for _, symbol := range symbols {
		if err := ValidateSymbol(symbol); err != nil {
			return err
		}
	}
	return nil
}

// classify maps an arbitrary fetch error onto the failure taxonomy.
// Deadline errors become Timeout; anything unclassified is a transport
// failure.
func classify(err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(apperrors.KindTimeout, "The request took too long. Please try again.", err)
	}
	return apperrors.Wrap(apperrors.KindTransportFailure, "Could not fetch data from the server.", err)
}

// beginCycle stamps the cycle, applies the timeout, and acquires the
// token. One token failure aborts the entire cycle before any data call.
func (h Orchestrator) beginCycle(ctx context.Context, view string) (context.Context, context.CancelFunc, string, error) {
	cycleId := uuid.NewString()
	logger.Debug("starting %s fetch cycle %s", view, cycleId)

	ctx, cancel := context.WithTimeout(ctx, h.timeout())
	token, err := h.Tokens.AcquireToken(ctx)
	if err != nil {
		cancel()
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, nil, "", classify(err)
		}
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			return nil, nil, "", err
		}
		return nil, nil, "", apperrors.Wrap(apperrors.KindAuthUnavailable, "Authentication failed. Please sign in again.", err)
	}

	return ctx, cancel, token, nil
}

// FetchPrediction runs the prediction view's cycle for one symbol. The
// sentiment view shares this cycle - it renders a different slice of the
// same snapshot.
func (h Orchestrator) FetchPrediction(ctx context.Context, state *viewstate.ViewState[domain.PredictionSnapshot], symbol string, horizonDays int) error {
	generation := state.Begin()

	if err := ValidateSymbol(symbol); err != nil {
		state.Fail(generation, err)
		return err
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	ctx, cancel, token, err := h.beginCycle(ctx, "prediction")
	if err != nil {
		state.Fail(generation, err)
		return err
	}
	defer cancel()

	response, err := h.Client.Predict(ctx, token, symbol, horizonDays)
	if err != nil {
		err = classify(err)
		state.Fail(generation, err)
		return err
	}

	snapshot, report := normalize.Prediction(response, symbol, horizonDays)
	snapshot.Explanation = h.explanationFor(ctx, snapshot, &report)

	if !state.Resolve(generation, snapshot, report.Problems) {
		logger.Debug("discarding stale prediction cycle for %s", symbol)
	}
	return nil
}

// explanationFor fills a blank upstream explanation, first via the LLM
// repository when configured, else with a deterministic local summary.
func (h Orchestrator) explanationFor(ctx context.Context, snapshot domain.PredictionSnapshot, report *normalize.Report) string {
	if snapshot.Explanation != "" {
		return snapshot.Explanation
	}
	if h.Explanations != nil {
		explanation, err := h.Explanations.ExplainPrediction(ctx, snapshot.Symbol, snapshot.Shap, snapshot.Sentiment.Score)
		if err == nil && explanation != "" {
			return explanation
		}
		if err != nil {
			logger.Warn("explanation generation failed for %s: %v", snapshot.Symbol, err)
			report.Problems = append(report.Problems, "explanation: generation failed, using local summary")
		}
	}
	return localExplanation(snapshot)
}

func localExplanation(snapshot domain.PredictionSnapshot) string {
	bucket := calculator.SentimentBucketFor(snapshot.Sentiment.Score)
	if len(snapshot.Shap) == 0 {
		return fmt.Sprintf("News sentiment for %s is currently %s.", snapshot.Symbol, bucket)
	}

	direction := "supporting"
	if snapshot.Shap[0].Value < 0 {
		direction = "weighing on"
	}
	return fmt.Sprintf(
		"The forecast for %s is driven mostly by %s, currently %s the price outlook. News sentiment is %s.",
		snapshot.Symbol, snapshot.Shap[0].Feature, direction, bucket,
	)
}

// FetchSocial runs the social-insights view's cycle for one symbol.
func (h Orchestrator) FetchSocial(ctx context.Context, state *viewstate.ViewState[domain.SocialSnapshot], symbol string) error {
	generation := state.Begin()

	if err := ValidateSymbol(symbol); err != nil {
		state.Fail(generation, err)
		return err
	}

	ctx, cancel, token, err := h.beginCycle(ctx, "social")
	if err != nil {
		state.Fail(generation, err)
		return err
	}
	defer cancel()

	response, err := h.Client.SocialInsights(ctx, token, symbol)
	if err != nil {
		err = classify(err)
		state.Fail(generation, err)
		return err
	}

	snapshot, report := normalize.Social(response)
	if !state.Resolve(generation, snapshot, report.Problems) {
		logger.Debug("discarding stale social cycle for %s", symbol)
	}
	return nil
}

// FetchMarket runs the market overview view's cycle.
func (h Orchestrator) FetchMarket(ctx context.Context, state *viewstate.ViewState[domain.MarketSnapshot]) error {
	generation := state.Begin()

	ctx, cancel, token, err := h.beginCycle(ctx, "market")
	if err != nil {
		state.Fail(generation, err)
		return err
	}
	defer cancel()

	response, err := h.Client.GetMarketOverview(ctx, token)
	if err != nil {
		err = classify(err)
		state.Fail(generation, err)
		return err
	}

	snapshot, report := normalize.MarketOverview(response)
	if !state.Resolve(generation, snapshot, report.Problems) {
		logger.Debug("discarding stale market cycle")
	}
	return nil
}

// FetchPortfolio runs the portfolio view's cycle: holdings plus the market
// overview to price them, fetched concurrently, then the full client-side
// derivation. Both calls are on the critical path - the derived metrics
// are meaningless without either.
func (h Orchestrator) FetchPortfolio(ctx context.Context, state *viewstate.ViewState[domain.DerivedPortfolioMetrics]) error {
	generation := state.Begin()

	ctx, cancel, token, err := h.beginCycle(ctx, "portfolio")
	if err != nil {
		state.Fail(generation, err)
		return err
	}
	defer cancel()

	var (
		portfolioResponse *intelvestor.PortfolioResponse
		marketResponse    *intelvestor.MarketOverviewResponse
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		portfolioResponse, err = h.Client.GetPortfolio(groupCtx, token)
		return err
	})
	group.Go(func() error {
		var err error
		marketResponse, err = h.Client.GetMarketOverview(groupCtx, token)
		return err
	})
	if err := group.Wait(); err != nil {
		err = classify(err)
		state.Fail(generation, err)
		return err
	}

	portfolioSnapshot, report := normalize.Portfolio(portfolioResponse)
	marketSnapshot, marketReport := normalize.MarketOverview(marketResponse)
	report.Problems = append(report.Problems, marketReport.Problems...)

	priceMap := marketSnapshot.PriceMap()
	priced := []domain.Holding{}
	for _, holding := range portfolioSnapshot.Holdings {
		if _, ok := priceMap[holding.Symbol]; !ok {
			report.Problems = append(report.Problems, fmt.Sprintf("holdings: no current price for %s", holding.Symbol))
			continue
		}
		priced = append(priced, holding)
	}
	portfolioSnapshot.Holdings = priced

	derived, err := calculator.DeriveHoldingMetrics(portfolioSnapshot, priceMap)
	if err != nil {
		err = classify(err)
		state.Fail(generation, err)
		return err
	}

	if !state.Resolve(generation, *derived, report.Problems) {
		logger.Debug("discarding stale portfolio cycle")
	}
	return nil
}

// FetchDashboard runs the composite view's cycle: market overview, basket
// analysis, and the selected symbol's prediction, all behind one token
// acquisition. The basket analysis is cycle-fatal; market overview and
// prediction degrade to defaults and the view reaches Ready flagged
// partial.
func (h Orchestrator) FetchDashboard(ctx context.Context, state *viewstate.ViewState[domain.DashboardSnapshot], symbol string, basket []string) error {
	generation := state.Begin()

	if err := ValidateSymbol(symbol); err != nil {
		state.Fail(generation, err)
		return err
	}
	if len(basket) == 0 {
		basket = DefaultDashboardSymbols
	}
	if err := ValidateSymbols(basket); err != nil {
		state.Fail(generation, err)
		return err
	}

	ctx, cancel, token, err := h.beginCycle(ctx, "dashboard")
	if err != nil {
		state.Fail(generation, err)
		return err
	}
	defer cancel()

	var (
		wg                 sync.WaitGroup
		marketResponse     *intelvestor.MarketOverviewResponse
		marketErr          error
		analyzeResponse    *intelvestor.AnalyzeResponse
		analyzeErr         error
		predictionResponse *intelvestor.PredictResponse
		predictionErr      error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		marketResponse, marketErr = h.Client.GetMarketOverview(ctx, token)
	}()
	go func() {
		defer wg.Done()
		analyzeResponse, analyzeErr = h.Client.AnalyzePortfolio(ctx, token, basket)
	}()
	go func() {
		defer wg.Done()
		predictionResponse, predictionErr = h.Client.Predict(ctx, token, symbol, DefaultHorizonDays)
	}()
	wg.Wait()

	if analyzeErr != nil {
		err := classify(analyzeErr)
		state.Fail(generation, err)
		return err
	}

	analysis, report := normalize.Analysis(analyzeResponse)
	snapshot := domain.DashboardSnapshot{Portfolio: analysis}

	if marketErr != nil {
		logger.Warn("dashboard market overview failed, degrading: %v", marketErr)
		report.Problems = append(report.Problems, "market overview unavailable")
	} else {
		marketSnapshot, marketReport := normalize.MarketOverview(marketResponse)
		report.Problems = append(report.Problems, marketReport.Problems...)
		snapshot.Market = marketSnapshot
		snapshot.Summary = calculator.SummarizeMarket(marketSnapshot)
	}

	if predictionErr != nil {
		logger.Warn("dashboard prediction for %s failed, degrading: %v", symbol, predictionErr)
		report.Problems = append(report.Problems, fmt.Sprintf("prediction for %s unavailable", symbol))
	} else {
		predictionSnapshot, predictionReport := normalize.Prediction(predictionResponse, symbol, DefaultHorizonDays)
		report.Problems = append(report.Problems, predictionReport.Problems...)
		snapshot.Prediction = &predictionSnapshot
	}

	if !state.Resolve(generation, snapshot, report.Problems) {
		logger.Debug("discarding stale dashboard cycle for %s", symbol)
	}
	return nil
}
