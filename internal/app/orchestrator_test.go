package app_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"intelvest/internal/app"
	mock_app "intelvest/internal/app/mocks"
	"intelvest/internal/apperrors"
	"intelvest/internal/domain"
	"intelvest/internal/viewstate"
	"intelvest/pkg/intelvestor"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func predictResponse(points int) *intelvestor.PredictResponse {
	response := &intelvestor.PredictResponse{
		Symbol:    "RELIANCE",
		Sentiment: intelvestor.RawSentiment{Score: 0.42, Posts: []string{"strong quarter"}},
		Shap: []intelvestor.RawShapFeature{
			{Feature: "rsi_14", Value: 0.31},
		},
		Explanation: "Momentum is supporting the price outlook.",
	}
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < points; i++ {
		response.Prediction = append(response.Prediction, intelvestor.RawPredictionPoint{
			Date: start.AddDate(0, 0, i).Format("2006-01-02"),
			Pred: 2930.0 + float64(i),
			Conf: 0.9,
		})
	}
	return response
}

func TestFetchPrediction(t *testing.T) {
	t.Run("invalid symbol fails before any network call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tokens := mock_app.NewMockTokenSource(ctrl)
		client := mock_app.NewMockInsightClient(ctrl)
		orchestrator := app.Orchestrator{Tokens: tokens, Client: client}

		state := viewstate.New[domain.PredictionSnapshot]()
		err := orchestrator.FetchPrediction(context.Background(), state, "{bad}", 30)

		require.Error(t, err)
		view := state.Current()
		require.Equal(t, viewstate.Status_Error, view.Status)
		require.Equal(t, apperrors.KindInvalidInput, view.ErrorKind)
	})

	t.Run("token failure aborts the cycle before any data call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tokens := mock_app.NewMockTokenSource(ctrl)
		client := mock_app.NewMockInsightClient(ctrl)
		orchestrator := app.Orchestrator{Tokens: tokens, Client: client}

		tokens.EXPECT().
			AcquireToken(gomock.Any()).
			Return("", apperrors.New(apperrors.KindAuthUnavailable, "You are signed out. Please sign in to continue."))

		state := viewstate.New[domain.PredictionSnapshot]()
		err := orchestrator.FetchPrediction(context.Background(), state, "RELIANCE", 30)

		require.Error(t, err)
		view := state.Current()
		require.Equal(t, viewstate.Status_Error, view.Status)
		require.Equal(t, apperrors.KindAuthUnavailable, view.ErrorKind)
	})

	t.Run("happy path reaches ready with ordered points", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tokens := mock_app.NewMockTokenSource(ctrl)
		client := mock_app.NewMockInsightClient(ctrl)
		orchestrator := app.Orchestrator{Tokens: tokens, Client: client}

		tokens.EXPECT().AcquireToken(gomock.Any()).Return("token", nil)
		client.EXPECT().
			Predict(gomock.Any(), "token", "RELIANCE", 30).
			Return(predictResponse(30), nil)

		state := viewstate.New[domain.PredictionSnapshot]()
		err := orchestrator.FetchPrediction(context.Background(), state, "RELIANCE", 30)
		require.NoError(t, err)

		view := state.Current()
		require.Equal(t, viewstate.Status_Ready, view.Status)
		require.False(t, view.Partial())

		require.Len(t, view.Data.Points, 30)
		for i := 1; i < len(view.Data.Points); i++ {
			require.True(t, view.Data.Points[i-1].Date.Before(view.Data.Points[i].Date))
		}
		require.GreaterOrEqual(t, view.Data.Sentiment.Score, -1.0)
		require.LessOrEqual(t, view.Data.Sentiment.Score, 1.0)
		require.Equal(t, "Momentum is supporting the price outlook.", view.Data.Explanation)
	})

	t.Run("deadline exceeded maps to timeout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tokens := mock_app.NewMockTokenSource(ctrl)
		client := mock_app.NewMockInsightClient(ctrl)
		orchestrator := app.Orchestrator{Tokens: tokens, Client: client}

		tokens.EXPECT().AcquireToken(gomock.Any()).Return("token", nil)
		client.EXPECT().
			Predict(gomock.Any(), "token", "RELIANCE", 30).
			Return(nil, fmt.Errorf("request failed: %w", context.DeadlineExceeded))

		state := viewstate.New[domain.PredictionSnapshot]()
		err := orchestrator.FetchPrediction(context.Background(), state, "RELIANCE", 30)

		require.Error(t, err)
		view := state.Current()
		require.Equal(t, apperrors.KindTimeout, view.ErrorKind)
	})

	t.Run("blank explanation gets a local summary", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tokens := mock_app.NewMockTokenSource(ctrl)
		client := mock_app.NewMockInsightClient(ctrl)
		orchestrator := app.Orchestrator{Tokens: tokens, Client: client}

		response := predictResponse(1)
		response.Explanation = ""

		tokens.EXPECT().AcquireToken(gomock.Any()).Return("token", nil)
		client.EXPECT().
			Predict(gomock.Any(), "token", "RELIANCE", 30).
			Return(response, nil)

		state := viewstate.New[domain.PredictionSnapshot]()
		err := orchestrator.FetchPrediction(context.Background(), state, "RELIANCE", 30)
		require.NoError(t, err)

		view := state.Current()
		require.NotEmpty(t, view.Data.Explanation)
		require.Contains(t, view.Data.Explanation, "rsi_14")
	})

	t.Run("stale response does not overwrite a newer cycle", func(t *testing.T) {
		// request A hangs in flight; request B starts later and resolves
		// first. A's late response must be discarded.
		ctrl := gomock.NewController(t)
		tokens := mock_app.NewMockTokenSource(ctrl)
		client := mock_app.NewMockInsightClient(ctrl)
		orchestrator := app.Orchestrator{Tokens: tokens, Client: client}

		tokens.EXPECT().AcquireToken(gomock.Any()).Return("token", nil).Times(2)

		aStarted := make(chan struct{})
		releaseA := make(chan struct{})
		client.EXPECT().
			Predict(gomock.Any(), "token", "RELIANCE", 30).
			DoAndReturn(func(ctx context.Context, token, symbol string, horizonDays int) (*intelvestor.PredictResponse, error) {
				close(aStarted)
				<-releaseA
				response := predictResponse(1)
				response.Symbol = "RELIANCE"
				return response, nil
			})
		client.EXPECT().
			Predict(gomock.Any(), "token", "TCS", 30).
			DoAndReturn(func(ctx context.Context, token, symbol string, horizonDays int) (*intelvestor.PredictResponse, error) {
				response := predictResponse(1)
				response.Symbol = "TCS"
				return response, nil
			})

		state := viewstate.New[domain.PredictionSnapshot]()

		aDone := make(chan error)
		go func() {
			aDone <- orchestrator.FetchPrediction(context.Background(), state, "RELIANCE", 30)
		}()
		<-aStarted

		require.NoError(t, orchestrator.FetchPrediction(context.Background(), state, "TCS", 30))
		require.Equal(t, "TCS", state.Current().Data.Symbol)

		close(releaseA)
		require.NoError(t, <-aDone)

		view := state.Current()
		require.Equal(t, viewstate.Status_Ready, view.Status)
		require.Equal(t, "TCS", view.Data.Symbol)
	})
}

func TestFetchPortfolio(t *testing.T) {
	t.Run("derives metrics from holdings and prices", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tokens := mock_app.NewMockTokenSource(ctrl)
		client := mock_app.NewMockInsightClient(ctrl)
		orchestrator := app.Orchestrator{Tokens: tokens, Client: client}

		tokens.EXPECT().AcquireToken(gomock.Any()).Return("token", nil)
		client.EXPECT().GetPortfolio(gomock.Any(), "token").Return(&intelvestor.PortfolioResponse{
			Holdings: []intelvestor.RawHolding{
				{Symbol: "RELIANCE", Quantity: 10, PurchasePrice: 2000.0},
				{Symbol: "TCS", Quantity: 5, PurchasePrice: 4000.0},
			},
		}, nil)
		client.EXPECT().GetMarketOverview(gomock.Any(), "token").Return(&intelvestor.MarketOverviewResponse{
			MarketData: []intelvestor.RawMarketTick{
				{Symbol: "RELIANCE", CurrentPrice: 3000.0, ChangePercent: 1.0, Volume: 100, MarketCap: 10.0},
				{Symbol: "TCS", CurrentPrice: 4000.0, ChangePercent: -1.0, Volume: 100, MarketCap: 10.0},
			},
		}, nil)

		state := viewstate.New[domain.DerivedPortfolioMetrics]()
		err := orchestrator.FetchPortfolio(context.Background(), state)
		require.NoError(t, err)

		view := state.Current()
		require.Equal(t, viewstate.Status_Ready, view.Status)
		require.Len(t, view.Data.Holdings, 2)
		require.True(t, view.Data.TotalValue.Equal(decimal.NewFromInt(50000)))

		// 30000 vs 20000
		require.InDelta(t, 60, view.Data.Holdings[0].Weight.InexactFloat64(), 0.01)
		require.InDelta(t, 50, view.Data.Holdings[0].PnlPercent.InexactFloat64(), 0.01)
	})

	t.Run("unpriced holdings are dropped and reported", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tokens := mock_app.NewMockTokenSource(ctrl)
		client := mock_app.NewMockInsightClient(ctrl)
		orchestrator := app.Orchestrator{Tokens: tokens, Client: client}

		tokens.EXPECT().AcquireToken(gomock.Any()).Return("token", nil)
		client.EXPECT().GetPortfolio(gomock.Any(), "token").Return(&intelvestor.PortfolioResponse{
			Holdings: []intelvestor.RawHolding{
				{Symbol: "RELIANCE", Quantity: 10, PurchasePrice: 2000.0},
				{Symbol: "UNLISTED", Quantity: 5, PurchasePrice: 100.0},
			},
		}, nil)
		client.EXPECT().GetMarketOverview(gomock.Any(), "token").Return(&intelvestor.MarketOverviewResponse{
			MarketData: []intelvestor.RawMarketTick{
				{Symbol: "RELIANCE", CurrentPrice: 3000.0, ChangePercent: 1.0, Volume: 100, MarketCap: 10.0},
			},
		}, nil)

		state := viewstate.New[domain.DerivedPortfolioMetrics]()
		require.NoError(t, orchestrator.FetchPortfolio(context.Background(), state))

		view := state.Current()
		require.Equal(t, viewstate.Status_Ready, view.Status)
		require.True(t, view.Partial())
		require.Len(t, view.Data.Holdings, 1)
	})

	t.Run("either call failing fails the cycle", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tokens := mock_app.NewMockTokenSource(ctrl)
		client := mock_app.NewMockInsightClient(ctrl)
		orchestrator := app.Orchestrator{Tokens: tokens, Client: client}

		tokens.EXPECT().AcquireToken(gomock.Any()).Return("token", nil)
		client.EXPECT().GetPortfolio(gomock.Any(), "token").Return(&intelvestor.PortfolioResponse{}, nil).AnyTimes()
		client.EXPECT().GetMarketOverview(gomock.Any(), "token").Return(nil, fmt.Errorf("failed with status code 502"))

		state := viewstate.New[domain.DerivedPortfolioMetrics]()
		err := orchestrator.FetchPortfolio(context.Background(), state)

		require.Error(t, err)
		require.Equal(t, apperrors.KindTransportFailure, state.Current().ErrorKind)
	})
}

func TestFetchDashboard(t *testing.T) {
	analyzeResponse := &intelvestor.AnalyzeResponse{
		Portfolio: []intelvestor.RawAnalyzedPosition{
			{Symbol: "RELIANCE", CurrentPrice: 2950.0, Quantity: 10.0, Value: 29500.0, ChangePercent: 1.2, Weight: 55.0},
		},
		TotalValue:           53646.0,
		OverallChange:        0.8,
		RiskScore:            6.0,
		DiversificationScore: 4.0,
	}

	t.Run("market and prediction failures degrade to partial", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tokens := mock_app.NewMockTokenSource(ctrl)
		client := mock_app.NewMockInsightClient(ctrl)
		orchestrator := app.Orchestrator{Tokens: tokens, Client: client}

		tokens.EXPECT().AcquireToken(gomock.Any()).Return("token", nil)
		client.EXPECT().
			AnalyzePortfolio(gomock.Any(), "token", app.DefaultDashboardSymbols).
			Return(analyzeResponse, nil)
		client.EXPECT().
			GetMarketOverview(gomock.Any(), "token").
			Return(nil, fmt.Errorf("failed with status code 502"))
		client.EXPECT().
			Predict(gomock.Any(), "token", "RELIANCE", app.DefaultHorizonDays).
			Return(nil, fmt.Errorf("failed with status code 500"))

		state := viewstate.New[domain.DashboardSnapshot]()
		err := orchestrator.FetchDashboard(context.Background(), state, "RELIANCE", nil)
		require.NoError(t, err)

		view := state.Current()
		require.Equal(t, viewstate.Status_Ready, view.Status)
		require.True(t, view.Partial())
		require.Contains(t, view.Warnings, "market overview unavailable")
		require.Contains(t, view.Warnings, "prediction for RELIANCE unavailable")

		require.Nil(t, view.Data.Prediction)
		require.Empty(t, view.Data.Market.Ticks)
		require.Equal(t, 6.0, view.Data.Portfolio.RiskScore)
	})

	t.Run("analysis failure fails the whole cycle", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tokens := mock_app.NewMockTokenSource(ctrl)
		client := mock_app.NewMockInsightClient(ctrl)
		orchestrator := app.Orchestrator{Tokens: tokens, Client: client}

		tokens.EXPECT().AcquireToken(gomock.Any()).Return("token", nil)
		client.EXPECT().
			AnalyzePortfolio(gomock.Any(), "token", app.DefaultDashboardSymbols).
			Return(nil, fmt.Errorf("failed with status code 500"))
		client.EXPECT().GetMarketOverview(gomock.Any(), "token").Return(&intelvestor.MarketOverviewResponse{}, nil)
		client.EXPECT().
			Predict(gomock.Any(), "token", "RELIANCE", app.DefaultHorizonDays).
			Return(predictResponse(1), nil)

		state := viewstate.New[domain.DashboardSnapshot]()
		err := orchestrator.FetchDashboard(context.Background(), state, "RELIANCE", nil)

		require.Error(t, err)
		view := state.Current()
		require.Equal(t, viewstate.Status_Error, view.Status)
		require.Equal(t, apperrors.KindTransportFailure, view.ErrorKind)
	})

	t.Run("invalid basket symbol is rejected up front", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tokens := mock_app.NewMockTokenSource(ctrl)
		client := mock_app.NewMockInsightClient(ctrl)
		orchestrator := app.Orchestrator{Tokens: tokens, Client: client}

		state := viewstate.New[domain.DashboardSnapshot]()
		err := orchestrator.FetchDashboard(context.Background(), state, "RELIANCE", []string{"TCS", "bad symbol"})

		require.Error(t, err)
		require.Equal(t, apperrors.KindInvalidInput, state.Current().ErrorKind)
	})
}

func TestValidateSymbol(t *testing.T) {
	for _, symbol := range []string{"RELIANCE", "TCS", "HDFCBANK"} {
		require.NoError(t, app.ValidateSymbol(symbol))
	}

	for _, symbol := range []string{"", "  ", "{bad}", "a/b", "a b", "a?b", "a%b", "a#b"} {
		err := app.ValidateSymbol(symbol)
		require.Error(t, err, symbol)
		require.Equal(t, apperrors.KindInvalidInput, apperrors.KindOf(err))
	}
}
