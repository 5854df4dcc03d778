package integration_tests

import (
	"context"
	"testing"
	"time"

	"intelvest/internal/app"
	"intelvest/internal/apperrors"
	"intelvest/internal/domain"
	"intelvest/internal/viewstate"
	"intelvest/pkg/intelvestor"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newOrchestratorForTests(t *testing.T, opts FakeBackendOptions) app.Orchestrator {
	t.Helper()
	server := NewFakeBackendForTests(opts)
	t.Cleanup(server.Close)

	return app.Orchestrator{
		Tokens: NewStaticTokenSourceForTests("test-token"),
		Client: intelvestor.Client{
			HttpClient: server.Client(),
			BaseUrl:    server.URL,
		},
	}
}

func TestPredictionEndToEnd(t *testing.T) {
	orchestrator := newOrchestratorForTests(t, FakeBackendOptions{})

	state := viewstate.New[domain.PredictionSnapshot]()
	require.NoError(t, orchestrator.FetchPrediction(context.Background(), state, "RELIANCE", 30))

	view := state.Current()
	require.Equal(t, viewstate.Status_Ready, view.Status)

	// upstream sent points out of order under the "predictions" alias
	require.Len(t, view.Data.Points, 2)
	require.True(t, view.Data.Points[0].Date.Before(view.Data.Points[1].Date))
	require.True(t, view.Data.Points[0].Pred.Equal(decimal.NewFromFloat(2930.55)))

	// headlines back-fill posts, blank explanation gets a local summary
	require.Equal(t, []string{"strong quarterly results"}, view.Data.Sentiment.Posts)
	require.NotEmpty(t, view.Data.Explanation)
}

func TestSocialEndToEnd(t *testing.T) {
	orchestrator := newOrchestratorForTests(t, FakeBackendOptions{})

	state := viewstate.New[domain.SocialSnapshot]()
	require.NoError(t, orchestrator.FetchSocial(context.Background(), state, "AXISBANK"))

	view := state.Current()
	require.Equal(t, viewstate.Status_Ready, view.Status)
	require.Len(t, view.Data.Trends, 1)
	require.Equal(t, "earnings", view.Data.Trends[0].Term)
	require.Equal(t, -0.2, view.Data.Sentiment.Score)
}

func TestPortfolioEndToEnd(t *testing.T) {
	orchestrator := newOrchestratorForTests(t, FakeBackendOptions{})

	state := viewstate.New[domain.DerivedPortfolioMetrics]()
	require.NoError(t, orchestrator.FetchPortfolio(context.Background(), state))

	view := state.Current()
	require.Equal(t, viewstate.Status_Ready, view.Status)
	require.Len(t, view.Data.Holdings, 2)
	require.True(t, view.Data.TotalValue.Equal(decimal.NewFromInt(50000)))
	require.InDelta(t, 60, view.Data.Holdings[0].Weight.InexactFloat64(), 0.01)
	require.InDelta(t, 50, view.Data.Holdings[0].PnlPercent.InexactFloat64(), 0.01)
	require.InDelta(t, 10, view.Data.RiskScore+view.Data.DiversificationScore, 0.01)
}

func TestDashboardEndToEnd(t *testing.T) {
	t.Run("full dashboard reaches ready", func(t *testing.T) {
		orchestrator := newOrchestratorForTests(t, FakeBackendOptions{})

		state := viewstate.New[domain.DashboardSnapshot]()
		require.NoError(t, orchestrator.FetchDashboard(context.Background(), state, "RELIANCE", nil))

		view := state.Current()
		require.Equal(t, viewstate.Status_Ready, view.Status)
		require.False(t, view.Partial())

		require.Len(t, view.Data.Market.Ticks, 2)
		require.Equal(t, 1, view.Data.Summary.Advancers)
		require.Equal(t, 1, view.Data.Summary.Decliners)

		require.Equal(t, 6.2, view.Data.Portfolio.RiskScore)
		require.NotNil(t, view.Data.Prediction)
		require.Equal(t, "RELIANCE", view.Data.Prediction.Symbol)
	})

	t.Run("market overview failure degrades to partial", func(t *testing.T) {
		orchestrator := newOrchestratorForTests(t, FakeBackendOptions{MarketStatusCode: 502})

		state := viewstate.New[domain.DashboardSnapshot]()
		require.NoError(t, orchestrator.FetchDashboard(context.Background(), state, "RELIANCE", nil))

		view := state.Current()
		require.Equal(t, viewstate.Status_Ready, view.Status)
		require.True(t, view.Partial())
		require.Contains(t, view.Warnings, "market overview unavailable")
		require.Empty(t, view.Data.Market.Ticks)
		require.NotNil(t, view.Data.Prediction)
	})
}

func TestAuthFailureEndToEnd(t *testing.T) {
	server := NewFakeBackendForTests(FakeBackendOptions{})
	t.Cleanup(server.Close)

	orchestrator := app.Orchestrator{
		Tokens: NewStaticTokenSourceForTests(""),
		Client: intelvestor.Client{HttpClient: server.Client(), BaseUrl: server.URL},
	}

	state := viewstate.New[domain.PredictionSnapshot]()
	err := orchestrator.FetchPrediction(context.Background(), state, "RELIANCE", 30)

	require.Error(t, err)
	view := state.Current()
	require.Equal(t, viewstate.Status_Error, view.Status)
	require.Equal(t, apperrors.KindAuthUnavailable, view.ErrorKind)
}

func TestTimeoutEndToEnd(t *testing.T) {
	orchestrator := newOrchestratorForTests(t, FakeBackendOptions{PredictDelay: 200 * time.Millisecond})
	orchestrator.CycleTimeout = 50 * time.Millisecond

	state := viewstate.New[domain.PredictionSnapshot]()
	err := orchestrator.FetchPrediction(context.Background(), state, "RELIANCE", 30)

	require.Error(t, err)
	require.Equal(t, apperrors.KindTimeout, state.Current().ErrorKind)
}

func TestStaleCycleEndToEnd(t *testing.T) {
	// slow backend for the first fetch, fast for the second: the late first
	// response must not clobber the newer one.
	slow := NewFakeBackendForTests(FakeBackendOptions{PredictDelay: 150 * time.Millisecond})
	t.Cleanup(slow.Close)
	fast := NewFakeBackendForTests(FakeBackendOptions{})
	t.Cleanup(fast.Close)

	slowOrchestrator := app.Orchestrator{
		Tokens: NewStaticTokenSourceForTests("test-token"),
		Client: intelvestor.Client{HttpClient: slow.Client(), BaseUrl: slow.URL},
	}
	fastOrchestrator := app.Orchestrator{
		Tokens: NewStaticTokenSourceForTests("test-token"),
		Client: intelvestor.Client{HttpClient: fast.Client(), BaseUrl: fast.URL},
	}

	state := viewstate.New[domain.PredictionSnapshot]()

	slowDone := make(chan error)
	go func() {
		slowDone <- slowOrchestrator.FetchPrediction(context.Background(), state, "RELIANCE", 30)
	}()

	// let the slow cycle begin before superseding it
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, fastOrchestrator.FetchPrediction(context.Background(), state, "TCS", 30))
	require.NoError(t, <-slowDone)

	view := state.Current()
	require.Equal(t, viewstate.Status_Ready, view.Status)
	require.Equal(t, "TCS", view.Data.Symbol)
}
