package integration_tests

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"intelvest/internal/app"
	"intelvest/internal/apperrors"
)

func NewStaticTokenSourceForTests(token string) app.TokenSource {
	return staticTokenSourceForTests{token: token}
}

type staticTokenSourceForTests struct {
	token string
}

func (s staticTokenSourceForTests) AcquireToken(ctx context.Context) (string, error) {
	if s.token == "" {
		return "", apperrors.New(apperrors.KindAuthUnavailable, "You are signed out. Please sign in to continue.")
	}
	return s.token, nil
}

// FakeBackendOptions tweaks the canned upstream for failure scenarios.
type FakeBackendOptions struct {
	// MarketStatusCode overrides the market overview status (0 means 200).
	MarketStatusCode int
	// PredictDelay holds the predict endpoint open before responding.
	PredictDelay time.Duration
}

// NewFakeBackendForTests serves the canned intelvestor REST surface. Every
// route checks the bearer token and returns 401 without it.
func NewFakeBackendForTests(opts FakeBackendOptions) *httptest.Server {
	mux := http.NewServeMux()

	requireAuth := func(handler http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer test-token" {
				w.WriteHeader(401)
				w.Write([]byte(`{"error": "missing or invalid token"}`))
				return
			}
			handler(w, r)
		}
	}

	mux.HandleFunc("GET /api/stocks/{symbol}/predict", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		if opts.PredictDelay > 0 {
			select {
			case <-time.After(opts.PredictDelay):
			case <-r.Context().Done():
				return
			}
		}
		fmt.Fprintf(w, `{
			"symbol": %q,
			"predictions": [
				{"date": "2026-09-02", "pred": 2940.10, "conf": 0.88},
				{"date": "2026-09-01", "pred": 2930.55, "conf": 0.91}
			],
			"shap_values": [
				{"feature": "rsi_14", "value": 0.31},
				{"feature": "volume_ratio", "value": -0.12}
			],
			"sentiment": {"score": 0.42, "headlines": ["strong quarterly results"]},
			"explanation": ""
		}`, r.PathValue("symbol"))
	}))

	mux.HandleFunc("GET /api/stocks/{symbol}/social", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"sentiment": {
				"score": -0.2,
				"posts": ["results missed estimates"],
				"trends": [{"term": "earnings", "frequency": 120}]
			}
		}`))
	}))

	mux.HandleFunc("GET /api/portfolio", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"holdings": [
				{"symbol": "RELIANCE", "quantity": 10, "purchasePrice": 2000},
				{"symbol": "TCS", "quantity": 5, "purchasePrice": 4000}
			]
		}`))
	}))

	mux.HandleFunc("GET /api/market/overview", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		if opts.MarketStatusCode != 0 {
			w.WriteHeader(opts.MarketStatusCode)
			w.Write([]byte(`{"error": "market data unavailable"}`))
			return
		}
		w.Write([]byte(`{"market_data": [
			{"symbol": "RELIANCE", "current_price": 3000, "change_percent": 1.2, "volume": 1000000, "market_cap": 2030000},
			{"symbol": "TCS", "current_price": 4000, "change_percent": -0.8, "volume": 800000, "market_cap": 1460000}
		]}`))
	}))

	mux.HandleFunc("GET /api/portfolio/analyze", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"portfolio": [
				{"symbol": "RELIANCE", "current_price": 3000, "quantity": 10, "value": 30000, "change_percent": 1.2, "weight": 60},
				{"symbol": "TCS", "current_price": 4000, "quantity": 5, "value": 20000, "change_percent": -0.8, "weight": 40}
			],
			"total_value": 50000,
			"overall_change": 0.4,
			"risk_score": 6.2,
			"diversification_score": 3.8
		}`))
	}))

	return httptest.NewServer(mux)
}
