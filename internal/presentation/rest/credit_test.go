package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/application/dto"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/application/usecase"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/model"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/service"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/valueobject"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/infrastructure/persistence/memory"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seededRouter(t *testing.T, checks map[string]ReadinessCheck) http.Handler {
	t.Helper()
	return seededRouterWithLimit(t, checks, nil)
}

func seededRouterWithLimit(t *testing.T, checks map[string]ReadinessCheck, limiter *RateLimiter) http.Handler {
	t.Helper()
	ctx := context.Background()
	scores := memory.NewCreditScoreRepo()
	obligations := memory.NewObligationRepo()

	for i, s := range []int{640, 710} {
		rec, err := model.NewCreditScoreRecord(
			"cs-"+string(rune('a'+i)), "cust-1", s, nil,
			service.NewRiskTierResolver().Resolve(s), now.AddDate(0, 0, i-2))
		require.NoError(t, err)
		require.NoError(t, scores.Save(ctx, rec))
	}

	total := decimal.NewFromInt(120000)
	loan := model.ReconstructObligation(
		"ob-1", "cust-1",
		model.WorkingCapitalLoan{
			Principal:      decimal.NewFromInt(100000),
			InterestRate:   decimal.RequireFromString("0.12"),
			TotalRepayment: total,
			MonthlyPayment: decimal.NewFromInt(10000),
			Remaining:      total,
			TermMonths:     12,
		},
		valueobject.ObligationStatusActive, 710, now, nil, nil, 1,
	)
	require.NoError(t, obligations.Save(ctx, loan))

	credit := NewCreditHandler(QueryUseCases{
		GetLatestScore:   usecase.NewGetLatestScoreUseCase(scores),
		ListScoreHistory: usecase.NewListScoreHistoryUseCase(scores),
		GetObligation:    usecase.NewGetObligationUseCase(obligations),
		ListObligations:  usecase.NewListObligationsUseCase(obligations),
		GetDashboard:     usecase.NewGetDashboardUseCase(scores, obligations),
	}, testLogger())
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "# metrics\n")
	})
	return NewRouter(NewHealthHandler(checks, testLogger()), credit, metrics, limiter, testLogger())
}

func get(t *testing.T, h http.Handler, path string, out any) int {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

func TestCreditRoutes(t *testing.T) {
	router := seededRouter(t, nil)

	t.Run("dashboard", func(t *testing.T) {
		var resp dto.DashboardResponse
		require.Equal(t, http.StatusOK, get(t, router, "/v1/customers/cust-1/dashboard", &resp))
		require.NotNil(t, resp.LatestScore)
		assert.Equal(t, 710, resp.LatestScore.Score)
		assert.True(t, decimal.NewFromInt(120000).Equal(resp.TotalOutstanding))
		assert.True(t, decimal.NewFromInt(380000).Equal(resp.AvailableCredit), resp.AvailableCredit.String())
	})

	t.Run("latest score", func(t *testing.T) {
		var resp dto.CreditScoreResponse
		require.Equal(t, http.StatusOK, get(t, router, "/v1/customers/cust-1/score", &resp))
		assert.Equal(t, "good", resp.RiskTier)
	})

	t.Run("score history honours limit", func(t *testing.T) {
		var resp dto.ScoreHistoryResponse
		require.Equal(t, http.StatusOK, get(t, router, "/v1/customers/cust-1/score/history?limit=1", &resp))
		require.Len(t, resp.Records, 1)
		assert.Equal(t, 710, resp.Records[0].Score)
	})

	t.Run("bad limit", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, get(t, router, "/v1/customers/cust-1/score/history?limit=-2", nil))
	})

	t.Run("obligation", func(t *testing.T) {
		var resp dto.ObligationResponse
		require.Equal(t, http.StatusOK, get(t, router, "/v1/obligations/ob-1", &resp))
		assert.Equal(t, "WORKING_CAPITAL", resp.ProductType)
		require.NotNil(t, resp.WorkingCapital)
	})

	t.Run("customer obligations", func(t *testing.T) {
		var resp dto.ObligationListResponse
		require.Equal(t, http.StatusOK, get(t, router, "/v1/customers/cust-1/obligations", &resp))
		assert.Len(t, resp.Obligations, 1)
	})

	t.Run("not found", func(t *testing.T) {
		var body map[string]string
		assert.Equal(t, http.StatusNotFound, get(t, router, "/v1/obligations/nope", &body))
		assert.Equal(t, "obligation not found", body["error"])
		assert.Equal(t, http.StatusNotFound, get(t, router, "/v1/customers/unknown/score", nil))
	})

	t.Run("metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "# metrics")
	})

	t.Run("wrong method", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/obligations/ob-1", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestHealthRoutes(t *testing.T) {
	t.Run("liveness", func(t *testing.T) {
		var body map[string]string
		assert.Equal(t, http.StatusOK, get(t, seededRouter(t, nil), "/healthz", &body))
		assert.Equal(t, "ok", body["status"])
	})

	t.Run("ready when every check passes", func(t *testing.T) {
		router := seededRouter(t, map[string]ReadinessCheck{
			"postgres": func(context.Context) error { return nil },
		})
		var body map[string]any
		assert.Equal(t, http.StatusOK, get(t, router, "/readyz", &body))
		assert.Equal(t, "ready", body["status"])
	})

	t.Run("not ready when a check fails", func(t *testing.T) {
		router := seededRouter(t, map[string]ReadinessCheck{
			"postgres": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("connection refused") },
		})
		var body struct {
			Status string            `json:"status"`
			Checks map[string]string `json:"checks"`
		}
		assert.Equal(t, http.StatusServiceUnavailable, get(t, router, "/readyz", &body))
		assert.Equal(t, "not_ready", body.Status)
		assert.Equal(t, "ok", body.Checks["postgres"])
		assert.Equal(t, "connection refused", body.Checks["redis"])
	})
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusConflict, statusFor(model.ErrVersionConflict))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(&model.InsufficientCreditScoreError{Required: 620, Actual: 600}))
	assert.Equal(t, http.StatusBadRequest, statusFor(model.ErrInvalidAmount))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}
