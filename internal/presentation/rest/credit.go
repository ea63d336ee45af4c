package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/application/dto"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/application/usecase"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/model"
)

// QueryUseCases are the read paths served over HTTP.
type QueryUseCases struct {
	GetLatestScore   *usecase.GetLatestScoreUseCase
	ListScoreHistory *usecase.ListScoreHistoryUseCase
	GetObligation    *usecase.GetObligationUseCase
	ListObligations  *usecase.ListObligationsUseCase
	GetDashboard     *usecase.GetDashboardUseCase
}

// CreditHandler exposes portfolio and score lookups for the merchant
// dashboard. Writes go through gRPC.
type CreditHandler struct {
	uc     QueryUseCases
	logger *slog.Logger
}

func NewCreditHandler(uc QueryUseCases, logger *slog.Logger) *CreditHandler {
	return &CreditHandler{uc: uc, logger: logger}
}

// RegisterRoutes attaches the /v1 read routes.
func (h *CreditHandler) RegisterRoutes(r *mux.Router) {
	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/customers/{customerID}/score", h.latestScore).Methods(http.MethodGet)
	v1.HandleFunc("/customers/{customerID}/score/history", h.scoreHistory).Methods(http.MethodGet)
	v1.HandleFunc("/customers/{customerID}/obligations", h.listObligations).Methods(http.MethodGet)
	v1.HandleFunc("/customers/{customerID}/dashboard", h.dashboard).Methods(http.MethodGet)
	v1.HandleFunc("/obligations/{obligationID}", h.getObligation).Methods(http.MethodGet)
}

func (h *CreditHandler) latestScore(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.GetLatestScore.Execute(r.Context(), dto.GetScoreRequest{CustomerID: mux.Vars(r)["customerID"]})
	if errors.Is(err, model.ErrMissingCreditScore) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.respond(r.Context(), w, resp, err)
}

func (h *CreditHandler) scoreHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	resp, err := h.uc.ListScoreHistory.Execute(r.Context(), dto.ListScoreHistoryRequest{
		CustomerID: mux.Vars(r)["customerID"],
		Limit:      limit,
	})
	h.respond(r.Context(), w, resp, err)
}

func (h *CreditHandler) listObligations(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.ListObligations.Execute(r.Context(), dto.ListObligationsRequest{CustomerID: mux.Vars(r)["customerID"]})
	h.respond(r.Context(), w, resp, err)
}

func (h *CreditHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.GetDashboard.Execute(r.Context(), dto.DashboardRequest{CustomerID: mux.Vars(r)["customerID"]})
	h.respond(r.Context(), w, resp, err)
}

func (h *CreditHandler) getObligation(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.GetObligation.Execute(r.Context(), dto.GetObligationRequest{ObligationID: mux.Vars(r)["obligationID"]})
	h.respond(r.Context(), w, resp, err)
}

func (h *CreditHandler) respond(ctx context.Context, w http.ResponseWriter, body any, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, body)
		return
	}
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "credit query failed", "error", err)
		writeError(w, code, "internal error")
		return
	}
	writeError(w, code, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrObligationNotFound),
		errors.Is(err, model.ErrUnknownCustomer):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidAmount),
		errors.Is(err, model.ErrInvalidTerms):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, model.ErrMissingCreditScore),
		errors.Is(err, model.ErrInsufficientCreditScore),
		errors.Is(err, model.ErrExceedsRiskTierLimit),
		errors.Is(err, model.ErrAlreadyCompleted),
		errors.Is(err, model.ErrSupplierAlreadyPaid),
		errors.Is(err, model.ErrUnsupportedProduct):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
