package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/application/dto"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/application/usecase"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/model"
)

// UseCases groups the application operations exposed by CreditHandler.
type UseCases struct {
	CalculateScore          *usecase.CalculateCreditScoreUseCase
	GetLatestScore          *usecase.GetLatestScoreUseCase
	ListScoreHistory        *usecase.ListScoreHistoryUseCase
	OriginateNetTerms       *usecase.OriginateNetTermsUseCase
	OriginateWorkingCapital *usecase.OriginateWorkingCapitalUseCase
	OriginateRevenueBased   *usecase.OriginateRevenueBasedUseCase
	RecordPayment           *usecase.RecordPaymentUseCase
	PaySupplier             *usecase.PaySupplierUseCase
	GetObligation           *usecase.GetObligationUseCase
	ListObligations         *usecase.ListObligationsUseCase
	GetDashboard            *usecase.GetDashboardUseCase
	ScanPaymentsDue         *usecase.ScanPaymentsDueUseCase
}

// CreditHandler implements CreditServiceServer on top of the use cases.
type CreditHandler struct {
	UnimplementedCreditServiceServer
	uc     UseCases
	logger *slog.Logger
}

// NewCreditHandler creates a new gRPC credit handler.
func NewCreditHandler(uc UseCases, logger *slog.Logger) *CreditHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CreditHandler{uc: uc, logger: logger}
}

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

// CustomerRequest identifies a customer.
type CustomerRequest struct {
	CustomerID string `json:"customer_id"`
}

// ObligationRequest identifies an obligation.
type ObligationRequest struct {
	ObligationID string `json:"obligation_id"`
}

// ListScoreHistoryRequest pages back through score records. Zero returns all.
type ListScoreHistoryRequest struct {
	CustomerID string `json:"customer_id"`
	Limit      int32  `json:"limit"`
}

// OriginateNetTermsRequest finances a supplier invoice. Amounts are decimal strings.
type OriginateNetTermsRequest struct {
	CustomerID    string `json:"customer_id"`
	SupplierID    string `json:"supplier_id"`
	InvoiceAmount string `json:"invoice_amount"`
}

// OriginateWorkingCapitalRequest requests a term loan.
type OriginateWorkingCapitalRequest struct {
	CustomerID string `json:"customer_id"`
	Amount     string `json:"amount"`
	TermMonths int32  `json:"term_months"`
}

// OriginateRevenueBasedRequest requests a revenue-based advance. An empty
// multiple selects the default.
type OriginateRevenueBasedRequest struct {
	CustomerID        string `json:"customer_id"`
	AdvanceAmount     string `json:"advance_amount"`
	RepaymentMultiple string `json:"repayment_multiple,omitempty"`
}

// RecordPaymentRequest applies a customer payment.
type RecordPaymentRequest struct {
	ObligationID     string `json:"obligation_id"`
	Amount           string `json:"amount"`
	RevenueForPeriod string `json:"revenue_for_period,omitempty"`
}

// ScanPaymentsDueRequest triggers a due scan. Zero uses the default window.
type ScanPaymentsDueRequest struct {
	WindowHours int32 `json:"window_hours"`
}

func (r *CustomerRequest) ScopeCustomerID() string                { return r.CustomerID }
func (r *ListScoreHistoryRequest) ScopeCustomerID() string        { return r.CustomerID }
func (r *OriginateNetTermsRequest) ScopeCustomerID() string       { return r.CustomerID }
func (r *OriginateWorkingCapitalRequest) ScopeCustomerID() string { return r.CustomerID }
func (r *OriginateRevenueBasedRequest) ScopeCustomerID() string   { return r.CustomerID }

// ---------------------------------------------------------------------------
// Scores
// ---------------------------------------------------------------------------

// CalculateScore handles the gRPC CalculateScore request.
func (h *CreditHandler) CalculateScore(ctx context.Context, req *CustomerRequest) (*dto.CreditScoreResponse, error) {
	if req == nil || req.CustomerID == "" {
		return nil, status.Error(codes.InvalidArgument, "customer_id is required")
	}
	resp, err := h.uc.CalculateScore.Execute(ctx, dto.CalculateScoreRequest{CustomerID: req.CustomerID})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

// GetLatestScore handles the gRPC GetLatestScore request.
func (h *CreditHandler) GetLatestScore(ctx context.Context, req *CustomerRequest) (*dto.CreditScoreResponse, error) {
	if req == nil || req.CustomerID == "" {
		return nil, status.Error(codes.InvalidArgument, "customer_id is required")
	}
	resp, err := h.uc.GetLatestScore.Execute(ctx, dto.GetScoreRequest{CustomerID: req.CustomerID})
	if errors.Is(err, model.ErrMissingCreditScore) {
		return nil, status.Error(codes.NotFound, err.Error())
	}
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

// ListScoreHistory handles the gRPC ListScoreHistory request.
func (h *CreditHandler) ListScoreHistory(ctx context.Context, req *ListScoreHistoryRequest) (*dto.ScoreHistoryResponse, error) {
	if req == nil || req.CustomerID == "" {
		return nil, status.Error(codes.InvalidArgument, "customer_id is required")
	}
	if req.Limit < 0 {
		return nil, status.Error(codes.InvalidArgument, "limit must not be negative")
	}
	resp, err := h.uc.ListScoreHistory.Execute(ctx, dto.ListScoreHistoryRequest{
		CustomerID: req.CustomerID,
		Limit:      int(req.Limit),
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

// ---------------------------------------------------------------------------
// Origination
// ---------------------------------------------------------------------------

// OriginateNetTerms handles the gRPC OriginateNetTerms request.
func (h *CreditHandler) OriginateNetTerms(ctx context.Context, req *OriginateNetTermsRequest) (*dto.ObligationResponse, error) {
	if req == nil || req.CustomerID == "" || req.SupplierID == "" {
		return nil, status.Error(codes.InvalidArgument, "customer_id and supplier_id are required")
	}
	amount, err := parseAmount("invoice_amount", req.InvoiceAmount)
	if err != nil {
		return nil, err
	}
	resp, err := h.uc.OriginateNetTerms.Execute(ctx, dto.OriginateNetTermsRequest{
		CustomerID:    req.CustomerID,
		SupplierID:    req.SupplierID,
		InvoiceAmount: amount,
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

// OriginateWorkingCapital handles the gRPC OriginateWorkingCapital request.
func (h *CreditHandler) OriginateWorkingCapital(ctx context.Context, req *OriginateWorkingCapitalRequest) (*dto.ObligationResponse, error) {
	if req == nil || req.CustomerID == "" {
		return nil, status.Error(codes.InvalidArgument, "customer_id is required")
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		return nil, err
	}
	resp, err := h.uc.OriginateWorkingCapital.Execute(ctx, dto.OriginateWorkingCapitalRequest{
		CustomerID: req.CustomerID,
		Amount:     amount,
		TermMonths: int(req.TermMonths),
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

// OriginateRevenueBased handles the gRPC OriginateRevenueBased request.
func (h *CreditHandler) OriginateRevenueBased(ctx context.Context, req *OriginateRevenueBasedRequest) (*dto.ObligationResponse, error) {
	if req == nil || req.CustomerID == "" {
		return nil, status.Error(codes.InvalidArgument, "customer_id is required")
	}
	amount, err := parseAmount("advance_amount", req.AdvanceAmount)
	if err != nil {
		return nil, err
	}
	var multiple decimal.Decimal
	if req.RepaymentMultiple != "" {
		if multiple, err = parseAmount("repayment_multiple", req.RepaymentMultiple); err != nil {
			return nil, err
		}
	}
	resp, err := h.uc.OriginateRevenueBased.Execute(ctx, dto.OriginateRevenueBasedRequest{
		CustomerID:        req.CustomerID,
		AdvanceAmount:     amount,
		RepaymentMultiple: multiple,
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

// ---------------------------------------------------------------------------
// Ledger
// ---------------------------------------------------------------------------

// RecordPayment handles the gRPC RecordPayment request.
func (h *CreditHandler) RecordPayment(ctx context.Context, req *RecordPaymentRequest) (*dto.RecordPaymentResponse, error) {
	if req == nil || req.ObligationID == "" {
		return nil, status.Error(codes.InvalidArgument, "obligation_id is required")
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		return nil, err
	}
	var revenue *decimal.Decimal
	if req.RevenueForPeriod != "" {
		r, err := parseAmount("revenue_for_period", req.RevenueForPeriod)
		if err != nil {
			return nil, err
		}
		revenue = &r
	}
	resp, err := h.uc.RecordPayment.Execute(ctx, dto.RecordPaymentRequest{
		ObligationID:     req.ObligationID,
		Amount:           amount,
		RevenueForPeriod: revenue,
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

// PaySupplier handles the gRPC PaySupplier request.
func (h *CreditHandler) PaySupplier(ctx context.Context, req *ObligationRequest) (*dto.ObligationResponse, error) {
	if req == nil || req.ObligationID == "" {
		return nil, status.Error(codes.InvalidArgument, "obligation_id is required")
	}
	resp, err := h.uc.PaySupplier.Execute(ctx, dto.PaySupplierRequest{ObligationID: req.ObligationID})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

// GetObligation handles the gRPC GetObligation request.
func (h *CreditHandler) GetObligation(ctx context.Context, req *ObligationRequest) (*dto.ObligationResponse, error) {
	if req == nil || req.ObligationID == "" {
		return nil, status.Error(codes.InvalidArgument, "obligation_id is required")
	}
	resp, err := h.uc.GetObligation.Execute(ctx, dto.GetObligationRequest{ObligationID: req.ObligationID})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

// ListObligations handles the gRPC ListObligations request.
func (h *CreditHandler) ListObligations(ctx context.Context, req *CustomerRequest) (*dto.ObligationListResponse, error) {
	if req == nil || req.CustomerID == "" {
		return nil, status.Error(codes.InvalidArgument, "customer_id is required")
	}
	resp, err := h.uc.ListObligations.Execute(ctx, dto.ListObligationsRequest{CustomerID: req.CustomerID})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

// GetDashboard handles the gRPC GetDashboard request.
func (h *CreditHandler) GetDashboard(ctx context.Context, req *CustomerRequest) (*dto.DashboardResponse, error) {
	if req == nil || req.CustomerID == "" {
		return nil, status.Error(codes.InvalidArgument, "customer_id is required")
	}
	resp, err := h.uc.GetDashboard.Execute(ctx, dto.DashboardRequest{CustomerID: req.CustomerID})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

// ScanPaymentsDue runs the due scan on demand.
func (h *CreditHandler) ScanPaymentsDue(ctx context.Context, req *ScanPaymentsDueRequest) (*dto.ScanPaymentsDueResponse, error) {
	if req == nil || req.WindowHours < 0 {
		return nil, status.Error(codes.InvalidArgument, "window_hours must not be negative")
	}
	resp, err := h.uc.ScanPaymentsDue.Execute(ctx, dto.ScanPaymentsDueRequest{
		Window: time.Duration(req.WindowHours) * time.Hour,
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func parseAmount(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Decimal{}, status.Errorf(codes.InvalidArgument, "%s is required", field)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid %s: %v", field, err))
	}
	return v, nil
}

// toStatus maps domain and application errors onto gRPC codes. Unmapped
// errors are logged and reported as Internal without their detail.
func (h *CreditHandler) toStatus(ctx context.Context, err error) error {
	code := codeFor(err)
	if code == codes.Internal {
		h.logger.ErrorContext(ctx, "credit request failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
	return status.Error(code, err.Error())
}

func codeFor(err error) codes.Code {
	switch {
	case errors.Is(err, model.ErrObligationNotFound),
		errors.Is(err, model.ErrUnknownCustomer):
		return codes.NotFound
	case errors.Is(err, model.ErrInvalidAmount),
		errors.Is(err, model.ErrInvalidTerms):
		return codes.InvalidArgument
	case errors.Is(err, model.ErrMissingCreditScore),
		errors.Is(err, model.ErrInsufficientCreditScore),
		errors.Is(err, model.ErrExceedsRiskTierLimit),
		errors.Is(err, model.ErrAlreadyCompleted),
		errors.Is(err, model.ErrSupplierAlreadyPaid),
		errors.Is(err, model.ErrUnsupportedProduct):
		return codes.FailedPrecondition
	case errors.Is(err, model.ErrVersionConflict):
		return codes.Aborted
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	default:
		return codes.Internal
	}
}
