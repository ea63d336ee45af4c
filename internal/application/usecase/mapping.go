package usecase

import (
	"context"
	"log/slog"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/application/dto"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/event"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/model"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/port"
)

// publishBestEffort hands events to the publisher without failing the
// caller. The write has already committed by the time this runs.
func publishBestEffort(ctx context.Context, logger *slog.Logger, publisher port.EventPublisher, events ...event.DomainEvent) {
	if len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.WarnContext(ctx, "failed to publish domain events",
			"count", len(events),
			"aggregate_id", events[0].AggregateID(),
			"error", err,
		)
	}
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

func toScoreResponse(rec model.CreditScoreRecord) dto.CreditScoreResponse {
	factors := rec.Factors()
	out := make([]dto.ScoreFactorResponse, len(factors))
	for i, f := range factors {
		out[i] = dto.ScoreFactorResponse{
			Name:        f.Name,
			Score:       f.Score,
			Weight:      f.Weight,
			Grade:       f.Grade.String(),
			Description: f.Description,
		}
	}
	return dto.CreditScoreResponse{
		ID:             rec.ID(),
		CustomerID:     rec.CustomerID(),
		Score:          rec.Score(),
		Rating:         rec.Rating().String(),
		RiskTier:       rec.RiskTier().Name(),
		MaxCreditLimit: rec.MaxCreditLimit(),
		Factors:        out,
		CalculatedAt:   rec.CalculatedAt(),
	}
}

func toPaymentResponse(p model.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:               p.ID,
		ObligationID:     p.ObligationID,
		Amount:           p.Amount,
		RevenueForPeriod: p.RevenueForPeriod,
		PaidAt:           p.PaidAt,
	}
}

func toObligationResponse(ob model.Obligation) dto.ObligationResponse {
	payments := ob.Payments()
	resp := dto.ObligationResponse{
		ID:                       ob.ID(),
		CustomerID:               ob.CustomerID(),
		ProductType:              ob.ProductType().String(),
		Status:                   ob.Status().String(),
		CreditScoreAtOrigination: ob.CreditScoreAtOrigination(),
		AmountExtended:           ob.AmountExtended(),
		TotalRepayment:           ob.TotalRepayment(),
		Outstanding:              ob.Outstanding(),
		OriginatedAt:             ob.OriginatedAt(),
		CompletedAt:              ob.CompletedAt(),
		Version:                  ob.Version(),
		Payments:                 make([]dto.PaymentResponse, len(payments)),
	}
	for i, p := range payments {
		resp.Payments[i] = toPaymentResponse(p)
	}
	if due, amount, ok := ob.NextPaymentDue(); ok {
		resp.NextPaymentDueAt = &due
		resp.NextPaymentAmount = &amount
	}

	switch t := ob.Terms().(type) {
	case model.NetTerms:
		resp.NetTerms = &dto.NetTermsResponse{
			SupplierID:           t.SupplierID,
			InvoiceAmount:        t.InvoiceAmount,
			FeeRate:              t.FeeRate,
			FeeAmount:            t.FeeAmount,
			SupplierPaymentDueAt: t.SupplierPaymentDueAt,
			CustomerPaymentDueAt: t.CustomerPaymentDueAt,
			SupplierPaidAt:       t.SupplierPaidAt,
			CustomerPaidAt:       t.CustomerPaidAt,
		}
	case model.WorkingCapitalLoan:
		resp.WorkingCapital = &dto.WorkingCapitalResponse{
			Principal:      t.Principal,
			InterestRate:   t.InterestRate,
			TotalInterest:  t.TotalInterest,
			OriginationFee: t.OriginationFee,
			TotalRepayment: t.TotalRepayment,
			MonthlyPayment: t.MonthlyPayment,
			TermMonths:     t.TermMonths,
			AmountRepaid:   t.AmountRepaid,
			Remaining:      t.Remaining,
		}
	case model.RevenueBasedFinancing:
		resp.RevenueBased = &dto.RevenueBasedResponse{
			AdvanceAmount:            t.AdvanceAmount,
			RepaymentMultiple:        t.RepaymentMultiple,
			TotalRepayment:           t.TotalRepayment,
			AmountRepaid:             t.AmountRepaid,
			Remaining:                t.Remaining,
			RevenueSharePercent:      t.RevenueSharePercent,
			ExpectedCompletionMonths: t.ExpectedCompletionMonths,
		}
	}
	return resp
}

func toObligationResponses(obs []model.Obligation) []dto.ObligationResponse {
	out := make([]dto.ObligationResponse, len(obs))
	for i, ob := range obs {
		out[i] = toObligationResponse(ob)
	}
	return out
}
