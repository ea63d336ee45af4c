package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/event"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/model"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/service"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/valueobject"
)

var fixedNow = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// --- Mocks ---

type mockScoreRepository struct {
	saveFunc        func(ctx context.Context, rec model.CreditScoreRecord) error
	findLatestFunc  func(ctx context.Context, customerID string) (model.CreditScoreRecord, error)
	findHistoryFunc func(ctx context.Context, customerID string, limit int) ([]model.CreditScoreRecord, error)
	saved           []model.CreditScoreRecord
}

func (m *mockScoreRepository) Save(ctx context.Context, rec model.CreditScoreRecord) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, rec)
	}
	m.saved = append(m.saved, rec)
	return nil
}

func (m *mockScoreRepository) FindLatest(ctx context.Context, customerID string) (model.CreditScoreRecord, error) {
	if m.findLatestFunc != nil {
		return m.findLatestFunc(ctx, customerID)
	}
	return model.CreditScoreRecord{}, model.ErrMissingCreditScore
}

func (m *mockScoreRepository) FindHistory(ctx context.Context, customerID string, limit int) ([]model.CreditScoreRecord, error) {
	if m.findHistoryFunc != nil {
		return m.findHistoryFunc(ctx, customerID, limit)
	}
	return nil, nil
}

// mockObligationRepository keeps saved obligations so multi-step flows can
// read their own writes. Save bumps the version like a real store.
type mockObligationRepository struct {
	saveFunc           func(ctx context.Context, ob model.Obligation) error
	findByIDFunc       func(ctx context.Context, id string) (model.Obligation, error)
	findByCustomerFunc func(ctx context.Context, customerID string) ([]model.Obligation, error)
	findActiveFunc     func(ctx context.Context) ([]model.Obligation, error)
	obligations        map[string]model.Obligation
	saved              []model.Obligation
}

func newObligationRepo(obs ...model.Obligation) *mockObligationRepository {
	m := &mockObligationRepository{obligations: map[string]model.Obligation{}}
	for _, ob := range obs {
		m.obligations[ob.ID()] = ob
	}
	return m
}

func (m *mockObligationRepository) Save(ctx context.Context, ob model.Obligation) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, ob)
	}
	m.saved = append(m.saved, ob)
	if m.obligations == nil {
		m.obligations = map[string]model.Obligation{}
	}
	m.obligations[ob.ID()] = bumpVersion(ob)
	return nil
}

func (m *mockObligationRepository) FindByID(ctx context.Context, id string) (model.Obligation, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	ob, ok := m.obligations[id]
	if !ok {
		return model.Obligation{}, model.ErrObligationNotFound
	}
	return ob, nil
}

func (m *mockObligationRepository) FindByCustomerID(ctx context.Context, customerID string) ([]model.Obligation, error) {
	if m.findByCustomerFunc != nil {
		return m.findByCustomerFunc(ctx, customerID)
	}
	var out []model.Obligation
	for _, ob := range m.obligations {
		if ob.CustomerID() == customerID {
			out = append(out, ob)
		}
	}
	return out, nil
}

func (m *mockObligationRepository) FindActive(ctx context.Context) ([]model.Obligation, error) {
	if m.findActiveFunc != nil {
		return m.findActiveFunc(ctx)
	}
	var out []model.Obligation
	for _, ob := range m.obligations {
		if !ob.Status().IsTerminal() {
			out = append(out, ob)
		}
	}
	return out, nil
}

func bumpVersion(ob model.Obligation) model.Obligation {
	return model.ReconstructObligation(
		ob.ID(), ob.CustomerID(), ob.Terms(), ob.Status(), ob.CreditScoreAtOrigination(),
		ob.OriginatedAt(), ob.CompletedAt(), ob.Payments(), ob.Version()+1,
	)
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

func (m *mockEventPublisher) types() []string {
	out := make([]string, len(m.publishedEvents))
	for i, e := range m.publishedEvents {
		out[i] = e.EventType()
	}
	return out
}

type mockLocker struct {
	lockFunc func(ctx context.Context, id string) (func(), error)
	locked   []string
	released int
}

func (m *mockLocker) Lock(ctx context.Context, id string) (func(), error) {
	if m.lockFunc != nil {
		return m.lockFunc(ctx, id)
	}
	m.locked = append(m.locked, id)
	return func() { m.released++ }, nil
}

type mockBehavioralProvider struct {
	fetchFunc func(ctx context.Context, customerID string) (valueobject.BehavioralInput, error)
}

func (m *mockBehavioralProvider) FetchBehavioralInput(ctx context.Context, customerID string) (valueobject.BehavioralInput, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, customerID)
	}
	return valueobject.BehavioralInput{}, nil
}

type sequentialIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

func (s *sequentialIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%d", s.prefix, s.n)
}

// --- Fixtures ---

func scoreRecord(customerID string, score int) model.CreditScoreRecord {
	rec, err := model.NewCreditScoreRecord("cs-"+customerID, customerID, score, nil,
		service.NewRiskTierResolver().Resolve(score), fixedNow.AddDate(0, 0, -1))
	if err != nil {
		panic(err)
	}
	return rec
}

func latestScore(rec model.CreditScoreRecord) func(context.Context, string) (model.CreditScoreRecord, error) {
	return func(context.Context, string) (model.CreditScoreRecord, error) { return rec, nil }
}

func workingCapitalLoan(id, customerID, total string) model.Obligation {
	return model.ReconstructObligation(
		id, customerID,
		model.WorkingCapitalLoan{
			Principal:      d(total),
			InterestRate:   d("0.10"),
			TotalRepayment: d(total),
			MonthlyPayment: d(total).Div(decimal.NewFromInt(12)).Round(2),
			Remaining:      d(total),
			AmountRepaid:   decimal.Zero,
			TermMonths:     12,
		},
		valueobject.ObligationStatusActive, 720, fixedNow.AddDate(0, -1, 0), nil, nil, 1,
	)
}

func netTermsObligation(id, customerID string, customerDue time.Time) model.Obligation {
	return model.ReconstructObligation(
		id, customerID,
		model.NetTerms{
			SupplierID:           "sup-1",
			InvoiceAmount:        d("10000"),
			FeeRate:              d("0.025"),
			FeeAmount:            d("250"),
			SupplierPaymentDueAt: fixedNow.AddDate(0, 0, 7),
			CustomerPaymentDueAt: customerDue,
		},
		valueobject.ObligationStatusActive, 710, fixedNow, nil, nil, 1,
	)
}

func revenueBasedObligation(id, customerID string) model.Obligation {
	return model.ReconstructObligation(
		id, customerID,
		model.RevenueBasedFinancing{
			AdvanceAmount:            d("50000"),
			RepaymentMultiple:        d("1.4"),
			TotalRepayment:           d("70000"),
			Remaining:                d("70000"),
			AmountRepaid:             decimal.Zero,
			RevenueSharePercent:      d("0.08"),
			ExpectedCompletionMonths: 18,
		},
		valueobject.ObligationStatusActive, 720, fixedNow, nil, nil, 1,
	)
}
