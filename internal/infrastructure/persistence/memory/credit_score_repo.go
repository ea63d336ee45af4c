// Package memory holds process-local stores used by STORE_BACKEND=memory
// and by tests that exercise the full wiring without a database.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/model"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/port"
)

var _ port.CreditScoreRepository = (*CreditScoreRepo)(nil)

// CreditScoreRepo keeps every record per customer in calculation order.
type CreditScoreRepo struct {
	mu      sync.RWMutex
	records map[string][]model.CreditScoreRecord
}

func NewCreditScoreRepo() *CreditScoreRepo {
	return &CreditScoreRepo{records: make(map[string][]model.CreditScoreRecord)}
}

func (r *CreditScoreRepo) Save(_ context.Context, rec model.CreditScoreRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	history := r.records[rec.CustomerID()]
	for _, existing := range history {
		if existing.ID() == rec.ID() {
			return nil
		}
	}
	history = append(history, rec)
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].CalculatedAt().Before(history[j].CalculatedAt())
	})
	r.records[rec.CustomerID()] = history
	return nil
}

func (r *CreditScoreRepo) FindLatest(_ context.Context, customerID string) (model.CreditScoreRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history := r.records[customerID]
	if len(history) == 0 {
		return model.CreditScoreRecord{}, model.ErrMissingCreditScore
	}
	return history[len(history)-1], nil
}

func (r *CreditScoreRepo) FindHistory(_ context.Context, customerID string, limit int) ([]model.CreditScoreRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history := r.records[customerID]
	n := len(history)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]model.CreditScoreRecord, 0, n)
	for i := len(history) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, history[i])
	}
	return out, nil
}
