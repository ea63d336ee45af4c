package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/model"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/port"
)

var _ port.ObligationRepository = (*ObligationRepo)(nil)

// ObligationRepo applies the same version check as the Postgres store: a
// save succeeds only when the stored version equals the aggregate's, and
// the stored copy then carries version+1. A new obligation never replaces
// one already stored under its id.
type ObligationRepo struct {
	mu          sync.RWMutex
	obligations map[string]model.Obligation
}

func NewObligationRepo() *ObligationRepo {
	return &ObligationRepo{obligations: make(map[string]model.Obligation)}
}

func (r *ObligationRepo) Save(_ context.Context, ob model.Obligation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.obligations[ob.ID()]
	version := ob.Version()
	if exists && ob.IsNew() {
		return fmt.Errorf("%w: obligation %s already exists", model.ErrVersionConflict, ob.ID())
	}
	if exists {
		if stored.Version() != ob.Version() {
			return model.ErrVersionConflict
		}
		version++
	}

	r.obligations[ob.ID()] = model.ReconstructObligation(
		ob.ID(), ob.CustomerID(), ob.Terms(), ob.Status(), ob.CreditScoreAtOrigination(),
		ob.OriginatedAt(), ob.CompletedAt(), ob.Payments(), version,
	)
	return nil
}

func (r *ObligationRepo) FindByID(_ context.Context, id string) (model.Obligation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ob, ok := r.obligations[id]
	if !ok {
		return model.Obligation{}, model.ErrObligationNotFound
	}
	return ob, nil
}

// FindByCustomerID returns obligations newest first.
func (r *ObligationRepo) FindByCustomerID(_ context.Context, customerID string) ([]model.Obligation, error) {
	out := r.filter(func(ob model.Obligation) bool { return ob.CustomerID() == customerID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].OriginatedAt().After(out[j].OriginatedAt()) })
	return out, nil
}

func (r *ObligationRepo) FindActive(_ context.Context) ([]model.Obligation, error) {
	out := r.filter(func(ob model.Obligation) bool { return !ob.Status().IsTerminal() })
	sort.SliceStable(out, func(i, j int) bool { return out[i].OriginatedAt().Before(out[j].OriginatedAt()) })
	return out, nil
}

func (r *ObligationRepo) filter(keep func(model.Obligation) bool) []model.Obligation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Obligation
	for _, ob := range r.obligations {
		if keep(ob) {
			out = append(out, ob)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
