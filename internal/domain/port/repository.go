package port

import (
	"context"
	"time"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/event"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/model"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// CreditScoreRepository stores the append-only score history per customer.
type CreditScoreRepository interface {
	Save(ctx context.Context, record model.CreditScoreRecord) error
	// FindLatest returns model.ErrMissingCreditScore when the customer has
	// never been scored.
	FindLatest(ctx context.Context, customerID string) (model.CreditScoreRecord, error)
	// FindHistory returns up to limit records, newest first. A limit of zero
	// or less returns everything.
	FindHistory(ctx context.Context, customerID string, limit int) ([]model.CreditScoreRecord, error)
}

// ObligationRepository persists obligations and their payment ledger.
//
// Save performs optimistic concurrency control: a new obligation (version 1)
// is inserted, an existing one is only overwritten when the stored version
// matches. A mismatch returns model.ErrVersionConflict.
type ObligationRepository interface {
	Save(ctx context.Context, ob model.Obligation) error
	FindByID(ctx context.Context, id string) (model.Obligation, error)
	FindByCustomerID(ctx context.Context, customerID string) ([]model.Obligation, error)
	FindActive(ctx context.Context) ([]model.Obligation, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// External service ports
// ---------------------------------------------------------------------------

// BehavioralDataProvider fetches the pre-computed behavioural signals a
// score is calculated from.
type BehavioralDataProvider interface {
	FetchBehavioralInput(ctx context.Context, customerID string) (valueobject.BehavioralInput, error)
}

// ---------------------------------------------------------------------------
// Coordination ports
// ---------------------------------------------------------------------------

// ObligationLocker serialises writers on a single obligation. The returned
// func releases the lock and is safe to call once.
type ObligationLocker interface {
	Lock(ctx context.Context, obligationID string) (unlock func(), err error)
}

// IDGenerator issues identifiers for new aggregates and payments.
type IDGenerator interface {
	NewID() string
}

// Clock returns the current time.
type Clock func() time.Time
