package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/port"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/valueobject"
)

var _ port.BehavioralDataProvider = (*StubCDP)(nil)

// StubCDP returns deterministic behavioural data derived from the customer
// ID, so the same merchant always gets the same score. Used when no
// CDP_BASE_URL is configured.
type StubCDP struct {
	clock port.Clock
}

func NewStubCDP(clock port.Clock) *StubCDP {
	return &StubCDP{clock: clock}
}

func (s *StubCDP) FetchBehavioralInput(_ context.Context, customerID string) (valueobject.BehavioralInput, error) {
	if customerID == "" {
		return valueobject.BehavioralInput{}, errors.New("customer ID is required")
	}

	h := sha256.Sum256([]byte(customerID))
	seed := func(i int) int64 { return int64(binary.BigEndian.Uint16(h[i*2 : i*2+2])) }

	now := s.clock().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	base := 20000 + seed(0)%80000
	growthBps := seed(1)%400 - 100 // -1% .. +3% a month

	history := make([]valueobject.RevenuePeriod, 0, 12)
	amount := decimal.NewFromInt(base)
	for i := 11; i >= 0; i-- {
		history = append(history, valueobject.RevenuePeriod{
			Period: start.AddDate(0, -i, 0),
			Amount: amount.Round(2),
		})
		amount = amount.Mul(decimal.NewFromInt(10000 + growthBps)).Div(decimal.NewFromInt(10000))
	}

	late := int(seed(2) % 6)
	txns := make([]valueobject.TransactionRecord, 0, 20)
	for i := 0; i < 20; i++ {
		txns = append(txns, valueobject.TransactionRecord{
			Amount:     decimal.NewFromInt(500 + int64(i)*50),
			PaidOnTime: i >= late,
		})
	}

	created := now.AddDate(0, -int(6+seed(3)%42), 0)
	retention := decimal.NewFromInt(55 + seed(4)%40).Div(decimal.NewFromInt(100))
	ltv := decimal.NewFromInt(200 + seed(5)%800)
	cac := decimal.NewFromInt(100 + seed(6)%150)

	return valueobject.BehavioralInput{
		AccountCreatedAt: &created,
		RetentionRate:    &retention,
		LifetimeValue:    &ltv,
		AcquisitionCost:  &cac,
		RevenueHistory:   history,
		Transactions:     txns,
	}, nil
}
