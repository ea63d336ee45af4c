package adapter

import (
	"github.com/google/uuid"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/port"
)

var _ port.IDGenerator = UUIDGenerator{}

// UUIDGenerator issues random (v4) UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }
