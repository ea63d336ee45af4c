package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// ObligationStatus – immutable value object
// ---------------------------------------------------------------------------

// ObligationStatus represents the lifecycle stage of a financing obligation.
// The only legal transitions are ACTIVE -> COMPLETED and ACTIVE -> PAID_OFF.
type ObligationStatus struct {
	value string
}

const (
	obligationStatusActive    = "ACTIVE"
	obligationStatusCompleted = "COMPLETED"
	obligationStatusPaidOff   = "PAID_OFF"
)

var (
	ObligationStatusActive    = ObligationStatus{value: obligationStatusActive}
	ObligationStatusCompleted = ObligationStatus{value: obligationStatusCompleted}
	ObligationStatusPaidOff   = ObligationStatus{value: obligationStatusPaidOff}
)

var validObligationStatuses = map[string]ObligationStatus{
	obligationStatusActive:    ObligationStatusActive,
	obligationStatusCompleted: ObligationStatusCompleted,
	obligationStatusPaidOff:   ObligationStatusPaidOff,
}

// NewObligationStatus creates an ObligationStatus from a raw string.
func NewObligationStatus(s string) (ObligationStatus, error) {
	v, ok := validObligationStatuses[s]
	if !ok {
		return ObligationStatus{}, fmt.Errorf("invalid obligation status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s ObligationStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s ObligationStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s ObligationStatus) Equal(other ObligationStatus) bool { return s.value == other.value }

// IsTerminal reports whether no further payments may be applied.
func (s ObligationStatus) IsTerminal() bool {
	return s.value == obligationStatusCompleted || s.value == obligationStatusPaidOff
}

// ---------------------------------------------------------------------------
// ProductType – immutable value object
// ---------------------------------------------------------------------------

// ProductType identifies which financing product an obligation belongs to.
type ProductType struct {
	value string
}

const (
	productTypeNetTerms       = "NET_TERMS"
	productTypeWorkingCapital = "WORKING_CAPITAL"
	productTypeRevenueBased   = "REVENUE_BASED_FINANCING"
)

var (
	ProductTypeNetTerms       = ProductType{value: productTypeNetTerms}
	ProductTypeWorkingCapital = ProductType{value: productTypeWorkingCapital}
	ProductTypeRevenueBased   = ProductType{value: productTypeRevenueBased}
)

var validProductTypes = map[string]ProductType{
	productTypeNetTerms:       ProductTypeNetTerms,
	productTypeWorkingCapital: ProductTypeWorkingCapital,
	productTypeRevenueBased:   ProductTypeRevenueBased,
}

// NewProductType creates a ProductType from a raw string.
func NewProductType(s string) (ProductType, error) {
	v, ok := validProductTypes[s]
	if !ok {
		return ProductType{}, fmt.Errorf("invalid product type: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (p ProductType) String() string { return p.value }

// IsZero returns true when not initialised.
func (p ProductType) IsZero() bool { return p.value == "" }

// Equal returns true when both product types match.
func (p ProductType) Equal(other ProductType) bool { return p.value == other.value }

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
