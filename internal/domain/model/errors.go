package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Business-rule rejections. None of these are transient; callers decide how
// to proceed.
var (
	ErrMissingCreditScore      = errors.New("missing credit score")
	ErrInsufficientCreditScore = errors.New("insufficient credit score")
	ErrExceedsRiskTierLimit    = errors.New("amount exceeds risk tier limit")
	ErrObligationNotFound      = errors.New("obligation not found")
	ErrAlreadyCompleted        = errors.New("obligation already completed")
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrInvalidTerms            = errors.New("invalid terms")
	ErrUnsupportedProduct      = errors.New("operation not supported for product")
	ErrSupplierAlreadyPaid     = errors.New("supplier already paid")
	ErrUnknownCustomer         = errors.New("unknown customer")
)

// ErrVersionConflict is returned by stores when an obligation was modified
// concurrently since it was read.
var ErrVersionConflict = errors.New("obligation version conflict")

// InsufficientCreditScoreError reports the product minimum that was missed.
type InsufficientCreditScoreError struct {
	Product  string
	Required int
	Actual   int
}

func (e *InsufficientCreditScoreError) Error() string {
	return fmt.Sprintf("insufficient credit score for %s: required %d, actual %d", e.Product, e.Required, e.Actual)
}

func (e *InsufficientCreditScoreError) Is(target error) bool {
	return target == ErrInsufficientCreditScore
}

// ExceedsRiskTierLimitError reports a requested amount above the tier's
// maximum credit limit.
type ExceedsRiskTierLimitError struct {
	Tier      string
	Requested decimal.Decimal
	Max       decimal.Decimal
}

func (e *ExceedsRiskTierLimitError) Error() string {
	return fmt.Sprintf("requested %s exceeds %s tier limit of %s", e.Requested, e.Tier, e.Max)
}

func (e *ExceedsRiskTierLimitError) Is(target error) bool {
	return target == ErrExceedsRiskTierLimit
}
