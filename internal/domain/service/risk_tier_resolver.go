package service

import "github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/valueobject"

// RiskTierResolver maps an Aura Score onto the fixed tier table.
type RiskTierResolver struct {
	tiers []valueobject.RiskTier
}

// NewRiskTierResolver returns a resolver over the standard tier table.
func NewRiskTierResolver() *RiskTierResolver {
	return &RiskTierResolver{tiers: valueobject.RiskTiers()}
}

// Resolve returns the tier whose range contains score. Any score that no
// tier matches resolves to the bad tier so gating always has a tier.
func (r *RiskTierResolver) Resolve(score int) valueobject.RiskTier {
	for _, t := range r.tiers {
		if t.Contains(score) {
			return t
		}
	}
	return valueobject.RiskTierBad
}
