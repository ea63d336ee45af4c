package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// Roles recognised by the credit service.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleMerchant = "merchant"
)

// Claims are the JWT claims carried by callers of the credit service. A
// non-empty CustomerID pins a merchant token to that customer's data.
type Claims struct {
	jwt.RegisteredClaims
	Roles      []string `json:"roles"`
	CustomerID string   `json:"customer_id,omitempty"`
}

// HasRole checks if the claims include the specified role.
func (c Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// HasAnyRole reports whether any of roles is held.
func (c Claims) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if c.HasRole(r) {
			return true
		}
	}
	return false
}
