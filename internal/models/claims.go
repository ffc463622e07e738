package models

import "github.com/golang-jwt/jwt/v5"

// Roles used by the admin surface.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// AdminClaims are the JWT claims for the admin API (verification-source upload).
type AdminClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// IsAdmin reports whether the claims grant access to the admin surface.
func (c *AdminClaims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
