package domain

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// RoleAdmin grants access to every wallet and to administrative operations.
const RoleAdmin = "ADMIN"

// Identity is the authenticated caller as asserted by the gateway or a token.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Roles  []string
}

// HasRole reports whether the identity carries role (case-insensitive).
func (i *Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if strings.EqualFold(strings.TrimSpace(r), role) {
			return true
		}
	}
	return false
}

// IsAdmin is shorthand for HasRole(RoleAdmin).
func (i *Identity) IsAdmin() bool {
	return i.HasRole(RoleAdmin)
}

// CanAccess applies the ownership rule: admins see everything, others only their own.
func (i *Identity) CanAccess(owner uuid.UUID) bool {
	return i.IsAdmin() || i.UserID == owner
}

type identityKey struct{}

// WithIdentity attaches id to ctx.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the caller, or nil for trusted internal calls.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}
