package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/rpattn/agenthub/internal/query"
)

// RoleAdmin sees every tenant; any other role is scoped to its own company.
const RoleAdmin = "admin"

// Principal is the authenticated identity supplied by the upstream gateway.
// Token validation and role checks happen outside this service; by the time
// a request reaches a handler the principal is trusted.
type Principal struct {
	UserID    uuid.UUID
	CompanyID uuid.UUID
	Role      string
}

// Scope returns the implicit filter conditions this principal carries.
// Company-scoped tenants get a company_id equality merged as an AND term so
// OR filters can never read across tenants.
func (p Principal) Scope() []query.Condition {
	if p.Role == RoleAdmin || p.CompanyID == uuid.Nil {
		return nil
	}
	return []query.Condition{{
		Field:    "company_id",
		Operator: query.OpEq,
		Value:    p.CompanyID.String(),
	}}
}

type contextKey string

const principalKey contextKey = "principal"

// ContextWithPrincipal returns a context carrying the authenticated identity.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext retrieves the authenticated identity, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}
	p, ok := ctx.Value(principalKey).(Principal)
	if !ok || p.UserID == uuid.Nil {
		return Principal{}, false
	}
	return p, true
}
