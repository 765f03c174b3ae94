// Package auth resolves who is making a request: session tokens, password
// hashing and the principal handed to services.
package auth

import (
	"context"

	"github.com/justsurfingit/job-board/internal/models"
)

// Principal is the verified identity of a request.
type Principal struct {
	UserID    uint
	Role      models.Role
	StudentID uint // zero unless Role is student
	Email     string
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == models.RoleAdmin
}

func (p *Principal) IsStudent() bool {
	return p != nil && p.Role == models.RoleStudent && p.StudentID != 0
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal attached by the session middleware, or nil.
func FromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey{}).(*Principal)
	return p
}
