package ports

import (
	"context"
	"time"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// AuthResult is returned by Register and Login: the signed credential plus
// the user it identifies.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthService implements the identity boundary consumed by handlers and by
// the session SDK's HTTP client: authenticate, register, validate, invalidate.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Validate checks the credential (signature, expiry, revocation) and
	// re-fetches the user it names.
	Validate(ctx context.Context, token string) (*domain.User, error)
	// Logout revokes the credential. Calling it with an already-revoked or
	// malformed token is a no-op.
	Logout(ctx context.Context, token string) error
}

// TokenRevoker is the deny-list consulted on every validation and written on
// logout. Entries expire with the token they revoke.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
