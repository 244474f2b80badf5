package ports

import (
	"context"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
)

// ListUsersFilter carries query parameters for the admin user list.
type ListUsersFilter struct {
	Role     string // optional: filter by role
	Banned   *bool  // optional: true = banned only, false = active only
	Search   string // optional: partial match on name or email
	Page     int    // 1-based
	Limit    int    // capped at 100 by the service
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns a page of users matching filter and the total count.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	// ListActiveIDs returns the IDs of all non-banned users (broadcast fan-out).
	ListActiveIDs(ctx context.Context) ([]string, error)
	// SetActive bans (active=false) or reinstates (active=true) an account.
	SetActive(ctx context.Context, id string, active bool, reason string) error
	// SetSubscription updates the billing state mirrored on the user record.
	SetSubscription(ctx context.Context, id string, sub domain.Subscription) error
}
