package ports

import (
	"context"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
)

// ListUsersResult is returned by ListUsers.
type ListUsersResult struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AdminService defines the admin-only operations behind /v1/admin.
type AdminService interface {
	ListUsers(ctx context.Context, filter ListUsersFilter) (*ListUsersResult, error)
	BanUser(ctx context.Context, id, reason string) error
	UnbanUser(ctx context.Context, id string) error
	Features(ctx context.Context) (domain.FeatureFlags, error)
	SetFeatures(ctx context.Context, flags domain.FeatureFlags) error
	// Broadcast enqueues an announcement notification for every active user
	// and returns the number of recipients.
	Broadcast(ctx context.Context, title, body string) (int, error)
}

// NotificationService defines the user-facing notification inbox.
type NotificationService interface {
	ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}

// SettingsRepository persists the singleton feature flag document.
type SettingsRepository interface {
	// GetFeatureFlags returns the stored flags, or found=false when no admin
	// has saved any yet.
	GetFeatureFlags(ctx context.Context) (flags domain.FeatureFlags, found bool, err error)
	SaveFeatureFlags(ctx context.Context, flags domain.FeatureFlags) error
}
