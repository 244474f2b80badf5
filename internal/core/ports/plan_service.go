package ports

import (
	"context"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
)

// PlanInput carries the editable fields of a subscription plan.
type PlanInput struct {
	Name        string
	Description string
	Tier        string
	Price       float64
	Period      string
	Features    []string
}

// PlanService defines use-case operations for subscription plans. Every
// mutation side-inserts a PlanChange audit record and notifies active
// subscribers of the plan.
type PlanService interface {
	ListPlans(ctx context.Context) ([]*domain.Plan, error)
	CreatePlan(ctx context.Context, input PlanInput, changedBy string) (*domain.Plan, error)
	UpdatePlan(ctx context.Context, id string, input PlanInput, changedBy string) (*domain.Plan, error)
	DeletePlan(ctx context.Context, id string, changedBy string) error
}

// PlanRepository defines persistence operations for plans and their audit trail.
type PlanRepository interface {
	Create(ctx context.Context, p *domain.Plan) error
	FindByID(ctx context.Context, id string) (*domain.Plan, error)
	// ListByPrice returns all plans ordered by ascending price.
	ListByPrice(ctx context.Context) ([]*domain.Plan, error)
	Update(ctx context.Context, p *domain.Plan) error
	Delete(ctx context.Context, id string) error
	InsertChange(ctx context.Context, c *domain.PlanChange) error
}

// SubscriptionRepository defines persistence operations for user subscriptions.
type SubscriptionRepository interface {
	Create(ctx context.Context, s *domain.UserSubscription) error
	FindByUser(ctx context.Context, userID string) (*domain.UserSubscription, error)
	// ListActiveByPlan returns the active subscriptions for a plan
	// (notification fan-out on plan changes).
	ListActiveByPlan(ctx context.Context, planID string) ([]*domain.UserSubscription, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}
