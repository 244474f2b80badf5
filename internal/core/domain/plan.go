package domain

import (
	"errors"
	"time"
)

const (
	PlanCreated = "created"
	PlanUpdated = "updated"
	PlanDeleted = "deleted"
)

const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"
)

var ErrPlanNotFound = errors.New("subscription plan not found")

// Plan is a purchasable subscription plan.
type Plan struct {
	ID          string    `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Tier        string    `json:"tier" bson:"tier"`
	Price       float64   `json:"price" bson:"price"`
	Period      string    `json:"period" bson:"period"`
	Features    []string  `json:"features" bson:"features"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// PlanChange is an audit record written alongside every plan mutation.
type PlanChange struct {
	ID           string    `json:"id" bson:"id"`
	PlanID       string    `json:"plan_id" bson:"plan_id"`
	ChangeType   string    `json:"change_type" bson:"change_type"`
	PreviousData *Plan     `json:"previous_data,omitempty" bson:"previous_data,omitempty"`
	NewData      *Plan     `json:"new_data,omitempty" bson:"new_data,omitempty"`
	ChangedBy    string    `json:"changed_by" bson:"changed_by"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// UserSubscription links a user to the plan they pay for.
type UserSubscription struct {
	ID        string     `json:"id" bson:"id"`
	UserID    string     `json:"user_id" bson:"user_id"`
	PlanID    string     `json:"plan_id" bson:"plan_id"`
	Tier      string     `json:"tier" bson:"tier"`
	Status    string     `json:"status" bson:"status"`
	Price     float64    `json:"price" bson:"price"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
}

// Notification is a per-user inbox entry produced by plan changes and
// admin broadcasts.
type Notification struct {
	ID        string    `json:"id" bson:"id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Title     string    `json:"title" bson:"title"`
	Body      string    `json:"body" bson:"body"`
	Type      string    `json:"type" bson:"type"`
	Read      bool      `json:"read" bson:"read"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
