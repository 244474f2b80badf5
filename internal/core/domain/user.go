package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleUser      = "user"
)

const (
	TierFree       = "free"
	TierPremium    = "premium"
	TierEnterprise = "enterprise"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrWeakPassword = errors.New("password must be at least 6 characters")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrUserBanned = errors.New("account is banned")
var ErrTokenRevoked = errors.New("token has been revoked")
var ErrForbidden = errors.New("access forbidden")

// Subscription is the billing state attached to a user.
type Subscription struct {
	Tier      string     `json:"tier" bson:"tier"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
}

// User models an authenticated actor in the system.
type User struct {
	ID           string       `json:"id" bson:"id"`
	Name         string       `json:"name" bson:"name"`
	Email        string       `json:"email" bson:"email"`
	PasswordHash string       `json:"-" bson:"password_hash"`
	Role         string       `json:"role" bson:"role"`
	IsActive     bool         `json:"is_active" bson:"is_active"`
	BanReason    string       `json:"ban_reason,omitempty" bson:"ban_reason,omitempty"`
	Subscription Subscription `json:"subscription" bson:"subscription"`
	CreatedAt    time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" bson:"updated_at"`
	LastActiveAt time.Time    `json:"last_active_at,omitempty" bson:"last_active_at,omitempty"`
}

// IsAdmin reports whether the user holds the admin role. Authorization
// decisions only distinguish admin vs non-admin.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// ValidRole reports whether role is a member of the closed role enumeration.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	}
	return false
}

// ValidTier reports whether tier is a member of the closed tier enumeration.
func ValidTier(tier string) bool {
	switch tier {
	case TierFree, TierPremium, TierEnterprise:
		return true
	}
	return false
}
