package domain

import (
	"errors"
	"time"
)

// ProjectStatus represents the operational state of a game project.
type ProjectStatus string

const (
	ProjectActive      ProjectStatus = "active"
	ProjectDevelopment ProjectStatus = "development"
	ProjectMaintenance ProjectStatus = "maintenance"
)

var ErrProjectNotFound = errors.New("project not found")
var ErrInvalidProjectStatus = errors.New("invalid project status")

// ValidProjectStatus reports whether s is a member of the closed status enumeration.
func ValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectActive, ProjectDevelopment, ProjectMaintenance:
		return true
	}
	return false
}

// Project is a game project owned by a user.
type Project struct {
	ID          string        `json:"id" bson:"id"`
	Name        string        `json:"name" bson:"name"`
	Description string        `json:"description" bson:"description"`
	Status      ProjectStatus `json:"status" bson:"status"`
	OwnerID     string        `json:"owner_id" bson:"owner_id"`
	TeamMembers int           `json:"team_members" bson:"team_members"`
	GameID      string        `json:"game_id,omitempty" bson:"game_id,omitempty"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}
