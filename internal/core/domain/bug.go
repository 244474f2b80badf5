package domain

import (
	"errors"
	"time"
)

// BugStatus represents the lifecycle state of a bug report.
type BugStatus string

const (
	BugOpen       BugStatus = "open"
	BugInProgress BugStatus = "in_progress"
	BugResolved   BugStatus = "resolved"
	BugClosed     BugStatus = "closed"
)

const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// validTransitions defines the allowed state machine transitions.
// Closed is terminal.
var validTransitions = map[BugStatus][]BugStatus{
	BugOpen:       {BugInProgress, BugResolved, BugClosed},
	BugInProgress: {BugOpen, BugResolved, BugClosed},
	BugResolved:   {BugInProgress, BugClosed},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrBugNotFound = errors.New("bug not found")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s BugStatus) CanTransitionTo(next BugStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidPriority reports whether p is a member of the closed priority enumeration.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Bug is a tracked defect reported against a project.
type Bug struct {
	ID               string    `json:"id" bson:"id"`
	Title            string    `json:"title" bson:"title"`
	Description      string    `json:"description" bson:"description"`
	Priority         string    `json:"priority" bson:"priority"`
	Status           BugStatus `json:"status" bson:"status"`
	ProjectID        string    `json:"project_id" bson:"project_id"`
	Assignee         string    `json:"assignee,omitempty" bson:"assignee,omitempty"`
	Reporter         string    `json:"reporter" bson:"reporter"`
	DiscordMessageID string    `json:"discord_message_id,omitempty" bson:"discord_message_id,omitempty"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" bson:"updated_at"`
}
