package ports

import (
	"context"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
)

// ReportBugInput carries the data needed to file a bug.
type ReportBugInput struct {
	Title            string
	Description      string
	Priority         string
	ProjectID        string
	Reporter         string
	DiscordMessageID string
}

// ListBugsFilter carries query parameters for the bug list.
type ListBugsFilter struct {
	Status    domain.BugStatus
	Priority  string
	ProjectID string
	Assignee  string
	Search    string
	Page      int
	Limit     int
}

// ListBugsResult is returned by ListBugs.
type ListBugsResult struct {
	Items      []*domain.Bug
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// BugService defines use-case operations for the bug tracker.
type BugService interface {
	ReportBug(ctx context.Context, input ReportBugInput) (*domain.Bug, error)
	GetBug(ctx context.Context, id string) (*domain.Bug, error)
	ListBugs(ctx context.Context, filter ListBugsFilter) (*ListBugsResult, error)
	// UpdateStatus applies a state machine transition; invalid transitions
	// are rejected with domain.ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id string, next domain.BugStatus) (*domain.Bug, error)
	AssignBug(ctx context.Context, id, assignee string) (*domain.Bug, error)
}

// BugRepository defines persistence operations for bugs.
type BugRepository interface {
	Create(ctx context.Context, b *domain.Bug) error
	FindByID(ctx context.Context, id string) (*domain.Bug, error)
	List(ctx context.Context, filter ListBugsFilter) ([]*domain.Bug, int64, error)
	Update(ctx context.Context, b *domain.Bug) error
}
