package ports

import (
	"context"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
)

// CreateProjectInput carries the data needed to create a project.
type CreateProjectInput struct {
	Name        string
	Description string
	GameID      string
	OwnerID     string
}

// UpdateProjectInput carries a partial project update. Nil fields are left
// unchanged.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *domain.ProjectStatus
	TeamMembers *int
	GameID      *string
}

// ListProjectsFilter carries query parameters for the project list.
type ListProjectsFilter struct {
	OwnerID string // non-empty = scoped to owner (non-admin callers)
	Status  domain.ProjectStatus
	Search  string
	Page    int
	Limit   int
}

// ListProjectsResult is returned by ListProjects.
type ListProjectsResult struct {
	Items      []*domain.Project
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProjectService defines use-case operations for projects.
type ProjectService interface {
	CreateProject(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	ListProjects(ctx context.Context, filter ListProjectsFilter) (*ListProjectsResult, error)
	UpdateProject(ctx context.Context, id string, input UpdateProjectInput) (*domain.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, filter ListProjectsFilter) ([]*domain.Project, int64, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}
