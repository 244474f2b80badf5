package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
	"github.com/maqsafnadatabase3/Ropoilet/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type projectService struct {
	repo ports.ProjectRepository
	log  zerolog.Logger
}

// NewProjectService returns a ProjectService implementation.
func NewProjectService(repo ports.ProjectRepository, log zerolog.Logger) ports.ProjectService {
	return &projectService{repo: repo, log: log}
}

func (s *projectService) CreateProject(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	now := time.Now().UTC()
	project := &domain.Project{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Status:      domain.ProjectDevelopment,
		OwnerID:     input.OwnerID,
		TeamMembers: 1,
		GameID:      input.GameID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, project); err != nil {
		s.log.Error().Err(err).Msg("failed to create project")
		return nil, err
	}

	s.log.Info().Str("project_id", project.ID).Str("owner_id", project.OwnerID).Msg("project created")
	return project, nil
}

func (s *projectService) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *projectService) ListProjects(ctx context.Context, filter ports.ListProjectsFilter) (*ports.ListProjectsResult, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListProjectsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *projectService) UpdateProject(ctx context.Context, id string, input ports.UpdateProjectInput) (*domain.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		if !domain.ValidProjectStatus(*input.Status) {
			return nil, domain.ErrInvalidProjectStatus
		}
		project.Status = *input.Status
	}
	if input.TeamMembers != nil {
		project.TeamMembers = *input.TeamMembers
	}
	if input.GameID != nil {
		project.GameID = *input.GameID
	}
	project.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) DeleteProject(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// normalizePage applies the shared paging defaults and caps.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
