package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
	"github.com/maqsafnadatabase3/Ropoilet/internal/core/ports"
)

type bugService struct {
	repo ports.BugRepository
	log  zerolog.Logger
}

// NewBugService returns a BugService implementation.
func NewBugService(repo ports.BugRepository, log zerolog.Logger) ports.BugService {
	return &bugService{repo: repo, log: log}
}

func (s *bugService) ReportBug(ctx context.Context, input ports.ReportBugInput) (*domain.Bug, error) {
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !domain.ValidPriority(priority) {
		return nil, fmt.Errorf("report bug: unknown priority %q", input.Priority)
	}

	now := time.Now().UTC()
	bug := &domain.Bug{
		ID:               uuid.NewString(),
		Title:            input.Title,
		Description:      input.Description,
		Priority:         priority,
		Status:           domain.BugOpen,
		ProjectID:        input.ProjectID,
		Reporter:         input.Reporter,
		DiscordMessageID: input.DiscordMessageID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, bug); err != nil {
		s.log.Error().Err(err).Msg("failed to create bug")
		return nil, err
	}

	s.log.Info().
		Str("bug_id", bug.ID).
		Str("priority", bug.Priority).
		Str("project_id", bug.ProjectID).
		Msg("bug reported")

	return bug, nil
}

func (s *bugService) GetBug(ctx context.Context, id string) (*domain.Bug, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *bugService) ListBugs(ctx context.Context, filter ports.ListBugsFilter) (*ports.ListBugsResult, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListBugsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// UpdateStatus validates the state machine transition before persisting.
func (s *bugService) UpdateStatus(ctx context.Context, id string, next domain.BugStatus) (*domain.Bug, error) {
	bug, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !bug.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, bug.Status, next)
	}

	prev := bug.Status
	bug.Status = next
	bug.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, bug); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("bug_id", bug.ID).
		Str("from", string(prev)).
		Str("to", string(next)).
		Msg("bug status updated")

	return bug, nil
}

func (s *bugService) AssignBug(ctx context.Context, id, assignee string) (*domain.Bug, error) {
	bug, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	bug.Assignee = assignee
	bug.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, bug); err != nil {
		return nil, err
	}
	return bug, nil
}
