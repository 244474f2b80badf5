package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
	"github.com/maqsafnadatabase3/Ropoilet/internal/core/ports"
)

type adminService struct {
	users      ports.UserRepository
	settings   ports.SettingsRepository
	dispatcher ports.NotificationDispatcher
	log        zerolog.Logger
}

// NewAdminService returns an AdminService implementation.
func NewAdminService(
	users ports.UserRepository,
	settings ports.SettingsRepository,
	dispatcher ports.NotificationDispatcher,
	log zerolog.Logger,
) ports.AdminService {
	return &adminService{users: users, settings: settings, dispatcher: dispatcher, log: log}
}

func (s *adminService) ListUsers(ctx context.Context, filter ports.ListUsersFilter) (*ports.ListUsersResult, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListUsersResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *adminService) BanUser(ctx context.Context, id, reason string) error {
	if err := s.users.SetActive(ctx, id, false, reason); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Str("reason", reason).Msg("user banned")
	return nil
}

func (s *adminService) UnbanUser(ctx context.Context, id string) error {
	if err := s.users.SetActive(ctx, id, true, ""); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("user reinstated")
	return nil
}

func (s *adminService) Features(ctx context.Context) (domain.FeatureFlags, error) {
	flags, found, err := s.settings.GetFeatureFlags(ctx)
	if err != nil {
		return domain.FeatureFlags{}, err
	}
	if !found {
		return domain.DefaultFeatureFlags(), nil
	}
	return flags, nil
}

func (s *adminService) SetFeatures(ctx context.Context, flags domain.FeatureFlags) error {
	if err := s.settings.SaveFeatureFlags(ctx, flags); err != nil {
		return err
	}
	s.log.Info().
		Bool("ai_assistant", flags.AIAssistant).
		Bool("analytics", flags.Analytics).
		Bool("bug_tracker", flags.BugTracker).
		Bool("messaging", flags.Messaging).
		Bool("subscriptions", flags.Subscriptions).
		Msg("feature flags updated")
	return nil
}

func (s *adminService) Broadcast(ctx context.Context, title, body string) (int, error) {
	ids, err := s.users.ListActiveIDs(ctx)
	if err != nil {
		return 0, err
	}

	inputs := make([]ports.NotificationInput, 0, len(ids))
	for _, id := range ids {
		inputs = append(inputs, ports.NotificationInput{
			UserID: id,
			Title:  title,
			Body:   body,
			Type:   "announcement",
		})
	}
	s.dispatcher.EnqueueBatch(inputs)

	s.log.Info().Int("recipients", len(inputs)).Msg("broadcast enqueued")
	return len(inputs), nil
}
