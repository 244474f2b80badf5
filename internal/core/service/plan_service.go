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

type planService struct {
	plans      ports.PlanRepository
	subs       ports.SubscriptionRepository
	dispatcher ports.NotificationDispatcher
	log        zerolog.Logger
}

// NewPlanService returns a PlanService implementation. Every mutation writes
// a PlanChange audit record and fans out notifications to active subscribers;
// both side effects are non-fatal on failure.
func NewPlanService(
	plans ports.PlanRepository,
	subs ports.SubscriptionRepository,
	dispatcher ports.NotificationDispatcher,
	log zerolog.Logger,
) ports.PlanService {
	return &planService{plans: plans, subs: subs, dispatcher: dispatcher, log: log}
}

func (s *planService) ListPlans(ctx context.Context) ([]*domain.Plan, error) {
	return s.plans.ListByPrice(ctx)
}

func (s *planService) CreatePlan(ctx context.Context, input ports.PlanInput, changedBy string) (*domain.Plan, error) {
	if !domain.ValidTier(input.Tier) {
		return nil, fmt.Errorf("create plan: unknown tier %q", input.Tier)
	}

	now := time.Now().UTC()
	plan := &domain.Plan{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Tier:        input.Tier,
		Price:       input.Price,
		Period:      input.Period,
		Features:    input.Features,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.plans.Create(ctx, plan); err != nil {
		s.log.Error().Err(err).Msg("failed to create plan")
		return nil, err
	}

	s.recordChange(ctx, domain.PlanCreated, plan.ID, nil, plan, changedBy)
	s.log.Info().Str("plan_id", plan.ID).Str("tier", plan.Tier).Msg("plan created")
	return plan, nil
}

func (s *planService) UpdatePlan(ctx context.Context, id string, input ports.PlanInput, changedBy string) (*domain.Plan, error) {
	current, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := *current
	if input.Name != "" {
		current.Name = input.Name
	}
	if input.Description != "" {
		current.Description = input.Description
	}
	if input.Tier != "" {
		if !domain.ValidTier(input.Tier) {
			return nil, fmt.Errorf("update plan: unknown tier %q", input.Tier)
		}
		current.Tier = input.Tier
	}
	if input.Price > 0 {
		current.Price = input.Price
	}
	if input.Period != "" {
		current.Period = input.Period
	}
	if input.Features != nil {
		current.Features = input.Features
	}
	current.UpdatedAt = time.Now().UTC()

	if err := s.plans.Update(ctx, current); err != nil {
		return nil, err
	}

	s.recordChange(ctx, domain.PlanUpdated, id, &previous, current, changedBy)
	s.notifySubscribers(ctx, id,
		"Subscription Plan Updated",
		fmt.Sprintf("The subscription plan %q has been updated.", current.Name),
		"subscription_update")

	return current, nil
}

func (s *planService) DeletePlan(ctx context.Context, id string, changedBy string) error {
	current, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.plans.Delete(ctx, id); err != nil {
		return err
	}

	s.recordChange(ctx, domain.PlanDeleted, id, current, nil, changedBy)
	s.notifySubscribers(ctx, id,
		"Subscription Plan Deleted",
		fmt.Sprintf("The subscription plan %q has been discontinued.", current.Name),
		"subscription_delete")

	s.log.Info().Str("plan_id", id).Msg("plan deleted")
	return nil
}

// recordChange inserts the audit record. Failures are logged, not returned:
// the plan mutation already committed.
func (s *planService) recordChange(ctx context.Context, changeType, planID string, previous, current *domain.Plan, changedBy string) {
	change := &domain.PlanChange{
		ID:           uuid.NewString(),
		PlanID:       planID,
		ChangeType:   changeType,
		PreviousData: previous,
		NewData:      current,
		ChangedBy:    changedBy,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.plans.InsertChange(ctx, change); err != nil {
		s.log.Warn().Err(err).Str("plan_id", planID).Str("change_type", changeType).Msg("failed to insert plan history")
	}
}

// notifySubscribers enqueues one notification per active subscriber of the plan.
func (s *planService) notifySubscribers(ctx context.Context, planID, title, body, notifType string) {
	subscribers, err := s.subs.ListActiveByPlan(ctx, planID)
	if err != nil {
		s.log.Warn().Err(err).Str("plan_id", planID).Msg("failed to list subscribers for notification")
		return
	}

	inputs := make([]ports.NotificationInput, 0, len(subscribers))
	for _, sub := range subscribers {
		inputs = append(inputs, ports.NotificationInput{
			UserID: sub.UserID,
			Title:  title,
			Body:   body,
			Type:   notifType,
		})
	}
	s.dispatcher.EnqueueBatch(inputs)
}
