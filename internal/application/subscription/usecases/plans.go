package usecases

import (
	"context"
	"fmt"

	"github.com/clubsaas/clubsaas/internal/application/subscription/dto"
	"github.com/clubsaas/clubsaas/internal/domain/subscription"
	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
	"github.com/clubsaas/clubsaas/internal/shared/biztime"
	"github.com/clubsaas/clubsaas/internal/shared/errors"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

type CreatePlanCommand struct {
	Name       string
	Interval   string
	PriceCents int64
}

type CreatePlanUseCase struct {
	planRepo subscription.PlanRepository
	logger   logger.Interface
}

func NewCreatePlanUseCase(planRepo subscription.PlanRepository, logger logger.Interface) *CreatePlanUseCase {
	return &CreatePlanUseCase{planRepo: planRepo, logger: logger}
}

func (uc *CreatePlanUseCase) Execute(ctx context.Context, cmd CreatePlanCommand) (*dto.PlanDTO, error) {
	interval, err := vo.ParsePlanInterval(cmd.Interval)
	if err != nil {
		return nil, errors.NewValidationError("invalid plan interval", cmd.Interval).WithReason("invalid_payload")
	}

	plan, err := subscription.NewPlan(cmd.Name, interval, cmd.PriceCents, biztime.NowUTC())
	if err != nil {
		return nil, errors.NewValidationError(err.Error()).WithReason("invalid_payload")
	}

	if err := uc.planRepo.Create(ctx, plan); err != nil {
		uc.logger.Errorw("failed to create plan", "name", cmd.Name, "error", err)
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	uc.logger.Infow("plan created", "plan_id", plan.ID(), "name", plan.Name(), "interval", plan.Interval())
	return dto.ToPlanDTO(plan), nil
}

type ListPlansUseCase struct {
	planRepo subscription.PlanRepository
	logger   logger.Interface
}

func NewListPlansUseCase(planRepo subscription.PlanRepository, logger logger.Interface) *ListPlansUseCase {
	return &ListPlansUseCase{planRepo: planRepo, logger: logger}
}

// Execute lists plans newest first. Public callers pass activeOnly.
func (uc *ListPlansUseCase) Execute(ctx context.Context, activeOnly bool) ([]*dto.PlanDTO, error) {
	plans, err := uc.planRepo.List(ctx, activeOnly)
	if err != nil {
		uc.logger.Errorw("failed to list plans", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return dto.ToPlanDTOList(plans), nil
}
