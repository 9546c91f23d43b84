package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateGoalRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	TargetAmount  string `json:"target_amount" binding:"required"`
	CurrentAmount string `json:"current_amount"`
	Deadline      string `json:"deadline"` // YYYY-MM-DD
	Category      string `json:"category" binding:"omitempty,oneof=SAVINGS REVENUE EQUIPMENT EMERGENCY OTHER"`
}

type UpdateGoalRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	TargetAmount  *string `json:"target_amount"`
	CurrentAmount *string `json:"current_amount"`
	Deadline      *string `json:"deadline"`
	Category      *string `json:"category"`
	IsCompleted   *bool   `json:"is_completed"`
}

type GoalResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	TargetAmount  string `json:"target_amount"`
	CurrentAmount string `json:"current_amount"`
	// ProgressPercent is display-only; nothing downstream consumes it.
	ProgressPercent string `json:"progress_percent"`
	Deadline        string `json:"deadline"`
	Category        string `json:"category"`
	IsCompleted     bool   `json:"is_completed"`
	CreatedAt       string `json:"created_at"`
}

// --- Interface ---

// GoalService is bookkeeping only: goals never feed the CrediScore, so
// no mutation here triggers a recalculation.
type GoalService interface {
	CreateGoal(ctx context.Context, userID uuid.UUID, req CreateGoalRequest) (GoalResponse, error)
	ListGoals(ctx context.Context, userID uuid.UUID) ([]GoalResponse, error)
	UpdateGoal(ctx context.Context, userID uuid.UUID, id string, req UpdateGoalRequest) (GoalResponse, error)
	DeleteGoal(ctx context.Context, userID uuid.UUID, id string) error
}

type goalService struct {
	goalRepo repository.GoalRepository
}

func NewGoalService(goalRepo repository.GoalRepository) GoalService {
	return &goalService{goalRepo: goalRepo}
}

// --- Implementation ---

func (s *goalService) CreateGoal(ctx context.Context, userID uuid.UUID, req CreateGoalRequest) (GoalResponse, error) {
	target, err := decimal.NewFromString(req.TargetAmount)
	if err != nil {
		return GoalResponse{}, fmt.Errorf("invalid target_amount: %w", err)
	}

	current := decimal.Zero
	if req.CurrentAmount != "" {
		current, err = decimal.NewFromString(req.CurrentAmount)
		if err != nil {
			return GoalResponse{}, fmt.Errorf("invalid current_amount: %w", err)
		}
	}

	var deadline time.Time
	if req.Deadline != "" {
		deadline, err = time.Parse(dateLayout, req.Deadline)
		if err != nil {
			return GoalResponse{}, fmt.Errorf("invalid deadline: %w", err)
		}
	}

	category := req.Category
	if category == "" {
		category = model.GoalCategoryOther
	}

	goal := model.FinancialGoal{
		UserID:        userID,
		Title:         req.Title,
		Description:   req.Description,
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      deadline,
		Category:      category,
	}

	if err := s.goalRepo.Create(ctx, &goal); err != nil {
		return GoalResponse{}, fmt.Errorf("failed to create goal: %w", err)
	}

	return toGoalResponse(goal), nil
}

func (s *goalService) ListGoals(ctx context.Context, userID uuid.UUID) ([]GoalResponse, error) {
	goals, err := s.goalRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goals: %w", err)
	}

	result := make([]GoalResponse, 0, len(goals))
	for _, g := range goals {
		result = append(result, toGoalResponse(g))
	}
	return result, nil
}

func (s *goalService) UpdateGoal(ctx context.Context, userID uuid.UUID, id string, req UpdateGoalRequest) (GoalResponse, error) {
	goal, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return GoalResponse{}, err
	}

	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.TargetAmount != nil {
		target, parseErr := decimal.NewFromString(*req.TargetAmount)
		if parseErr != nil {
			return GoalResponse{}, fmt.Errorf("invalid target_amount: %w", parseErr)
		}
		goal.TargetAmount = target
	}
	if req.CurrentAmount != nil {
		current, parseErr := decimal.NewFromString(*req.CurrentAmount)
		if parseErr != nil {
			return GoalResponse{}, fmt.Errorf("invalid current_amount: %w", parseErr)
		}
		goal.CurrentAmount = current
	}
	if req.Deadline != nil {
		deadline, parseErr := time.Parse(dateLayout, *req.Deadline)
		if parseErr != nil {
			return GoalResponse{}, fmt.Errorf("invalid deadline: %w", parseErr)
		}
		goal.Deadline = deadline
	}
	if req.Category != nil {
		goal.Category = *req.Category
	}
	if req.IsCompleted != nil {
		goal.IsCompleted = *req.IsCompleted
	}

	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return GoalResponse{}, fmt.Errorf("failed to update goal: %w", err)
	}

	return toGoalResponse(*goal), nil
}

func (s *goalService) DeleteGoal(ctx context.Context, userID uuid.UUID, id string) error {
	goal, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.goalRepo.Delete(ctx, goal.ID); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}

func (s *goalService) findOwned(ctx context.Context, userID uuid.UUID, id string) (*model.FinancialGoal, error) {
	goalID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid goal id: %w", err)
	}
	goal, err := s.goalRepo.FindByID(ctx, goalID)
	if err != nil {
		return nil, fmt.Errorf("goal not found: %w", err)
	}
	if goal.UserID != userID {
		return nil, fmt.Errorf("goal not found")
	}
	return goal, nil
}

// --- Mapping ---

func toGoalResponse(g model.FinancialGoal) GoalResponse {
	progress := decimal.Zero
	if g.TargetAmount.IsPositive() {
		progress = g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(1)
	}

	deadline := ""
	if !g.Deadline.IsZero() {
		deadline = g.Deadline.Format(dateLayout)
	}

	return GoalResponse{
		ID:              g.ID.String(),
		Title:           g.Title,
		Description:     g.Description,
		TargetAmount:    g.TargetAmount.StringFixed(2),
		CurrentAmount:   g.CurrentAmount.StringFixed(2),
		ProgressPercent: progress.String(),
		Deadline:        deadline,
		Category:        g.Category,
		IsCompleted:     g.IsCompleted,
		CreatedAt:       g.CreatedAt.Format(time.RFC3339),
	}
}
