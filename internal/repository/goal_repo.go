package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GoalRepository interface {
	Create(ctx context.Context, goal *model.FinancialGoal) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.FinancialGoal, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]model.FinancialGoal, error)
	Update(ctx context.Context, goal *model.FinancialGoal) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type goalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *model.FinancialGoal) error {
	return GetDB(ctx, r.db).Create(goal).Error
}

func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.FinancialGoal, error) {
	var goal model.FinancialGoal
	if err := GetDB(ctx, r.db).First(&goal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]model.FinancialGoal, error) {
	var goals []model.FinancialGoal
	err := GetDB(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&goals).Error
	return goals, err
}

func (r *goalRepository) Update(ctx context.Context, goal *model.FinancialGoal) error {
	return GetDB(ctx, r.db).Save(goal).Error
}

func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.FinancialGoal{}, "id = ?", id).Error
}
