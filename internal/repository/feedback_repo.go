package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *model.ClientFeedback) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ClientFeedback, error)
	// FindAllByUser returns newest-first, matching the feedback
	// collection's prepend ordering.
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]model.ClientFeedback, error)
	ExistsForInvoice(ctx context.Context, invoiceID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *model.ClientFeedback) error {
	return GetDB(ctx, r.db).Create(feedback).Error
}

func (r *feedbackRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ClientFeedback, error) {
	var fb model.ClientFeedback
	if err := GetDB(ctx, r.db).First(&fb, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &fb, nil
}

func (r *feedbackRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]model.ClientFeedback, error) {
	var feedback []model.ClientFeedback
	err := GetDB(ctx, r.db).
		Where("user_id = ?", userID).
		Order("date desc").
		Find(&feedback).Error
	return feedback, err
}

func (r *feedbackRepository) ExistsForInvoice(ctx context.Context, invoiceID uuid.UUID) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.ClientFeedback{}).
		Where("invoice_id = ?", invoiceID).
		Count(&count).Error
	return count > 0, err
}

func (r *feedbackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.ClientFeedback{}, "id = ?", id).Error
}
