package repository

import (
	"context"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReceiptListFilter narrows ListByUser; zero values mean "no filter".
type ReceiptListFilter struct {
	Category string
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
}

type ReceiptRepository interface {
	Create(ctx context.Context, receipt *model.Receipt) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]model.Receipt, error)
	// FindFilteredByUser applies Category/From/To but no paging — the CSV
	// export works on the whole filtered list.
	FindFilteredByUser(ctx context.Context, userID uuid.UUID, filter ReceiptListFilter) ([]model.Receipt, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter ReceiptListFilter) ([]model.Receipt, int64, error)
	Update(ctx context.Context, receipt *model.Receipt) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type receiptRepository struct {
	db *gorm.DB
}

func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *model.Receipt) error {
	return GetDB(ctx, r.db).Create(receipt).Error
}

func (r *receiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error) {
	var receipt model.Receipt
	if err := GetDB(ctx, r.db).First(&receipt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *receiptRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]model.Receipt, error) {
	var receipts []model.Receipt
	err := GetDB(ctx, r.db).
		Where("user_id = ?", userID).
		Order("date asc").
		Find(&receipts).Error
	return receipts, err
}

func (r *receiptRepository) FindFilteredByUser(ctx context.Context, userID uuid.UUID, filter ReceiptListFilter) ([]model.Receipt, error) {
	q := GetDB(ctx, r.db).Where("user_id = ?", userID)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.From != nil {
		q = q.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("date <= ?", *filter.To)
	}

	var receipts []model.Receipt
	err := q.Order("date desc").Find(&receipts).Error
	return receipts, err
}

func (r *receiptRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter ReceiptListFilter) ([]model.Receipt, int64, error) {
	var receipts []model.Receipt
	var total int64

	base := func() *gorm.DB {
		q := GetDB(ctx, r.db).Model(&model.Receipt{}).Where("user_id = ?", userID)
		if filter.Category != "" {
			q = q.Where("category = ?", filter.Category)
		}
		if filter.From != nil {
			q = q.Where("date >= ?", *filter.From)
		}
		if filter.To != nil {
			q = q.Where("date <= ?", *filter.To)
		}
		return q
	}

	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := base().Order("date desc").Offset(offset).Limit(filter.Limit).Find(&receipts).Error; err != nil {
		return nil, 0, err
	}

	return receipts, total, nil
}

func (r *receiptRepository) Update(ctx context.Context, receipt *model.Receipt) error {
	return GetDB(ctx, r.db).Save(receipt).Error
}

func (r *receiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.Receipt{}, "id = ?", id).Error
}
