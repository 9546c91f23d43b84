package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/finance"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
)

// ScoreNotifier pushes a freshly computed score to connected clients.
// Implemented by the websocket hub; a no-op implementation is fine.
type ScoreNotifier interface {
	NotifyScoreUpdated(userID uuid.UUID, metrics model.CrediScoreMetrics)
}

// CrediScoreService recomputes the derived score from the persisted
// collections. Invoice, receipt and feedback mutations must call
// Recalculate before returning.
type CrediScoreService interface {
	Current(ctx context.Context, userID uuid.UUID) (model.CrediScoreMetrics, error)
	Recalculate(ctx context.Context, userID uuid.UUID) (model.CrediScoreMetrics, error)
}

type crediScoreService struct {
	invoiceRepo  repository.InvoiceRepository
	receiptRepo  repository.ReceiptRepository
	feedbackRepo repository.FeedbackRepository
	userRepo     repository.UserRepository
	notifier     ScoreNotifier
	now          func() time.Time
}

func NewCrediScoreService(
	invoiceRepo repository.InvoiceRepository,
	receiptRepo repository.ReceiptRepository,
	feedbackRepo repository.FeedbackRepository,
	userRepo repository.UserRepository,
	notifier ScoreNotifier,
) CrediScoreService {
	return &crediScoreService{
		invoiceRepo:  invoiceRepo,
		receiptRepo:  receiptRepo,
		feedbackRepo: feedbackRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		now:          time.Now,
	}
}

func (s *crediScoreService) Current(ctx context.Context, userID uuid.UUID) (model.CrediScoreMetrics, error) {
	return s.compute(ctx, userID)
}

func (s *crediScoreService) Recalculate(ctx context.Context, userID uuid.UUID) (model.CrediScoreMetrics, error) {
	metrics, err := s.compute(ctx, userID)
	if err != nil {
		return model.CrediScoreMetrics{}, err
	}
	if s.notifier != nil {
		s.notifier.NotifyScoreUpdated(userID, metrics)
	}
	return metrics, nil
}

func (s *crediScoreService) compute(ctx context.Context, userID uuid.UUID) (model.CrediScoreMetrics, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return model.CrediScoreMetrics{}, fmt.Errorf("user not found: %w", err)
	}

	invoices, err := s.invoiceRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return model.CrediScoreMetrics{}, fmt.Errorf("failed to load invoices: %w", err)
	}
	receipts, err := s.receiptRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return model.CrediScoreMetrics{}, fmt.Errorf("failed to load receipts: %w", err)
	}
	feedback, err := s.feedbackRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return model.CrediScoreMetrics{}, fmt.Errorf("failed to load feedback: %w", err)
	}

	return finance.CalculateCrediScore(invoices, receipts, feedback, *user, s.now()), nil
}
