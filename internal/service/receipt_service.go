package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/export"
	"backend/internal/finance"
	"backend/internal/logger"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

// CreateExpenseRequest is the expense-entry form payload. The amount is
// a positive magnitude; the service always persists it negated, because
// the collector only records money going out. Income receipts enter the
// system as seed or imported data, never through this path.
type CreateExpenseRequest struct {
	Counterparty  string   `json:"counterparty" binding:"required"`
	Date          string   `json:"date" binding:"required"` // YYYY-MM-DD
	Amount        string   `json:"amount" binding:"required"`
	Category      string   `json:"category"`
	TxCategory    string   `json:"tx_category"`
	PaymentMethod string   `json:"payment_method"`
	Notes         string   `json:"notes"`
	PhotoURL      string   `json:"photo_url"`
	Tags          []string `json:"tags"`
	IsRecurring   bool     `json:"is_recurring"`
	Frequency     string   `json:"frequency"`
}

type UpdateReceiptRequest struct {
	Counterparty  *string  `json:"counterparty"`
	Date          *string  `json:"date"`
	Category      *string  `json:"category"`
	TxCategory    *string  `json:"tx_category"`
	PaymentMethod *string  `json:"payment_method"`
	Notes         *string  `json:"notes"`
	PhotoURL      *string  `json:"photo_url"`
	Tags          []string `json:"tags"`
	IsRecurring   *bool    `json:"is_recurring"`
	Frequency     *string  `json:"frequency"`
}

type ReceiptResponse struct {
	ID            string   `json:"id"`
	ReceiptNo     string   `json:"receipt_no"`
	Counterparty  string   `json:"counterparty"`
	Date          string   `json:"date"`
	Amount        string   `json:"amount"` // signed: negative = expense
	Category      string   `json:"category"`
	TxCategory    string   `json:"tx_category"`
	PaymentMethod string   `json:"payment_method"`
	Notes         string   `json:"notes"`
	PhotoURL      string   `json:"photo_url"`
	Tags          []string `json:"tags"`
	IsRecurring   bool     `json:"is_recurring"`
	Frequency     string   `json:"frequency"`
	CreatedAt     string   `json:"created_at"`
}

type ReceiptFilter struct {
	Category string
	From     string // YYYY-MM-DD
	To       string
	Page     int
	Limit    int
}

// --- Interface ---

type ReceiptService interface {
	CreateExpense(ctx context.Context, userID uuid.UUID, req CreateExpenseRequest) (ReceiptResponse, error)
	ListReceipts(ctx context.Context, userID uuid.UUID, filter ReceiptFilter) ([]ReceiptResponse, int64, error)
	UpdateReceipt(ctx context.Context, userID uuid.UUID, id string, req UpdateReceiptRequest) (ReceiptResponse, error)
	DeleteReceipt(ctx context.Context, userID uuid.UUID, id string) error
	// ExportCSV renders the filtered receipt list as CSV text.
	ExportCSV(ctx context.Context, userID uuid.UUID, filter ReceiptFilter) (string, error)
}

type receiptService struct {
	receiptRepo repository.ReceiptRepository
	scoreSvc    CrediScoreService
	txManager   repository.TransactionManager
	log         zerolog.Logger
}

func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	scoreSvc CrediScoreService,
	txManager repository.TransactionManager,
) ReceiptService {
	return &receiptService{
		receiptRepo: receiptRepo,
		scoreSvc:    scoreSvc,
		txManager:   txManager,
		log:         logger.WithComponent("receipt-service"),
	}
}

// --- Implementation ---

func (s *receiptService) CreateExpense(ctx context.Context, userID uuid.UUID, req CreateExpenseRequest) (ReceiptResponse, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return ReceiptResponse{}, fmt.Errorf("invalid date: %w", err)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return ReceiptResponse{}, fmt.Errorf("invalid amount: %w", err)
	}

	receipt := model.Receipt{
		UserID:        userID,
		Counterparty:  req.Counterparty,
		Date:          date,
		Amount:        amount.Abs().Neg(), // expense entry: always stored negative
		Category:      req.Category,
		TxCategory:    req.TxCategory,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		PhotoURL:      req.PhotoURL,
		Tags:          req.Tags,
		IsRecurring:   req.IsRecurring,
		Frequency:     req.Frequency,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		existing, findErr := s.receiptRepo.FindAllByUser(txCtx, userID)
		if findErr != nil {
			return fmt.Errorf("failed to load receipts: %w", findErr)
		}
		receipt.ReceiptNo = finance.NextReceiptNumber(existing)
		return s.receiptRepo.Create(txCtx, &receipt)
	})
	if err != nil {
		return ReceiptResponse{}, fmt.Errorf("failed to create receipt: %w", err)
	}

	if _, err := s.scoreSvc.Recalculate(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("receipt_no", receipt.ReceiptNo).Msg("score recalculation failed after create")
	}

	return toReceiptResponse(receipt), nil
}

func (s *receiptService) ListReceipts(ctx context.Context, userID uuid.UUID, filter ReceiptFilter) ([]ReceiptResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	repoFilter, err := toRepoReceiptFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	receipts, total, err := s.receiptRepo.ListByUser(ctx, userID, repoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch receipts: %w", err)
	}

	result := make([]ReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		result = append(result, toReceiptResponse(r))
	}
	return result, total, nil
}

func (s *receiptService) UpdateReceipt(ctx context.Context, userID uuid.UUID, id string, req UpdateReceiptRequest) (ReceiptResponse, error) {
	receipt, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return ReceiptResponse{}, err
	}

	if req.Counterparty != nil {
		receipt.Counterparty = *req.Counterparty
	}
	if req.Date != nil {
		d, parseErr := time.Parse(dateLayout, *req.Date)
		if parseErr != nil {
			return ReceiptResponse{}, fmt.Errorf("invalid date: %w", parseErr)
		}
		receipt.Date = d
	}
	if req.Category != nil {
		receipt.Category = *req.Category
	}
	if req.TxCategory != nil {
		receipt.TxCategory = *req.TxCategory
	}
	if req.PaymentMethod != nil {
		receipt.PaymentMethod = *req.PaymentMethod
	}
	if req.Notes != nil {
		receipt.Notes = *req.Notes
	}
	if req.PhotoURL != nil {
		receipt.PhotoURL = *req.PhotoURL
	}
	if req.Tags != nil {
		receipt.Tags = req.Tags
	}
	if req.IsRecurring != nil {
		receipt.IsRecurring = *req.IsRecurring
	}
	if req.Frequency != nil {
		receipt.Frequency = *req.Frequency
	}

	if err := s.receiptRepo.Update(ctx, receipt); err != nil {
		return ReceiptResponse{}, fmt.Errorf("failed to update receipt: %w", err)
	}

	if _, err := s.scoreSvc.Recalculate(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("receipt_no", receipt.ReceiptNo).Msg("score recalculation failed after update")
	}

	return toReceiptResponse(*receipt), nil
}

func (s *receiptService) DeleteReceipt(ctx context.Context, userID uuid.UUID, id string) error {
	receipt, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.receiptRepo.Delete(ctx, receipt.ID); err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}

	if _, err := s.scoreSvc.Recalculate(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("receipt_no", receipt.ReceiptNo).Msg("score recalculation failed after delete")
	}
	return nil
}

func (s *receiptService) ExportCSV(ctx context.Context, userID uuid.UUID, filter ReceiptFilter) (string, error) {
	repoFilter, err := toRepoReceiptFilter(filter)
	if err != nil {
		return "", err
	}

	receipts, err := s.receiptRepo.FindFilteredByUser(ctx, userID, repoFilter)
	if err != nil {
		return "", fmt.Errorf("failed to fetch receipts: %w", err)
	}

	return export.ReceiptsCSV(receipts)
}

func (s *receiptService) findOwned(ctx context.Context, userID uuid.UUID, id string) (*model.Receipt, error) {
	receiptID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid receipt id: %w", err)
	}
	receipt, err := s.receiptRepo.FindByID(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("receipt not found: %w", err)
	}
	if receipt.UserID != userID {
		return nil, fmt.Errorf("receipt not found")
	}
	return receipt, nil
}

// --- Helpers ---

func toRepoReceiptFilter(filter ReceiptFilter) (repository.ReceiptListFilter, error) {
	out := repository.ReceiptListFilter{
		Category: filter.Category,
		Page:     filter.Page,
		Limit:    filter.Limit,
	}
	if filter.From != "" {
		from, err := time.Parse(dateLayout, filter.From)
		if err != nil {
			return out, fmt.Errorf("invalid from date: %w", err)
		}
		out.From = &from
	}
	if filter.To != "" {
		to, err := time.Parse(dateLayout, filter.To)
		if err != nil {
			return out, fmt.Errorf("invalid to date: %w", err)
		}
		out.To = &to
	}
	return out, nil
}

// --- Mapping ---

func toReceiptResponse(r model.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ID:            r.ID.String(),
		ReceiptNo:     r.ReceiptNo,
		Counterparty:  r.Counterparty,
		Date:          r.Date.Format(dateLayout),
		Amount:        r.Amount.StringFixed(2),
		Category:      r.Category,
		TxCategory:    r.TxCategory,
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
		PhotoURL:      r.PhotoURL,
		Tags:          r.Tags,
		IsRecurring:   r.IsRecurring,
		Frequency:     r.Frequency,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
}
