package service

import (
	"context"
	"fmt"

	"backend/internal/finance"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/tips"

	"github.com/google/uuid"
)

// --- DTOs ---

type SummaryResponse struct {
	TotalIncome    string `json:"total_income"`
	TotalExpenses  string `json:"total_expenses"`
	NetIncome      string `json:"net_income"`
	PendingAmount  string `json:"pending_amount"`
	InvoiceRevenue string `json:"invoice_revenue"`
	ReceiptIncome  string `json:"receipt_income"`
}

type DashboardResponse struct {
	Summary    SummaryResponse         `json:"summary"`
	CrediScore model.CrediScoreMetrics `json:"credi_score"`
	Tips       []string                `json:"tips"`
}

// --- Interface ---

// DashboardService assembles the read-side aggregate. The summary is
// always derived fresh from the collections — never cached — so every
// caller sees the same figures the calculator produces.
type DashboardService interface {
	GetDashboard(ctx context.Context, userID uuid.UUID) (DashboardResponse, error)
	GetSummary(ctx context.Context, userID uuid.UUID) (SummaryResponse, error)
}

type dashboardService struct {
	invoiceRepo repository.InvoiceRepository
	receiptRepo repository.ReceiptRepository
	scoreSvc    CrediScoreService
	tips        tips.Provider
}

func NewDashboardService(
	invoiceRepo repository.InvoiceRepository,
	receiptRepo repository.ReceiptRepository,
	scoreSvc CrediScoreService,
	tipsProvider tips.Provider,
) DashboardService {
	return &dashboardService{
		invoiceRepo: invoiceRepo,
		receiptRepo: receiptRepo,
		scoreSvc:    scoreSvc,
		tips:        tipsProvider,
	}
}

// --- Implementation ---

func (s *dashboardService) GetDashboard(ctx context.Context, userID uuid.UUID) (DashboardResponse, error) {
	invoices, err := s.invoiceRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return DashboardResponse{}, fmt.Errorf("failed to load invoices: %w", err)
	}
	receipts, err := s.receiptRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return DashboardResponse{}, fmt.Errorf("failed to load receipts: %w", err)
	}

	score, err := s.scoreSvc.Current(ctx, userID)
	if err != nil {
		return DashboardResponse{}, err
	}

	return DashboardResponse{
		Summary:    toSummaryResponse(finance.CalculateSummary(invoices, receipts)),
		CrediScore: score,
		Tips:       s.tips.BusinessTips(ctx, invoices),
	}, nil
}

func (s *dashboardService) GetSummary(ctx context.Context, userID uuid.UUID) (SummaryResponse, error) {
	invoices, err := s.invoiceRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return SummaryResponse{}, fmt.Errorf("failed to load invoices: %w", err)
	}
	receipts, err := s.receiptRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return SummaryResponse{}, fmt.Errorf("failed to load receipts: %w", err)
	}

	return toSummaryResponse(finance.CalculateSummary(invoices, receipts)), nil
}

// --- Mapping ---

func toSummaryResponse(s finance.Summary) SummaryResponse {
	return SummaryResponse{
		TotalIncome:    s.TotalIncome.StringFixed(2),
		TotalExpenses:  s.TotalExpenses.StringFixed(2),
		NetIncome:      s.NetIncome.StringFixed(2),
		PendingAmount:  s.PendingAmount.StringFixed(2),
		InvoiceRevenue: s.InvoiceRevenue.StringFixed(2),
		ReceiptIncome:  s.ReceiptIncome.StringFixed(2),
	}
}
