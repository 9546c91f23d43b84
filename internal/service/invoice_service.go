package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/finance"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"backend/internal/logger"
)

const dateLayout = "2006-01-02"

// --- DTOs ---

type InvoiceItemRequest struct {
	Description string `json:"description" binding:"required"`
	Quantity    string `json:"quantity" binding:"required"`
	UnitPrice   string `json:"unit_price" binding:"required"`
}

type CreateInvoiceRequest struct {
	ClientName   string               `json:"client_name" binding:"required"`
	ClientEmail  string               `json:"client_email"`
	IssueDate    string               `json:"issue_date" binding:"required"` // YYYY-MM-DD
	DueDate      string               `json:"due_date" binding:"required"`
	Items        []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	TaxRate      string               `json:"tax_rate"` // percentage 0-100, defaults to 0
	Notes        string               `json:"notes"`
	PaymentTerms string               `json:"payment_terms"`
}

type UpdateInvoiceRequest struct {
	ClientName   *string              `json:"client_name"`
	ClientEmail  *string              `json:"client_email"`
	IssueDate    *string              `json:"issue_date"`
	DueDate      *string              `json:"due_date"`
	Items        []InvoiceItemRequest `json:"items"`
	TaxRate      *string              `json:"tax_rate"`
	Notes        *string              `json:"notes"`
	PaymentTerms *string              `json:"payment_terms"`
}

// ChangeInvoiceStatusRequest moves an invoice through its lifecycle.
// Overdue is never derived from the due date — it is only ever set here,
// by explicit choice.
type ChangeInvoiceStatusRequest struct {
	Status        string `json:"status" binding:"required,oneof=DRAFT SENT PAID OVERDUE CANCELLED"`
	PaidDate      string `json:"paid_date"` // YYYY-MM-DD, PAID only; defaults to today
	PaymentMethod string `json:"payment_method"`
}

type InvoiceItemResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

type InvoiceResponse struct {
	ID            string                `json:"id"`
	InvoiceNo     string                `json:"invoice_no"`
	ClientName    string                `json:"client_name"`
	ClientEmail   string                `json:"client_email"`
	IssueDate     string                `json:"issue_date"`
	DueDate       string                `json:"due_date"`
	Items         []InvoiceItemResponse `json:"items"`
	TaxRate       string                `json:"tax_rate"`
	Subtotal      string                `json:"subtotal"`
	TaxAmount     string                `json:"tax_amount"`
	Total         string                `json:"total"` // tax-inclusive, unlike the dashboard's invoice revenue
	Status        string                `json:"status"`
	Notes         string                `json:"notes"`
	PaymentTerms  string                `json:"payment_terms"`
	PaidDate      *string               `json:"paid_date"`
	PaymentMethod string                `json:"payment_method"`
	CreatedAt     string                `json:"created_at"`
}

type InvoiceFilter struct {
	Status string
	Page   int
	Limit  int
}

// --- Interface ---

type InvoiceService interface {
	CreateInvoice(ctx context.Context, userID uuid.UUID, req CreateInvoiceRequest) (InvoiceResponse, error)
	GetInvoice(ctx context.Context, userID uuid.UUID, id string) (InvoiceResponse, error)
	ListInvoices(ctx context.Context, userID uuid.UUID, filter InvoiceFilter) ([]InvoiceResponse, int64, error)
	UpdateInvoice(ctx context.Context, userID uuid.UUID, id string, req UpdateInvoiceRequest) (InvoiceResponse, error)
	ChangeStatus(ctx context.Context, userID uuid.UUID, id string, req ChangeInvoiceStatusRequest) (InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, userID uuid.UUID, id string) error
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	scoreSvc    CrediScoreService
	txManager   repository.TransactionManager
	log         zerolog.Logger
	now         func() time.Time
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	scoreSvc CrediScoreService,
	txManager repository.TransactionManager,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		scoreSvc:    scoreSvc,
		txManager:   txManager,
		log:         logger.WithComponent("invoice-service"),
		now:         time.Now,
	}
}

// --- Implementation ---

func (s *invoiceService) CreateInvoice(ctx context.Context, userID uuid.UUID, req CreateInvoiceRequest) (InvoiceResponse, error) {
	issueDate, err := time.Parse(dateLayout, req.IssueDate)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid issue_date: %w", err)
	}
	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid due_date: %w", err)
	}

	taxRate := decimal.Zero
	if req.TaxRate != "" {
		taxRate, err = decimal.NewFromString(req.TaxRate)
		if err != nil {
			return InvoiceResponse{}, fmt.Errorf("invalid tax_rate: %w", err)
		}
	}

	items, err := parseItems(req.Items)
	if err != nil {
		return InvoiceResponse{}, err
	}

	invoice := model.Invoice{
		UserID:       userID,
		ClientName:   req.ClientName,
		ClientEmail:  req.ClientEmail,
		IssueDate:    issueDate,
		DueDate:      dueDate,
		Items:        items,
		TaxRate:      taxRate,
		Status:       model.InvoiceStatusDraft,
		Notes:        req.Notes,
		PaymentTerms: req.PaymentTerms,
	}

	// Number assignment and insert share a transaction so concurrent
	// creates cannot both claim the same sequence slot.
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		existing, findErr := s.invoiceRepo.FindAllByUser(txCtx, userID)
		if findErr != nil {
			return fmt.Errorf("failed to load invoices: %w", findErr)
		}
		invoice.InvoiceNo = finance.NextInvoiceNumber(existing, s.now().Year())
		return s.invoiceRepo.Create(txCtx, &invoice)
	})
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("failed to create invoice: %w", err)
	}

	if _, err := s.scoreSvc.Recalculate(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("invoice_no", invoice.InvoiceNo).Msg("score recalculation failed after create")
	}

	return toInvoiceResponse(invoice), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, userID uuid.UUID, id string) (InvoiceResponse, error) {
	invoice, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return InvoiceResponse{}, err
	}
	return toInvoiceResponse(*invoice), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, userID uuid.UUID, filter InvoiceFilter) ([]InvoiceResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	invoices, total, err := s.invoiceRepo.ListByUser(ctx, userID, repository.InvoiceListFilter{
		Status: filter.Status,
		Page:   filter.Page,
		Limit:  filter.Limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	result := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		result = append(result, toInvoiceResponse(inv))
	}
	return result, total, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, userID uuid.UUID, id string, req UpdateInvoiceRequest) (InvoiceResponse, error) {
	invoice, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return InvoiceResponse{}, err
	}

	if req.ClientName != nil {
		invoice.ClientName = *req.ClientName
	}
	if req.ClientEmail != nil {
		invoice.ClientEmail = *req.ClientEmail
	}
	if req.IssueDate != nil {
		d, parseErr := time.Parse(dateLayout, *req.IssueDate)
		if parseErr != nil {
			return InvoiceResponse{}, fmt.Errorf("invalid issue_date: %w", parseErr)
		}
		invoice.IssueDate = d
	}
	if req.DueDate != nil {
		d, parseErr := time.Parse(dateLayout, *req.DueDate)
		if parseErr != nil {
			return InvoiceResponse{}, fmt.Errorf("invalid due_date: %w", parseErr)
		}
		invoice.DueDate = d
	}
	if req.TaxRate != nil {
		rate, parseErr := decimal.NewFromString(*req.TaxRate)
		if parseErr != nil {
			return InvoiceResponse{}, fmt.Errorf("invalid tax_rate: %w", parseErr)
		}
		invoice.TaxRate = rate
	}
	if req.Items != nil {
		items, parseErr := parseItems(req.Items)
		if parseErr != nil {
			return InvoiceResponse{}, parseErr
		}
		for i := range items {
			items[i].InvoiceID = invoice.ID
		}
		invoice.Items = items
	}
	if req.Notes != nil {
		invoice.Notes = *req.Notes
	}
	if req.PaymentTerms != nil {
		invoice.PaymentTerms = *req.PaymentTerms
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return InvoiceResponse{}, fmt.Errorf("failed to update invoice: %w", err)
	}

	if _, err := s.scoreSvc.Recalculate(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("invoice_no", invoice.InvoiceNo).Msg("score recalculation failed after update")
	}

	return toInvoiceResponse(*invoice), nil
}

func (s *invoiceService) ChangeStatus(ctx context.Context, userID uuid.UUID, id string, req ChangeInvoiceStatusRequest) (InvoiceResponse, error) {
	invoice, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return InvoiceResponse{}, err
	}

	invoice.Status = req.Status
	if req.Status == model.InvoiceStatusPaid {
		paidDate := s.now()
		if req.PaidDate != "" {
			paidDate, err = time.Parse(dateLayout, req.PaidDate)
			if err != nil {
				return InvoiceResponse{}, fmt.Errorf("invalid paid_date: %w", err)
			}
		}
		invoice.PaidDate = &paidDate
		invoice.PaymentMethod = req.PaymentMethod
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return InvoiceResponse{}, fmt.Errorf("failed to update invoice status: %w", err)
	}

	if _, err := s.scoreSvc.Recalculate(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("invoice_no", invoice.InvoiceNo).Msg("score recalculation failed after status change")
	}

	return toInvoiceResponse(*invoice), nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, userID uuid.UUID, id string) error {
	invoice, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.invoiceRepo.Delete(ctx, invoice.ID); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	if _, err := s.scoreSvc.Recalculate(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("invoice_no", invoice.InvoiceNo).Msg("score recalculation failed after delete")
	}
	return nil
}

func (s *invoiceService) findOwned(ctx context.Context, userID uuid.UUID, id string) (*model.Invoice, error) {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid invoice id: %w", err)
	}
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("invoice not found: %w", err)
	}
	if invoice.UserID != userID {
		return nil, fmt.Errorf("invoice not found")
	}
	return invoice, nil
}

// --- Helpers ---

func parseItems(reqs []InvoiceItemRequest) ([]model.InvoiceItem, error) {
	items := make([]model.InvoiceItem, 0, len(reqs))
	for _, r := range reqs {
		qty, err := decimal.NewFromString(r.Quantity)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity %q: %w", r.Quantity, err)
		}
		price, err := decimal.NewFromString(r.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid unit_price %q: %w", r.UnitPrice, err)
		}
		if qty.IsNegative() || price.IsNegative() {
			return nil, fmt.Errorf("quantity and unit_price must be non-negative")
		}
		items = append(items, model.InvoiceItem{
			Description: r.Description,
			Quantity:    qty,
			UnitPrice:   price,
		})
	}
	return items, nil
}

// --- Mapping ---

func toInvoiceResponse(inv model.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, InvoiceItemResponse{
			ID:          it.ID.String(),
			Description: it.Description,
			Quantity:    it.Quantity.String(),
			UnitPrice:   it.UnitPrice.StringFixed(2),
		})
	}

	resp := InvoiceResponse{
		ID:            inv.ID.String(),
		InvoiceNo:     inv.InvoiceNo,
		ClientName:    inv.ClientName,
		ClientEmail:   inv.ClientEmail,
		IssueDate:     inv.IssueDate.Format(dateLayout),
		DueDate:       inv.DueDate.Format(dateLayout),
		Items:         items,
		TaxRate:       inv.TaxRate.StringFixed(2),
		Subtotal:      inv.Subtotal().StringFixed(2),
		TaxAmount:     inv.TaxAmount().Round(2).StringFixed(2),
		Total:         inv.Total().Round(2).StringFixed(2),
		Status:        inv.Status,
		PaymentTerms:  inv.PaymentTerms,
		Notes:         inv.Notes,
		PaymentMethod: inv.PaymentMethod,
		CreatedAt:     inv.CreatedAt.Format(time.RFC3339),
	}

	if inv.PaidDate != nil {
		s := inv.PaidDate.Format(dateLayout)
		resp.PaidDate = &s
	}

	return resp
}
