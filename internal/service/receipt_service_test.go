package service

import (
	"context"
	"strings"
	"testing"

	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestReceiptService(db *gorm.DB) ReceiptService {
	invoiceRepo := repository.NewInvoiceRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	userRepo := repository.NewUserRepository(db)
	scoreSvc := NewCrediScoreService(invoiceRepo, receiptRepo, feedbackRepo, userRepo, nil)
	return NewReceiptService(receiptRepo, scoreSvc, repository.NewTransactionManager(db))
}

func sampleExpenseRequest() CreateExpenseRequest {
	return CreateExpenseRequest{
		Counterparty:  "National Bookstore",
		Date:          "2025-03-05",
		Amount:        "2500",
		Category:      "Supplies",
		PaymentMethod: "Cash",
	}
}

func TestCreateExpense_StoresNegativeAmount(t *testing.T) {
	db, userID := setupTestDB(t)
	svc := newTestReceiptService(db)
	ctx := context.Background()

	resp, err := svc.CreateExpense(ctx, userID, sampleExpenseRequest())
	require.NoError(t, err)
	assert.Equal(t, "-2500.00", resp.Amount)
	assert.Equal(t, "R-001", resp.ReceiptNo)

	// A negative amount in the form must not flip the sign back.
	req := sampleExpenseRequest()
	req.Amount = "-120.50"
	resp, err = svc.CreateExpense(ctx, userID, req)
	require.NoError(t, err)
	assert.Equal(t, "-120.50", resp.Amount)
	assert.Equal(t, "R-002", resp.ReceiptNo)
}

func TestListReceipts_FiltersByCategoryAndDate(t *testing.T) {
	db, userID := setupTestDB(t)
	svc := newTestReceiptService(db)
	ctx := context.Background()

	_, err := svc.CreateExpense(ctx, userID, sampleExpenseRequest())
	require.NoError(t, err)

	travel := sampleExpenseRequest()
	travel.Category = "Travel"
	travel.Date = "2025-06-15"
	_, err = svc.CreateExpense(ctx, userID, travel)
	require.NoError(t, err)

	byCategory, total, err := svc.ListReceipts(ctx, userID, ReceiptFilter{Category: "Travel"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Travel", byCategory[0].Category)

	byDate, total, err := svc.ListReceipts(ctx, userID, ReceiptFilter{From: "2025-06-01", To: "2025-06-30"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, byDate, 1)
	assert.Equal(t, "2025-06-15", byDate[0].Date)
}

func TestUpdateReceipt_MergesOnlyProvidedFields(t *testing.T) {
	db, userID := setupTestDB(t)
	svc := newTestReceiptService(db)
	ctx := context.Background()

	created, err := svc.CreateExpense(ctx, userID, sampleExpenseRequest())
	require.NoError(t, err)

	notes := "Printer ink and paper"
	updated, err := svc.UpdateReceipt(ctx, userID, created.ID, UpdateReceiptRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, created.Counterparty, updated.Counterparty)
	assert.Equal(t, created.Amount, updated.Amount)
}

func TestDeleteReceipt_OwnerOnly(t *testing.T) {
	db, userID := setupTestDB(t)
	svc := newTestReceiptService(db)
	ctx := context.Background()

	created, err := svc.CreateExpense(ctx, userID, sampleExpenseRequest())
	require.NoError(t, err)

	assert.Error(t, svc.DeleteReceipt(ctx, uuid.New(), created.ID))
	assert.NoError(t, svc.DeleteReceipt(ctx, userID, created.ID))

	_, total, err := svc.ListReceipts(ctx, userID, ReceiptFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestExportCSV_IncludesFilteredRows(t *testing.T) {
	db, userID := setupTestDB(t)
	svc := newTestReceiptService(db)
	ctx := context.Background()

	_, err := svc.CreateExpense(ctx, userID, sampleExpenseRequest())
	require.NoError(t, err)

	travel := sampleExpenseRequest()
	travel.Category = "Travel"
	travel.Counterparty = "Cebu Pacific"
	_, err = svc.CreateExpense(ctx, userID, travel)
	require.NoError(t, err)

	csvData, err := svc.ExportCSV(ctx, userID, ReceiptFilter{Category: "Travel"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(csvData), "\n")
	require.Len(t, lines, 2, "header plus the single Travel row")
	assert.Contains(t, lines[0], "Receipt #")
	assert.Contains(t, lines[1], "Cebu Pacific")
	assert.Contains(t, lines[1], "-2500.00")
	assert.NotContains(t, csvData, "National Bookstore")
}
