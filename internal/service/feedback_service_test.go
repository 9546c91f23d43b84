package service

import (
	"context"
	"testing"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestFeedbackService(db *gorm.DB) (FeedbackService, InvoiceService) {
	invoiceRepo := repository.NewInvoiceRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	userRepo := repository.NewUserRepository(db)
	scoreSvc := NewCrediScoreService(invoiceRepo, receiptRepo, feedbackRepo, userRepo, nil)
	feedbackSvc := NewFeedbackService(feedbackRepo, invoiceRepo, scoreSvc)
	invoiceSvc := NewInvoiceService(invoiceRepo, scoreSvc, repository.NewTransactionManager(db))
	return feedbackSvc, invoiceSvc
}

func issuedInvoice(t *testing.T, invoiceSvc InvoiceService, userID uuid.UUID) InvoiceResponse {
	t.Helper()
	ctx := context.Background()
	created, err := invoiceSvc.CreateInvoice(ctx, userID, sampleInvoiceRequest())
	require.NoError(t, err)
	sent, err := invoiceSvc.ChangeStatus(ctx, userID, created.ID, ChangeInvoiceStatusRequest{Status: model.InvoiceStatusSent})
	require.NoError(t, err)
	return sent
}

func sampleFeedbackRequest(invoiceID string) SubmitFeedbackRequest {
	return SubmitFeedbackRequest{
		InvoiceID:  invoiceID,
		ClientName: "Acme Design Co.",
		Rating:     5,
		Comment:    "Delivered ahead of schedule, great communication.",
		IsPublic:   true,
	}
}

func TestSubmitFeedback_AcceptsIssuedInvoice(t *testing.T) {
	db, userID := setupTestDB(t)
	feedbackSvc, invoiceSvc := newTestFeedbackService(db)
	invoice := issuedInvoice(t, invoiceSvc, userID)

	resp, err := feedbackSvc.SubmitFeedback(context.Background(), sampleFeedbackRequest(invoice.ID))
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Rating)
	assert.True(t, resp.IsVerified, "invoice-gated feedback is always verified")
	require.NotNil(t, resp.InvoiceID)
	assert.Equal(t, invoice.ID, *resp.InvoiceID)
}

func TestSubmitFeedback_RejectsSecondSubmission(t *testing.T) {
	db, userID := setupTestDB(t)
	feedbackSvc, invoiceSvc := newTestFeedbackService(db)
	invoice := issuedInvoice(t, invoiceSvc, userID)
	ctx := context.Background()

	_, err := feedbackSvc.SubmitFeedback(ctx, sampleFeedbackRequest(invoice.ID))
	require.NoError(t, err)

	_, err = feedbackSvc.SubmitFeedback(ctx, sampleFeedbackRequest(invoice.ID))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already submitted")
}

func TestSubmitFeedback_RejectsDraftAndCancelled(t *testing.T) {
	db, userID := setupTestDB(t)
	feedbackSvc, invoiceSvc := newTestFeedbackService(db)
	ctx := context.Background()

	draft, err := invoiceSvc.CreateInvoice(ctx, userID, sampleInvoiceRequest())
	require.NoError(t, err)
	_, err = feedbackSvc.SubmitFeedback(ctx, sampleFeedbackRequest(draft.ID))
	assert.Error(t, err)

	cancelled, err := invoiceSvc.CreateInvoice(ctx, userID, sampleInvoiceRequest())
	require.NoError(t, err)
	_, err = invoiceSvc.ChangeStatus(ctx, userID, cancelled.ID, ChangeInvoiceStatusRequest{Status: model.InvoiceStatusCancelled})
	require.NoError(t, err)
	_, err = feedbackSvc.SubmitFeedback(ctx, sampleFeedbackRequest(cancelled.ID))
	assert.Error(t, err)
}

func TestSubmitFeedback_RejectsUnknownInvoice(t *testing.T) {
	db, _ := setupTestDB(t)
	feedbackSvc, _ := newTestFeedbackService(db)

	_, err := feedbackSvc.SubmitFeedback(context.Background(), sampleFeedbackRequest(uuid.NewString()))
	assert.Error(t, err)
}

func TestListFeedback_NewestFirst(t *testing.T) {
	db, userID := setupTestDB(t)
	feedbackSvc, invoiceSvc := newTestFeedbackService(db)
	ctx := context.Background()

	older := issuedInvoice(t, invoiceSvc, userID)
	newer := issuedInvoice(t, invoiceSvc, userID)

	oldResp, err := feedbackSvc.SubmitFeedback(ctx, sampleFeedbackRequest(older.ID))
	require.NoError(t, err)
	// Backdate the first submission so the ordering is deterministic.
	require.NoError(t, db.Model(&model.ClientFeedback{}).
		Where("id = ?", oldResp.ID).
		Update("date", time.Now().Add(-24*time.Hour)).Error)

	newResp, err := feedbackSvc.SubmitFeedback(ctx, sampleFeedbackRequest(newer.ID))
	require.NoError(t, err)

	list, err := feedbackSvc.ListFeedback(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newResp.ID, list[0].ID)
	assert.Equal(t, oldResp.ID, list[1].ID)
}

func TestDeleteFeedback_OwnerOnly(t *testing.T) {
	db, userID := setupTestDB(t)
	feedbackSvc, invoiceSvc := newTestFeedbackService(db)
	ctx := context.Background()

	invoice := issuedInvoice(t, invoiceSvc, userID)
	resp, err := feedbackSvc.SubmitFeedback(ctx, sampleFeedbackRequest(invoice.ID))
	require.NoError(t, err)

	assert.Error(t, feedbackSvc.DeleteFeedback(ctx, uuid.New(), resp.ID))
	assert.NoError(t, feedbackSvc.DeleteFeedback(ctx, userID, resp.ID))

	list, err := feedbackSvc.ListFeedback(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
