package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/logger"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// --- DTOs ---

// SubmitFeedbackRequest is the client-facing review form. Submission is
// gated on the referenced invoice: it must exist, must have been issued
// (not DRAFT or CANCELLED), and must not already have feedback.
type SubmitFeedbackRequest struct {
	InvoiceID   string `json:"invoice_id" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientEmail string `json:"client_email"`
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Comment     string `json:"comment" binding:"required"`
	ProjectType string `json:"project_type"`
	IsPublic    bool   `json:"is_public"`
}

type FeedbackResponse struct {
	ID          string  `json:"id"`
	InvoiceID   *string `json:"invoice_id"`
	ClientName  string  `json:"client_name"`
	ClientEmail string  `json:"client_email"`
	Rating      int     `json:"rating"`
	Comment     string  `json:"comment"`
	Date        string  `json:"date"`
	ProjectType string  `json:"project_type"`
	IsPublic    bool    `json:"is_public"`
	IsVerified  bool    `json:"is_verified"`
}

// --- Interface ---

type FeedbackService interface {
	SubmitFeedback(ctx context.Context, req SubmitFeedbackRequest) (FeedbackResponse, error)
	ListFeedback(ctx context.Context, userID uuid.UUID) ([]FeedbackResponse, error)
	// DeleteFeedback exists for administrative cleanup; the primary flow
	// never removes reviews.
	DeleteFeedback(ctx context.Context, userID uuid.UUID, id string) error
}

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
	invoiceRepo  repository.InvoiceRepository
	scoreSvc     CrediScoreService
	log          zerolog.Logger
	now          func() time.Time
}

func NewFeedbackService(
	feedbackRepo repository.FeedbackRepository,
	invoiceRepo repository.InvoiceRepository,
	scoreSvc CrediScoreService,
) FeedbackService {
	return &feedbackService{
		feedbackRepo: feedbackRepo,
		invoiceRepo:  invoiceRepo,
		scoreSvc:     scoreSvc,
		log:          logger.WithComponent("feedback-service"),
		now:          time.Now,
	}
}

// --- Implementation ---

func (s *feedbackService) SubmitFeedback(ctx context.Context, req SubmitFeedbackRequest) (FeedbackResponse, error) {
	invoiceID, err := uuid.Parse(req.InvoiceID)
	if err != nil {
		return FeedbackResponse{}, fmt.Errorf("invalid invoice_id: %w", err)
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return FeedbackResponse{}, fmt.Errorf("referenced invoice not found: %w", err)
	}

	if invoice.Status == model.InvoiceStatusDraft || invoice.Status == model.InvoiceStatusCancelled {
		return FeedbackResponse{}, fmt.Errorf("invoice %s is not open for feedback", invoice.InvoiceNo)
	}

	exists, err := s.feedbackRepo.ExistsForInvoice(ctx, invoiceID)
	if err != nil {
		return FeedbackResponse{}, fmt.Errorf("failed to check existing feedback: %w", err)
	}
	if exists {
		return FeedbackResponse{}, fmt.Errorf("feedback already submitted for invoice %s", invoice.InvoiceNo)
	}

	feedback := model.ClientFeedback{
		UserID:      invoice.UserID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Rating:      req.Rating,
		Comment:     req.Comment,
		Date:        s.now(),
		ProjectType: req.ProjectType,
		IsPublic:    req.IsPublic,
		IsVerified:  true, // reached us through the invoice-gated flow
		InvoiceID:   &invoiceID,
	}

	if err := s.feedbackRepo.Create(ctx, &feedback); err != nil {
		return FeedbackResponse{}, fmt.Errorf("failed to create feedback: %w", err)
	}

	if _, err := s.scoreSvc.Recalculate(ctx, invoice.UserID); err != nil {
		s.log.Warn().Err(err).Str("invoice_no", invoice.InvoiceNo).Msg("score recalculation failed after feedback")
	}

	return toFeedbackResponse(feedback), nil
}

func (s *feedbackService) ListFeedback(ctx context.Context, userID uuid.UUID) ([]FeedbackResponse, error) {
	feedback, err := s.feedbackRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feedback: %w", err)
	}

	result := make([]FeedbackResponse, 0, len(feedback))
	for _, f := range feedback {
		result = append(result, toFeedbackResponse(f))
	}
	return result, nil
}

func (s *feedbackService) DeleteFeedback(ctx context.Context, userID uuid.UUID, id string) error {
	feedbackID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid feedback id: %w", err)
	}
	feedback, err := s.feedbackRepo.FindByID(ctx, feedbackID)
	if err != nil {
		return fmt.Errorf("feedback not found: %w", err)
	}
	if feedback.UserID != userID {
		return fmt.Errorf("feedback not found")
	}

	if err := s.feedbackRepo.Delete(ctx, feedbackID); err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
	}

	if _, err := s.scoreSvc.Recalculate(ctx, userID); err != nil {
		s.log.Warn().Err(err).Msg("score recalculation failed after feedback delete")
	}
	return nil
}

// --- Mapping ---

func toFeedbackResponse(f model.ClientFeedback) FeedbackResponse {
	resp := FeedbackResponse{
		ID:          f.ID.String(),
		ClientName:  f.ClientName,
		ClientEmail: f.ClientEmail,
		Rating:      f.Rating,
		Comment:     f.Comment,
		Date:        f.Date.Format(dateLayout),
		ProjectType: f.ProjectType,
		IsPublic:    f.IsPublic,
		IsVerified:  f.IsVerified,
	}
	if f.InvoiceID != nil {
		s := f.InvoiceID.String()
		resp.InvoiceID = &s
	}
	return resp
}
