package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend/internal/database"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupFeedbackRouter(t *testing.T) (*gin.Engine, service.InvoiceService, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	user := model.User{
		ID:       uuid.New(),
		Name:     "Maria Santos",
		Email:    fmt.Sprintf("maria-%s@example.com", uuid.NewString()[:8]),
		JoinDate: time.Now().AddDate(-1, 0, 0),
	}
	require.NoError(t, db.Create(&user).Error)

	invoiceRepo := repository.NewInvoiceRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	userRepo := repository.NewUserRepository(db)
	scoreSvc := service.NewCrediScoreService(invoiceRepo, receiptRepo, feedbackRepo, userRepo, nil)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, invoiceRepo, scoreSvc)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, scoreSvc, repository.NewTransactionManager(db))

	router := gin.New()
	h := NewFeedbackHandler(feedbackSvc)
	router.POST("/api/feedback", h.SubmitFeedback)
	// Stand-in for the auth middleware.
	authed := router.Group("", func(c *gin.Context) {
		c.Set("userID", user.ID.String())
		c.Next()
	})
	authed.GET("/api/feedback", h.ListFeedback)

	return router, invoiceSvc, user.ID
}

func sentInvoiceID(t *testing.T, invoiceSvc service.InvoiceService, userID uuid.UUID) string {
	t.Helper()
	created, err := invoiceSvc.CreateInvoice(t.Context(), userID, service.CreateInvoiceRequest{
		ClientName: "Acme Design Co.",
		IssueDate:  "2025-03-01",
		DueDate:    "2025-03-31",
		Items:      []service.InvoiceItemRequest{{Description: "Logo design", Quantity: "1", UnitPrice: "15000"}},
	})
	require.NoError(t, err)
	_, err = invoiceSvc.ChangeStatus(t.Context(), userID, created.ID, service.ChangeInvoiceStatusRequest{Status: model.InvoiceStatusSent})
	require.NoError(t, err)
	return created.ID
}

func TestSubmitFeedbackEndpoint(t *testing.T) {
	router, invoiceSvc, userID := setupFeedbackRouter(t)
	invoiceID := sentInvoiceID(t, invoiceSvc, userID)

	payload := map[string]interface{}{
		"invoice_id":  invoiceID,
		"client_name": "Acme Design Co.",
		"rating":      5,
		"comment":     "Outstanding work.",
	}
	body, _ := json.Marshal(payload)

	t.Run("Valid Submission", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/feedback", bytes.NewBuffer(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"is_verified":true`)
	})

	t.Run("Duplicate Rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/feedback", bytes.NewBuffer(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "already submitted")
	})

	t.Run("Rating Out Of Range", func(t *testing.T) {
		bad := map[string]interface{}{
			"invoice_id":  invoiceID,
			"client_name": "Acme Design Co.",
			"rating":      6,
			"comment":     "Too good.",
		}
		badBody, _ := json.Marshal(bad)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/feedback", bytes.NewBuffer(badBody))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Owner Sees Listing", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/feedback", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Outstanding work.")
	})
}
