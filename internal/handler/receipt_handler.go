package handler

import (
	"fmt"
	"net/http"
	"time"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReceiptHandler struct {
	receiptService service.ReceiptService
}

func NewReceiptHandler(receiptService service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

func (h *ReceiptHandler) RegisterRoutes(router *gin.RouterGroup) {
	receipts := router.Group("/api/receipts", middleware.RequireAuth())
	{
		receipts.POST("/expense", h.RecordExpense)
		receipts.GET("", h.ListReceipts)
		receipts.GET("/export", h.ExportCSV)
		receipts.PUT("/:id", h.UpdateReceipt)
		receipts.DELETE("/:id", h.DeleteReceipt)
	}
}

// RecordExpense records a manual expense receipt
// @Summary      Record expense
// @Description  Records an expense receipt; the amount is stored negative regardless of the sign supplied
// @Tags         receipts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateExpenseRequest  true  "Expense Payload"
// @Success      201      {object}  response.Response{data=service.ReceiptResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/receipts/expense [post]
func (h *ReceiptHandler) RecordExpense(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	receipt, err := h.receiptService.CreateExpense(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, receipt))
}

// ListReceipts returns a paginated list of receipts with optional filters
// @Summary      List receipts
// @Tags         receipts
// @Security     BearerAuth
// @Produce      json
// @Param        category  query     string  false  "Filter by category"
// @Param        from      query     string  false  "Start date (YYYY-MM-DD)"
// @Param        to        query     string  false  "End date (YYYY-MM-DD)"
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Number of items per page (default 20)"
// @Success      200       {object}  response.Response{data=object}
// @Failure      500       {object}  response.Response
// @Router       /api/receipts [get]
func (h *ReceiptHandler) ListReceipts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := pagination.Parse(c)
	receipts, total, err := h.receiptService.ListReceipts(c.Request.Context(), userID, service.ReceiptFilter{
		Category: c.Query("category"),
		From:     c.Query("from"),
		To:       c.Query("to"),
		Page:     params.Page,
		Limit:    params.Limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, "receipts", receipts, total, params.Page, params.Limit))
}

// ExportCSV streams the filtered receipts as a CSV attachment
// @Summary      Export receipts to CSV
// @Tags         receipts
// @Security     BearerAuth
// @Produce      text/csv
// @Param        category  query   string  false  "Filter by category"
// @Param        from      query   string  false  "Start date (YYYY-MM-DD)"
// @Param        to        query   string  false  "End date (YYYY-MM-DD)"
// @Success      200       {string}  string  "CSV file"
// @Failure      500       {object}  response.Response
// @Router       /api/receipts/export [get]
func (h *ReceiptHandler) ExportCSV(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	csvData, err := h.receiptService.ExportCSV(c.Request.Context(), userID, service.ReceiptFilter{
		Category: c.Query("category"),
		From:     c.Query("from"),
		To:       c.Query("to"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	filename := fmt.Sprintf("receipts-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvData))
}

// UpdateReceipt edits a receipt's details
// @Summary      Update receipt
// @Tags         receipts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Receipt ID"
// @Param        payload  body      service.UpdateReceiptRequest  true  "Update Receipt Payload"
// @Success      200      {object}  response.Response{data=service.ReceiptResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/receipts/{id} [put]
func (h *ReceiptHandler) UpdateReceipt(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.UpdateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	receipt, err := h.receiptService.UpdateReceipt(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, receipt))
}

// DeleteReceipt removes a receipt
// @Summary      Delete receipt
// @Tags         receipts
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Receipt ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/receipts/{id} [delete]
func (h *ReceiptHandler) DeleteReceipt(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.receiptService.DeleteReceipt(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Receipt deleted successfully"}))
}
