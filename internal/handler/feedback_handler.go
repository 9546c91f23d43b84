package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	feedbackService service.FeedbackService
}

func NewFeedbackHandler(feedbackService service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

func (h *FeedbackHandler) RegisterRoutes(router *gin.RouterGroup) {
	// Clients submit feedback from the invoice link without an account.
	router.POST("/api/feedback", h.SubmitFeedback)

	feedback := router.Group("/api/feedback", middleware.RequireAuth())
	{
		feedback.GET("", h.ListFeedback)
		feedback.DELETE("/:id", h.DeleteFeedback)
	}
}

// SubmitFeedback records client feedback against an invoice
// @Summary      Submit feedback
// @Description  Accepts one feedback entry per invoice. The invoice must exist and must not be a draft or cancelled.
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        payload  body      service.SubmitFeedbackRequest  true  "Feedback Payload"
// @Success      201      {object}  response.Response{data=service.FeedbackResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/feedback [post]
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req service.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	feedback, err := h.feedbackService.SubmitFeedback(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, feedback))
}

// ListFeedback returns all feedback for the authenticated user, newest first
// @Summary      List feedback
// @Tags         feedback
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.FeedbackResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/feedback [get]
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	feedback, err := h.feedbackService.ListFeedback(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, feedback))
}

// DeleteFeedback removes a feedback entry
// @Summary      Delete feedback
// @Tags         feedback
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Feedback ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/feedback/{id} [delete]
func (h *FeedbackHandler) DeleteFeedback(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.feedbackService.DeleteFeedback(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Feedback deleted successfully"}))
}
