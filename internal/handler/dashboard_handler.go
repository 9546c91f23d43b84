package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService  service.DashboardService
	crediScoreService service.CrediScoreService
}

func NewDashboardHandler(dashboardService service.DashboardService, crediScoreService service.CrediScoreService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService:  dashboardService,
		crediScoreService: crediScoreService,
	}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/api", middleware.RequireAuth())
	{
		dashboard.GET("/dashboard", h.GetDashboard)
		dashboard.GET("/dashboard/summary", h.GetSummary)
		dashboard.GET("/crediscore", h.GetCrediScore)
		dashboard.POST("/crediscore/recalculate", h.RecalculateCrediScore)
	}
}

// GetDashboard returns the financial summary, CrediScore and business tips in one payload
// @Summary      Get dashboard
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.DashboardResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, dashboard))
}

// GetSummary returns the financial summary derived from current invoices and receipts
// @Summary      Get financial summary
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.SummaryResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	summary, err := h.dashboardService.GetSummary(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// GetCrediScore returns the current CrediScore breakdown
// @Summary      Get CrediScore
// @Tags         crediscore
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=model.CrediScoreMetrics}
// @Failure      500  {object}  response.Response
// @Router       /api/crediscore [get]
func (h *DashboardHandler) GetCrediScore(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	metrics, err := h.crediScoreService.Current(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, metrics))
}

// RecalculateCrediScore forces a fresh score computation and broadcast
// @Summary      Recalculate CrediScore
// @Tags         crediscore
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=model.CrediScoreMetrics}
// @Failure      500  {object}  response.Response
// @Router       /api/crediscore/recalculate [post]
func (h *DashboardHandler) RecalculateCrediScore(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	metrics, err := h.crediScoreService.Recalculate(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, metrics))
}
