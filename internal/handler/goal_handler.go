package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type GoalHandler struct {
	goalService service.GoalService
}

func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

func (h *GoalHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/api/goals", middleware.RequireAuth())
	{
		goals.POST("", h.CreateGoal)
		goals.GET("", h.ListGoals)
		goals.PUT("/:id", h.UpdateGoal)
		goals.DELETE("/:id", h.DeleteGoal)
	}
}

// CreateGoal creates a financial goal
// @Summary      Create goal
// @Tags         goals
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateGoalRequest  true  "Create Goal Payload"
// @Success      201      {object}  response.Response{data=service.GoalResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, goal))
}

// ListGoals returns all goals for the authenticated user
// @Summary      List goals
// @Tags         goals
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.GoalResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/goals [get]
func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	goals, err := h.goalService.ListGoals(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, goals))
}

// UpdateGoal edits a goal, including progress toward its target
// @Summary      Update goal
// @Tags         goals
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Goal ID"
// @Param        payload  body      service.UpdateGoalRequest  true  "Update Goal Payload"
// @Success      200      {object}  response.Response{data=service.GoalResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, goal))
}

// DeleteGoal removes a goal
// @Summary      Delete goal
// @Tags         goals
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Goal ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.goalService.DeleteGoal(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Goal deleted successfully"}))
}
