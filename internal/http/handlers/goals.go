package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/careerpulse-backend/internal/http/response"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
	"github.com/yungbote/careerpulse-backend/internal/services"
)

type GoalHandler struct {
	log   *logger.Logger
	goals services.GoalService
}

func NewGoalHandler(log *logger.Logger, goals services.GoalService) *GoalHandler {
	return &GoalHandler{log: log.With("handler", "GoalHandler"), goals: goals}
}

// GET /api/career/personal-goals
func (h *GoalHandler) List(c *gin.Context) {
	goals, err := h.goals.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, h.log, "list_goals_failed", err)
		return
	}
	response.RespondOK(c, goals)
}

// POST /api/career/personal-goals
func (h *GoalHandler) Create(c *gin.Context) {
	var req services.GoalCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	goal, err := h.goals.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, h.log, "create_goal_failed", err)
		return
	}
	response.RespondOK(c, goal)
}

// PATCH /api/career/personal-goals/:id
func (h *GoalHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_goal_id", err)
		return
	}
	var req services.GoalUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	goal, err := h.goals.Update(c.Request.Context(), id, req)
	if err != nil {
		response.RespondAPIError(c, h.log, "update_goal_failed", err)
		return
	}
	response.RespondOK(c, goal)
}

// DELETE /api/career/personal-goals/:id
func (h *GoalHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_goal_id", err)
		return
	}
	if err := h.goals.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, h.log, "delete_goal_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
