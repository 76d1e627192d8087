package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/careerpulse-backend/internal/http/response"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
	"github.com/yungbote/careerpulse-backend/internal/services"
)

type ReadinessHandler struct {
	log       *logger.Logger
	readiness services.ReadinessService
	plans     services.ActionPlanService
}

func NewReadinessHandler(log *logger.Logger, readiness services.ReadinessService, plans services.ActionPlanService) *ReadinessHandler {
	return &ReadinessHandler{
		log:       log.With("handler", "ReadinessHandler"),
		readiness: readiness,
		plans:     plans,
	}
}

// GET /api/career/readiness
func (h *ReadinessHandler) GetReadiness(c *gin.Context) {
	out, err := h.readiness.Dashboard(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, h.log, "readiness_failed", err)
		return
	}
	response.RespondOK(c, out)
}

// PATCH /api/career/weekly-checklist
func (h *ReadinessHandler) PatchWeeklyChecklist(c *gin.Context) {
	var req services.ChecklistPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.plans.PatchChecklist(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, h.log, "checklist_update_failed", err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/career/progress-delta
func (h *ReadinessHandler) ProgressDelta(c *gin.Context) {
	out, err := h.readiness.ProgressDelta(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, h.log, "progress_delta_failed", err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/dashboard/stats
func (h *ReadinessHandler) Stats(c *gin.Context) {
	out, err := h.readiness.Stats(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, h.log, "stats_failed", err)
		return
	}
	response.RespondOK(c, out)
}
