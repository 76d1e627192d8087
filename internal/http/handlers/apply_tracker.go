package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/careerpulse-backend/internal/http/response"
	"github.com/yungbote/careerpulse-backend/internal/platform/clock"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
	"github.com/yungbote/careerpulse-backend/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ApplyTrackerHandler struct {
	log   *logger.Logger
	apply services.ApplyTrackerService
	clock clock.Clock
}

func NewApplyTrackerHandler(log *logger.Logger, apply services.ApplyTrackerService, clk clock.Clock) *ApplyTrackerHandler {
	if clk == nil {
		clk = clock.System()
	}
	return &ApplyTrackerHandler{log: log.With("handler", "ApplyTrackerHandler"), apply: apply, clock: clk}
}

type applyStatusRequest struct {
	Status string `json:"status"`
}

// GET /api/career/apply-tracker?limit=100
func (h *ApplyTrackerHandler) List(c *gin.Context) {
	limit := 0
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	items, err := h.apply.List(c.Request.Context(), limit)
	if err != nil {
		response.RespondAPIError(c, h.log, "list_apply_tracker_failed", err)
		return
	}
	response.RespondOK(c, items)
}

// POST /api/career/apply-tracker
func (h *ApplyTrackerHandler) Upsert(c *gin.Context) {
	var req services.ApplyTrackerUpsert
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	item, err := h.apply.Upsert(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, h.log, "upsert_apply_tracker_failed", err)
		return
	}
	response.RespondOK(c, item)
}

// PATCH /api/career/apply-tracker/:id
func (h *ApplyTrackerHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_apply_item_id", err)
		return
	}
	var req applyStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	item, err := h.apply.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.RespondAPIError(c, h.log, "update_apply_tracker_failed", err)
		return
	}
	response.RespondOK(c, item)
}

// DELETE /api/career/apply-tracker/:id
func (h *ApplyTrackerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_apply_item_id", err)
		return
	}
	if err := h.apply.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, h.log, "delete_apply_tracker_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// GET /api/career/apply-tracker/export
func (h *ApplyTrackerHandler) Export(c *gin.Context) {
	buf, err := h.apply.ExportXLSX(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, h.log, "export_apply_tracker_failed", err)
		return
	}
	filename := fmt.Sprintf("apply-tracker-%s.xlsx", clock.DayKey(h.clock.Now()))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
