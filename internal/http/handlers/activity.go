package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/careerpulse-backend/internal/http/response"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
	"github.com/yungbote/careerpulse-backend/internal/services"
)

type ActivityHandler struct {
	log      *logger.Logger
	activity services.ActivityService
}

func NewActivityHandler(log *logger.Logger, activity services.ActivityService) *ActivityHandler {
	return &ActivityHandler{log: log.With("handler", "ActivityHandler"), activity: activity}
}

// POST /api/activity/event
func (h *ActivityHandler) RecordEvent(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 64<<10)
	var req services.ActivityEventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.activity.RecordEvent(c.Request.Context(), req); err != nil {
		response.RespondAPIError(c, h.log, "record_event_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /api/activity/login
func (h *ActivityHandler) TouchLogin(c *gin.Context) {
	out, err := h.activity.TouchLogin(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, h.log, "login_streak_failed", err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/activity/heatmap?days=180
func (h *ActivityHandler) Heatmap(c *gin.Context) {
	days := 0
	if v := strings.TrimSpace(c.Query("days")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_days", err)
			return
		}
		days = n
	}
	out, err := h.activity.Heatmap(c.Request.Context(), days)
	if err != nil {
		response.RespondAPIError(c, h.log, "heatmap_failed", err)
		return
	}
	response.RespondOK(c, out)
}
