package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/careerpulse-backend/internal/platform/apierr"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAPIError writes typed service errors with their own status and code.
// Anything else is logged and reported as a 500 under fallbackCode without
// echoing the internal message.
func RespondAPIError(c *gin.Context, log *logger.Logger, fallbackCode string, err error) {
	if ae, ok := apierr.As(err); ok {
		status := ae.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		code := ae.Code
		if code == "" {
			code = fallbackCode
		}
		RespondError(c, status, code, ae)
		return
	}
	if log != nil {
		log.Error("request failed", "code", fallbackCode, "path", c.FullPath(), "error", err)
	}
	RespondError(c, http.StatusInternalServerError, fallbackCode, nil)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
