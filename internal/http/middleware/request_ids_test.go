package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/careerpulse-backend/internal/platform/ctxutil"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
)

func TestAttachTraceContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext(), RequestLogger(logger.Nop()))
	var seen *ctxutil.TraceData
	r.GET("/x", func(c *gin.Context) {
		seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	cases := []struct {
		name      string
		requestID string
		keep      bool
	}{
		{"inbound kept", "req-123", true},
		{"missing minted", "", false},
		{"too long minted", strings.Repeat("a", maxInboundIDLen+1), false},
		{"control chars minted", "bad\x01id", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tc.requestID != "" {
				req.Header.Set(headerRequestID, tc.requestID)
			}
			req.Header.Set(headerTraceID, "trace-abc")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.NotNil(t, seen)
			assert.Equal(t, "trace-abc", seen.TraceID)
			assert.Equal(t, seen.RequestID, w.Header().Get(headerRequestID))
			if tc.keep {
				assert.Equal(t, tc.requestID, seen.RequestID)
			} else {
				assert.NotEqual(t, tc.requestID, seen.RequestID)
				assert.Len(t, seen.RequestID, 36)
			}
		})
	}
}
