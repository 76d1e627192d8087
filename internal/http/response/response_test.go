package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/careerpulse-backend/internal/platform/apierr"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
)

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	RespondAPIError(c, logger.Nop(), "load_failed", err)
	var env ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestRespondAPIError(t *testing.T) {
	rec, env := respond(t, apierr.BadInput("invalid_item_id", errors.New("item_id is required")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_item_id", env.Error.Code)
	assert.Equal(t, "item_id is required", env.Error.Message)

	rec, env = respond(t, apierr.NotFound("goal_not_found"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "goal_not_found", env.Error.Code)

	rec, env = respond(t, errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "load_failed", env.Error.Code)
	assert.Equal(t, "unknown error", env.Error.Message)
}
