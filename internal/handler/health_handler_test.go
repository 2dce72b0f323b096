package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"research-agent-go/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type healthResponse struct {
	Status          string          `json:"status"`
	Services        map[string]bool `json:"services"`
	FullyConfigured bool            `json:"fully_configured"`
	Message         string          `json:"message"`
}

func newHealthRouter(caps service.Capabilities) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", NewHealthHandler(caps).Check)
	return r
}

func TestHealthNotConfigured(t *testing.T) {
	r := newHealthRouter(service.Capabilities{})

	w := performRequest(r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.False(t, resp.FullyConfigured)
	assert.False(t, resp.Services["redis"])
	assert.False(t, resp.Services["google_ai"])
	assert.False(t, resp.Services["serpapi"])
	assert.Contains(t, resp.Message, "not fully configured")
}
