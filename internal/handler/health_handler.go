package handler

import (
	"net/http"

	"research-agent-go/internal/service"

	"github.com/gin-gonic/gin"
)

// HealthHandler 报告后端运行状态与各外部能力的配置情况。
type HealthHandler struct {
	caps service.Capabilities
}

// NewHealthHandler 创建一个新的 HealthHandler。
func NewHealthHandler(caps service.Capabilities) *HealthHandler {
	return &HealthHandler{caps: caps}
}

// Check 处理 GET /health。该接口永不失败，
// 只反映启动时各外部能力是否配置完整。
func (h *HealthHandler) Check(c *gin.Context) {
	fullyConfigured := h.caps.FullyConfigured()
	message := "Backend is running"
	if !fullyConfigured {
		message = "Backend is running but not fully configured. Check logs for missing services."
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"services": gin.H{
			"redis":     h.caps.StoreConfigured(),
			"google_ai": h.caps.SummarizerConfigured(),
			"serpapi":   h.caps.SearchConfigured(),
		},
		"fully_configured": fullyConfigured,
		"message":          message,
	})
}
