// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"

	"research-agent-go/internal/repository"
	"research-agent-go/internal/service"
	"research-agent-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// ConversationHandler 处理与会话相关的 API 请求。
type ConversationHandler struct {
	service service.ConversationService
}

// NewConversationHandler 创建一个新的 ConversationHandler。
func NewConversationHandler(service service.ConversationService) *ConversationHandler {
	return &ConversationHandler{service: service}
}

// createConversationRequest 是创建会话的请求体。
type createConversationRequest struct {
	Query string `json:"query"`
}

// ListConversations 处理 GET /conversations，返回全部会话的元数据列表。
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	metas, err := h.service.ListConversations(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrStoreUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"detail": "Database service is not available. Please configure Redis.",
			})
			return
		}
		log.Error("获取会话列表失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": "Could not fetch conversations from the database.",
		})
		return
	}
	c.JSON(http.StatusOK, metas)
}

// GetConversation 处理 GET /conversations/:id，返回一条完整会话。
func (h *ConversationHandler) GetConversation(c *gin.Context) {
	conv, err := h.service.GetConversation(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"detail": "Database service is not available. Please configure Redis.",
			})
		case errors.Is(err, repository.ErrConversationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "Conversation not found."})
		default:
			log.Error("读取会话失败", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"detail": "Could not fetch the conversation from the database.",
			})
		}
		return
	}
	c.JSON(http.StatusOK, conv)
}

// CreateConversation 处理 POST /conversations，发起一次新的研究会话。
func (h *ConversationHandler) CreateConversation(c *gin.Context) {
	var req createConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Query is required."})
		return
	}

	conv, err := h.service.CreateConversation(c.Request.Context(), req.Query)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuery):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Query is required."})
		case errors.Is(err, service.ErrNoSourcesFound):
			c.JSON(http.StatusNotFound, gin.H{
				"detail": "No relevant web sources found for that query.",
			})
		case errors.Is(err, service.ErrNoContentExtracted):
			c.JSON(http.StatusInternalServerError, gin.H{
				"detail": "Could not extract content from any of the web sources.",
			})
		default:
			log.Error("创建会话失败", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"detail": "An unexpected error occurred while creating the conversation.",
			})
		}
		return
	}
	c.JSON(http.StatusOK, conv)
}
