package service

import (
	"context"
	"strings"
	"time"

	"research-agent-go/internal/model"
	"research-agent-go/internal/repository"
	"research-agent-go/pkg/log"

	"github.com/google/uuid"
)

// ConversationService 定义了会话业务逻辑的接口。
// Conversation/Message/Source 的构造由本服务独占，仓库只做被动读写。
type ConversationService interface {
	// ListConversations 返回全部会话的 id+title 投影，顺序为存储返回顺序。
	ListConversations(ctx context.Context) ([]model.ConversationMeta, error)
	// GetConversation 按 ID 读取一条完整会话。
	GetConversation(ctx context.Context, id string) (*model.Conversation, error)
	// CreateConversation 执行研究管道并将结果组装为一条新会话。
	CreateConversation(ctx context.Context, query string) (*model.Conversation, error)
}

type conversationService struct {
	research ResearchService
	repo     repository.ConversationRepository // nil 表示持久化能力未配置
}

// NewConversationService 创建一个新的 ConversationService。
func NewConversationService(research ResearchService, repo repository.ConversationRepository) ConversationService {
	return &conversationService{research: research, repo: repo}
}

// ListConversations 返回会话元数据列表。
// 注意：列表不按创建时间排序，这是对源系统已知行为的保留，不是疏漏。
func (s *conversationService) ListConversations(ctx context.Context) ([]model.ConversationMeta, error) {
	if s.repo == nil {
		return nil, ErrStoreUnavailable
	}
	conversations, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	metas := make([]model.ConversationMeta, 0, len(conversations))
	for _, conv := range conversations {
		title := conv.Title
		if title == "" {
			title = "Untitled"
		}
		metas = append(metas, model.ConversationMeta{ID: conv.ID, Title: title})
	}
	return metas, nil
}

// GetConversation 按 ID 读取会话，未找到时返回 repository.ErrConversationNotFound。
func (s *conversationService) GetConversation(ctx context.Context, id string) (*model.Conversation, error) {
	if s.repo == nil {
		return nil, ErrStoreUnavailable
	}
	return s.repo.Get(ctx, id)
}

// CreateConversation 校验查询、执行研究管道并组装新会话。
// 持久化失败只记录日志不上抛：响应体中已携带完整计算结果，
// 落库与否不影响本次请求的成败。
func (s *conversationService) CreateConversation(ctx context.Context, query string) (*model.Conversation, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrInvalidQuery
	}

	answer, sources, err := s.research.Research(ctx, query)
	if err != nil {
		return nil, err
	}

	userMessage := model.Message{
		ID:      uuid.NewString(),
		Role:    model.RoleUser,
		Content: query,
	}
	modelMessage := model.Message{
		ID:      uuid.NewString(),
		Role:    model.RoleModel,
		Content: answer,
		Sources: sources,
	}
	conv := &model.Conversation{
		ID:        uuid.NewString(),
		Title:     query,
		Messages:  []model.Message{userMessage, modelMessage},
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if s.repo == nil {
		log.Warnf("持久化能力未配置，会话 %s 未落库", conv.ID)
		return conv, nil
	}
	if err := s.repo.Save(ctx, conv); err != nil {
		log.Error("会话落库失败，结果仍返回给调用方", err)
		return conv, nil
	}
	log.Infof("会话 %s 已保存", conv.ID)
	return conv, nil
}
