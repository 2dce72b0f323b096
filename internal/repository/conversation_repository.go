// Package repository 提供了数据访问层的实现。
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"research-agent-go/internal/model"

	"github.com/go-redis/redis/v8"
)

// ErrConversationNotFound 表示指定 ID 的会话不存在。
var ErrConversationNotFound = errors.New("conversation not found")

// ConversationRepository 定义了会话记录的持久化操作接口。
// 仓库是被动的持久化端点，不包含任何业务逻辑。
type ConversationRepository interface {
	Save(ctx context.Context, conv *model.Conversation) error
	Get(ctx context.Context, id string) (*model.Conversation, error)
	ListAll(ctx context.Context) ([]model.Conversation, error)
}

type redisConversationRepository struct {
	redisClient *redis.Client
}

// NewConversationRepository 创建一个新的 ConversationRepository 实例。
func NewConversationRepository(redisClient *redis.Client) ConversationRepository {
	return &redisConversationRepository{redisClient: redisClient}
}

func conversationKey(id string) string {
	return fmt.Sprintf("conversation:%s", id)
}

// Save 将会话以 JSON 文档的形式写入 Redis。
// 会话 ID 随机生成、每次请求唯一，不存在并发写同一键的情况。
func (r *redisConversationRepository) Save(ctx context.Context, conv *model.Conversation) error {
	jsonData, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation: %w", err)
	}
	// 会话是持久记录，不设置过期时间
	if err := r.redisClient.Set(ctx, conversationKey(conv.ID), jsonData, 0).Err(); err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}
	return nil
}

// Get 按 ID 读取一条完整会话。
func (r *redisConversationRepository) Get(ctx context.Context, id string) (*model.Conversation, error) {
	jsonData, err := r.redisClient.Get(ctx, conversationKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	var conv model.Conversation
	if err := json.Unmarshal([]byte(jsonData), &conv); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation: %w", err)
	}
	return &conv, nil
}

// ListAll 扫描 conversation:* 键并返回全部会话记录。
// 返回顺序即键扫描顺序，不按创建时间排序。
func (r *redisConversationRepository) ListAll(ctx context.Context) ([]model.Conversation, error) {
	keys, err := r.redisClient.Keys(ctx, "conversation:*").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to scan conversation keys: %w", err)
	}
	conversations := make([]model.Conversation, 0, len(keys))
	for _, k := range keys {
		jsonData, getErr := r.redisClient.Get(ctx, k).Result()
		if getErr != nil {
			// 键在扫描和读取之间被删除时跳过
			continue
		}
		var conv model.Conversation
		if err := json.Unmarshal([]byte(jsonData), &conv); err != nil {
			continue
		}
		conversations = append(conversations, conv)
	}
	return conversations, nil
}
