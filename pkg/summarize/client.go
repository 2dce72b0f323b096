// Package summarize 提供了一个基于 Google 生成式模型的内容摘要客户端。
package summarize

import (
	"context"
	"fmt"

	"research-agent-go/internal/config"

	"google.golang.org/genai"
)

// Client 定义了摘要客户端的接口。
type Client interface {
	// Summarize 基于合并后的网页内容，针对用户查询生成一段 Markdown 格式的回答。
	Summarize(ctx context.Context, content, query string) (string, error)
}

type geminiClient struct {
	client *genai.Client
	model  string
}

// NewClient 创建一个新的摘要客户端实例。
func NewClient(ctx context.Context, cfg config.GenAIConfig) (Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 GenAI 客户端失败: %w", err)
	}
	return &geminiClient{client: client, model: cfg.Model}, nil
}

// Summarize 调用 Gemini 生成针对查询的引用式摘要。
func (c *geminiClient) Summarize(ctx context.Context, content, query string) (string, error) {
	prompt := fmt.Sprintf(`Based on the following web content, provide a clear and comprehensive answer to the user's query.
Instructions:
1. First, provide a direct, concise summary that immediately answers the user's question.
2. Then, create a section with bullet points detailing the most important findings, facts, or key takeaways.
3. Use Markdown for formatting (e.g., **bold**, *italics*, bullet points).
USER QUERY: "%s"
COMBINED WEB CONTENT:
%s`, query, content)

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("调用生成式模型失败: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("生成式模型返回了空响应")
	}
	return text, nil
}
