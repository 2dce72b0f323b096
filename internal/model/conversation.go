// Package model 包含了应用的数据模型定义。
package model

// 消息角色常量。一次研究会话固定为一条 user 消息加一条 model 消息。
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Source 代表一篇被成功抽取并纳入回答的网络文档的来源信息。
// 由抽取步骤创建，创建后不再修改。
type Source struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	PublishDate *string  `json:"publish_date"` // ISO-8601，未知时为 null
	Authors     []string `json:"authors"`
}

// Message 代表会话中的一条消息。
// user 消息只携带查询文本；model 消息携带摘要文本和实际抽取到的来源列表。
type Message struct {
	ID      string   `json:"id"`
	Role    string   `json:"role"` // "user" 或 "model"
	Content string   `json:"content"`
	Sources []Source `json:"sources,omitempty"`
}

// Conversation 代表一次完整的问答研究会话，创建后不可变。
// 不变式：messages[0] 为 user 消息，messages[1] 为 model 消息，顺序端到端保持。
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt string    `json:"createdAt"` // ISO-8601 UTC
}

// ConversationMeta 是 Conversation 在列表接口上的投影，没有独立生命周期。
type ConversationMeta struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
