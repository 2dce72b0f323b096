package service

import (
	"research-agent-go/internal/repository"
	"research-agent-go/pkg/extract"
	"research-agent-go/pkg/search"
	"research-agent-go/pkg/summarize"
)

// OperationMode 是研究管道的运行模式，在启动时确定并显式注入。
type OperationMode string

const (
	// ModeStrict 表示外部能力缺失或无结果时硬失败。
	ModeStrict OperationMode = "strict"
	// ModeDegraded 表示外部能力缺失时以固定的演示数据替代，请求不失败。
	ModeDegraded OperationMode = "degraded"
)

// Capabilities 汇集进程启动时构建的全部外部能力句柄。
// 字段为 nil 表示对应能力未配置；启动后只读，可被任意请求共享。
type Capabilities struct {
	Search     search.Client                     // SerpAPI，密钥缺失时为 nil
	Extractor  extract.Extractor                 // 正文抽取，无凭证要求，始终存在
	Summarizer summarize.Client                  // Gemini，密钥缺失时为 nil
	Store      repository.ConversationRepository // Redis，未配置或连接失败时为 nil
}

// SearchConfigured 报告搜索能力是否可用。
func (c Capabilities) SearchConfigured() bool { return c.Search != nil }

// SummarizerConfigured 报告摘要能力是否可用。
func (c Capabilities) SummarizerConfigured() bool { return c.Summarizer != nil }

// StoreConfigured 报告持久化能力是否可用。
func (c Capabilities) StoreConfigured() bool { return c.Store != nil }

// FullyConfigured 报告是否所有外部能力均已配置。
func (c Capabilities) FullyConfigured() bool {
	return c.SearchConfigured() && c.SummarizerConfigured() && c.StoreConfigured()
}

// MissingServices 返回未配置能力的描述列表，用于启动时的告警输出。
func (c Capabilities) MissingServices() []string {
	var missing []string
	if !c.StoreConfigured() {
		missing = append(missing, "Redis (REDIS_ADDR)")
	}
	if !c.SummarizerConfigured() {
		missing = append(missing, "Google Generative AI (GOOGLE_API_KEY)")
	}
	if !c.SearchConfigured() {
		missing = append(missing, "SerpAPI (SERPAPI_API_KEY)")
	}
	return missing
}

// ResolveMode 依据配置值和能力现状确定运行模式。
// 配置为 auto 时，所有能力齐备取 strict，否则取 degraded。
func ResolveMode(configured string, caps Capabilities) OperationMode {
	switch configured {
	case string(ModeStrict):
		return ModeStrict
	case string(ModeDegraded):
		return ModeDegraded
	default:
		if caps.FullyConfigured() {
			return ModeStrict
		}
		return ModeDegraded
	}
}
