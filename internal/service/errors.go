// Package service 包含了应用的业务逻辑层。
package service

import "errors"

// 业务层哨兵错误。被吸收的单次调用失败不在此列，
// 只有让整个请求无法产出可用结果的情况才会上抛。
var (
	// ErrInvalidQuery 表示请求中缺少查询文本。
	ErrInvalidQuery = errors.New("query is required")
	// ErrStoreUnavailable 表示会话持久化能力未配置。
	ErrStoreUnavailable = errors.New("conversation store is not available")
	// ErrNoSourcesFound 表示搜索阶段没有产出任何候选 URL（严格模式）。
	ErrNoSourcesFound = errors.New("no relevant web sources found")
	// ErrNoContentExtracted 表示抽取阶段没有产出任何可用正文。
	ErrNoContentExtracted = errors.New("no content could be extracted from web sources")
)
