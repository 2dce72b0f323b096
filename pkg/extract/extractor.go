// Package extract 提供了从网页 URL 抽取正文与署名信息的能力。
package extract

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
)

// Document 代表一次成功抽取的结果。
type Document struct {
	Text        string
	Title       string
	PublishDate *string // ISO-8601，页面未声明时为 nil
	Authors     []string
}

// Extractor 定义了网页正文抽取器的接口。
// 单个 URL 的失败只影响该 URL，由调用方决定如何隔离。
type Extractor interface {
	Extract(ctx context.Context, pageURL string) (Document, error)
}

type readabilityExtractor struct {
	client *http.Client
}

// NewExtractor 创建一个基于 go-readability 的抽取器实例。
func NewExtractor() Extractor {
	return &readabilityExtractor{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Extract 拉取页面并解析出可读正文。正文为空视为抽取失败。
func (e *readabilityExtractor) Extract(ctx context.Context, pageURL string) (Document, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Document{}, fmt.Errorf("无效的 URL: %s", pageURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Document{}, fmt.Errorf("创建抽取请求失败: %w", err)
	}
	// 部分站点会拒绝无 UA 的请求
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; research-agent/1.0)")

	resp, err := e.client.Do(req)
	if err != nil {
		return Document{}, fmt.Errorf("拉取页面失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Document{}, fmt.Errorf("页面返回错误 [%d]: %s", resp.StatusCode, pageURL)
	}

	article, err := readability.FromReader(resp.Body, parsed)
	if err != nil {
		return Document{}, fmt.Errorf("解析页面正文失败: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return Document{}, fmt.Errorf("页面无可读正文: %s", pageURL)
	}

	doc := Document{
		Text:    text,
		Title:   article.Title,
		Authors: parseByline(article.Byline),
	}
	if article.PublishedTime != nil {
		d := article.PublishedTime.UTC().Format(time.RFC3339)
		doc.PublishDate = &d
	}
	return doc, nil
}

// parseByline 将署名行拆分为作者列表，例如 "By Alice, Bob and Carol"。
func parseByline(byline string) []string {
	byline = strings.TrimSpace(byline)
	byline = strings.TrimPrefix(byline, "By ")
	byline = strings.TrimPrefix(byline, "by ")
	if byline == "" {
		return []string{}
	}
	byline = strings.ReplaceAll(byline, " and ", ",")
	parts := strings.Split(byline, ",")
	authors := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			authors = append(authors, name)
		}
	}
	return authors
}
