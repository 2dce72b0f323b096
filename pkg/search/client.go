// Package search 提供了一个与 SerpAPI 网络搜索服务交互的客户端。
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"research-agent-go/internal/config"
)

// Client 定义了网络搜索客户端的接口。
type Client interface {
	// Search 以查询词执行一次搜索，返回按相关性排序的结果 URL 列表。
	Search(ctx context.Context, query string, num int) ([]string, error)
}

type serpapiClient struct {
	cfg    config.SearchConfig
	client *http.Client
}

// NewClient 创建一个新的搜索客户端实例。
func NewClient(cfg config.SearchConfig) Client {
	return &serpapiClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// searchResponse 只解析我们关心的 organic_results[].link 字段。
type searchResponse struct {
	OrganicResults []struct {
		Link string `json:"link"`
	} `json:"organic_results"`
}

// Search 调用 SerpAPI 的 Google 引擎并返回自然结果的链接列表。
func (c *serpapiClient) Search(ctx context.Context, query string, num int) ([]string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("api_key", c.cfg.APIKey)
	params.Set("engine", c.cfg.Engine)
	params.Set("num", strconv.Itoa(num))

	endpoint := c.cfg.BaseURL + "/search.json?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("创建搜索请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("调用搜索服务失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("搜索服务返回错误 [%d]: %s", resp.StatusCode, string(body))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("解析搜索响应失败: %w", err)
	}

	urls := make([]string, 0, len(result.OrganicResults))
	for _, r := range result.OrganicResults {
		if r.Link != "" {
			urls = append(urls, r.Link)
		}
	}
	return urls, nil
}
