package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"research-agent-go/internal/model"
	"research-agent-go/pkg/extract"
	"research-agent-go/pkg/log"

	"golang.org/x/sync/errgroup"
)

// 各外部调用的超时上限。源系统未约定超时，这里作为加固措施补充。
const (
	searchTimeout    = 10 * time.Second
	extractTimeout   = 15 * time.Second
	summarizeTimeout = 60 * time.Second

	// 并发抽取的上限，抽取结果始终按输入 URL 顺序合并
	extractConcurrency = 5
)

// 演示模式下替代真实搜索结果的固定 URL 列表。
var demoURLs = []string{
	"https://en.wikipedia.org/wiki/Main_Page",
	"https://www.example.com",
}

// 演示模式下替代真实抽取的固定来源。
const demoSourceURL = "https://example.com/demo"

const demoCombinedContent = `--- SAMPLE CONTENT FOR DEMO ---
This is sample content that would normally be scraped from web sources.
In a real environment with proper API keys and internet access, this would contain
actual content from relevant web pages related to the user's query.

The AI research agent would normally:
1. Search the web using SerpAPI
2. Scrape content from relevant pages
3. Process and summarize the information
4. Return a comprehensive response with sources
`

// 摘要能力不可用或调用失败时的固定文案。
const (
	emptyContentAnswer    = "No content was scraped to summarize."
	summarizeFailedAnswer = "Failed to generate summary due to an AI model error."
)

// ResearchService 定义了端到端的研究管道：搜索 → 抽取 → 摘要。
type ResearchService interface {
	// Research 针对查询执行一次完整的研究，返回回答文本和实际使用的来源列表。
	Research(ctx context.Context, query string) (string, []model.Source, error)
}

type researchService struct {
	caps        Capabilities
	mode        OperationMode
	resultCount int
}

// NewResearchService 创建一个新的 ResearchService 实例。
// 运行模式在此显式注入，管道内部不做任何隐式的模式探测。
func NewResearchService(caps Capabilities, mode OperationMode, resultCount int) ResearchService {
	if resultCount <= 0 {
		resultCount = 5
	}
	return &researchService{caps: caps, mode: mode, resultCount: resultCount}
}

// Research 顺序执行三个阶段。单个 URL 或单次调用的失败在各阶段内部被吸收，
// 只有完全没有候选来源或完全没有可用正文时才让整个请求失败。
func (s *researchService) Research(ctx context.Context, query string) (string, []model.Source, error) {
	urls, demoRound, err := s.searchStep(ctx, query)
	if err != nil {
		return "", nil, err
	}

	combined, sources, err := s.extractStep(ctx, urls, demoRound)
	if err != nil {
		return "", nil, err
	}

	answer := s.summarizeStep(ctx, combined, query)
	return answer, sources, nil
}

// searchStep 获取候选 URL 列表。返回的 demoRound 标记本轮是否使用了演示数据，
// 抽取阶段据此跳过真实网络访问。
func (s *researchService) searchStep(ctx context.Context, query string) ([]string, bool, error) {
	if !s.caps.SearchConfigured() {
		if s.mode == ModeStrict {
			return nil, false, ErrNoSourcesFound
		}
		log.Infof("搜索能力未配置，使用演示 URL 列表, query: %s", query)
		return demoURLs, true, nil
	}

	searchCtx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	log.Infof("开始搜索, query: %s", query)
	urls, err := s.caps.Search.Search(searchCtx, query, s.resultCount)
	if err != nil {
		// 搜索调用失败与零结果同等对待
		log.Error("搜索调用失败", err)
		urls = nil
	}
	if len(urls) == 0 {
		if s.mode == ModeStrict {
			return nil, false, ErrNoSourcesFound
		}
		log.Warnf("搜索无结果，降级使用演示 URL 列表, query: %s", query)
		return demoURLs, true, nil
	}
	return urls, false, nil
}

// extractStep 并发抽取各 URL 的正文并按输入顺序合并。
// 每个 URL 的失败彼此隔离，只记录日志，不影响其余 URL。
func (s *researchService) extractStep(ctx context.Context, urls []string, demoRound bool) (string, []model.Source, error) {
	if demoRound {
		demoSource := model.Source{
			Title:   "Demo Content",
			URL:     demoSourceURL,
			Authors: []string{"Demo Author"},
		}
		return demoCombinedContent, []model.Source{demoSource}, nil
	}

	docs := make([]*extract.Document, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(extractConcurrency)
	for i, pageURL := range urls {
		g.Go(func() error {
			extractCtx, cancel := context.WithTimeout(gctx, extractTimeout)
			defer cancel()
			doc, err := s.caps.Extractor.Extract(extractCtx, pageURL)
			if err != nil {
				// 失败被吸收：该 URL 缺席，其余照常
				log.Warnf("抽取失败，跳过该来源, url: %s, err: %v", pageURL, err)
				return nil
			}
			docs[i] = &doc
			return nil
		})
	}
	_ = g.Wait()

	var combined strings.Builder
	sources := make([]model.Source, 0, len(urls))
	for i, doc := range docs {
		if doc == nil {
			continue
		}
		combined.WriteString(fmt.Sprintf("--- CONTENT FROM %s ---\n%s\n\n", urls[i], doc.Text))
		sources = append(sources, model.Source{
			Title:       doc.Title,
			URL:         urls[i],
			PublishDate: doc.PublishDate,
			Authors:     doc.Authors,
		})
	}

	if combined.Len() == 0 {
		return "", nil, ErrNoContentExtracted
	}
	log.Infof("抽取完成, 成功 %d/%d 个来源", len(sources), len(urls))
	return combined.String(), sources, nil
}

// summarizeStep 生成最终回答。摘要调用失败被吸收为固定的失败文案，
// 管道整体依然成功返回。
func (s *researchService) summarizeStep(ctx context.Context, content, query string) string {
	// 空内容在抽取阶段已被拦截，这里的保护只是避免空调用
	if content == "" {
		return emptyContentAnswer
	}

	if !s.caps.SummarizerConfigured() {
		return fmt.Sprintf(`**Demo Response for: "%s"**

⚠️ This is a demo response as the Google API key is not configured.

Based on your query "%s", here's what a typical response would look like:

**Key Points:**
- This is a placeholder response showing the expected format
- The actual response would contain relevant information from web sources
- AI-generated summaries would be provided here

**To get real responses:**
1. Configure your Google API key in the .env file
2. Restart the backend service

*Content length: %d characters from scraped sources*`, query, query, len(content))
	}

	summarizeCtx, cancel := context.WithTimeout(ctx, summarizeTimeout)
	defer cancel()

	log.Infof("开始生成摘要, query: %s, 内容长度: %d", query, len(content))
	answer, err := s.caps.Summarizer.Summarize(summarizeCtx, content, query)
	if err != nil {
		log.Error("摘要生成失败", err)
		return summarizeFailedAnswer
	}
	return answer
}
