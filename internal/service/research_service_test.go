package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"research-agent-go/pkg/extract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSearch 返回固定的 URL 列表或错误。
type fakeSearch struct {
	urls []string
	err  error
}

func (f *fakeSearch) Search(ctx context.Context, query string, num int) ([]string, error) {
	return f.urls, f.err
}

// fakeExtractor 按 URL 返回预设的文档或失败，并可注入延迟以打乱完成顺序。
type fakeExtractor struct {
	docs   map[string]extract.Document
	delays map[string]time.Duration
}

func (f *fakeExtractor) Extract(ctx context.Context, pageURL string) (extract.Document, error) {
	if d, ok := f.delays[pageURL]; ok {
		time.Sleep(d)
	}
	doc, ok := f.docs[pageURL]
	if !ok {
		return extract.Document{}, fmt.Errorf("抽取失败: %s", pageURL)
	}
	return doc, nil
}

// fakeSummarizer 记录收到的内容并返回固定回答。
type fakeSummarizer struct {
	answer      string
	err         error
	gotContent  string
	gotQuery    string
	invocations int
}

func (f *fakeSummarizer) Summarize(ctx context.Context, content, query string) (string, error) {
	f.invocations++
	f.gotContent = content
	f.gotQuery = query
	return f.answer, f.err
}

func TestResearchStrictModeNoSearchResults(t *testing.T) {
	caps := Capabilities{
		Search:     &fakeSearch{urls: nil},
		Extractor:  &fakeExtractor{},
		Summarizer: &fakeSummarizer{answer: "ok"},
	}
	svc := NewResearchService(caps, ModeStrict, 5)

	_, _, err := svc.Research(context.Background(), "golang history")
	assert.ErrorIs(t, err, ErrNoSourcesFound)
}

func TestResearchStrictModeSearchUnconfigured(t *testing.T) {
	caps := Capabilities{Extractor: &fakeExtractor{}}
	svc := NewResearchService(caps, ModeStrict, 5)

	_, _, err := svc.Research(context.Background(), "golang history")
	assert.ErrorIs(t, err, ErrNoSourcesFound)
}

func TestResearchDegradedModeUsesDemoContent(t *testing.T) {
	// 搜索与摘要能力均未配置：演示 URL + 演示来源 + 演示回答
	caps := Capabilities{Extractor: &fakeExtractor{}}
	svc := NewResearchService(caps, ModeDegraded, 5)

	answer, sources, err := svc.Research(context.Background(), "golang history")
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "https://example.com/demo", sources[0].URL)
	assert.Equal(t, "Demo Content", sources[0].Title)
	assert.Equal(t, []string{"Demo Author"}, sources[0].Authors)
	assert.Nil(t, sources[0].PublishDate)
	assert.Contains(t, answer, `Demo Response for: "golang history"`)
	assert.Contains(t, answer, fmt.Sprintf("Content length: %d characters", len(demoCombinedContent)))
}

func TestResearchDegradedModeEmptySearchFallsBackToDemo(t *testing.T) {
	summarizer := &fakeSummarizer{answer: "summary"}
	caps := Capabilities{
		Search:     &fakeSearch{urls: []string{}},
		Extractor:  &fakeExtractor{},
		Summarizer: summarizer,
	}
	svc := NewResearchService(caps, ModeDegraded, 5)

	_, sources, err := svc.Research(context.Background(), "anything")
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "https://example.com/demo", sources[0].URL)
	// 演示轮不做真实抽取，但演示内容仍会送入摘要
	assert.Equal(t, 1, summarizer.invocations)
	assert.Equal(t, demoCombinedContent, summarizer.gotContent)
}

func TestResearchSearchFailureTreatedAsZeroResults(t *testing.T) {
	caps := Capabilities{
		Search:     &fakeSearch{err: errors.New("upstream 500")},
		Extractor:  &fakeExtractor{},
		Summarizer: &fakeSummarizer{answer: "ok"},
	}
	svc := NewResearchService(caps, ModeStrict, 5)

	_, _, err := svc.Research(context.Background(), "q")
	assert.ErrorIs(t, err, ErrNoSourcesFound)
}

func TestResearchPerURLFailureIsolation(t *testing.T) {
	urls := []string{"https://a.example/1", "https://b.example/2", "https://c.example/3"}
	summarizer := &fakeSummarizer{answer: "summary"}
	caps := Capabilities{
		Search: &fakeSearch{urls: urls},
		Extractor: &fakeExtractor{
			// 第二个 URL 缺席即抽取失败
			docs: map[string]extract.Document{
				urls[0]: {Text: "text one", Title: "One"},
				urls[2]: {Text: "text three", Title: "Three"},
			},
		},
		Summarizer: summarizer,
	}
	svc := NewResearchService(caps, ModeStrict, 5)

	answer, sources, err := svc.Research(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "summary", answer)

	require.Len(t, sources, 2)
	assert.Equal(t, urls[0], sources[0].URL)
	assert.Equal(t, urls[2], sources[1].URL)

	assert.Contains(t, summarizer.gotContent, "--- CONTENT FROM https://a.example/1 ---\ntext one\n\n")
	assert.Contains(t, summarizer.gotContent, "--- CONTENT FROM https://c.example/3 ---\ntext three\n\n")
	assert.NotContains(t, summarizer.gotContent, urls[1])
}

func TestResearchAccumulationPreservesInputOrder(t *testing.T) {
	// 第一个 URL 最慢，完成顺序与输入顺序相反，合并结果仍按输入顺序
	urls := []string{"https://slow.example", "https://mid.example", "https://fast.example"}
	summarizer := &fakeSummarizer{answer: "summary"}
	caps := Capabilities{
		Search: &fakeSearch{urls: urls},
		Extractor: &fakeExtractor{
			docs: map[string]extract.Document{
				urls[0]: {Text: "slow text"},
				urls[1]: {Text: "mid text"},
				urls[2]: {Text: "fast text"},
			},
			delays: map[string]time.Duration{
				urls[0]: 60 * time.Millisecond,
				urls[1]: 30 * time.Millisecond,
			},
		},
		Summarizer: summarizer,
	}
	svc := NewResearchService(caps, ModeStrict, 5)

	_, sources, err := svc.Research(context.Background(), "q")
	require.NoError(t, err)

	require.Len(t, sources, 3)
	for i, u := range urls {
		assert.Equal(t, u, sources[i].URL)
	}
	slowIdx := strings.Index(summarizer.gotContent, "slow text")
	midIdx := strings.Index(summarizer.gotContent, "mid text")
	fastIdx := strings.Index(summarizer.gotContent, "fast text")
	assert.True(t, slowIdx < midIdx && midIdx < fastIdx,
		"合并内容应按输入 URL 顺序排列, got: %s", summarizer.gotContent)
}

func TestResearchAllExtractionsFail(t *testing.T) {
	caps := Capabilities{
		Search:     &fakeSearch{urls: []string{"https://a.example", "https://b.example"}},
		Extractor:  &fakeExtractor{}, // 没有任何 URL 能成功
		Summarizer: &fakeSummarizer{answer: "ok"},
	}
	svc := NewResearchService(caps, ModeStrict, 5)

	_, _, err := svc.Research(context.Background(), "q")
	assert.ErrorIs(t, err, ErrNoContentExtracted)
}

func TestResearchSummarizerFailureAbsorbed(t *testing.T) {
	caps := Capabilities{
		Search: &fakeSearch{urls: []string{"https://a.example"}},
		Extractor: &fakeExtractor{
			docs: map[string]extract.Document{"https://a.example": {Text: "body"}},
		},
		Summarizer: &fakeSummarizer{err: errors.New("model overloaded")},
	}
	svc := NewResearchService(caps, ModeStrict, 5)

	answer, sources, err := svc.Research(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, summarizeFailedAnswer, answer)
	assert.Len(t, sources, 1)
}

func TestResearchSummarizerUnconfiguredReturnsDemoMessage(t *testing.T) {
	caps := Capabilities{
		Search: &fakeSearch{urls: []string{"https://a.example"}},
		Extractor: &fakeExtractor{
			docs: map[string]extract.Document{"https://a.example": {Text: "real body"}},
		},
	}
	svc := NewResearchService(caps, ModeDegraded, 5)

	answer, _, err := svc.Research(context.Background(), "what is go")
	require.NoError(t, err)
	assert.Contains(t, answer, `Demo Response for: "what is go"`)
	assert.Contains(t, answer, "Google API key is not configured")
}
