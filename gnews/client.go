// Package gnews fetches and parses Google News RSS feeds by topic or keyword.
package gnews

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/ccw7463/google-rss-mcp/model"
)

const (
	defaultBaseURL   = "https://news.google.com/rss"
	defaultLanguage  = "en"
	defaultRegion    = "US"
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// DefaultMaxResults is used when a caller does not specify a limit
	DefaultMaxResults = 5

	// Upper bound on feed bodies; Google News feeds are well under this.
	maxFeedBytes = 10 << 20
)

// Config holds the configuration for creating a news client
type Config struct {
	BaseURL    string
	Language   string
	Region     string
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client fetches Google News RSS feeds. Safe for concurrent use: it holds no
// per-call state and every fetch is self-contained.
type Client struct {
	baseURL    string
	language   string
	region     string
	userAgent  string
	httpClient *http.Client
	parser     *gofeed.Parser
	logger     *zap.Logger
}

// NewClient creates a news client, applying defaults for unset fields
func NewClient(config Config) (*Client, error) {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Language == "" {
		config.Language = defaultLanguage
	}
	if config.Region == "" {
		config.Region = defaultRegion
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if config.UserAgent == "" {
		config.UserAgent = defaultUserAgent
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{Timeout: config.Timeout}
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, model.NewNewsErrorWithCause(model.ErrorKindConfiguration, "Invalid base URL", err).
			WithURL(config.BaseURL).
			WithOperation("create_client").
			WithComponent("gnews")
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		language:   config.Language,
		region:     config.Region,
		userAgent:  config.UserAgent,
		httpClient: config.HTTPClient,
		parser:     gofeed.NewParser(),
		logger:     config.Logger,
	}, nil
}

// Edition returns the Google News edition identifier, e.g. "US:en"
func (c *Client) Edition() string {
	return c.region + ":" + c.language
}

// TopicHeadlines fetches headlines for one of the supported topics.
// Records are returned in feed document order, truncated to limit.
func (c *Client) TopicHeadlines(ctx context.Context, topic string, limit int) (*model.HeadlinesResult, error) {
	parsed, err := model.ParseTopic(topic)
	if err != nil {
		return nil, err
	}
	limit, err = normalizeLimit(limit)
	if err != nil {
		return nil, err
	}

	feedURL := c.topicURL(parsed)
	feed, err := c.fetchFeed(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	return &model.HeadlinesResult{
		Topic:     parsed,
		Edition:   c.Edition(),
		FetchedAt: time.Now().UTC(),
		Articles:  articlesFromFeed(feed, limit),
	}, nil
}

// Search fetches articles matching a free-text keyword.
// Records are returned in feed document order, truncated to limit.
func (c *Client) Search(ctx context.Context, query string, limit int) (*model.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, model.NewNewsError(model.ErrorKindEmptyQuery, "Search keyword must not be empty").
			WithOperation("search_news").
			WithComponent("gnews")
	}
	limit, err := normalizeLimit(limit)
	if err != nil {
		return nil, err
	}

	feedURL := c.searchURL(query)
	feed, err := c.fetchFeed(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	return &model.SearchResult{
		Query:     query,
		Edition:   c.Edition(),
		FetchedAt: time.Now().UTC(),
		Articles:  articlesFromFeed(feed, limit),
	}, nil
}

// editionQuery returns the hl/gl/ceid parameters every Google News feed URL carries
func (c *Client) editionQuery() url.Values {
	q := url.Values{}
	q.Set("hl", c.language)
	q.Set("gl", c.region)
	q.Set("ceid", c.Edition())
	return q
}

// topicURL builds the feed URL for a topic. Top stories use the root feed,
// every other topic maps to a headline section.
func (c *Client) topicURL(topic model.Topic) string {
	q := c.editionQuery()
	if section := topic.Section(); section != "" {
		return fmt.Sprintf("%s/headlines/section/topic/%s?%s", c.baseURL, section, q.Encode())
	}
	return fmt.Sprintf("%s?%s", c.baseURL, q.Encode())
}

// searchURL builds the feed URL for a keyword search
func (c *Client) searchURL(query string) string {
	q := c.editionQuery()
	q.Set("q", query)
	return fmt.Sprintf("%s/search?%s", c.baseURL, q.Encode())
}

// fetchFeed performs a single GET and parses the body as a feed. One attempt
// per call, no retries: failures surface directly to the caller.
func (c *Client) fetchFeed(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, model.NewNewsErrorWithCause(model.ErrorKindInternal, "Failed to build feed request", err).
			WithURL(feedURL).
			WithOperation("fetch_feed").
			WithComponent("gnews")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, model.CreateNetworkError(err, feedURL)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, model.CreateHTTPError(resp, feedURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, model.CreateNetworkError(err, feedURL)
	}

	feed, err := c.parser.ParseString(string(body))
	if err != nil {
		return nil, model.CreateParsingError(err, feedURL)
	}

	c.logger.Debug("fetched feed",
		zap.String("url", feedURL),
		zap.Int("items", len(feed.Items)))

	return feed, nil
}

// articlesFromFeed converts feed items preserving document order, up to limit
func articlesFromFeed(feed *gofeed.Feed, limit int) []*model.Article {
	items := feed.Items
	if len(items) > limit {
		items = items[:limit]
	}
	articles := make([]*model.Article, 0, len(items))
	for _, item := range items {
		if a := model.FromGoFeedItem(item); a != nil {
			articles = append(articles, a)
		}
	}
	return articles
}

func normalizeLimit(limit int) (int, error) {
	if limit < 0 {
		return 0, model.NewNewsError(model.ErrorKindInvalidLimit,
			fmt.Sprintf("max_results must be positive, got %d", limit)).
			WithOperation("normalize_limit").
			WithComponent("gnews")
	}
	if limit == 0 {
		return DefaultMaxResults, nil
	}
	return limit, nil
}
