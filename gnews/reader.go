package gnews

import (
	"bytes"
	"context"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	readability "github.com/go-shiori/go-readability"
	"github.com/gocolly/colly"
	"go.uber.org/zap"

	"github.com/ccw7463/google-rss-mcp/model"
)

// DefaultMaxChars caps extracted article text when the caller gives no limit
const DefaultMaxChars = 4000

var whitespaceRE = regexp.MustCompile(`\s+`)

// ReaderConfig holds the configuration for creating an article reader
type ReaderConfig struct {
	Timeout   time.Duration
	UserAgent string
	Logger    *zap.Logger
}

// Reader fetches article pages and extracts readable text
type Reader struct {
	timeout   time.Duration
	userAgent string
	logger    *zap.Logger
}

// NewReader creates an article reader, applying defaults for unset fields
func NewReader(config ReaderConfig) *Reader {
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if config.UserAgent == "" {
		config.UserAgent = defaultUserAgent
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &Reader{
		timeout:   config.Timeout,
		userAgent: config.UserAgent,
		logger:    config.Logger,
	}
}

// ReadArticle fetches the page at articleURL, following redirects, and
// extracts its readable text capped at maxChars characters.
func (r *Reader) ReadArticle(ctx context.Context, articleURL string, maxChars int) (*model.ArticleContent, error) {
	pageURL, err := validateArticleURL(articleURL)
	if err != nil {
		return nil, err
	}
	if maxChars < 0 {
		return nil, model.NewNewsError(model.ErrorKindInvalidLimit, "max_chars must be positive").
			WithOperation("read_article").
			WithComponent("reader")
	}
	if maxChars == 0 {
		maxChars = DefaultMaxChars
	}

	body, err := r.fetchPage(ctx, articleURL)
	if err != nil {
		return nil, err
	}

	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return nil, model.NewNewsErrorWithCause(model.ErrorKindExtraction, "Failed to extract readable content", err).
			WithURL(articleURL).
			WithOperation("read_article").
			WithComponent("reader")
	}

	text := whitespaceRE.ReplaceAllString(strings.TrimSpace(article.TextContent), " ")
	truncated := false
	if len(text) > maxChars {
		text = truncateString(text, maxChars) + "..."
		truncated = true
	}

	r.logger.Debug("extracted article",
		zap.String("url", articleURL),
		zap.Int("chars", len(text)),
		zap.Bool("truncated", truncated))

	return &model.ArticleContent{
		URL:       articleURL,
		Title:     article.Title,
		Content:   text,
		Truncated: truncated,
	}, nil
}

// truncateString cuts s to at most maxBytes bytes without splitting a rune
func truncateString(s string, maxBytes int) string {
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// fetchPage downloads the article page body. Redirects are followed by the
// collector, which covers the Google News article indirection for pages that
// redirect over plain HTTP. The collector has no context support, so
// cancellation is checked up front and the request timeout bounds the fetch.
func (r *Reader) fetchPage(ctx context.Context, articleURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, model.CreateNetworkError(err, articleURL).WithOperation("read_article")
	}

	c := colly.NewCollector(colly.UserAgent(r.userAgent))
	c.SetRequestTimeout(r.timeout)

	var body []byte
	c.OnResponse(func(response *colly.Response) {
		body = response.Body
	})

	if err := c.Visit(articleURL); err != nil {
		return nil, model.CreateNetworkError(err, articleURL).WithOperation("read_article")
	}
	if len(body) == 0 {
		return nil, model.NewNewsError(model.ErrorKindExtraction, "Article page returned no content").
			WithURL(articleURL).
			WithOperation("read_article").
			WithComponent("reader")
	}
	return body, nil
}

func validateArticleURL(articleURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(articleURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, model.NewNewsErrorWithCause(model.ErrorKindInvalidURL, "Article URL must be an absolute HTTP(S) URL", err).
			WithURL(articleURL).
			WithOperation("read_article").
			WithComponent("reader")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, model.NewNewsError(model.ErrorKindInvalidURL, "Only HTTP and HTTPS article URLs are supported").
			WithURL(articleURL).
			WithOperation("read_article").
			WithComponent("reader")
	}
	return u, nil
}
