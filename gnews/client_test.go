package gnews

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ccw7463/google-rss-mcp/model"
)

func rssDocument(items ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Google News</title><link>https://news.google.com</link>`)
	for _, item := range items {
		b.WriteString(item)
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}

func rssItem(title, link, published string) string {
	return fmt.Sprintf(`<item><title>%s</title><link>%s</link><pubDate>%s</pubDate></item>`,
		title, link, published)
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(Config{BaseURL: baseURL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(Config{})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if client.Edition() != "US:en" {
		t.Errorf("expected default edition US:en, got %q", client.Edition())
	}
	if client.baseURL != defaultBaseURL {
		t.Errorf("expected default base URL, got %q", client.baseURL)
	}
}

func TestTopicHeadlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/headlines/section/topic/WORLD" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("hl") != "en" || q.Get("gl") != "US" || q.Get("ceid") != "US:en" {
			t.Errorf("missing edition parameters in query: %s", r.URL.RawQuery)
		}
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
			t.Errorf("expected browser user agent, got %q", ua)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssDocument(
			rssItem("First story - Example Times", "https://example.com/1", "Fri, 14 Mar 2025 09:30:00 GMT"),
			rssItem("Second story - Daily Post", "https://example.com/2", "Fri, 14 Mar 2025 08:00:00 GMT"),
		))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	result, err := client.TopicHeadlines(context.Background(), "world", 10)
	if err != nil {
		t.Fatalf("TopicHeadlines failed: %v", err)
	}

	if result.Topic != model.TopicWorld {
		t.Errorf("expected topic world, got %q", result.Topic)
	}
	if result.Edition != "US:en" {
		t.Errorf("expected edition US:en, got %q", result.Edition)
	}
	if len(result.Articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(result.Articles))
	}
	// Feed document order is preserved
	if result.Articles[0].Title != "First story" || result.Articles[1].Title != "Second story" {
		t.Errorf("articles out of order: %q, %q", result.Articles[0].Title, result.Articles[1].Title)
	}
	for _, a := range result.Articles {
		if a.Title == "" {
			t.Error("expected non-empty title")
		}
		if u, err := url.Parse(a.Link); err != nil || u.Scheme == "" || u.Host == "" {
			t.Errorf("expected well-formed link, got %q", a.Link)
		}
	}
	if result.Articles[0].Source != "Example Times" {
		t.Errorf("unexpected source: %q", result.Articles[0].Source)
	}
}

func TestTopicHeadlinesTopUsesRootFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" && r.URL.Path != "" {
			t.Errorf("top stories should use the root feed, got path %s", r.URL.Path)
		}
		fmt.Fprint(w, rssDocument(rssItem("Top story - Wire", "https://example.com/top", "Fri, 14 Mar 2025 09:30:00 GMT")))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	result, err := client.TopicHeadlines(context.Background(), "top", 5)
	if err != nil {
		t.Fatalf("TopicHeadlines failed: %v", err)
	}
	if len(result.Articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(result.Articles))
	}
}

func TestTopicHeadlinesLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssDocument(
			rssItem("One - A", "https://example.com/1", "Fri, 14 Mar 2025 09:00:00 GMT"),
			rssItem("Two - B", "https://example.com/2", "Fri, 14 Mar 2025 08:00:00 GMT"),
			rssItem("Three - C", "https://example.com/3", "Fri, 14 Mar 2025 07:00:00 GMT"),
		))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	result, err := client.TopicHeadlines(context.Background(), "science", 2)
	if err != nil {
		t.Fatalf("TopicHeadlines failed: %v", err)
	}
	if len(result.Articles) != 2 {
		t.Fatalf("expected limit to cap results at 2, got %d", len(result.Articles))
	}
	if result.Articles[0].Title != "One" {
		t.Errorf("expected first document item first, got %q", result.Articles[0].Title)
	}
}

func TestInvalidTopicPerformsNoRequest(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.TopicHeadlines(context.Background(), "not-a-real-topic", 5)
	if err == nil {
		t.Fatal("expected error for unsupported topic")
	}
	if !model.IsInvalidArgument(err) {
		t.Errorf("expected invalid argument error, got %v", err)
	}
	if requests.Load() != 0 {
		t.Errorf("expected no HTTP request, got %d", requests.Load())
	}
}

func TestEmptyQueryPerformsNoRequest(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	for _, query := range []string{"", "   "} {
		_, err := client.Search(context.Background(), query, 5)
		if err == nil {
			t.Fatalf("expected error for query %q", query)
		}
		if !model.IsInvalidArgument(err) {
			t.Errorf("expected invalid argument error for query %q, got %v", query, err)
		}
	}
	if requests.Load() != 0 {
		t.Errorf("expected no HTTP request, got %d", requests.Load())
	}
}

func TestNegativeLimitRejected(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:0")
	_, err := client.TopicHeadlines(context.Background(), "world", -1)
	if !model.IsInvalidArgument(err) {
		t.Errorf("expected invalid argument error for negative limit, got %v", err)
	}
	_, err = client.Search(context.Background(), "golang", -3)
	if !model.IsInvalidArgument(err) {
		t.Errorf("expected invalid argument error for negative limit, got %v", err)
	}
}

func TestSearchEncodesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "golang generics & more" {
			t.Errorf("query not round-tripped, got %q", got)
		}
		fmt.Fprint(w, rssDocument(rssItem("Generics land - Gopher Weekly", "https://example.com/g", "Fri, 14 Mar 2025 09:00:00 GMT")))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	result, err := client.Search(context.Background(), "golang generics & more", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if result.Query != "golang generics & more" {
		t.Errorf("unexpected query in result: %q", result.Query)
	}
	if len(result.Articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(result.Articles))
	}
}

func TestUpstreamErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.TopicHeadlines(context.Background(), "business", 5)
	if err == nil {
		t.Fatal("expected error for 503 response")
	}
	if !model.IsFetchError(err) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	var ne *model.NewsError
	if !errors.As(err, &ne) {
		t.Fatal("expected a NewsError")
	}
	if ne.HTTPStatus != http.StatusServiceUnavailable {
		t.Errorf("expected HTTP status 503 on error, got %d", ne.HTTPStatus)
	}
}

func TestMalformedFeedIsError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"truncated xml", `<?xml version="1.0"?><rss version="2.0"><channel><item><title>broken`},
		{"not a feed", `<!DOCTYPE html><html><body>captcha page</body></html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			client := newTestClient(t, srv.URL)
			result, err := client.TopicHeadlines(context.Background(), "health", 5)
			if err == nil {
				t.Fatalf("expected error, got result with %d articles", len(result.Articles))
			}
			if !model.IsFetchError(err) {
				t.Errorf("expected fetch error, got %v", err)
			}
		})
	}
}

func TestConcurrentTopicFetchesAreIndependent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		section := "TOP"
		if parts := strings.Split(r.URL.Path, "/"); len(parts) > 1 {
			section = parts[len(parts)-1]
		}
		fmt.Fprint(w, rssDocument(
			rssItem(section+" story - Wire", "https://example.com/"+section, "Fri, 14 Mar 2025 09:00:00 GMT"),
		))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	topics := []string{"world", "business", "technology", "sports"}
	results := make([]*model.HeadlinesResult, len(topics))
	errs := make([]error, len(topics))

	var wg sync.WaitGroup
	for i, topic := range topics {
		wg.Add(1)
		go func(i int, topic string) {
			defer wg.Done()
			results[i], errs[i] = client.TopicHeadlines(context.Background(), topic, 5)
		}(i, topic)
	}
	wg.Wait()

	for i, topic := range topics {
		if errs[i] != nil {
			t.Fatalf("topic %s failed: %v", topic, errs[i])
		}
		parsed, _ := model.ParseTopic(topic)
		wantSection := parsed.Section()
		if len(results[i].Articles) != 1 {
			t.Fatalf("topic %s: expected 1 article, got %d", topic, len(results[i].Articles))
		}
		if !strings.HasPrefix(results[i].Articles[0].Title, wantSection) {
			t.Errorf("topic %s: got article %q from another topic's fetch", topic, results[i].Articles[0].Title)
		}
	}
}
