package model

import (
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Article represents a single Google News article parsed from one feed item.
// Immutable once created.
type Article struct {
	Title           string     `json:"title"`
	Link            string     `json:"link"`
	Published       string     `json:"published,omitempty"`
	PublishedParsed *time.Time `json:"publishedParsed,omitempty"`
	Source          string     `json:"source,omitempty"`
}

// HeadlinesResult represents the outcome of a topic headlines fetch
type HeadlinesResult struct {
	Topic     Topic      `json:"topic"`
	Edition   string     `json:"edition"`
	FetchedAt time.Time  `json:"fetched_at"`
	Articles  []*Article `json:"articles"`
}

// SearchResult represents the outcome of a keyword search fetch
type SearchResult struct {
	Query     string     `json:"query"`
	Edition   string     `json:"edition"`
	FetchedAt time.Time  `json:"fetched_at"`
	Articles  []*Article `json:"articles"`
}

// ArticleContent represents readable text extracted from an article page
type ArticleContent struct {
	URL       string `json:"url"`
	Title     string `json:"title,omitempty"`
	Content   string `json:"content"`
	Truncated bool   `json:"truncated,omitempty"`
}

// FromGoFeedItem converts a gofeed.Item to an Article
func FromGoFeedItem(item *gofeed.Item) *Article {
	if item == nil {
		return nil
	}

	title, source := splitGoogleNewsTitle(item.Title)
	if source == "" {
		source = hostOf(item.Link)
	}

	return &Article{
		Title:           title,
		Link:            item.Link,
		Published:       item.Published,
		PublishedParsed: item.PublishedParsed,
		Source:          source,
	}
}

// splitGoogleNewsTitle separates the publisher suffix Google News appends to
// item titles ("Headline - Publisher"). gofeed does not surface the RSS
// <source> element, so the suffix is the only reliable carrier.
func splitGoogleNewsTitle(title string) (headline, source string) {
	idx := strings.LastIndex(title, " - ")
	if idx <= 0 || idx+3 >= len(title) {
		return strings.TrimSpace(title), ""
	}
	return strings.TrimSpace(title[:idx]), strings.TrimSpace(title[idx+3:])
}

func hostOf(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
