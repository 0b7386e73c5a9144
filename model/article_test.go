package model

import (
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

func TestFromGoFeedItem(t *testing.T) {
	published := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	item := &gofeed.Item{
		Title:           "Markets rally after rate decision - Example Times",
		Link:            "https://news.google.com/rss/articles/abc123",
		Published:       "Fri, 14 Mar 2025 09:30:00 GMT",
		PublishedParsed: &published,
	}

	article := FromGoFeedItem(item)
	if article.Title != "Markets rally after rate decision" {
		t.Errorf("unexpected title: %q", article.Title)
	}
	if article.Source != "Example Times" {
		t.Errorf("unexpected source: %q", article.Source)
	}
	if article.Link != item.Link {
		t.Errorf("unexpected link: %q", article.Link)
	}
	if article.Published != item.Published {
		t.Errorf("unexpected published: %q", article.Published)
	}
	if article.PublishedParsed == nil || !article.PublishedParsed.Equal(published) {
		t.Errorf("unexpected parsed published: %v", article.PublishedParsed)
	}
}

func TestFromGoFeedItemNoPublisherSuffix(t *testing.T) {
	item := &gofeed.Item{
		Title: "Headline without a publisher suffix",
		Link:  "https://example.com/story",
	}

	article := FromGoFeedItem(item)
	if article.Title != "Headline without a publisher suffix" {
		t.Errorf("title should be unchanged, got %q", article.Title)
	}
	if article.Source != "example.com" {
		t.Errorf("source should fall back to link host, got %q", article.Source)
	}
}

func TestFromGoFeedItemHyphenatedHeadline(t *testing.T) {
	// Only the last " - " separates the publisher
	item := &gofeed.Item{
		Title: "Win-win deal - a closer look - Daily Post",
		Link:  "https://example.com/deal",
	}

	article := FromGoFeedItem(item)
	if article.Title != "Win-win deal - a closer look" {
		t.Errorf("unexpected title: %q", article.Title)
	}
	if article.Source != "Daily Post" {
		t.Errorf("unexpected source: %q", article.Source)
	}
}

func TestFromGoFeedItemNil(t *testing.T) {
	if got := FromGoFeedItem(nil); got != nil {
		t.Errorf("expected nil for nil item, got %+v", got)
	}
}
