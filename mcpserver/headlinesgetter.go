package mcpserver

import (
	"context"

	"github.com/ccw7463/google-rss-mcp/model"
)

// HeadlinesGetter defines the interface for fetching topic headlines
type HeadlinesGetter interface {
	TopicHeadlines(ctx context.Context, topic string, limit int) (*model.HeadlinesResult, error)
}
