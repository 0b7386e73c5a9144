package mcpserver

import (
	"context"

	"github.com/ccw7463/google-rss-mcp/model"
)

// NewsSearcher defines the interface for keyword search over news feeds
type NewsSearcher interface {
	Search(ctx context.Context, query string, limit int) (*model.SearchResult, error)
}
