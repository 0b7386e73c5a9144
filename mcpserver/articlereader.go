package mcpserver

import (
	"context"

	"github.com/ccw7463/google-rss-mcp/model"
)

// ArticleReader defines the interface for fetching and extracting article text
type ArticleReader interface {
	ReadArticle(ctx context.Context, articleURL string, maxChars int) (*model.ArticleContent, error)
}
