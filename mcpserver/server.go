// Package mcpserver implements the Model Context Protocol server for serving Google News headlines.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/ccw7463/google-rss-mcp/model"
	"github.com/ccw7463/google-rss-mcp/version"
)

// Tool names registered on the server
const (
	ToolListTopics        = "list_topics"
	ToolGetTopicHeadlines = "get_topic_headlines"
	ToolSearchNews        = "search_news"
	ToolReadArticle       = "read_article"
)

const serverInstructions = "Serves Google News RSS headlines. Use list_topics to discover topics, " +
	"get_topic_headlines or search_news to find articles, and read_article to fetch the text of one article."

var sessionCounter int64

// Config holds the configuration for creating a new MCP server
type Config struct {
	Headlines HeadlinesGetter
	Searcher  NewsSearcher
	Reader    ArticleReader
	Transport model.Transport
	Logger    *zap.Logger
}

// Server implements an MCP server exposing Google News lookups as tools
type Server struct {
	headlines HeadlinesGetter
	searcher  NewsSearcher
	reader    ArticleReader
	sessionID string
	transport model.Transport
	logger    *zap.Logger
}

// generateSessionID creates a unique session ID for this server instance
func generateSessionID() string {
	counter := atomic.AddInt64(&sessionCounter, 1)
	return fmt.Sprintf("google-rss-mcp-session-%d-%d", time.Now().UnixNano(), counter)
}

// NewServer creates a new MCP server with the given configuration
func NewServer(config Config) (*Server, error) {
	if config.Transport == model.UndefinedTransport {
		return nil, model.NewNewsError(model.ErrorKindTransport, "transport must be specified").
			WithOperation("create_server").
			WithComponent("mcp_server")
	}
	if config.Headlines == nil {
		return nil, model.NewNewsError(model.ErrorKindConfiguration, "HeadlinesGetter is required").
			WithOperation("create_server").
			WithComponent("mcp_server")
	}
	if config.Searcher == nil {
		return nil, model.NewNewsError(model.ErrorKindConfiguration, "NewsSearcher is required").
			WithOperation("create_server").
			WithComponent("mcp_server")
	}
	if config.Reader == nil {
		return nil, model.NewNewsError(model.ErrorKindConfiguration, "ArticleReader is required").
			WithOperation("create_server").
			WithComponent("mcp_server")
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &Server{
		transport: config.Transport,
		headlines: config.Headlines,
		searcher:  config.Searcher,
		reader:    config.Reader,
		sessionID: generateSessionID(),
		logger:    config.Logger,
	}, nil
}

// TopicHeadlinesParams contains parameters for the get_topic_headlines tool.
type TopicHeadlinesParams struct {
	Topic      string `json:"topic"`
	MaxResults int    `json:"max_results,omitempty"`
}

// SearchNewsParams contains parameters for the search_news tool.
type SearchNewsParams struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results,omitempty"`
}

// ReadArticleParams contains parameters for the read_article tool.
type ReadArticleParams struct {
	URL      string `json:"url"`
	MaxChars int    `json:"max_chars,omitempty"`
}

// newMCPServer builds the underlying MCP server with all tools, resources,
// and prompts registered. Split from Run so tests can connect over an
// in-memory transport.
func (s *Server) newMCPServer() *mcp.Server {
	srv := mcp.NewServer(
		&mcp.Implementation{
			Name:    "Google News RSS Server",
			Version: version.GetVersion(),
		},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
			HasResources: true,
		},
	)

	// Add list_topics tool
	listTopicsTool := &mcp.Tool{
		Name:        ToolListTopics,
		Description: "List the supported Google News topic names",
		InputSchema: &jsonschema.Schema{Type: "object"}, // No parameters needed
	}
	mcp.AddTool(srv, listTopicsTool, func(ctx context.Context, req *mcp.CallToolRequest, args any) (*mcp.CallToolResult, any, error) {
		return textResult(model.TopicNames())
	})

	// Add get_topic_headlines tool
	topicHeadlinesTool := &mcp.Tool{
		Name:        ToolGetTopicHeadlines,
		Description: "Get current Google News headlines for a topic",
		InputSchema: &jsonschema.Schema{
			Type:     "object",
			Required: []string{"topic"},
			Properties: map[string]*jsonschema.Schema{
				"topic": {
					Type:        "string",
					Description: "Topic to fetch headlines for",
					Enum:        topicEnum(),
				},
				"max_results": {
					Type:        "integer",
					Description: "Maximum number of articles to return (default 5)",
				},
			},
		},
	}
	mcp.AddTool(srv, topicHeadlinesTool, func(ctx context.Context, req *mcp.CallToolRequest, args TopicHeadlinesParams) (*mcp.CallToolResult, any, error) {
		result, err := s.headlines.TopicHeadlines(ctx, args.Topic, args.MaxResults)
		if err != nil {
			s.logger.Warn("tool call failed",
				zap.String("tool", ToolGetTopicHeadlines),
				zap.String("topic", args.Topic),
				zap.Error(err))
			return errorResult(err), nil, nil
		}
		return textResult(result)
	})

	// Add search_news tool
	searchNewsTool := &mcp.Tool{
		Name:        ToolSearchNews,
		Description: "Search Google News for articles matching a keyword",
		InputSchema: &jsonschema.Schema{
			Type:     "object",
			Required: []string{"query"},
			Properties: map[string]*jsonschema.Schema{
				"query": {
					Type:        "string",
					Description: "Search keyword or phrase",
				},
				"max_results": {
					Type:        "integer",
					Description: "Maximum number of articles to return (default 5)",
				},
			},
		},
	}
	mcp.AddTool(srv, searchNewsTool, func(ctx context.Context, req *mcp.CallToolRequest, args SearchNewsParams) (*mcp.CallToolResult, any, error) {
		result, err := s.searcher.Search(ctx, args.Query, args.MaxResults)
		if err != nil {
			s.logger.Warn("tool call failed",
				zap.String("tool", ToolSearchNews),
				zap.String("query", args.Query),
				zap.Error(err))
			return errorResult(err), nil, nil
		}
		return textResult(result)
	})

	// Add read_article tool
	readArticleTool := &mcp.Tool{
		Name:        ToolReadArticle,
		Description: "Fetch an article page and extract its readable text",
		InputSchema: &jsonschema.Schema{
			Type:     "object",
			Required: []string{"url"},
			Properties: map[string]*jsonschema.Schema{
				"url": {
					Type:        "string",
					Description: "Absolute HTTP(S) URL of the article",
				},
				"max_chars": {
					Type:        "integer",
					Description: "Maximum characters of extracted text to return (default 4000)",
				},
			},
		},
	}
	mcp.AddTool(srv, readArticleTool, func(ctx context.Context, req *mcp.CallToolRequest, args ReadArticleParams) (*mcp.CallToolResult, any, error) {
		content, err := s.reader.ReadArticle(ctx, args.URL, args.MaxChars)
		if err != nil {
			s.logger.Warn("tool call failed",
				zap.String("tool", ToolReadArticle),
				zap.String("url", args.URL),
				zap.Error(err))
			return errorResult(err), nil, nil
		}
		return textResult(content)
	})

	s.addResourceHandlers(srv)
	s.addPromptHandlers(srv)

	return srv
}

// Run starts the MCP server and handles client connections until context is canceled
func (s *Server) Run(ctx context.Context) error {
	srv := s.newMCPServer()

	s.logger.Info("starting MCP server",
		zap.String("transport", s.transport.String()),
		zap.String("version", version.GetVersion()))

	switch s.transport {
	case model.StdioTransport:
		return srv.Run(ctx, &mcp.StdioTransport{})
	case model.HTTPWithSSETransport:
		return srv.Run(ctx, &mcp.StreamableServerTransport{SessionID: s.sessionID})
	default:
		return model.NewNewsError(model.ErrorKindTransport, "unsupported transport").
			WithOperation("run_server").
			WithComponent("mcp_server")
	}
}

// topicEnum lists the supported topic values for the schema declaration,
// so clients can discover them without calling list_topics
func topicEnum() []any {
	names := model.TopicNames()
	values := make([]any, len(names))
	for i, name := range names {
		values[i] = name
	}
	return values
}

// textResult marshals v into a single text content block
func textResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}

// errorResult converts a failure into a tool-level error carrying the
// structured error as JSON, so callers can inspect the kind and suggestion
// instead of getting a bare protocol error.
func errorResult(err error) *mcp.CallToolResult {
	var newsErr *model.NewsError
	if !errors.As(err, &newsErr) {
		newsErr = model.NewNewsErrorWithCause(model.ErrorKindUnknown, err.Error(), err)
	}
	data, marshalErr := json.Marshal(newsErr)
	if marshalErr != nil {
		data = []byte(fmt.Sprintf(`{"message":%q}`, newsErr.Message))
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}
}
