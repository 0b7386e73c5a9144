// Package mcpclient connects to a news MCP server and wraps its tools
// behind a typed API.
package mcpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/ccw7463/google-rss-mcp/model"
	"github.com/ccw7463/google-rss-mcp/version"
)

// Config holds the configuration for connecting to a news MCP server
type Config struct {
	// ServerCommand spawns the server as a subprocess speaking stdio
	ServerCommand []string
	// ServerURL connects to a streamable HTTP endpoint
	ServerURL string
	// Transport overrides ServerCommand/ServerURL with an explicit transport
	Transport mcp.Transport
	Logger    *zap.Logger
}

// Client wraps an MCP client session to the news server
type Client struct {
	session *mcp.ClientSession
	logger  *zap.Logger
}

// Connect establishes a session with the news MCP server
func Connect(ctx context.Context, config Config) (*Client, error) {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	transport := config.Transport
	switch {
	case transport != nil:
	case len(config.ServerCommand) > 0:
		transport = &mcp.CommandTransport{
			Command: exec.Command(config.ServerCommand[0], config.ServerCommand[1:]...),
		}
	case config.ServerURL != "":
		transport = &mcp.StreamableClientTransport{Endpoint: config.ServerURL}
	default:
		return nil, model.NewNewsError(model.ErrorKindConfiguration, "Either a server command or a server URL is required").
			WithOperation("connect").
			WithComponent("mcp_client")
	}

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "google-rss-mcp-client",
		Version: version.GetVersion(),
	}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, model.NewNewsErrorWithCause(model.ErrorKindConnectionFailed, "Failed to connect to MCP server", err).
			WithOperation("connect").
			WithComponent("mcp_client")
	}

	config.Logger.Debug("connected to MCP server")

	return &Client{session: session, logger: config.Logger}, nil
}

// Close terminates the session
func (c *Client) Close() error {
	return c.session.Close()
}

// ListTools returns the tools the server exposes
func (c *Client) ListTools(ctx context.Context) ([]*mcp.Tool, error) {
	result, err := c.session.ListTools(ctx, nil)
	if err != nil {
		return nil, model.NewNewsErrorWithCause(model.ErrorKindInternal, "Failed to list tools", err).
			WithOperation("list_tools").
			WithComponent("mcp_client")
	}
	return result.Tools, nil
}

// CallTool invokes a tool by name and returns the concatenated text content.
// Tool-level failures are decoded back into structured errors when the
// server sent one.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	c.logger.Debug("calling tool", zap.String("tool", name))

	result, err := c.session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		if c.isUnknownTool(ctx, name) {
			return "", model.NewNewsErrorWithCause(model.ErrorKindUnknownTool,
				fmt.Sprintf("Tool %s is not registered on the server", name), err).
				WithOperation("call_tool").
				WithComponent("mcp_client")
		}
		return "", model.NewNewsErrorWithCause(model.ErrorKindInternal, fmt.Sprintf("Tool call %s failed", name), err).
			WithOperation("call_tool").
			WithComponent("mcp_client")
	}

	text := contentText(result.Content)
	if result.IsError {
		var newsErr model.NewsError
		if json.Unmarshal([]byte(text), &newsErr) == nil && newsErr.Kind != "" {
			return "", &newsErr
		}
		return "", model.NewNewsError(model.ErrorKindUnknown, text).
			WithOperation("call_tool").
			WithComponent("mcp_client")
	}
	return text, nil
}

// CallToolJSON invokes a tool and unmarshals its text content into v
func (c *Client) CallToolJSON(ctx context.Context, name string, args map[string]any, v any) error {
	text, err := c.CallTool(ctx, name, args)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return model.NewNewsErrorWithCause(model.ErrorKindInternal,
			fmt.Sprintf("Tool %s returned unexpected content", name), err).
			WithOperation("call_tool").
			WithComponent("mcp_client")
	}
	return nil
}

// ListTopics returns the supported topic names
func (c *Client) ListTopics(ctx context.Context) ([]string, error) {
	var topics []string
	if err := c.CallToolJSON(ctx, "list_topics", nil, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

// TopicHeadlines fetches headlines for a topic through the server
func (c *Client) TopicHeadlines(ctx context.Context, topic string, maxResults int) (*model.HeadlinesResult, error) {
	args := map[string]any{"topic": topic}
	if maxResults > 0 {
		args["max_results"] = maxResults
	}
	var result model.HeadlinesResult
	if err := c.CallToolJSON(ctx, "get_topic_headlines", args, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchNews searches for articles matching a keyword through the server
func (c *Client) SearchNews(ctx context.Context, query string, maxResults int) (*model.SearchResult, error) {
	args := map[string]any{"query": query}
	if maxResults > 0 {
		args["max_results"] = maxResults
	}
	var result model.SearchResult
	if err := c.CallToolJSON(ctx, "search_news", args, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ReadArticle fetches extracted article text through the server
func (c *Client) ReadArticle(ctx context.Context, articleURL string, maxChars int) (*model.ArticleContent, error) {
	args := map[string]any{"url": articleURL}
	if maxChars > 0 {
		args["max_chars"] = maxChars
	}
	var content model.ArticleContent
	if err := c.CallToolJSON(ctx, "read_article", args, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

// isUnknownTool checks a failed call against the server's advertised tool
// list, which classifies unknown names without parsing error strings
func (c *Client) isUnknownTool(ctx context.Context, name string) bool {
	result, err := c.session.ListTools(ctx, nil)
	if err != nil {
		return false
	}
	for _, tool := range result.Tools {
		if tool.Name == name {
			return false
		}
	}
	return true
}

func contentText(content []mcp.Content) string {
	var parts []string
	for _, block := range content {
		if text, ok := block.(*mcp.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, "\n")
}
