package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ccw7463/google-rss-mcp/model"
)

// Resource URI constants
const (
	TopicsResourceURI       = "news://topics"
	headlinesResourcePrefix = "news://headlines/"

	// JSONMIMEType is the MIME type for all resources served here
	JSONMIMEType = "application/json"
)

// addResourceHandlers registers the topics listing resource and one
// headlines resource per supported topic
func (s *Server) addResourceHandlers(srv *mcp.Server) {
	srv.AddResource(&mcp.Resource{
		URI:         TopicsResourceURI,
		Name:        "Supported Topics",
		Description: "List of supported Google News topic names",
		MIMEType:    JSONMIMEType,
	}, s.handleTopicsResource)

	for _, topic := range model.Topics() {
		srv.AddResource(&mcp.Resource{
			URI:         headlinesResourcePrefix + topic.String(),
			Name:        fmt.Sprintf("Headlines: %s", topic),
			Description: fmt.Sprintf("Current Google News headlines for the %s topic", topic),
			MIMEType:    JSONMIMEType,
		}, s.handleHeadlinesResource)
	}
}

// handleTopicsResource serves the static list of supported topics
func (s *Server) handleTopicsResource(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	names := model.TopicNames()
	data, err := json.Marshal(map[string]any{
		"topics": names,
		"count":  len(names),
	})
	if err != nil {
		return nil, model.NewNewsErrorWithCause(model.ErrorKindInternal, "Failed to marshal topics", err).
			WithOperation("read_resource").
			WithComponent("mcp_server")
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: req.Params.URI, MIMEType: JSONMIMEType, Text: string(data)},
		},
	}, nil
}

// handleHeadlinesResource serves a fresh headlines fetch for the topic
// encoded in the resource URI
func (s *Server) handleHeadlinesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	topicName, ok := strings.CutPrefix(req.Params.URI, headlinesResourcePrefix)
	if !ok || topicName == "" {
		return nil, model.NewNewsError(model.ErrorKindUnknownResource,
			fmt.Sprintf("Unknown resource URI: %s", req.Params.URI)).
			WithOperation("read_resource").
			WithComponent("mcp_server")
	}

	result, err := s.headlines.TopicHeadlines(ctx, topicName, 0)
	if err != nil {
		if model.IsInvalidArgument(err) {
			return nil, model.NewNewsErrorWithCause(model.ErrorKindUnknownResource,
				fmt.Sprintf("Unknown resource URI: %s", req.Params.URI), err).
				WithOperation("read_resource").
				WithComponent("mcp_server")
		}
		return nil, err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, model.NewNewsErrorWithCause(model.ErrorKindInternal, "Failed to marshal headlines", err).
			WithOperation("read_resource").
			WithComponent("mcp_server")
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: req.Params.URI, MIMEType: JSONMIMEType, Text: string(data)},
		},
	}, nil
}
