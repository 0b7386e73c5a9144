package mcpserver

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Prompt names registered on the server
const (
	PromptBriefing           = "briefing"
	PromptCoverageComparison = "coverage_comparison"
)

// How many articles a prompt pulls in for its context
const promptArticleLimit = 10

// addPromptHandlers registers the news prompts
func (s *Server) addPromptHandlers(srv *mcp.Server) {
	srv.AddPrompt(&mcp.Prompt{
		Name:        PromptBriefing,
		Description: "Produce a concise news briefing for a topic",
		Arguments: []*mcp.PromptArgument{
			{Name: "topic", Description: "Topic to brief on (defaults to top stories)", Required: false},
		},
	}, s.handleBriefingPrompt)

	srv.AddPrompt(&mcp.Prompt{
		Name:        PromptCoverageComparison,
		Description: "Compare how different outlets cover the same story",
		Arguments: []*mcp.PromptArgument{
			{Name: "query", Description: "Story or subject to compare coverage of", Required: true},
		},
	}, s.handleCoverageComparisonPrompt)
}

// handleBriefingPrompt fetches current headlines for a topic and asks the
// model to summarize them into a briefing
func (s *Server) handleBriefingPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic := getStringArg(req.Params.Arguments, "topic", "top")

	result, err := s.headlines.TopicHeadlines(ctx, topic, promptArticleLimit)
	if err != nil {
		return createErrorPromptResult(fmt.Sprintf("Failed to get headlines for '%s': %v", topic, err)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are the current Google News headlines for the %s topic (%s edition):\n\n", result.Topic, result.Edition)
	for i, article := range result.Articles {
		fmt.Fprintf(&b, "%d. %s", i+1, article.Title)
		if article.Source != "" {
			fmt.Fprintf(&b, " (%s)", article.Source)
		}
		if article.Published != "" {
			fmt.Fprintf(&b, " - %s", article.Published)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nWrite a concise briefing covering the major stories above. ")
	b.WriteString("Group related headlines together, lead with the most significant story, and keep it under 300 words.")

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("News briefing for topic: %s", result.Topic),
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: b.String()}},
		},
	}, nil
}

// handleCoverageComparisonPrompt searches for a story and asks the model to
// compare how the outlets that picked it up are framing it
func (s *Server) handleCoverageComparisonPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	query := getStringArg(req.Params.Arguments, "query", "")
	if query == "" {
		return createErrorPromptResult("Query parameter is required"), nil
	}

	result, err := s.searcher.Search(ctx, query, promptArticleLimit)
	if err != nil {
		return createErrorPromptResult(fmt.Sprintf("Failed to search for '%s': %v", query, err)), nil
	}

	bySource := make(map[string][]string)
	for _, article := range result.Articles {
		source := article.Source
		if source == "" {
			source = "Unknown"
		}
		bySource[source] = append(bySource[source], article.Title)
	}
	sources := make([]string, 0, len(bySource))
	for source := range bySource {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	var b strings.Builder
	fmt.Fprintf(&b, "Here is current coverage of %q grouped by outlet:\n\n", query)
	for _, source := range sources {
		fmt.Fprintf(&b, "%s:\n", source)
		for _, title := range bySource[source] {
			fmt.Fprintf(&b, "  - %s\n", title)
		}
	}
	b.WriteString("\nCompare how these outlets are covering the story. ")
	b.WriteString("Note differences in emphasis and framing, and flag any claims that appear in only one outlet's coverage.")

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Coverage comparison for: %s", query),
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: b.String()}},
		},
	}, nil
}

func createErrorPromptResult(errorMsg string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: "Error in prompt execution",
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: fmt.Sprintf("Error: %s\n\nPlease check your parameters and try again.", errorMsg),
				},
			},
		},
	}
}

func getStringArg(args map[string]string, key, defaultValue string) string {
	if val, ok := args[key]; ok && val != "" {
		return val
	}
	return defaultValue
}
