// Package agent runs an LLM-driven workflow over the news MCP tools.
// The model decides which tools to call; the agent executes them through
// the MCP client and feeds results back until the model produces an answer.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"github.com/ccw7463/google-rss-mcp/model"
)

const (
	defaultModel    = "gpt-4o-mini"
	defaultMaxTurns = 8
)

const systemPrompt = "You are a news assistant with access to Google News tools. " +
	"Use list_topics to discover topics, get_topic_headlines or search_news to find articles, " +
	"and read_article when the user wants the content of a specific story. " +
	"Answer from tool results only; if a tool fails, explain the failure instead of guessing."

// ToolCaller is the slice of the MCP client the agent needs
type ToolCaller interface {
	ListTools(ctx context.Context) ([]*mcp.Tool, error)
	CallTool(ctx context.Context, name string, args map[string]any) (string, error)
}

// ChatCompleter abstracts the chat completions endpoint so tests can script
// model turns without a live API
type ChatCompleter interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

type openaiCompleter struct {
	client openai.Client
}

func (c openaiCompleter) New(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}

// Config holds the configuration for creating an agent
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	MaxTurns int
	// Completer overrides APIKey/BaseURL with an explicit implementation
	Completer ChatCompleter
	Logger    *zap.Logger
}

// Agent drives the tool-calling conversation loop
type Agent struct {
	completer ChatCompleter
	tools     ToolCaller
	model     string
	maxTurns  int
	logger    *zap.Logger
}

// New creates an agent talking to the given tool caller
func New(config Config, tools ToolCaller) (*Agent, error) {
	if tools == nil {
		return nil, model.NewNewsError(model.ErrorKindConfiguration, "ToolCaller is required").
			WithOperation("create_agent").
			WithComponent("agent")
	}
	if config.Model == "" {
		config.Model = defaultModel
	}
	if config.MaxTurns <= 0 {
		config.MaxTurns = defaultMaxTurns
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	completer := config.Completer
	if completer == nil {
		if config.APIKey == "" {
			return nil, model.NewNewsError(model.ErrorKindConfiguration, "OpenAI API key is required").
				WithOperation("create_agent").
				WithComponent("agent")
		}
		opts := []option.RequestOption{option.WithAPIKey(config.APIKey)}
		if config.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(config.BaseURL))
		}
		completer = openaiCompleter{client: openai.NewClient(opts...)}
	}

	return &Agent{
		completer: completer,
		tools:     tools,
		model:     config.Model,
		maxTurns:  config.MaxTurns,
		logger:    config.Logger,
	}, nil
}

// Run answers a query by letting the model call news tools until it
// produces a final text answer
func (a *Agent) Run(ctx context.Context, query string) (string, error) {
	toolList, err := a.tools.ListTools(ctx)
	if err != nil {
		return "", err
	}
	toolParams, err := chatToolParams(toolList)
	if err != nil {
		return "", err
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
		openai.UserMessage(query),
	}

	for turn := 0; turn < a.maxTurns; turn++ {
		completion, err := a.completer.New(ctx, openai.ChatCompletionNewParams{
			Model:    openai.ChatModel(a.model),
			Messages: messages,
			Tools:    toolParams,
		})
		if err != nil {
			return "", model.NewNewsErrorWithCause(model.ErrorKindInternal, "Chat completion failed", err).
				WithOperation("run_agent").
				WithComponent("agent")
		}
		if len(completion.Choices) == 0 {
			return "", model.NewNewsError(model.ErrorKindInternal, "Chat completion returned no choices").
				WithOperation("run_agent").
				WithComponent("agent")
		}

		msg := completion.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			a.logger.Debug("agent finished", zap.Int("turns", turn+1))
			return msg.Content, nil
		}

		messages = append(messages, msg.ToParam())
		for _, call := range msg.ToolCalls {
			output := a.executeToolCall(ctx, call.Function.Name, call.Function.Arguments)
			messages = append(messages, openai.ToolMessage(output, call.ID))
		}
	}

	return "", model.NewNewsError(model.ErrorKindInternal,
		fmt.Sprintf("No final answer after %d turns", a.maxTurns)).
		WithOperation("run_agent").
		WithComponent("agent")
}

// executeToolCall runs one tool call and renders the outcome as text for the
// model. Failures go back as structured JSON so the model can recover.
func (a *Agent) executeToolCall(ctx context.Context, name, rawArgs string) string {
	a.logger.Debug("executing tool call", zap.String("tool", name))

	var args map[string]any
	if rawArgs != "" {
		if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
			return errorFeedback(model.NewNewsErrorWithCause(model.ErrorKindSchema,
				"Tool arguments were not valid JSON", err))
		}
	}

	output, err := a.tools.CallTool(ctx, name, args)
	if err != nil {
		a.logger.Warn("tool call failed", zap.String("tool", name), zap.Error(err))
		return errorFeedback(err)
	}
	return output
}

// errorFeedback renders an error as JSON the model can read
func errorFeedback(err error) string {
	var newsErr *model.NewsError
	if errors.As(err, &newsErr) {
		if data, marshalErr := json.Marshal(newsErr); marshalErr == nil {
			return string(data)
		}
	}
	data, _ := json.Marshal(map[string]string{"error": err.Error()})
	return string(data)
}

// chatToolParams converts MCP tool definitions into chat completion tool
// parameters, passing the input schemas through unchanged
func chatToolParams(tools []*mcp.Tool) ([]openai.ChatCompletionToolParam, error) {
	params := make([]openai.ChatCompletionToolParam, 0, len(tools))
	for _, tool := range tools {
		schema, err := schemaAsMap(tool.InputSchema)
		if err != nil {
			return nil, model.NewNewsErrorWithCause(model.ErrorKindInternal,
				fmt.Sprintf("Failed to convert schema for tool %s", tool.Name), err).
				WithOperation("run_agent").
				WithComponent("agent")
		}
		params = append(params, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        tool.Name,
				Description: openai.String(tool.Description),
				Parameters:  openai.FunctionParameters(schema),
			},
		})
	}
	return params, nil
}

func schemaAsMap(schema any) (map[string]any, error) {
	if schema == nil {
		return map[string]any{"type": "object"}, nil
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
