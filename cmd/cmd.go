// Package cmd implements the CLI commands for the Google News MCP server,
// client, and agent.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ccw7463/google-rss-mcp/agent"
	"github.com/ccw7463/google-rss-mcp/gnews"
	"github.com/ccw7463/google-rss-mcp/logging"
	"github.com/ccw7463/google-rss-mcp/mcpclient"
	"github.com/ccw7463/google-rss-mcp/mcpserver"
	"github.com/ccw7463/google-rss-mcp/model"
)

// ServeCmd runs the MCP server over the selected transport
type ServeCmd struct {
	Transport string        `name:"transport" default:"stdio" enum:"stdio,http-with-sse" help:"Transport to use for the MCP server."`
	Timeout   time.Duration `name:"timeout" default:"30s" help:"Timeout for fetching feeds and article pages."`
	Language  string        `name:"language" default:"en" help:"Google News language code."`
	Region    string        `name:"region" default:"US" help:"Google News region code."`
	UserAgent string        `name:"user-agent" help:"Override the HTTP User-Agent header."`
	Debug     bool          `name:"debug" help:"Enable debug logging."`
}

func (c *ServeCmd) Run(globals *model.Globals) error {
	transport, err := model.ParseTransport(c.Transport)
	if err != nil {
		return err
	}

	logger, err := logging.New(c.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	client, err := gnews.NewClient(gnews.Config{
		Language:  c.Language,
		Region:    c.Region,
		Timeout:   c.Timeout,
		UserAgent: c.UserAgent,
		Logger:    logger.Named("gnews"),
	})
	if err != nil {
		return err
	}
	reader := gnews.NewReader(gnews.ReaderConfig{
		Timeout:   c.Timeout,
		UserAgent: c.UserAgent,
		Logger:    logger.Named("reader"),
	})

	server, err := mcpserver.NewServer(mcpserver.Config{
		Transport: transport,
		Headlines: client,
		Searcher:  client,
		Reader:    reader,
		Logger:    logger.Named("mcp"),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx)
}

// ClientCmd connects to a news MCP server and runs a smoke test against it
type ClientCmd struct {
	ServerURL  string   `name:"server-url" help:"Streamable HTTP endpoint of a running server."`
	Command    []string `arg:"" optional:"" name:"command" help:"Server command to spawn over stdio (defaults to this binary's serve command)."`
	Topic      string   `name:"topic" default:"top" help:"Topic to fetch headlines for."`
	MaxResults int      `name:"max-results" default:"5" help:"Maximum number of headlines to fetch."`
	Debug      bool     `name:"debug" help:"Enable debug logging."`
}

func (c *ClientCmd) Run(globals *model.Globals) error {
	logger, err := logging.New(c.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if c.ServerURL == "" && len(c.Command) == 0 {
		exe, err := os.Executable()
		if err != nil {
			return model.NewNewsErrorWithCause(model.ErrorKindConfiguration, "Cannot locate own binary to spawn server", err).
				WithOperation("run_client").
				WithComponent("cmd")
		}
		c.Command = []string{exe, "serve"}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := mcpclient.Connect(ctx, mcpclient.Config{
		ServerCommand: c.Command,
		ServerURL:     c.ServerURL,
		Logger:        logger.Named("client"),
	})
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	tools, err := client.ListTools(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Server exposes %d tools:\n", len(tools))
	for _, tool := range tools {
		fmt.Printf("  %s - %s\n", tool.Name, tool.Description)
	}

	topics, err := client.ListTopics(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\nSupported topics: %s\n", strings.Join(topics, ", "))

	headlines, err := client.TopicHeadlines(ctx, c.Topic, c.MaxResults)
	if err != nil {
		return err
	}
	fmt.Printf("\nHeadlines for %s (%s):\n", headlines.Topic, headlines.Edition)
	for i, article := range headlines.Articles {
		fmt.Printf("%d. %s", i+1, article.Title)
		if article.Source != "" {
			fmt.Printf(" (%s)", article.Source)
		}
		fmt.Println()
	}
	return nil
}

// AgentCmd answers a question by letting an LLM drive the news tools
type AgentCmd struct {
	Query     []string `arg:"" name:"query" help:"Question to answer using the news tools."`
	Model     string   `name:"model" default:"gpt-4o-mini" help:"Chat model to use."`
	MaxTurns  int      `name:"max-turns" default:"8" help:"Maximum tool-calling turns before giving up."`
	APIKey    string   `name:"api-key" env:"OPENAI_API_KEY" help:"OpenAI API key."`
	BaseURL   string   `name:"base-url" env:"OPENAI_BASE_URL" help:"Override the OpenAI API base URL."`
	ServerURL string   `name:"server-url" help:"Streamable HTTP endpoint of a running server (defaults to spawning one over stdio)."`
	Debug     bool     `name:"debug" help:"Enable debug logging."`
}

func (c *AgentCmd) Run(globals *model.Globals) error {
	// A .env file is optional; environment variables win
	_ = godotenv.Load()
	if c.APIKey == "" {
		c.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.APIKey == "" {
		return model.NewNewsError(model.ErrorKindConfiguration, "OpenAI API key is required (set OPENAI_API_KEY)").
			WithOperation("run_agent").
			WithComponent("cmd")
	}

	logger, err := logging.New(c.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config := mcpclient.Config{ServerURL: c.ServerURL, Logger: logger.Named("client")}
	if c.ServerURL == "" {
		exe, err := os.Executable()
		if err != nil {
			return model.NewNewsErrorWithCause(model.ErrorKindConfiguration, "Cannot locate own binary to spawn server", err).
				WithOperation("run_agent").
				WithComponent("cmd")
		}
		config.ServerCommand = []string{exe, "serve"}
	}

	client, err := mcpclient.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	newsAgent, err := agent.New(agent.Config{
		APIKey:   c.APIKey,
		BaseURL:  c.BaseURL,
		Model:    c.Model,
		MaxTurns: c.MaxTurns,
		Logger:   logger.Named("agent"),
	}, client)
	if err != nil {
		return err
	}

	query := strings.Join(c.Query, " ")
	logger.Info("running agent", zap.String("model", c.Model), zap.String("query", query))

	answer, err := newsAgent.Run(ctx, query)
	if err != nil {
		return err
	}
	fmt.Println(answer)
	return nil
}
