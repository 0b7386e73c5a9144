package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ccw7463/google-rss-mcp/cmd"
	"github.com/ccw7463/google-rss-mcp/model"
	"github.com/ccw7463/google-rss-mcp/version"
)

var cli struct {
	model.Globals

	Serve  cmd.ServeCmd  `cmd:"" default:"1" help:"Run the MCP server."`
	Client cmd.ClientCmd `cmd:"" help:"Connect to a server and run a smoke test against its tools."`
	Agent  cmd.AgentCmd  `cmd:"" help:"Answer a question by letting an LLM drive the news tools."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("google-rss-mcp"),
		kong.Description("MCP server exposing Google News RSS feeds as tools."),
		kong.Vars{"version": version.GetFullVersion()},
	)
	if err := ctx.Run(&cli.Globals); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
