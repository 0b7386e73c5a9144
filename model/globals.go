package model

// Globals holds the flags shared by every google-rss-mcp command.
type Globals struct {
	Version VersionFlag `name:"version" help:"Print the google-rss-mcp version and quit."`
}
