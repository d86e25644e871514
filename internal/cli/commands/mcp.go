package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"promptbook/internal/mcp"
)

// NewMcpCommand creates the mcp command group.
func NewMcpCommand(version string) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "MCP (Model Context Protocol) server management",
		Subcommands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start MCP server (stdio)",
				Action: func(c *cli.Context) error {
					st, err := openStore(c)
					if err != nil {
						return err
					}
					return mcp.ServeStdio(st, version)
				},
			},
			{
				Name:  "config",
				Usage: "Print MCP config example for clients",
				Action: func(c *cli.Context) error {
					cfg := map[string]interface{}{
						"mcpServers": map[string]interface{}{
							"promptbook": map[string]interface{}{
								"command": "promptbook",
								"args":    []string{"mcp", "serve"},
							},
						},
					}
					b, _ := json.MarshalIndent(cfg, "", "  ")
					fmt.Println(string(b))
					return nil
				},
			},
			{
				Name:  "tools",
				Usage: "List available MCP tools",
				Action: func(c *cli.Context) error {
					b, _ := json.MarshalIndent(mcp.ToolDefinitions(), "", "  ")
					os.Stdout.Write(b)
					os.Stdout.Write([]byte("\n"))
					return nil
				},
			},
		},
	}
}

// NewServeCommand is a shortcut for "mcp serve".
func NewServeCommand(version string) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start MCP server (shortcut for 'mcp serve')",
		Action: func(c *cli.Context) error {
			st, err := openStore(c)
			if err != nil {
				return err
			}
			return mcp.ServeStdio(st, version)
		},
	}
}
