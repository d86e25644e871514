package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"promptbook/internal/cli/commands"
)

// Version will be set during build with ldflags
var Version = "0.1.0"

func main() {
	app := &cli.App{
		Name:    "promptbook",
		Usage:   "Organize prompt snippets in folders with tags, and serve them to agents over MCP",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Usage: "override the database file path"},
		},
		Commands: []*cli.Command{
			// Prompts
			commands.NewAddCommand(),
			commands.NewListCommand(),
			commands.NewSearchCommand(),
			commands.NewShowCommand(),
			commands.NewEditCommand(),
			commands.NewDeleteCommand(),

			// Organization
			commands.NewTagCommand(),
			commands.NewTagsCommand(),
			commands.NewFolderCommand(),
			commands.NewFoldersCommand(),

			// Batch
			commands.NewImportCommand(),

			// Server & meta
			commands.NewMcpCommand(Version),
			commands.NewServeCommand(Version),
			commands.NewConfigCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
