package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"promptbook/internal/config"
)

// NewConfigCommand creates the config command.
func NewConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Show resolved configuration",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if db := c.String("db"); db != "" {
				cfg.DatabasePath = db
			}

			fmt.Printf("data_dir:      %s\n", cfg.DataDir)
			fmt.Printf("database_path: %s\n", cfg.DatabasePath)
			return nil
		},
	}
}
