package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"promptbook/internal/models"
)

// NewImportCommand creates the import command: a JSON array of prompt objects
// is imported entry by entry, so one malformed entry never sinks the batch.
func NewImportCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import prompts from a JSON file",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "folder path applied to entries without one"},
		},
		Action: func(c *cli.Context) error {
			file := c.Args().First()
			if file == "" {
				printError("File path is required")
				printHint("Expected a JSON array of {title, content, description?, folder_path?, tags?}")
				return nil
			}

			data, err := os.ReadFile(file)
			if err != nil {
				printError("Failed to read %s: %v", file, err)
				return nil
			}

			var entries []models.PromptCreate
			if err := json.Unmarshal(data, &entries); err != nil {
				printError("Invalid JSON in %s: %v", file, err)
				return nil
			}

			st, err := openStore(c)
			if err != nil {
				return err
			}

			defaultFolder := c.String("folder")
			imported, skipped := 0, 0
			for i, entry := range entries {
				if entry.FolderPath == "" {
					entry.FolderPath = defaultFolder
				}
				prompt, err := st.CreatePrompt(entry)
				if err != nil {
					skipped++
					printError("Entry %d skipped: %v", i+1, err)
					continue
				}
				imported++
				fmt.Printf("  imported '%s' (ID: %d)\n", prompt.Title, prompt.ID)
			}

			printSuccess("Imported %d prompts (%d skipped)", imported, skipped)
			return nil
		},
	}
}
