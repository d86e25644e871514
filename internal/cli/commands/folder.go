package commands

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"promptbook/internal/store"
)

// NewFolderCommand creates the folder command group.
func NewFolderCommand() *cli.Command {
	return &cli.Command{
		Name:  "folder",
		Usage: "Folder management",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List folders with prompt counts",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "parent", Aliases: []string{"p"}, Usage: "list only direct children of this path"},
				},
				Action: func(c *cli.Context) error {
					st, err := openStore(c)
					if err != nil {
						return err
					}

					folders, err := st.ListFolders(c.String("parent"))
					if err != nil {
						return err
					}
					if len(folders) == 0 {
						fmt.Println("No folders found.")
						return nil
					}

					for _, f := range folders {
						fmt.Printf("%s %s\n",
							pathStyle.Render(f.Path),
							mutedStyle.Render(fmt.Sprintf("(%d prompts)", f.PromptCount)))
					}
					return nil
				},
			},
			{
				Name:      "create",
				Usage:     "Create a folder path (intermediate folders included)",
				ArgsUsage: "[path]",
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						printError("Folder path is required")
						return nil
					}

					st, err := openStore(c)
					if err != nil {
						return err
					}

					folder, err := st.EnsureFolder(path)
					if err != nil {
						return err
					}
					printSuccess("Created folder '%s'", folder.Path)
					return nil
				},
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a folder, moving its prompts to the parent",
				ArgsUsage: "[path]",
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						printError("Folder path is required")
						return nil
					}

					st, err := openStore(c)
					if err != nil {
						return err
					}

					err = st.DeleteFolder(path)
					if errors.Is(err, store.ErrNotFound) {
						printError("Folder '%s' not found", store.NormalizePath(path))
						return nil
					}
					if store.IsConflict(err) {
						printError("%v", err)
						return nil
					}
					if err != nil {
						return err
					}
					printSuccess("Deleted folder '%s'", store.NormalizePath(path))
					return nil
				},
			},
		},
	}
}

// NewFoldersCommand is a shortcut for "folder list".
func NewFoldersCommand() *cli.Command {
	return &cli.Command{
		Name:  "folders",
		Usage: "List folders (shortcut for 'folder list')",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "parent", Aliases: []string{"p"}, Usage: "list only direct children of this path"},
		},
		Action: func(c *cli.Context) error {
			st, err := openStore(c)
			if err != nil {
				return err
			}

			folders, err := st.ListFolders(c.String("parent"))
			if err != nil {
				return err
			}
			if len(folders) == 0 {
				fmt.Println("No folders found.")
				return nil
			}
			for _, f := range folders {
				fmt.Printf("%s %s\n",
					pathStyle.Render(f.Path),
					mutedStyle.Render(fmt.Sprintf("(%d prompts)", f.PromptCount)))
			}
			return nil
		},
	}
}
