package commands

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"promptbook/internal/store"
)

// NewTagCommand creates the tag command group.
func NewTagCommand() *cli.Command {
	return &cli.Command{
		Name:  "tag",
		Usage: "Tag management",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List tags",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "filter by category"},
				},
				Action: func(c *cli.Context) error {
					st, err := openStore(c)
					if err != nil {
						return err
					}

					tags, err := st.ListTags(c.String("category"))
					if err != nil {
						return err
					}
					if len(tags) == 0 {
						fmt.Println("No tags found.")
						return nil
					}

					for _, t := range tags {
						line := renderTag(t)
						if t.Category != "" {
							line += " " + mutedStyle.Render("("+t.Category+")")
						}
						fmt.Println(line)
					}
					return nil
				},
			},
			{
				Name:      "create",
				Usage:     "Create a tag",
				ArgsUsage: "[name]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "tag category"},
					&cli.StringFlag{Name: "color", Usage: "hex color, e.g. #FF5733"},
				},
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						printError("Tag name is required")
						return nil
					}

					st, err := openStore(c)
					if err != nil {
						return err
					}

					tag, err := st.CreateTag(name, c.String("category"), c.String("color"))
					if err != nil {
						if store.IsValidation(err) {
							printError("%v", err)
							return nil
						}
						return err
					}
					printSuccess("Tag '%s' ready (ID: %d)", tag.Name, tag.ID)
					return nil
				},
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a tag",
				ArgsUsage: "[name]",
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						printError("Tag name is required")
						return nil
					}

					st, err := openStore(c)
					if err != nil {
						return err
					}

					err = st.DeleteTag(name)
					if errors.Is(err, store.ErrNotFound) {
						printError("Tag '%s' not found", name)
						return nil
					}
					if err != nil {
						return err
					}
					printSuccess("Deleted tag '%s'", name)
					return nil
				},
			},
		},
	}
}

// NewTagsCommand is a shortcut for "tag list".
func NewTagsCommand() *cli.Command {
	return &cli.Command{
		Name:  "tags",
		Usage: "List tags (shortcut for 'tag list')",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "filter by category"},
		},
		Action: func(c *cli.Context) error {
			st, err := openStore(c)
			if err != nil {
				return err
			}

			tags, err := st.ListTags(c.String("category"))
			if err != nil {
				return err
			}
			if len(tags) == 0 {
				fmt.Println("No tags found.")
				return nil
			}
			for _, t := range tags {
				line := renderTag(t)
				if t.Category != "" {
					line += " " + mutedStyle.Render("("+t.Category+")")
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}
