package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/atotto/clipboard"
	"github.com/urfave/cli/v2"

	"promptbook/internal/models"
	"promptbook/internal/store"
)

// NewAddCommand creates the add command.
func NewAddCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a new prompt",
		ArgsUsage: "[title] [content]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "prompt description"},
			&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "folder path, e.g. /AI/Coding"},
			&cli.StringSliceFlag{Name: "tag", Aliases: []string{"t"}, Usage: "tag name (repeatable)"},
			&cli.BoolFlag{Name: "interactive", Aliases: []string{"i"}, Usage: "prompt for fields interactively"},
		},
		Action: func(c *cli.Context) error {
			req := models.PromptCreate{
				Title:       c.Args().Get(0),
				Content:     c.Args().Get(1),
				Description: c.String("description"),
				FolderPath:  c.String("folder"),
				Tags:        c.StringSlice("tag"),
			}

			if c.Bool("interactive") {
				if err := askPromptFields(&req); err != nil {
					return err
				}
			} else if req.Title == "" || req.Content == "" {
				printError("Title and content are required")
				printHint("Use 'promptbook add \"Title\" \"Content\"' or 'promptbook add -i'")
				return nil
			}

			st, err := openStore(c)
			if err != nil {
				return err
			}

			prompt, err := st.CreatePrompt(req)
			if err != nil {
				if store.IsValidation(err) {
					printError("%v", err)
					return nil
				}
				return err
			}

			printSuccess("Added prompt '%s' (ID: %d)", prompt.Title, prompt.ID)
			if prompt.FolderPath != "" {
				fmt.Printf("   folder: %s\n", pathStyle.Render(prompt.FolderPath))
			}
			if len(prompt.Tags) > 0 {
				fmt.Printf("   tags: %s\n", renderTagList(prompt.Tags))
			}
			return nil
		},
	}
}

func askPromptFields(req *models.PromptCreate) error {
	questions := []*survey.Question{}
	if req.Title == "" {
		questions = append(questions, &survey.Question{
			Name:     "title",
			Prompt:   &survey.Input{Message: "Title:"},
			Validate: survey.Required,
		})
	}
	if req.Content == "" {
		questions = append(questions, &survey.Question{
			Name:     "content",
			Prompt:   &survey.Multiline{Message: "Content:"},
			Validate: survey.Required,
		})
	}

	answers := struct {
		Title   string
		Content string
	}{}
	if err := survey.Ask(questions, &answers); err != nil {
		return err
	}
	if answers.Title != "" {
		req.Title = answers.Title
	}
	if answers.Content != "" {
		req.Content = answers.Content
	}

	if req.FolderPath == "" {
		if err := survey.AskOne(&survey.Input{Message: "Folder path (optional):"}, &req.FolderPath); err != nil {
			return err
		}
	}
	if len(req.Tags) == 0 {
		var tags string
		if err := survey.AskOne(&survey.Input{Message: "Tags (comma separated, optional):"}, &tags); err != nil {
			return err
		}
		for _, t := range strings.Split(tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				req.Tags = append(req.Tags, t)
			}
		}
	}
	return nil
}

// NewListCommand creates the list command.
func NewListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List prompts",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "filter by folder path"},
			&cli.StringSliceFlag{Name: "tag", Aliases: []string{"t"}, Usage: "filter by tag (repeatable, all must match)"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 50, Usage: "maximum prompts to show"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "show descriptions and content previews"},
		},
		Action: func(c *cli.Context) error {
			st, err := openStore(c)
			if err != nil {
				return err
			}

			prompts, total, err := st.SearchPrompts(models.PromptSearch{
				FolderPath: c.String("folder"),
				Tags:       c.StringSlice("tag"),
				Limit:      c.Int("limit"),
			})
			if err != nil {
				return err
			}

			if len(prompts) == 0 {
				fmt.Println("No prompts found.")
				printHint("Use 'promptbook add' to create one")
				return nil
			}

			for i := range prompts {
				renderPromptRow(&prompts[i], c.Bool("verbose"))
			}
			fmt.Println(mutedStyle.Render(fmt.Sprintf("%d of %d prompts", len(prompts), total)))
			return nil
		},
	}
}

// NewSearchCommand creates the search command.
func NewSearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search prompts by text",
		ArgsUsage: "[query]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "filter by folder path"},
			&cli.StringSliceFlag{Name: "tag", Aliases: []string{"t"}, Usage: "filter by tag (repeatable, all must match)"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "maximum prompts to show"},
		},
		Action: func(c *cli.Context) error {
			query := strings.Join(c.Args().Slice(), " ")
			if query == "" {
				printError("Search query is required")
				return nil
			}

			st, err := openStore(c)
			if err != nil {
				return err
			}

			prompts, total, err := st.SearchPrompts(models.PromptSearch{
				Query:      query,
				FolderPath: c.String("folder"),
				Tags:       c.StringSlice("tag"),
				Limit:      c.Int("limit"),
			})
			if err != nil {
				return err
			}

			if len(prompts) == 0 {
				fmt.Printf("No prompts matching '%s'.\n", query)
				return nil
			}

			for i := range prompts {
				renderPromptRow(&prompts[i], true)
			}
			fmt.Println(mutedStyle.Render(fmt.Sprintf("%d of %d matches", len(prompts), total)))
			return nil
		},
	}
}

// NewShowCommand creates the show command.
func NewShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a prompt's full content",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "raw", Usage: "print raw content without markdown rendering"},
			&cli.BoolFlag{Name: "copy", Aliases: []string{"c"}, Usage: "copy content to the clipboard"},
		},
		Action: func(c *cli.Context) error {
			id, err := parsePromptID(c)
			if err != nil {
				return nil
			}

			st, err := openStore(c)
			if err != nil {
				return err
			}

			prompt, err := st.GetPrompt(id)
			if errors.Is(err, store.ErrNotFound) {
				printError("Prompt %d not found", id)
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Println(titleStyle.Render(prompt.Title))
			if prompt.Description != "" {
				fmt.Println(mutedStyle.Render(prompt.Description))
			}
			if prompt.FolderPath != "" {
				fmt.Printf("folder: %s\n", pathStyle.Render(prompt.FolderPath))
			}
			if len(prompt.Tags) > 0 {
				fmt.Printf("tags: %s\n", renderTagList(prompt.Tags))
			}
			fmt.Println()

			if c.Bool("raw") {
				fmt.Println(prompt.Content)
			} else {
				fmt.Print(renderMarkdown(prompt.Content))
			}

			if c.Bool("copy") {
				if err := clipboard.WriteAll(prompt.Content); err != nil {
					printError("Failed to copy to clipboard: %v", err)
				} else {
					printSuccess("Copied to clipboard")
				}
			}
			return nil
		},
	}
}

// NewEditCommand creates the edit command.
func NewEditCommand() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Edit a prompt (only provided flags are changed)",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Usage: "new title"},
			&cli.StringFlag{Name: "content", Usage: "new content"},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "new description"},
			&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "new folder path (empty moves to root)"},
			&cli.StringSliceFlag{Name: "tag", Aliases: []string{"t"}, Usage: "replacement tag set (repeatable)"},
			&cli.BoolFlag{Name: "clear-tags", Usage: "remove all tags"},
		},
		Action: func(c *cli.Context) error {
			id, err := parsePromptID(c)
			if err != nil {
				return nil
			}

			var update models.PromptUpdate
			if c.IsSet("title") {
				v := c.String("title")
				update.Title = &v
			}
			if c.IsSet("content") {
				v := c.String("content")
				update.Content = &v
			}
			if c.IsSet("description") {
				v := c.String("description")
				update.Description = &v
			}
			if c.IsSet("folder") {
				v := c.String("folder")
				update.FolderPath = &v
			}
			if c.Bool("clear-tags") {
				empty := []string{}
				update.Tags = &empty
			} else if c.IsSet("tag") {
				tags := c.StringSlice("tag")
				update.Tags = &tags
			}

			if update == (models.PromptUpdate{}) {
				printHint("Nothing to change; pass at least one of --title/--content/--description/--folder/--tag")
				return nil
			}

			st, err := openStore(c)
			if err != nil {
				return err
			}

			prompt, err := st.UpdatePrompt(id, update)
			if errors.Is(err, store.ErrNotFound) {
				printError("Prompt %d not found", id)
				return nil
			}
			if err != nil {
				if store.IsValidation(err) {
					printError("%v", err)
					return nil
				}
				return err
			}

			printSuccess("Updated prompt '%s' (ID: %d)", prompt.Title, prompt.ID)
			return nil
		},
	}
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a prompt",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Usage: "skip confirmation"},
		},
		Action: func(c *cli.Context) error {
			id, err := parsePromptID(c)
			if err != nil {
				return nil
			}

			st, err := openStore(c)
			if err != nil {
				return err
			}

			prompt, err := st.GetPrompt(id)
			if errors.Is(err, store.ErrNotFound) {
				printError("Prompt %d not found", id)
				return nil
			}
			if err != nil {
				return err
			}

			if !c.Bool("force") {
				confirmed := false
				q := &survey.Confirm{Message: fmt.Sprintf("Delete prompt '%s' (ID: %d)?", prompt.Title, id)}
				if err := survey.AskOne(q, &confirmed); err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Aborted.")
					return nil
				}
			}

			if err := st.DeletePrompt(id); err != nil {
				return err
			}
			printSuccess("Deleted prompt '%s' (ID: %d)", prompt.Title, id)
			return nil
		},
	}
}

func parsePromptID(c *cli.Context) (uint, error) {
	arg := c.Args().First()
	if arg == "" {
		printError("Prompt ID is required")
		return 0, errors.New("missing id")
	}
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		printError("Invalid prompt ID '%s'", arg)
		return 0, err
	}
	return uint(id), nil
}
