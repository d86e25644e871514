package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"

	"promptbook/internal/config"
	"promptbook/internal/models"
	"promptbook/internal/store"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// openStore resolves configuration and opens the catalogue store. The global
// --db flag overrides the configured database path.
func openStore(c *cli.Context) (*store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if db := c.String("db"); db != "" {
		cfg.DatabasePath = db
	}
	return store.Open(cfg)
}

// renderTag renders a tag name in its configured color, falling back to the
// plain name when the tag has none.
func renderTag(t models.Tag) string {
	if t.Color != "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color)).Render(t.Name)
	}
	return t.Name
}

func renderTagList(tags []models.Tag) string {
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, renderTag(t))
	}
	return strings.Join(parts, ", ")
}

// renderPromptRow prints one prompt as a list row.
func renderPromptRow(p *models.Prompt, verbose bool) {
	fmt.Printf("%s %s\n", mutedStyle.Render(fmt.Sprintf("[%d]", p.ID)), titleStyle.Render(p.Title))
	if p.FolderPath != "" {
		fmt.Printf("    %s %s\n", mutedStyle.Render("folder:"), pathStyle.Render(p.FolderPath))
	}
	if len(p.Tags) > 0 {
		fmt.Printf("    %s %s\n", mutedStyle.Render("tags:"), renderTagList(p.Tags))
	}
	if verbose {
		if p.Description != "" {
			fmt.Printf("    %s %s\n", mutedStyle.Render("description:"), p.Description)
		}
		fmt.Printf("    %s\n", truncateString(p.Content, 120))
	}
}

// renderMarkdown renders content for the terminal, falling back to the raw
// text when glamour cannot (e.g. when not attached to a TTY profile).
func renderMarkdown(content string) string {
	out, err := glamour.Render(content, "auto")
	if err != nil {
		return content
	}
	return out
}

func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

func printError(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("❌ " + fmt.Sprintf(format, args...)))
}

func printSuccess(format string, args ...interface{}) {
	fmt.Println(successStyle.Render("✅ " + fmt.Sprintf(format, args...)))
}

func printHint(format string, args ...interface{}) {
	fmt.Println("💡 " + fmt.Sprintf(format, args...))
}
