package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"formstate/cmd/formctl/ui"
	"formstate/internal/form"
	"formstate/internal/record"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// showCmd prints the state of a record file
var showCmd = &cobra.Command{
	Use:   "show FILE",
	Short: "Print defaults, values and dirty slots of a record file",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	f, err := openForm(args[0])
	if err != nil {
		return err
	}
	defer f.Provider().Close()

	s, err := f.State()
	if err != nil {
		return err
	}

	asMarkdown, _ := cmd.Flags().GetBool("markdown")
	if asMarkdown {
		out, err := renderMarkdown(markdownSummary(filepath.Base(args[0]), s))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}

	styles := ui.NewStyles(ui.ThemeFor(cfg.UI.Theme))
	fmt.Fprint(cmd.OutOrStdout(), ui.StateTable(args[0], s).View(styles))
	fmt.Fprintf(cmd.OutOrStdout(), "%d records, %d dirty\n", s.Len(), s.Dirty.Len())
	return nil
}

// markdownSummary describes s as a markdown document.
func markdownSummary(title string, s form.State) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "%d records, %d dirty\n\n", s.Len(), s.Dirty.Len())
	if !s.Aligned() {
		fmt.Fprintf(&sb, "> defaults (%d) and values (%d) are not aligned\n\n", len(s.Defaults), len(s.Values))
	}
	if s.Len() == 0 {
		return sb.String()
	}

	sb.WriteString("| # | dirty | values | defaults |\n|---|---|---|---|\n")
	for i := 0; i < max(len(s.Values), len(s.Defaults)); i++ {
		marker := ""
		if s.Dirty.Has(i) {
			marker = "yes"
		}
		fmt.Fprintf(&sb, "| %d | %s | %s | %s |\n", i, marker, cell(s.Values, i), cell(s.Defaults, i))
	}
	return sb.String()
}

func cell(rs []record.Record, i int) string {
	if i >= len(rs) {
		return ""
	}
	return "`" + strings.ReplaceAll(ui.FormatRecord(rs[i]), "|", "\\|") + "`"
}

func renderMarkdown(md string) (string, error) {
	style := "light"
	if ui.ThemeFor(cfg.UI.Theme).IsDark {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	return renderer.Render(md)
}
