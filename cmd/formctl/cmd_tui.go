package main

import (
	"context"
	"fmt"
	"path/filepath"

	"formstate/cmd/formctl/ui"
	"formstate/internal/logging"
	"formstate/internal/record"
	"formstate/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// tuiCmd opens the interactive editor
var tuiCmd = &cobra.Command{
	Use:   "tui FILE",
	Short: "Edit a record file interactively",
	Args:  cobra.ExactArgs(1),
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	f, err := openForm(args[0])
	if err != nil {
		return err
	}
	defer f.Provider().Close()

	styles := ui.NewStyles(ui.ThemeFor(cfg.UI.Theme))
	model := ui.NewEditorModel(f, filepath.Base(args[0]), styles)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if watching, _ := cmd.Flags().GetBool("watch"); watching {
		w, err := watch.New(args[0], cfg.GetWatchDebounce(), func(file record.File, err error) {
			p.Send(ui.RecordsReloadedMsg{File: file, Err: err})
		})
		if err != nil {
			return err
		}
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Close()
	}

	logging.Get(logging.CategoryUI).Info("editor opened on %s", args[0])
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	return nil
}
