package main

import (
	"fmt"

	"formstate/internal/diff"
	"formstate/internal/record"

	"github.com/spf13/cobra"
)

// diffCmd shows field differences for every dirty slot
var diffCmd = &cobra.Command{
	Use:   "diff FILE",
	Short: "Show how each dirty slot differs from its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runDiff,
}

func runDiff(cmd *cobra.Command, args []string) error {
	f, err := openForm(args[0])
	if err != nil {
		return err
	}
	defer f.Provider().Close()

	s, err := f.State()
	if err != nil {
		return err
	}
	dirty, err := f.DirtyIndices()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(dirty) == 0 {
		fmt.Fprintln(out, "no dirty records")
		return nil
	}
	byLine, _ := cmd.Flags().GetBool("lines")
	for _, i := range dirty {
		if !byLine {
			fmt.Fprintf(out, "record %d (-default +value):\n%s\n", i, record.Diff(s.Defaults[i], s.Values[i]))
			continue
		}
		lines, err := diff.Records(s.Defaults[i], s.Values[i])
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		fmt.Fprintf(out, "--- default %d\n+++ value %d\n%s", i, i, diff.Render(lines))
	}
	return nil
}
