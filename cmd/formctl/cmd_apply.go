package main

import (
	"fmt"
	"os"

	"formstate/internal/form"
	"formstate/internal/logging"
	"formstate/internal/record"

	"github.com/spf13/cobra"
)

// applyCmd runs an operation script against a record file
var applyCmd = &cobra.Command{
	Use:   "apply FILE SCRIPT",
	Short: "Apply an operation script to a record file",
	Long: `Loads FILE, applies each operation in SCRIPT in order and prints the
resulting record file. SCRIPT is a YAML or JSON list such as:

  - {op: append, record: {name: bob}}
  - {op: set, index: 0, key: age, value: 31}
  - {op: reset, index: 0}
  - {op: remove, index: 1}

The first operation that fails aborts the run.`,
	Args: cobra.ExactArgs(2),
	RunE: runApply,
}

func runApply(cmd *cobra.Command, args []string) error {
	f, err := openForm(args[0])
	if err != nil {
		return err
	}
	defer f.Provider().Close()

	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	ops, err := form.DecodeScript(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", args[1], err)
	}

	dispatch := f.Provider().Dispatcher()
	for i, op := range ops {
		if err := dispatch(op); err != nil {
			return fmt.Errorf("operation %d (%s): %w", i, op.Kind(), err)
		}
	}
	logging.CLI("applied %d operations to %s", len(ops), args[0])

	s, err := f.State()
	if err != nil {
		return err
	}
	out, err := record.Marshal(record.File{Defaults: s.Defaults, Values: s.Values})
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("output"); path != "" {
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	} else {
		cmd.OutOrStdout().Write(out)
	}

	dirty, err := f.DirtyIndices()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "dirty: %v\n", dirty)
	return nil
}
