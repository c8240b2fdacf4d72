// Command formctl inspects and edits form record files.
package main

import (
	"fmt"
	"os"

	"formstate/internal/config"
	"formstate/internal/form"
	"formstate/internal/logging"
	"formstate/internal/record"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Loaded by PersistentPreRunE
	cfg = config.DefaultConfig()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "formctl",
	Short: "formctl - inspect and edit form record files",
	Long: `formctl loads a record file holding a list of default records and the
edited values for each, tracks which slots differ from their defaults, and
applies the append, prepend, remove, reset and set operations to it.

A record file is YAML (or JSON) with two top-level lists:

  defaults:
    - {name: alice, age: 30}
  values:
    - {name: alice, age: 31}

When values is omitted it starts as a copy of defaults.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			loaded.Logging.DebugMode = true
			loaded.Logging.Level = "debug"
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		cfg = loaded

		if err := logging.Initialize(cfg.Logging); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logging.CLIDebug("running %s", cmd.CommandPath())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (YAML)")

	showCmd.Flags().Bool("markdown", false, "Render a markdown summary")
	applyCmd.Flags().StringP("output", "o", "", "Write the resulting record file here instead of stdout")
	diffCmd.Flags().Bool("lines", false, "Show a line diff of the YAML form instead of a field diff")
	tuiCmd.Flags().Bool("watch", false, "Reload the editor when the record file changes")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(tuiCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// formOptions maps the loaded config onto provider options.
func formOptions(c *config.Config) []form.ProviderOption {
	policy := form.DirtyFull
	if c.Form.Targeted() {
		policy = form.DirtyTargeted
	}
	return []form.ProviderOption{
		form.WithDirtyTracking(c.Form.TrackDirty),
		form.WithPolicy(policy),
	}
}

// openForm loads path and mounts a provider over it. The caller closes the
// provider.
func openForm(path string) (*form.Form, error) {
	f, err := loadRecords(path)
	if err != nil {
		return nil, err
	}
	p := form.NewProvider(f.Defaults, f.Values, formOptions(cfg)...)
	return form.NewForm(p), nil
}

func loadRecords(path string) (record.File, error) {
	f, err := record.Load(path)
	if err != nil {
		return record.File{}, err
	}
	logging.CLIDebug("loaded %s: %d defaults, %d values", path, len(f.Defaults), len(f.Values))
	return f, nil
}
