package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"formstate/internal/config"
	"formstate/internal/form"
	"formstate/internal/record"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRecords = `defaults:
  - {name: alice, age: 30}
  - {name: bob, age: 40}
values:
  - {name: alice, age: 31}
  - {name: bob, age: 40}
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestCmd(t *testing.T) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	cfg = config.DefaultConfig()
	cfg.UI.Theme = "light"

	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.Flags().Bool("markdown", false, "")
	cmd.Flags().StringP("output", "o", "", "")
	cmd.Flags().Bool("lines", false, "")
	return cmd, &stdout, &stderr
}

func TestShowCmd(t *testing.T) {
	path := writeTemp(t, "records.yaml", sampleRecords)
	cmd, out, _ := newTestCmd(t)

	require.NoError(t, runShow(cmd, []string{path}))
	assert.Contains(t, out.String(), "age=31 name=alice")
	assert.Contains(t, out.String(), "2 records, 1 dirty")
}

func TestShowCmdMarkdown(t *testing.T) {
	path := writeTemp(t, "records.yaml", sampleRecords)
	cmd, out, _ := newTestCmd(t)
	require.NoError(t, cmd.Flags().Set("markdown", "true"))

	require.NoError(t, runShow(cmd, []string{path}))
	assert.NotEmpty(t, out.String())
}

func TestMarkdownSummary(t *testing.T) {
	s := form.NewState(
		[]record.Record{{"a": 1}},
		[]record.Record{{"a": "x|y"}},
		true,
	)
	md := markdownSummary("records.yaml", s)
	assert.Contains(t, md, "# records.yaml")
	assert.Contains(t, md, "1 records, 1 dirty")
	assert.Contains(t, md, "| 0 | yes | `a=x\\|y` | `a=1` |")

	unaligned := form.NewState([]record.Record{{"a": 1}}, nil, true)
	assert.Contains(t, markdownSummary("r", unaligned), "not aligned")
}

func TestApplyCmd(t *testing.T) {
	path := writeTemp(t, "records.yaml", sampleRecords)
	script := writeTemp(t, "script.yaml", `
- {op: reset, index: 0}
- {op: append, record: {name: carol}}
- {op: set, index: 2, key: name, value: dave}
`)
	cmd, out, errOut := newTestCmd(t)

	require.NoError(t, runApply(cmd, []string{path, script}))

	f, err := record.Parse(out.Bytes(), ".yaml")
	require.NoError(t, err)
	assert.Equal(t, []record.Record{{"name": "alice", "age": 30}, {"name": "bob", "age": 40}, {"name": "carol"}}, f.Defaults)
	assert.Equal(t, []record.Record{{"name": "alice", "age": 30}, {"name": "bob", "age": 40}, {"name": "dave"}}, f.Values)
	assert.Equal(t, "dirty: [2]\n", errOut.String())
}

func TestApplyCmdWritesOutputFile(t *testing.T) {
	path := writeTemp(t, "records.yaml", sampleRecords)
	script := writeTemp(t, "script.yaml", "- {op: remove, index: 0}\n")
	target := filepath.Join(t.TempDir(), "out.yaml")

	cmd, out, _ := newTestCmd(t)
	require.NoError(t, cmd.Flags().Set("output", target))
	require.NoError(t, runApply(cmd, []string{path, script}))
	assert.Empty(t, out.String())

	f, err := record.Load(target)
	require.NoError(t, err)
	assert.Equal(t, []record.Record{{"name": "bob", "age": 40}}, f.Values)
}

func TestApplyCmdStopsAtFailingOp(t *testing.T) {
	path := writeTemp(t, "records.yaml", sampleRecords)
	script := writeTemp(t, "script.yaml", `
- {op: append}
- {op: remove, index: 9}
- {op: append}
`)
	cmd, out, _ := newTestCmd(t)

	err := runApply(cmd, []string{path, script})
	require.Error(t, err)
	assert.ErrorIs(t, err, form.ErrIndex)
	assert.Contains(t, err.Error(), "operation 1 (remove)")
	assert.Empty(t, out.String())
}

func TestApplyCmdRejectsBadScript(t *testing.T) {
	path := writeTemp(t, "records.yaml", sampleRecords)
	script := writeTemp(t, "script.yaml", "- {op: updateValues}\n")
	cmd, _, _ := newTestCmd(t)

	err := runApply(cmd, []string{path, script})
	assert.ErrorIs(t, err, form.ErrUnknownOp)
}

func TestDiffCmd(t *testing.T) {
	path := writeTemp(t, "records.yaml", sampleRecords)
	cmd, out, _ := newTestCmd(t)

	require.NoError(t, runDiff(cmd, []string{path}))
	assert.Contains(t, out.String(), "record 0")
	assert.NotContains(t, out.String(), "record 1")
	assert.Contains(t, out.String(), "31")
}

func TestDiffCmdLines(t *testing.T) {
	path := writeTemp(t, "records.yaml", sampleRecords)
	cmd, out, _ := newTestCmd(t)
	require.NoError(t, cmd.Flags().Set("lines", "true"))

	require.NoError(t, runDiff(cmd, []string{path}))
	assert.Equal(t, "--- default 0\n+++ value 0\n-age: 30\n+age: 31\n name: alice\n", out.String())
}

func TestDiffCmdClean(t *testing.T) {
	path := writeTemp(t, "records.yaml", "defaults:\n  - {a: 1}\n")
	cmd, out, _ := newTestCmd(t)

	require.NoError(t, runDiff(cmd, []string{path}))
	assert.Equal(t, "no dirty records\n", out.String())
}

func TestMissingRecordFile(t *testing.T) {
	cmd, _, _ := newTestCmd(t)
	err := runShow(cmd, []string{filepath.Join(t.TempDir(), "absent.yaml")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormOptions(t *testing.T) {
	c := config.DefaultConfig()
	p := form.NewProvider(nil, nil, formOptions(c)...)
	defer p.Close()
	assert.Equal(t, form.Options{TrackDirty: true, Policy: form.DirtyFull}, p.Options())

	c.Form.TrackDirty = false
	c.Form.DirtyPolicy = config.DirtyPolicyTargeted
	q := form.NewProvider(nil, nil, formOptions(c)...)
	defer q.Close()
	assert.Equal(t, form.Options{TrackDirty: false, Policy: form.DirtyTargeted}, q.Options())
}

func TestRootCmdLoadsConfig(t *testing.T) {
	records := writeTemp(t, "records.yaml", sampleRecords)
	cfgFile := writeTemp(t, "formstate.yaml", "form:\n  track_dirty: false\nui:\n  theme: dark\n")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", cfgFile, "diff", records})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		configPath = ""
		cfg = config.DefaultConfig()
	}()

	require.NoError(t, rootCmd.Execute())
	assert.False(t, cfg.Form.TrackDirty)
	assert.Equal(t, "dark", cfg.UI.Theme)
	// Dirty indices fall back to direct comparison when tracking is off.
	assert.True(t, strings.Contains(out.String(), "record 0"))
}

func TestRootCmdRejectsInvalidConfig(t *testing.T) {
	records := writeTemp(t, "records.yaml", sampleRecords)
	cfgFile := writeTemp(t, "formstate.yaml", "form:\n  dirty_policy: lazy\n")

	rootCmd.SetArgs([]string{"--config", cfgFile, "diff", records})
	defer func() {
		rootCmd.SetArgs(nil)
		configPath = ""
		cfg = config.DefaultConfig()
	}()

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
