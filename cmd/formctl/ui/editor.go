package ui

import (
	"fmt"
	"strings"

	"formstate/internal/form"
	"formstate/internal/logging"
	"formstate/internal/record"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"
)

// RecordsReloadedMsg carries a record file re-read from disk.
type RecordsReloadedMsg struct {
	File record.File
	Err  error
}

// KeyMap lists the editor bindings.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Append  key.Binding
	Prepend key.Binding
	Remove  key.Binding
	Reset   key.Binding
	Edit    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Append:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "append")),
		Prepend: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "prepend")),
		Remove:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit field")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Append, k.Remove, k.Reset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Append, k.Prepend, k.Remove},
		{k.Reset, k.Edit},
		{k.Help, k.Quit},
	}
}

// EditorModel is the interactive record editor. Every update re-reads the
// provider, so the view never holds state the provider does not.
type EditorModel struct {
	form   *form.Form
	title  string
	styles Styles
	keys   KeyMap
	help   help.Model
	input  textinput.Model
	log    *logging.Logger

	state    form.State
	cursor   int
	editing  bool
	status   string
	err      error
	quitting bool
}

// NewEditorModel builds an editor over f.
func NewEditorModel(f *form.Form, title string, styles Styles) EditorModel {
	ti := textinput.New()
	ti.Placeholder = "key=value"
	ti.Prompt = "edit> "
	ti.CharLimit = 256
	ti.Width = 50

	m := EditorModel{
		form:   f,
		title:  title,
		styles: styles,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		input:  ti,
		log:    logging.Get(logging.CategoryUI),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m EditorModel) Init() tea.Cmd {
	return nil
}

// State returns the last state read from the provider.
func (m EditorModel) State() form.State {
	return m.state
}

// Cursor returns the selected slot.
func (m EditorModel) Cursor() int {
	return m.cursor
}

// Err returns the error from the last action, if any.
func (m EditorModel) Err() error {
	return m.err
}

// Editing reports whether the field prompt is open.
func (m EditorModel) Editing() bool {
	return m.editing
}

// Update implements tea.Model.
func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RecordsReloadedMsg:
		m.reload(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m EditorModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.state.Len()-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Append):
		if m.apply("append", m.form.Append(m.selected())) {
			m.cursor = m.state.Len() - 1
		}

	case key.Matches(msg, m.keys.Prepend):
		if m.apply("prepend", m.form.Prepend(m.selected())) {
			m.cursor = 0
		}

	case key.Matches(msg, m.keys.Remove):
		m.apply("remove", m.form.Remove(m.cursor))

	case key.Matches(msg, m.keys.Reset):
		m.apply("reset", m.form.Reset(m.cursor))

	case key.Matches(msg, m.keys.Edit):
		if m.state.Len() == 0 {
			m.err = fmt.Errorf("nothing to edit")
			return m, nil
		}
		m.editing = true
		m.input.SetValue("")
		return m, m.input.Focus()
	}
	return m, nil
}

func (m EditorModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		m.editing = false
		m.input.Blur()
		k, v, err := ParseAssignment(m.input.Value())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.apply("set", m.form.Set(m.cursor, k, v))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// selected returns a copy of the selected value record, or an empty record.
func (m EditorModel) selected() record.Record {
	if m.cursor >= 0 && m.cursor < len(m.state.Values) {
		return record.Clone(m.state.Values[m.cursor])
	}
	return record.Record{}
}

// apply records the outcome of one verb and re-reads the provider.
func (m *EditorModel) apply(verb string, err error) bool {
	if err != nil {
		m.err = err
		m.log.Warn("%s at %d failed: %v", verb, m.cursor, err)
		m.refresh()
		return false
	}
	m.refresh()
	m.status = verb
	return true
}

func (m *EditorModel) reload(msg RecordsReloadedMsg) {
	if msg.Err != nil {
		m.err = fmt.Errorf("reload: %w", msg.Err)
		return
	}
	if err := m.form.ReplaceDefaults(msg.File.Defaults); err != nil {
		m.err = err
		m.refresh()
		return
	}
	if m.apply("reloaded", m.form.ReplaceValues(msg.File.Values)) {
		m.log.Info("reloaded %d records", len(msg.File.Values))
	}
}

func (m *EditorModel) refresh() {
	s, err := m.form.State()
	if err != nil {
		m.err = err
		return
	}
	m.state = s
	if m.cursor >= s.Len() {
		m.cursor = s.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View implements tea.Model.
func (m EditorModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render(m.title))
	sb.WriteString("\n\n")

	t := StateTable("", m.state)
	if m.state.Len() > 0 {
		t.Highlight = m.cursor
	}
	sb.WriteString(t.View(m.styles))

	dirty := m.state.Dirty.Len()
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d records, %d dirty", m.state.Len(), dirty)))
	sb.WriteString("\n")

	if m.editing {
		sb.WriteString(m.input.View())
		sb.WriteString("\n")
	}
	switch {
	case m.err != nil:
		sb.WriteString(m.styles.Error.Render(m.err.Error()))
		sb.WriteString("\n")
	case m.status != "":
		sb.WriteString(m.styles.Success.Render(m.status))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

// ParseAssignment splits "key=value" and decodes the value as a YAML scalar
// or flow collection, so "30" is an int and "[a, b]" a list.
func ParseAssignment(s string) (string, any, error) {
	k, raw, ok := strings.Cut(s, "=")
	k = strings.TrimSpace(k)
	if !ok || k == "" {
		return "", nil, fmt.Errorf("expected key=value, got %q", s)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return k, "", nil
	}
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return "", nil, fmt.Errorf("value for %s: %w", k, err)
	}
	return k, v, nil
}
