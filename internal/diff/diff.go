// Package diff renders line-level differences between a default record and
// its edited value, using the sergi/go-diff library.
package diff

import (
	"fmt"
	"strings"

	"formstate/internal/record"

	"github.com/sergi/go-diff/diffmatchpatch"
	"gopkg.in/yaml.v3"
)

// LineType represents the type of diff line
type LineType int

const (
	LineContext LineType = iota // Unchanged line
	LineAdded                   // Present only in the value
	LineRemoved                 // Present only in the default
)

// Prefix returns the unified diff marker for t.
func (t LineType) Prefix() string {
	switch t {
	case LineAdded:
		return "+"
	case LineRemoved:
		return "-"
	default:
		return " "
	}
}

// Line represents a single line in the diff
type Line struct {
	Content string
	Type    LineType
}

// Engine computes line diffs.
type Engine struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewEngine creates a new diff engine
func NewEngine() *Engine {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0 // Disable timeout for accuracy
	return &Engine{dmp: dmp}
}

// DefaultEngine is shared by the package-level helpers.
var DefaultEngine = NewEngine()

// Lines diffs oldContent against newContent line by line.
func (e *Engine) Lines(oldContent, newContent string) []Line {
	// Line-level reduction avoids newline boundary artifacts.
	a, b, lineArray := e.dmp.DiffLinesToChars(oldContent, newContent)
	diffs := e.dmp.DiffMain(a, b, false)
	diffs = e.dmp.DiffCharsToLines(diffs, lineArray)

	lines := make([]Line, 0)
	for _, d := range diffs {
		typ := LineContext
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			typ = LineAdded
		case diffmatchpatch.DiffDelete:
			typ = LineRemoved
		}
		for _, content := range strings.SplitAfter(d.Text, "\n") {
			if content == "" {
				continue
			}
			lines = append(lines, Line{Content: strings.TrimSuffix(content, "\n"), Type: typ})
		}
	}
	return lines
}

// Records renders the YAML form of def and value as a unified line diff.
// Equal records produce only context lines.
func (e *Engine) Records(def, value record.Record) ([]Line, error) {
	oldText, err := marshalRecord(def)
	if err != nil {
		return nil, fmt.Errorf("default: %w", err)
	}
	newText, err := marshalRecord(value)
	if err != nil {
		return nil, fmt.Errorf("value: %w", err)
	}
	return e.Lines(oldText, newText), nil
}

// Render joins lines with their markers.
func Render(lines []Line) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l.Type.Prefix())
		sb.WriteString(l.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Changed reports whether any line was added or removed.
func Changed(lines []Line) bool {
	for _, l := range lines {
		if l.Type != LineContext {
			return true
		}
	}
	return false
}

// Records is a convenience function using the default engine
func Records(def, value record.Record) ([]Line, error) {
	return DefaultEngine.Records(def, value)
}

// yaml.v3 sorts map keys, so equal records always marshal identically.
func marshalRecord(r record.Record) (string, error) {
	if len(r) == 0 {
		return "", nil
	}
	out, err := yaml.Marshal(map[string]any(r))
	if err != nil {
		return "", err
	}
	return string(out), nil
}
