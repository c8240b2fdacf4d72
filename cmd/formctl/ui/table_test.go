package ui

import (
	"strings"
	"testing"

	"formstate/internal/form"
	"formstate/internal/record"
)

func TestSimpleTable(t *testing.T) {
	table := NewSimpleTable("Test Table", []string{"Col1", "Col2"})
	table.AddRow("Row1Col1", "Row1Col2")

	view := table.View(NewStyles(LightTheme()))

	if !strings.Contains(view, "Test Table") {
		t.Error("View missing title")
	}
	if !strings.Contains(view, "Row1Col1") {
		t.Error("View missing cell content")
	}
}

func TestSimpleTableEmpty(t *testing.T) {
	view := NewSimpleTable("Empty", []string{"A"}).View(NewStyles(LightTheme()))
	if !strings.Contains(view, "(no records)") {
		t.Errorf("expected placeholder, got %q", view)
	}
}

func TestStateTableMarksDirty(t *testing.T) {
	s := form.NewState(
		[]record.Record{{"a": 1}, {"a": 2}},
		[]record.Record{{"a": 1}, {"a": 3}},
		true,
	)
	table := StateTable("", s)
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[0][1] != "" {
		t.Errorf("slot 0 should be clean, got %q", table.Rows[0][1])
	}
	if table.Rows[1][1] != "*" {
		t.Errorf("slot 1 should be dirty, got %q", table.Rows[1][1])
	}
	if table.Rows[1][2] != "a=3" || table.Rows[1][3] != "a=2" {
		t.Errorf("unexpected cells %v", table.Rows[1])
	}
}

func TestStateTableUnaligned(t *testing.T) {
	s := form.NewState([]record.Record{{"a": 1}, {"a": 2}}, []record.Record{{"a": 1}}, true)
	table := StateTable("", s)
	if len(table.Rows) != 2 {
		t.Fatalf("expected a row per slot of the longer side, got %d", len(table.Rows))
	}
	if table.Rows[1][2] != "" {
		t.Errorf("missing value should be blank, got %q", table.Rows[1][2])
	}
}

func TestFormatRecord(t *testing.T) {
	if got := FormatRecord(record.Record{"b": 2, "a": "x"}); got != "a=x b=2" {
		t.Errorf("FormatRecord = %q", got)
	}
	if got := FormatRecord(nil); got != "{}" {
		t.Errorf("FormatRecord(nil) = %q", got)
	}
}
