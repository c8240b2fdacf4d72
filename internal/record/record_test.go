package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type address struct {
	Street string
	Tags   []string
	secret int
}

func TestCloneIndependence(t *testing.T) {
	src := Record{
		"name":   "alice",
		"age":    30,
		"nested": map[string]any{"list": []any{1, 2, map[string]any{"deep": true}}},
		"tags":   []string{"a", "b"},
		"addr":   &address{Street: "main", Tags: []string{"x"}, secret: 7},
	}

	clone := Clone(src)
	require.True(t, Equal(src, clone), "clone must equal source")

	// Mutate the source at every depth; the clone must not follow.
	src["name"] = "bob"
	src["nested"].(map[string]any)["list"].([]any)[2].(map[string]any)["deep"] = false
	src["tags"].([]string)[0] = "z"
	src["addr"].(*address).Tags[0] = "y"

	assert.Equal(t, "alice", clone["name"])
	assert.Equal(t, true, clone["nested"].(map[string]any)["list"].([]any)[2].(map[string]any)["deep"])
	assert.Equal(t, "a", clone["tags"].([]string)[0])
	assert.Equal(t, "x", clone["addr"].(*address).Tags[0])
	assert.Equal(t, 7, clone["addr"].(*address).secret)
}

func TestCloneNil(t *testing.T) {
	assert.Nil(t, Clone(nil))
	assert.Empty(t, CloneAll(nil))
	assert.NotNil(t, CloneAll(nil))
}

func TestWithLeavesReceiverUntouched(t *testing.T) {
	r := Record{"a": 1}
	next := r.With("a", 2)

	assert.Equal(t, 1, r["a"])
	assert.Equal(t, 2, next["a"])
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Record
		want bool
	}{
		{"both empty", Record{}, Record{}, true},
		{"nil and empty", nil, Record{}, true},
		{"same scalar", Record{"a": 1}, Record{"a": 1}, true},
		{"different scalar", Record{"a": 1}, Record{"a": 2}, false},
		{"different type", Record{"a": 1}, Record{"a": "1"}, false},
		{"missing key", Record{"a": 1}, Record{"a": 1, "b": 2}, false},
		{"nested equal", Record{"a": []any{map[string]any{"x": 1}}}, Record{"a": []any{map[string]any{"x": 1}}}, true},
		{"nested differ", Record{"a": []any{map[string]any{"x": 1}}}, Record{"a": []any{map[string]any{"x": 2}}}, false},
		{"struct unexported", Record{"s": address{secret: 1}}, Record{"s": address{secret: 2}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a))
		})
	}
}

func TestEqualIsStructuralNotIdentity(t *testing.T) {
	shared := []any{1, 2}
	a := Record{"list": shared}
	b := Record{"list": []any{1, 2}}
	assert.True(t, Equal(a, b))
}

func TestDiff(t *testing.T) {
	assert.Empty(t, Diff(Record{"a": 1}, Record{"a": 1}))

	d := Diff(Record{"a": 1}, Record{"a": 2})
	assert.Contains(t, d, "-")
	assert.Contains(t, d, "+")
}

func TestChangedFields(t *testing.T) {
	defaults := Record{"a": 1, "b": "x", "c": []any{1}}
	values := Record{"a": 1, "b": "y", "d": true}

	assert.Equal(t, []string{"b", "c", "d"}, ChangedFields(defaults, values))
	assert.Empty(t, ChangedFields(defaults, Clone(defaults)))
}
