package form

import (
	"context"
	"testing"

	"formstate/internal/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestForm(t *testing.T, defaults, values []record.Record, opts ...ProviderOption) *Form {
	t.Helper()
	p := NewProvider(defaults, values, opts...)
	t.Cleanup(p.Close)
	return NewForm(p)
}

func TestFormVerbs(t *testing.T) {
	f := newTestForm(t, nil, nil)

	require.NoError(t, f.Append(record.Record{"a": 1}))
	dirty, err := f.IsDirty(0)
	require.NoError(t, err)
	assert.False(t, dirty)

	require.NoError(t, f.Set(0, "a", 2))
	dirty, err = f.IsDirty(0)
	require.NoError(t, err)
	assert.True(t, dirty)

	defaults, err := f.Defaults()
	require.NoError(t, err)
	assert.Equal(t, []record.Record{{"a": 1}}, defaults)

	require.NoError(t, f.Reset(0))
	dirty, err = f.IsDirty(0)
	require.NoError(t, err)
	assert.False(t, dirty)

	require.NoError(t, f.Prepend(record.Record{"b": 1}))
	values, err := f.Values()
	require.NoError(t, err)
	assert.Equal(t, []record.Record{{"b": 1}, {"a": 1}}, values)

	require.NoError(t, f.Remove(0))
	n, err := f.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestFormAppendDeepClone(t *testing.T) {
	f := newTestForm(t, nil, nil)

	in := record.Record{"list": []any{1, 2}}
	require.NoError(t, f.Append(in))
	in["list"].([]any)[0] = 100

	values, err := f.Values()
	require.NoError(t, err)
	defaults, err := f.Defaults()
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2}, values[0]["list"])
	assert.Equal(t, []any{1, 2}, defaults[0]["list"])
}

func TestFormIndexErrors(t *testing.T) {
	f := newTestForm(t, []record.Record{{"a": 1}}, []record.Record{{"a": 1}})

	assert.ErrorIs(t, f.Reset(3), ErrIndex)
	assert.ErrorIs(t, f.Set(-1, "a", 1), ErrIndex)
	assert.ErrorIs(t, f.Remove(1), ErrIndex)

	_, err := f.IsDirty(1)
	assert.ErrorIs(t, err, ErrIndex)
	_, err = f.Changes(1)
	assert.ErrorIs(t, err, ErrIndex)
}

func TestFormIsDirtyWithoutTracking(t *testing.T) {
	f := newTestForm(t,
		[]record.Record{{"a": 1}, {"a": 2}},
		[]record.Record{{"a": 1}, {"a": 3}},
		WithDirtyTracking(false),
	)

	dirty, err := f.IsDirty(1)
	require.NoError(t, err)
	assert.True(t, dirty, "direct comparison must still detect the edit")

	dirty, err = f.IsDirty(0)
	require.NoError(t, err)
	assert.False(t, dirty)

	indices, err := f.DirtyIndices()
	require.NoError(t, err)
	assert.Equal(t, []int{1}, indices)

	s, err := f.State()
	require.NoError(t, err)
	assert.Equal(t, 0, s.Dirty.Len(), "no set is maintained when tracking is off")
}

func TestFormIsDirtyUnaligned(t *testing.T) {
	f := newTestForm(t, []record.Record{{"a": 1}}, []record.Record{{"a": 2}})
	require.NoError(t, f.ReplaceValues([]record.Record{{"a": 2}, {"a": 3}}))

	dirty, err := f.IsDirty(0)
	require.NoError(t, err)
	assert.False(t, dirty)

	indices, err := f.DirtyIndices()
	require.NoError(t, err)
	assert.Empty(t, indices)

	require.NoError(t, f.ReplaceDefaults([]record.Record{{"a": 2}, {"a": 2}}))
	indices, err = f.DirtyIndices()
	require.NoError(t, err)
	assert.Equal(t, []int{1}, indices)
}

func TestFormChanges(t *testing.T) {
	f := newTestForm(t,
		[]record.Record{{"name": "alice", "age": 30}},
		[]record.Record{{"name": "alice", "age": 31, "nick": "al"}},
	)

	changes, err := f.Changes(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "nick"}, changes)
}

func TestFormAfterClose(t *testing.T) {
	p := NewProvider(nil, nil)
	f := NewForm(p)
	p.Close()

	assert.ErrorIs(t, f.Append(record.Record{}), ErrScope)
	_, err := f.IsDirty(0)
	assert.ErrorIs(t, err, ErrScope)
	_, err = f.Len()
	assert.ErrorIs(t, err, ErrScope)
	_, err = f.Values()
	assert.ErrorIs(t, err, ErrScope)
}

func TestUse(t *testing.T) {
	_, err := Use(context.Background())
	assert.ErrorIs(t, err, ErrScope)

	p := NewProvider(nil, nil)
	defer p.Close()
	ctx := WithProvider(context.Background(), p)

	f, err := Use(ctx)
	require.NoError(t, err)
	require.NoError(t, f.Append(record.Record{"a": 1}))
	assert.Same(t, p, f.Provider())

	s, err := StateFrom(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}
