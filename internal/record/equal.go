package record

import (
	"reflect"
	"slices"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// compareOpts makes cmp treat records as plain data: unexported struct
// fields are compared instead of panicking, and nil/empty containers match.
var compareOpts = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
	cmpopts.EquateEmpty(),
}

// Equal reports whether a and b are structurally equal.
func Equal(a, b Record) bool {
	return cmp.Equal(a, b, compareOpts...)
}

// EqualValue reports whether two field values are structurally equal.
func EqualValue(a, b any) bool {
	return cmp.Equal(a, b, compareOpts...)
}

// Diff returns a human-readable report of how values differs from defaults,
// or "" when they are equal. Lines prefixed with "-" come from defaults and
// "+" from values.
func Diff(defaults, values Record) string {
	return cmp.Diff(defaults, values, compareOpts...)
}

// ChangedFields returns the sorted keys whose values differ between the two
// records. A key present on only one side counts as changed.
func ChangedFields(defaults, values Record) []string {
	var changed []string
	for k, dv := range defaults {
		vv, ok := values[k]
		if !ok || !EqualValue(dv, vv) {
			changed = append(changed, k)
		}
	}
	for k := range values {
		if _, ok := defaults[k]; !ok {
			changed = append(changed, k)
		}
	}
	slices.Sort(changed)
	return changed
}
