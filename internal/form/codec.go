package form

import (
	"fmt"
	"math"

	"formstate/internal/record"

	"gopkg.in/yaml.v3"
)

// DecodeScript parses a YAML (or JSON) list of operations such as
//
//	- {op: append, record: {name: alice}}
//	- {op: set, index: 0, key: name, value: bob}
//	- {op: reset, index: 0}
func DecodeScript(data []byte) ([]Op, error) {
	var raw []map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}

	ops := make([]Op, 0, len(raw))
	for i, m := range raw {
		op, err := DecodeOp(m)
		if err != nil {
			return nil, fmt.Errorf("script entry %d: %w", i, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// DecodeOp builds a typed operation from its map form. The "op" field picks
// the variant; unknown kinds fail with ErrUnknownOp and missing or mistyped
// fields with ErrMalformedOp.
func DecodeOp(m map[string]any) (Op, error) {
	kind, _ := m["op"].(string)
	switch kind {
	case "reset":
		i, err := decodeIndex(m)
		if err != nil {
			return nil, err
		}
		return Reset{Index: i}, nil

	case "set":
		i, err := decodeIndex(m)
		if err != nil {
			return nil, err
		}
		key, ok := m["key"].(string)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: set needs a string key", ErrMalformedOp)
		}
		value, ok := m["value"]
		if !ok {
			return nil, fmt.Errorf("%w: set needs a value", ErrMalformedOp)
		}
		return Set{Index: i, Key: key, Value: value}, nil

	case "append", "prepend":
		r, err := decodeRecord(m["record"])
		if err != nil {
			return nil, fmt.Errorf("%w: %s record: %v", ErrMalformedOp, kind, err)
		}
		if kind == "append" {
			return Append{Record: r}, nil
		}
		return Prepend{Record: r}, nil

	case "remove":
		i, err := decodeIndex(m)
		if err != nil {
			return nil, err
		}
		return Remove{Index: i}, nil

	case "replace_defaults", "replace_values":
		list, ok := m["records"].([]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s needs a records list", ErrMalformedOp, kind)
		}
		records := make([]record.Record, len(list))
		for i, item := range list {
			r, err := decodeRecord(item)
			if err != nil {
				return nil, fmt.Errorf("%w: %s records[%d]: %v", ErrMalformedOp, kind, i, err)
			}
			records[i] = r
		}
		if kind == "replace_defaults" {
			return ReplaceDefaults{Records: records}, nil
		}
		return ReplaceValues{Records: records}, nil

	case "":
		return nil, fmt.Errorf("%w: missing op field", ErrUnknownOp)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, kind)
	}
}

// EncodeOp returns the map form of op accepted by DecodeOp.
func EncodeOp(op Op) (map[string]any, error) {
	m := map[string]any{}
	if op == nil {
		return nil, fmt.Errorf("%w: nil", ErrUnknownOp)
	}
	m["op"] = op.Kind()

	switch op := op.(type) {
	case Reset:
		m["index"] = op.Index
	case Set:
		m["index"] = op.Index
		m["key"] = op.Key
		m["value"] = op.Value
	case Append:
		m["record"] = map[string]any(op.Record)
	case Prepend:
		m["record"] = map[string]any(op.Record)
	case Remove:
		m["index"] = op.Index
	case ReplaceDefaults:
		m["records"] = encodeRecords(op.Records)
	case ReplaceValues:
		m["records"] = encodeRecords(op.Records)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownOp, op)
	}
	return m, nil
}

func encodeRecords(rs []record.Record) []any {
	out := make([]any, len(rs))
	for i, r := range rs {
		out[i] = map[string]any(r)
	}
	return out
}

func decodeIndex(m map[string]any) (int, error) {
	raw, ok := m["index"]
	if !ok {
		return 0, fmt.Errorf("%w: %v needs an index", ErrMalformedOp, m["op"])
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		if v > math.MaxInt {
			break
		}
		return int(v), nil
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return int(v), nil
		}
	}
	return 0, fmt.Errorf("%w: index %v is not an integer", ErrMalformedOp, raw)
}

func decodeRecord(v any) (record.Record, error) {
	switch r := v.(type) {
	case record.Record:
		return r, nil
	case map[string]any:
		return record.Record(r), nil
	case nil:
		return record.Record{}, nil
	default:
		return nil, fmt.Errorf("expected a mapping, got %T", v)
	}
}
