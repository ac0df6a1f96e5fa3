package amocrm

import (
	"encoding/json"
)

// fieldSpec describes one logical field of a record: the wire keys it
// accepts on input (in declared priority order, current name first),
// the key used when serializing for update, whether the field is
// excluded from outbound payloads, and how to move values between raw
// JSON and the record struct.
type fieldSpec[R any] struct {
	name    string   // canonical name, used as the create-payload key
	inputs  []string // accepted input keys; empty means {name}
	output  string   // update-payload key; empty means name
	exclude bool     // parsed from input but never serialized

	decode func(r *R, raw json.RawMessage) error
	encode func(r *R) (any, bool)
}

func (f *fieldSpec[R]) inputKeys() []string {
	if len(f.inputs) == 0 {
		return []string{f.name}
	}

	return f.inputs
}

func (f *fieldSpec[R]) outputKey() string {
	if f.output == "" {
		return f.name
	}

	return f.output
}

// recordSchema is the per-record descriptor table plus the post-parse
// normalizers that run after every successful parse (embedded-collection
// mirroring, derived multi-text fields).
type recordSchema[R any] struct {
	fields []fieldSpec[R]
	post   []func(*R)
}

// parse populates rec from raw wire data. Unknown incoming keys are
// ignored; for aliased fields the first matching input key wins.
func (s *recordSchema[R]) parse(data []byte, rec *R) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return &ValidationError{Err: err}
	}

	for i := range s.fields {
		field := &s.fields[i]
		for _, key := range field.inputKeys() {
			value, ok := raw[key]
			if !ok || string(value) == "null" {
				continue
			}

			if err := field.decode(rec, value); err != nil {
				return &ValidationError{Path: key, Err: err}
			}

			break
		}
	}

	for _, normalize := range s.post {
		normalize(rec)
	}

	return nil
}

// payload serializes rec with "set fields only" semantics: a field the
// caller never populated contributes no key, so partial updates do not
// clobber server state. byAlias selects the update-form output keys.
func (s *recordSchema[R]) payload(rec *R, byAlias bool) map[string]any {
	out := make(map[string]any)

	for i := range s.fields {
		field := &s.fields[i]
		if field.exclude {
			continue
		}

		value, set := field.encode(rec)
		if !set {
			continue
		}

		key := field.name
		if byAlias {
			key = field.outputKey()
		}

		out[key] = value
	}

	return out
}

// scalar builds a spec for an optional scalar field stored as a
// pointer; nil means "not set".
func scalar[R, T any](name string, access func(*R) **T, opts ...fieldOpt[R]) fieldSpec[R] {
	spec := fieldSpec[R]{
		name: name,
		decode: func(r *R, raw json.RawMessage) error {
			value := new(T)
			if err := json.Unmarshal(raw, value); err != nil {
				return err
			}

			*access(r) = value

			return nil
		},
		encode: func(r *R) (any, bool) {
			value := *access(r)
			if value == nil {
				return nil, false
			}

			return value, true
		},
	}

	for _, opt := range opts {
		opt(&spec)
	}

	return spec
}

// list builds a spec for a slice field; a nil slice means "not set".
func list[R, T any](name string, access func(*R) *[]T, opts ...fieldOpt[R]) fieldSpec[R] {
	spec := fieldSpec[R]{
		name: name,
		decode: func(r *R, raw json.RawMessage) error {
			var values []T
			if err := json.Unmarshal(raw, &values); err != nil {
				return err
			}

			*access(r) = values

			return nil
		},
		encode: func(r *R) (any, bool) {
			values := *access(r)
			if values == nil {
				return nil, false
			}

			return values, true
		},
	}

	for _, opt := range opts {
		opt(&spec)
	}

	return spec
}

type fieldOpt[R any] func(*fieldSpec[R])

// aliased sets the accepted input keys, in priority order. The
// canonical name must be listed explicitly if it is still accepted.
func aliased[R any](inputs ...string) fieldOpt[R] {
	return func(f *fieldSpec[R]) {
		f.inputs = inputs
	}
}

// outputAs sets the update-payload key when it differs from the
// canonical name.
func outputAs[R any](key string) fieldOpt[R] {
	return func(f *fieldSpec[R]) {
		f.output = key
	}
}

// excluded marks a field as parse-only: server-assigned and derived
// fields are never sent back.
func excluded[R any]() fieldOpt[R] {
	return func(f *fieldSpec[R]) {
		f.exclude = true
	}
}
